package price

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"quantora_agent/internal/domain/entity"
	raw "quantora_agent/internal/entity"
	"quantora_agent/internal/infrastructure/configloader"
	"quantora_agent/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCoinGecko struct {
	calls  int32
	prices raw.CoinGeckoSimplePriceResponse
	err    error
}

func (f *fakeCoinGecko) GetSimplePrices(ctx context.Context, ids []string, vsCurrency string) (raw.CoinGeckoSimplePriceResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	out := raw.CoinGeckoSimplePriceResponse{}
	for _, id := range ids {
		if p, ok := f.prices[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func TestStaticPriceTable(t *testing.T) {
	table := NewStaticPriceTable(map[string]float64{"eth": 3000, "SOL": 150})

	p, ok := table.PriceUSD(context.Background(), "ETH")
	require.True(t, ok)
	assert.Equal(t, 3000.0, p)

	p, ok = table.PriceUSD(context.Background(), "matic")
	require.True(t, ok)
	assert.Equal(t, 0.85, p)

	_, ok = table.PriceUSD(context.Background(), "DOGE")
	assert.False(t, ok)
}

func TestSymbolIDs(t *testing.T) {
	ids := SymbolIDs([]entity.ChainDescriptor{
		{Symbol: "ETH", CoinGeckoID: "ethereum"},
		{Symbol: "XYZ"},
	}, map[string]string{"bnb": "binancecoin"})

	assert.Equal(t, map[string]string{"ETH": "ethereum", "BNB": "binancecoin"}, ids)
}

func TestCoinGeckoResolver_CachesPrices(t *testing.T) {
	api := &fakeCoinGecko{prices: raw.CoinGeckoSimplePriceResponse{"ethereum": {"usd": 2600}}}
	r := NewCoinGeckoResolver(api, map[string]string{"ETH": "ethereum"}, "usd", time.Minute, logger.NewSlogAdapter())

	for i := 0; i < 3; i++ {
		p, ok := r.PriceUSD(context.Background(), "eth")
		require.True(t, ok)
		assert.Equal(t, 2600.0, p)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.calls))

	_, ok := r.PriceUSD(context.Background(), "DOGE")
	assert.False(t, ok)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.calls), "unmapped symbols never reach the API")
}

func TestCoinGeckoResolver_ErrorIsAbsence(t *testing.T) {
	api := &fakeCoinGecko{err: errors.New("429 too many requests")}
	r := NewCoinGeckoResolver(api, map[string]string{"TON": "the-open-network"}, "usd", time.Minute, logger.NewSlogAdapter())

	p, ok := r.PriceUSD(context.Background(), "TON")
	assert.False(t, ok)
	assert.Zero(t, p)
}

func TestCoinGeckoResolver_Warm(t *testing.T) {
	api := &fakeCoinGecko{prices: raw.CoinGeckoSimplePriceResponse{
		"ethereum":         {"usd": 2600},
		"the-open-network": {"usd": 5.2},
	}}
	r := NewCoinGeckoResolver(api, map[string]string{"ETH": "ethereum", "TON": "the-open-network"}, "usd", time.Minute, logger.NewSlogAdapter())

	require.NoError(t, r.Warm(context.Background()))
	p, ok := r.PriceUSD(context.Background(), "TON")
	require.True(t, ok)
	assert.Equal(t, 5.2, p)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.calls))
}

func TestFallbackResolver(t *testing.T) {
	api := &fakeCoinGecko{err: errors.New("down")}
	live := NewCoinGeckoResolver(api, map[string]string{"ETH": "ethereum"}, "usd", time.Minute, logger.NewSlogAdapter())
	f := NewFallbackResolver(live, nil, NewStaticPriceTable(nil))

	p, ok := f.PriceUSD(context.Background(), "ETH")
	require.True(t, ok)
	assert.Equal(t, 2600.0, p)

	_, ok = f.PriceUSD(context.Background(), "DOGE")
	assert.False(t, ok)
}

func TestForSource(t *testing.T) {
	static := NewStaticPriceTable(nil)
	live := NewCoinGeckoResolver(&fakeCoinGecko{}, nil, "usd", time.Minute, logger.NewSlogAdapter())

	r, err := ForSource(configloader.PriceSourceStatic, static, nil)
	require.NoError(t, err)
	assert.Same(t, static, r)

	r, err = ForSource(configloader.PriceSourceCoinGeckoFallback, static, live)
	require.NoError(t, err)
	assert.IsType(t, &FallbackResolver{}, r)

	_, err = ForSource(configloader.PriceSourceCoinGecko, static, nil)
	assert.Error(t, err)
	_, err = ForSource("oracle", static, live)
	assert.Error(t, err)
}
