package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"quantora_agent/internal/domain/entity"
	raw "quantora_agent/internal/entity"
	"quantora_agent/internal/infrastructure/configloader"
	networkdefinition "quantora_agent/internal/infrastructure/network/definition"
	"quantora_agent/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params []any           `json:"params"`
}

// newAlchemyServer answers eth_getBalance batches with balances keyed by address.
func newAlchemyServer(t *testing.T, balances map[string]string, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/test-key", r.URL.Path)

		var batch []rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))

		out := make([]map[string]any, 0, len(batch))
		for _, req := range batch {
			assert.Equal(t, "eth_getBalance", req.Method)
			require.Len(t, req.Params, 2)
			assert.Equal(t, "latest", req.Params[1])

			addr, _ := req.Params[0].(string)
			if bal, ok := balances[addr]; ok {
				out = append(out, map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": bal})
			} else {
				out = append(out, map[string]any{"jsonrpc": "2.0", "id": req.ID,
					"error": map[string]any{"code": -32602, "message": "invalid address"}})
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAlchemyClient_FetchNativeBalance(t *testing.T) {
	var calls int32
	srv := newAlchemyServer(t, map[string]string{"0xwallet": "0xDE0B6B3A7640000"}, &calls)

	c, err := NewAlchemyClient(srv.URL, "test-key", nil, time.Second, time.Second)
	require.NoError(t, err)

	nb, err := c.FetchNativeBalance(context.Background(), "0xwallet", networkdefinition.Ethereum)
	require.NoError(t, err)
	assert.Equal(t, "1.0000", nb.Balance.StringFixed(4))
	assert.Equal(t, "1000000000000000000", nb.Amount.String())
	assert.Equal(t, "Ethereum", nb.Chain.Name)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAlchemyClient_GetBalancesBatch(t *testing.T) {
	var calls int32
	srv := newAlchemyServer(t, map[string]string{
		"0xa": "0x3635c9adc5dea00000",
		"0xb": "0x0",
	}, &calls)

	c, err := NewAlchemyClient(srv.URL, "test-key", nil, time.Second, time.Second)
	require.NoError(t, err)

	results, err := c.GetBalances(context.Background(), "eth", []entity.BalanceRequestItem{
		{ID: "a", WalletAddress: "0xa"},
		{ID: "b", WalletAddress: "0xb"},
		{ID: "c", WalletAddress: "0xbad"},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "one HTTP request per batch")

	assert.NoError(t, results[0].Error)
	assert.Equal(t, "1000000000000000000000", results[0].Balance.String())
	assert.NoError(t, results[1].Error)
	assert.Zero(t, results[1].Balance.Sign())
	assert.Error(t, results[2].Error)
}

func TestNewAlchemyClient_RequiresKey(t *testing.T) {
	_, err := NewAlchemyClient("http://localhost", "", nil, time.Second, time.Second)
	require.Error(t, err)
}

type fakeMoralis struct {
	balance string
	err     error
}

func (f *fakeMoralis) GetNativeBalance(ctx context.Context, address, chainID string) (*raw.MoralisBalanceResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &raw.MoralisBalanceResponse{Balance: f.balance}, nil
}

func TestMoralisFetcher(t *testing.T) {
	f := NewMoralisFetcher(&fakeMoralis{balance: "2000000000000000000"})
	nb, err := f.FetchNativeBalance(context.Background(), "0xabc", networkdefinition.Polygon)
	require.NoError(t, err)
	assert.Equal(t, "2", nb.Balance.String())
	assert.Equal(t, "MATIC", nb.Chain.Symbol)
	assert.Equal(t, entity.ProviderMoralis, f.Provider())

	_, err = NewMoralisFetcher(&fakeMoralis{balance: "abc"}).FetchNativeBalance(context.Background(), "0xabc", networkdefinition.BSC)
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = NewMoralisFetcher(&fakeMoralis{err: boom}).FetchNativeBalance(context.Background(), "0xabc", networkdefinition.BSC)
	assert.ErrorIs(t, err, boom)
}

type fakeToncenter struct {
	info *raw.ToncenterAddressInfo
	err  error
}

func (f *fakeToncenter) GetAddressInformation(ctx context.Context, address string) (*raw.ToncenterAddressInfo, error) {
	return f.info, f.err
}

func TestTonFetcher(t *testing.T) {
	f := NewTonFetcher(&fakeToncenter{info: &raw.ToncenterAddressInfo{
		Balance: "2500000000", State: "active", AccountType: "wallet_v4r2",
	}})

	nb, err := f.FetchNativeBalance(context.Background(), "EQabc", networkdefinition.TON)
	require.NoError(t, err)
	assert.Equal(t, "2.5", nb.Balance.String())
	assert.Equal(t, "active", nb.Metadata[entity.MetadataAccountState])
	assert.Equal(t, "wallet_v4r2", nb.Metadata[entity.MetadataAccountType])

	empty := NewTonFetcher(&fakeToncenter{info: &raw.ToncenterAddressInfo{State: "uninit"}})
	acc, err := empty.GetAccount(context.Background(), "EQabc")
	require.NoError(t, err)
	assert.True(t, acc.Balance.IsZero())
	assert.Equal(t, "uninit", acc.State)

	rejected := NewTonFetcher(&fakeToncenter{err: entity.ErrUpstreamRejectedAddress})
	_, err = rejected.GetAccount(context.Background(), "bogus")
	assert.ErrorIs(t, err, entity.ErrUpstreamRejectedAddress)
}

type fakeTonAPI struct {
	jettons *raw.TonAPIJettonsResponse
	nfts    *raw.TonAPINFTsResponse
}

func (f *fakeTonAPI) GetJettons(ctx context.Context, address string) (*raw.TonAPIJettonsResponse, error) {
	return f.jettons, nil
}

func (f *fakeTonAPI) GetNFTs(ctx context.Context, address string, limit int) (*raw.TonAPINFTsResponse, error) {
	return f.nfts, nil
}

func TestTonHoldingsFetcher(t *testing.T) {
	api := &fakeTonAPI{
		jettons: &raw.TonAPIJettonsResponse{Balances: []raw.TonAPIJettonBalance{
			{Balance: "12500000", Price: &raw.TonAPITokenRates{Prices: map[string]float64{"USD": 1}},
				Jetton: raw.TonAPIJettonPreview{Address: "0:usdt", Symbol: "USD₮", Name: "Tether USD", Decimals: 6}},
			{Balance: "0", Jetton: raw.TonAPIJettonPreview{Symbol: "ZERO", Decimals: 9}},
			{Balance: "x", Jetton: raw.TonAPIJettonPreview{Symbol: "BAD", Decimals: 9}},
			{Balance: "1000000000", Jetton: raw.TonAPIJettonPreview{Symbol: "NOPRICE", Decimals: 9}},
		}},
		nfts: &raw.TonAPINFTsResponse{NFTItems: []raw.TonAPINFTItem{
			{Address: "0:nft", Index: 1, Metadata: map[string]any{"name": "Punk #1"},
				Collection: &raw.TonAPICollection{Name: "Punks"},
				Previews:   []raw.TonAPIPreview{{Resolution: "100x100", URL: "https://img/1.png"}}},
		}},
	}
	f := NewTonHoldingsFetcher(api, 50, logger.NewSlogAdapter())

	jettons, err := f.GetJettons(context.Background(), "EQabc")
	require.NoError(t, err)
	require.Len(t, jettons, 2)
	assert.Equal(t, "USD₮", jettons[0].Symbol)
	assert.Equal(t, "12.50", jettons[0].ValueUSD.StringFixed(2))
	assert.Equal(t, "NOPRICE", jettons[1].Symbol)
	assert.True(t, jettons[1].ValueUSD.IsZero())

	nfts, err := f.GetNFTs(context.Background(), "EQabc")
	require.NoError(t, err)
	require.Len(t, nfts, 1)
	assert.Equal(t, "Punk #1", nfts[0].Name)
	assert.Equal(t, "Punks", nfts[0].CollectionName)
	assert.Equal(t, "https://img/1.png", nfts[0].Image)
}

func TestFetcherProvider_CachesAndDispatches(t *testing.T) {
	cfg := configloader.Default()
	p := NewBalanceFetcherProvider(cfg, &fakeMoralis{balance: "1"}, &fakeToncenter{}, logger.NewSlogAdapter())

	polygon, err := p.GetFetcher(networkdefinition.Polygon)
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderMoralis, polygon.Provider())

	again, err := p.GetFetcher(networkdefinition.Polygon)
	require.NoError(t, err)
	assert.Same(t, polygon, again)

	ton, err := p.GetFetcher(networkdefinition.TON)
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderToncenter, ton.Provider())

	// без ключа Alchemy сеть недоступна
	_, err = p.GetFetcher(networkdefinition.Ethereum)
	assert.Error(t, err)

	_, err = p.GetFetcher(entity.ChainDescriptor{ID: "sol", Name: "Solana", ProviderKind: "unknown"})
	assert.Error(t, err)
}
