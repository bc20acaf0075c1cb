package price

import (
	"context"
	"strings"
	"time"

	"quantora_agent/internal/app/port"
	"quantora_agent/internal/domain/entity"
	"quantora_agent/internal/infrastructure/httpclient"
	"quantora_agent/internal/pkg/metrics"

	gocache "github.com/patrickmn/go-cache"
)

// CoinGeckoResolver resolves prices from the CoinGecko simple price API and caches them.
type CoinGeckoResolver struct {
	client     httpclient.CoinGeckoClient
	symbolIDs  map[string]string // SYMBOL -> coingecko id
	vsCurrency string
	cache      *gocache.Cache
	logger     port.Logger
}

// SymbolIDs builds the symbol to CoinGecko id mapping from chain descriptors, with overrides applied.
func SymbolIDs(chains []entity.ChainDescriptor, overrides map[string]string) map[string]string {
	ids := make(map[string]string, len(chains)+len(overrides))
	for _, c := range chains {
		if c.CoinGeckoID != "" {
			ids[strings.ToUpper(c.Symbol)] = c.CoinGeckoID
		}
	}
	for symbol, id := range overrides {
		ids[strings.ToUpper(strings.TrimSpace(symbol))] = id
	}
	return ids
}

// NewCoinGeckoResolver creates a resolver caching prices for ttl.
func NewCoinGeckoResolver(
	client httpclient.CoinGeckoClient,
	symbolIDs map[string]string,
	vsCurrency string,
	ttl time.Duration,
	logger port.Logger,
) *CoinGeckoResolver {
	if vsCurrency == "" {
		vsCurrency = "usd"
	}
	r := &CoinGeckoResolver{
		client:     client,
		symbolIDs:  symbolIDs,
		vsCurrency: strings.ToLower(vsCurrency),
		cache:      gocache.New(ttl, 2*ttl),
		logger:     logger,
	}
	logger.Info("CoinGecko price resolver initialized", "symbols", len(symbolIDs), "cache_ttl", ttl.String())
	return r
}

// PriceUSD implements port.PriceResolver.
func (r *CoinGeckoResolver) PriceUSD(ctx context.Context, symbol string) (float64, bool) {
	id, ok := r.symbolIDs[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		metrics.PriceLookups.WithLabelValues("coingecko", "unmapped").Inc()
		return 0, false
	}

	if cached, found := r.cache.Get(id); found {
		metrics.PriceLookups.WithLabelValues("coingecko", "cached").Inc()
		return cached.(float64), true
	}

	prices, err := r.client.GetSimplePrices(ctx, []string{id}, r.vsCurrency)
	if err != nil {
		r.logger.Warn("Failed to fetch price from CoinGecko", "symbol", symbol, "id", id, "error", err)
		metrics.PriceLookups.WithLabelValues("coingecko", "error").Inc()
		return 0, false
	}

	p, ok := prices[id][r.vsCurrency]
	if !ok || p <= 0 {
		r.logger.Debug("CoinGecko returned no price", "symbol", symbol, "id", id)
		metrics.PriceLookups.WithLabelValues("coingecko", "miss").Inc()
		return 0, false
	}

	r.cache.Set(id, p, gocache.DefaultExpiration)
	metrics.PriceLookups.WithLabelValues("coingecko", "hit").Inc()
	return p, true
}

// Warm fetches every mapped id in one request and fills the cache.
func (r *CoinGeckoResolver) Warm(ctx context.Context) error {
	if len(r.symbolIDs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(r.symbolIDs))
	seen := make(map[string]struct{}, len(r.symbolIDs))
	for _, id := range r.symbolIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	prices, err := r.client.GetSimplePrices(ctx, ids, r.vsCurrency)
	if err != nil {
		return err
	}

	cached := 0
	for id, byCurrency := range prices {
		if p, ok := byCurrency[r.vsCurrency]; ok && p > 0 {
			r.cache.Set(id, p, gocache.DefaultExpiration)
			cached++
		}
	}
	r.logger.Info("Finished warming CoinGecko price cache", "requested", len(ids), "cached", cached)
	return nil
}

var _ port.PriceResolver = (*CoinGeckoResolver)(nil)
