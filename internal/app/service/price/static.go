package price

import (
	"context"
	"strings"

	"quantora_agent/internal/app/port"
	"quantora_agent/internal/pkg/metrics"
)

// DefaultStaticPrices are placeholder USD prices used when no live feed is configured.
var DefaultStaticPrices = map[string]float64{ //nolint:gochecknoglobals
	"ETH":   2600,
	"MATIC": 0.85,
	"BNB":   320,
	"TON":   5.2,
}

// StaticPriceTable resolves prices from a fixed symbol table.
type StaticPriceTable struct {
	prices map[string]float64
}

// NewStaticPriceTable builds the table from DefaultStaticPrices with overrides applied.
func NewStaticPriceTable(overrides map[string]float64) *StaticPriceTable {
	prices := make(map[string]float64, len(DefaultStaticPrices)+len(overrides))
	for k, v := range DefaultStaticPrices {
		prices[k] = v
	}
	for k, v := range overrides {
		prices[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return &StaticPriceTable{prices: prices}
}

// PriceUSD implements port.PriceResolver.
func (t *StaticPriceTable) PriceUSD(_ context.Context, symbol string) (float64, bool) {
	p, ok := t.prices[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		metrics.PriceLookups.WithLabelValues("static", "miss").Inc()
		return 0, false
	}
	metrics.PriceLookups.WithLabelValues("static", "hit").Inc()
	return p, true
}

var _ port.PriceResolver = (*StaticPriceTable)(nil)
