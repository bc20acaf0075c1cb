package price

import (
	"fmt"

	"quantora_agent/internal/app/port"
	"quantora_agent/internal/infrastructure/configloader"
)

// ForSource selects the resolver for prices.source. live may be nil only for the static source.
func ForSource(source string, static *StaticPriceTable, live *CoinGeckoResolver) (port.PriceResolver, error) {
	switch source {
	case configloader.PriceSourceStatic:
		return static, nil
	case configloader.PriceSourceCoinGecko:
		if live == nil {
			return nil, fmt.Errorf("price source %s requires a CoinGecko resolver", source)
		}
		return live, nil
	case configloader.PriceSourceCoinGeckoFallback:
		if live == nil {
			return nil, fmt.Errorf("price source %s requires a CoinGecko resolver", source)
		}
		return NewFallbackResolver(live, static), nil
	default:
		return nil, fmt.Errorf("unknown price source %q", source)
	}
}
