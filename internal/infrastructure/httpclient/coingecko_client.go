package httpclient

import (
	"context"

	"quantora_agent/internal/entity"
)

// CoinGeckoClient defines the interface for interacting with the CoinGecko simple price API.
type CoinGeckoClient interface {
	GetSimplePrices(ctx context.Context, ids []string, vsCurrency string) (entity.CoinGeckoSimplePriceResponse, error)
}
