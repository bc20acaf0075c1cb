package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"quantora_agent/internal/entity"
	"quantora_agent/internal/infrastructure/httpclient"

	"go.uber.org/zap"
)

type coinGeckoClientImpl struct {
	rest *restClient
}

// NewCoinGeckoClient creates a CoinGecko client. The demo API key is optional.
func NewCoinGeckoClient(baseURL, apiKey string, timeout time.Duration, limiter *Limiter, logger *zap.Logger) httpclient.CoinGeckoClient {
	rest := newRestClient("coingecko", "CoinGeckoClient", baseURL, timeout, limiter, logger)
	if apiKey != "" {
		rest.headers["x-cg-demo-api-key"] = apiKey
	}
	return &coinGeckoClientImpl{rest: rest}
}

// GetSimplePrices implements httpclient.CoinGeckoClient.
func (c *coinGeckoClientImpl) GetSimplePrices(ctx context.Context, ids []string, vsCurrency string) (entity.CoinGeckoSimplePriceResponse, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("ids cannot be empty")
	}
	path := fmt.Sprintf("/api/v3/simple/price?ids=%s&vs_currencies=%s",
		url.QueryEscape(strings.Join(ids, ",")), url.QueryEscape(vsCurrency))

	out := entity.CoinGeckoSimplePriceResponse{}
	if err := c.rest.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}
