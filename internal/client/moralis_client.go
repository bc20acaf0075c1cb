package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"quantora_agent/internal/entity"
	"quantora_agent/internal/infrastructure/httpclient"

	"go.uber.org/zap"
)

type moralisClientImpl struct {
	rest *restClient
}

// NewMoralisClient creates a Moralis client authenticating with the X-API-Key header.
func NewMoralisClient(baseURL, apiKey string, timeout time.Duration, limiter *Limiter, logger *zap.Logger) httpclient.MoralisClient {
	rest := newRestClient("moralis", "MoralisClient", baseURL, timeout, limiter, logger)
	if apiKey != "" {
		rest.headers["X-API-Key"] = apiKey
	}
	return &moralisClientImpl{rest: rest}
}

// GetNativeBalance implements httpclient.MoralisClient.
func (c *moralisClientImpl) GetNativeBalance(ctx context.Context, address string, chainID string) (*entity.MoralisBalanceResponse, error) {
	path := fmt.Sprintf("/api/v2/%s/balance?chain=%s", url.PathEscape(address), url.QueryEscape(chainID))

	var out entity.MoralisBalanceResponse
	if err := c.rest.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
