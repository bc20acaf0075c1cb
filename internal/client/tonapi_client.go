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

type tonAPIClientImpl struct {
	rest *restClient
}

// NewTonAPIClient creates a TonAPI client. The bearer token is optional.
func NewTonAPIClient(baseURL, apiKey string, timeout time.Duration, limiter *Limiter, logger *zap.Logger) httpclient.TonAPIClient {
	rest := newRestClient("tonapi", "TonAPIClient", baseURL, timeout, limiter, logger)
	if apiKey != "" {
		rest.headers["Authorization"] = "Bearer " + apiKey
	}
	return &tonAPIClientImpl{rest: rest}
}

// GetJettons implements httpclient.TonAPIClient.
func (c *tonAPIClientImpl) GetJettons(ctx context.Context, address string) (*entity.TonAPIJettonsResponse, error) {
	path := fmt.Sprintf("/v2/accounts/%s/jettons?currencies=usd", url.PathEscape(address))

	var out entity.TonAPIJettonsResponse
	if err := c.rest.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetNFTs implements httpclient.TonAPIClient.
func (c *tonAPIClientImpl) GetNFTs(ctx context.Context, address string, limit int) (*entity.TonAPINFTsResponse, error) {
	path := fmt.Sprintf("/v2/accounts/%s/nfts?limit=%d&offset=0&indirect_ownership=false", url.PathEscape(address), limit)

	var out entity.TonAPINFTsResponse
	if err := c.rest.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
