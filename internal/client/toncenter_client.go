package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	domain "quantora_agent/internal/domain/entity"
	"quantora_agent/internal/entity"
	"quantora_agent/internal/infrastructure/httpclient"

	"go.uber.org/zap"
)

type toncenterClientImpl struct {
	rest *restClient
}

// NewToncenterClient creates a Toncenter client. The API key is optional.
func NewToncenterClient(baseURL, apiKey string, timeout time.Duration, limiter *Limiter, logger *zap.Logger) httpclient.ToncenterClient {
	rest := newRestClient("toncenter", "ToncenterClient", baseURL, timeout, limiter, logger)
	if apiKey != "" {
		rest.headers["X-API-Key"] = apiKey
	}
	return &toncenterClientImpl{rest: rest}
}

// GetAddressInformation implements httpclient.ToncenterClient.
func (c *toncenterClientImpl) GetAddressInformation(ctx context.Context, address string) (*entity.ToncenterAddressInfo, error) {
	status, body, err := c.rest.get(ctx, "/api/v2/getAddressInformation?address="+url.QueryEscape(address))
	if err != nil {
		return nil, err
	}

	// Toncenter отвечает {"ok":false,...} вместе с 4xx, поэтому тело разбирается до проверки статуса
	var out entity.ToncenterAddressInfoResponse
	decodeErr := json.Unmarshal(body, &out)

	if decodeErr == nil && !out.OK {
		c.rest.logger.Info("Toncenter rejected address",
			zap.String("address", address),
			zap.Int("statusCode", status),
			zap.String("error", out.Error))
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstreamRejectedAddress, out.Error)
	}
	if status < 200 || status > 299 {
		return nil, &StatusError{Provider: "toncenter", StatusCode: status, Body: string(truncate(body))}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to unmarshal toncenter response: %w", decodeErr)
	}
	if out.Result == nil {
		return nil, fmt.Errorf("toncenter response has no result")
	}
	return out.Result, nil
}
