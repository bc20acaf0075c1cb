package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusError is returned when an upstream answers with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request failed with status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// restClient is the fasthttp transport shared by the provider clients.
type restClient struct {
	client   *fasthttp.Client
	provider string
	baseURL  string
	timeout  time.Duration
	headers  map[string]string
	limiter  *Limiter
	logger   *zap.Logger
}

func newRestClient(provider, name, baseURL string, timeout time.Duration, limiter *Limiter, logger *zap.Logger) *restClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &restClient{
		// TON-адреса в base64 содержат '/', экранированный %2F должен дойти до апстрима как есть
		client:   &fasthttp.Client{DisablePathNormalizing: true},
		provider: provider,
		baseURL:  strings.TrimRight(baseURL, "/"),
		timeout:  timeout,
		headers:  make(map[string]string),
		limiter:  limiter,
		logger:   logger.Named(name),
	}
}

// get performs a GET against baseURL+pathAndQuery and returns the status code and a copy of the body.
// Transport failures are errors; status codes are left to the caller.
func (c *restClient) get(ctx context.Context, pathAndQuery string) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("%s rate limiter: %w", c.provider, err)
	}

	requestURL := c.baseURL + pathAndQuery
	c.logger.Debug("Requesting upstream", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Warn("Failed to execute upstream request", zap.String("url", requestURL), zap.Error(err))
			return 0, nil, fmt.Errorf("failed to execute request to %s: %w", c.provider, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Warn("Failed to execute upstream request (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return 0, nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", c.provider, err)
		}
	}

	// resp возвращается в пул, тело нужно скопировать
	body := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), body, nil
}

// getJSON performs get and decodes a 2xx body into out.
func (c *restClient) getJSON(ctx context.Context, pathAndQuery string, out any) error {
	status, body, err := c.get(ctx, pathAndQuery)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		c.logger.Warn("Upstream request failed",
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", truncate(body)))
		return &StatusError{Provider: c.provider, StatusCode: status, Body: string(truncate(body))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Warn("Failed to unmarshal upstream response", zap.ByteString("responseBody", truncate(body)), zap.Error(err))
		return fmt.Errorf("failed to unmarshal %s response: %w", c.provider, err)
	}
	return nil
}

func truncate(body []byte) []byte {
	const maxLogged = 512
	if len(body) > maxLogged {
		return body[:maxLogged]
	}
	return body
}
