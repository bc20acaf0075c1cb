package client

import (
	"fmt"
	"sync"
	"time"

	"quantora_agent/internal/app/port"
	restclient "quantora_agent/internal/client"
	"quantora_agent/internal/domain/entity"
	"quantora_agent/internal/infrastructure/configloader"
	"quantora_agent/internal/infrastructure/httpclient"
)

const (
	defaultProviderConnectionTimeout = 10 * time.Second
)

// fetcherProvider implements the port.BalanceFetcherProvider interface.
type fetcherProvider struct {
	fetchers map[string]port.BalanceFetcher
	mu       sync.Mutex
	logger   port.Logger

	alchemyCfg        configloader.UpstreamConfig
	moralis           httpclient.MoralisClient
	toncenter         httpclient.ToncenterClient
	connectionTimeout time.Duration
}

// NewBalanceFetcherProvider creates a provider building fetchers on first use.
func NewBalanceFetcherProvider(
	cfg *configloader.Config,
	moralis httpclient.MoralisClient,
	toncenter httpclient.ToncenterClient,
	logger port.Logger,
) port.BalanceFetcherProvider {
	return &fetcherProvider{
		fetchers:          make(map[string]port.BalanceFetcher),
		logger:            logger,
		alchemyCfg:        cfg.Alchemy,
		moralis:           moralis,
		toncenter:         toncenter,
		connectionTimeout: defaultProviderConnectionTimeout,
	}
}

// NewStaticFetcherProvider returns a provider with prebuilt fetchers keyed by chain id.
func NewStaticFetcherProvider(fetchers map[string]port.BalanceFetcher, logger port.Logger) port.BalanceFetcherProvider {
	cached := make(map[string]port.BalanceFetcher, len(fetchers))
	for k, v := range fetchers {
		cached[k] = v
	}
	return &fetcherProvider{fetchers: cached, logger: logger}
}

// GetFetcher retrieves the balance fetcher for the given chain.
// It caches fetchers to avoid reconnecting repeatedly.
func (p *fetcherProvider) GetFetcher(chain entity.ChainDescriptor) (port.BalanceFetcher, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if fetcher, exists := p.fetchers[chain.ID]; exists {
		return fetcher, nil
	}

	p.logger.Info("Creating new balance fetcher", "chain", chain.Name, "provider", chain.ProviderKind)

	var fetcher port.BalanceFetcher
	switch chain.ProviderKind {
	case entity.ProviderAlchemy:
		limiter := restclient.NewLimiter(p.alchemyCfg.RateLimitPerSecond, p.alchemyCfg.RateLimitBurst, string(entity.ProviderAlchemy))
		rpcTimeout := time.Duration(p.alchemyCfg.RequestTimeoutMillis) * time.Millisecond
		alchemy, err := NewAlchemyClient(p.alchemyCfg.BaseURL, p.alchemyCfg.APIKey, limiter, p.connectionTimeout, rpcTimeout)
		if err != nil {
			p.logger.Error("Failed to create Alchemy client", "chain", chain.Name, "error", err)
			return nil, fmt.Errorf("failed to create alchemy client for %s: %w", chain.Name, err)
		}
		fetcher = alchemy
	case entity.ProviderMoralis:
		if p.moralis == nil {
			return nil, fmt.Errorf("moralis client is not configured for %s", chain.Name)
		}
		fetcher = NewMoralisFetcher(p.moralis)
	case entity.ProviderToncenter:
		if p.toncenter == nil {
			return nil, fmt.Errorf("toncenter client is not configured for %s", chain.Name)
		}
		fetcher = NewTonFetcher(p.toncenter)
	default:
		return nil, fmt.Errorf("unsupported provider %q for chain %s", chain.ProviderKind, chain.Name)
	}

	p.fetchers[chain.ID] = fetcher
	p.logger.Info("Successfully created and cached balance fetcher", "chain", chain.Name)
	return fetcher, nil
}
