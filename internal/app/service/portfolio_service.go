package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"quantora_agent/internal/app/port"
	"quantora_agent/internal/domain/entity"
	"quantora_agent/internal/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

const defaultFetchTimeout = 8 * time.Second

// PortfolioServiceImpl implements port.PortfolioService.
type PortfolioServiceImpl struct {
	fetcherProvider       port.BalanceFetcherProvider
	priceResolver         port.PriceResolver
	logger                port.Logger
	fetchTimeout          time.Duration
	maxConcurrentRequests int
}

// NewPortfolioService creates a new instance of PortfolioServiceImpl.
// A non-positive fetchTimeout selects the default; maxConcurrent <= 0 means no limit.
func NewPortfolioService(
	fp port.BalanceFetcherProvider,
	pr port.PriceResolver,
	l port.Logger,
	fetchTimeout time.Duration,
	maxConcurrent int,
) *PortfolioServiceImpl {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &PortfolioServiceImpl{
		fetcherProvider:       fp,
		priceResolver:         pr,
		logger:                l,
		fetchTimeout:          fetchTimeout,
		maxConcurrentRequests: maxConcurrent,
	}
}

// Aggregate implements port.PortfolioService.
func (s *PortfolioServiceImpl) Aggregate(
	ctx context.Context,
	walletAddress string,
	chains []entity.ChainDescriptor,
) (snapshot *entity.PortfolioSnapshot, err error) {
	address := strings.TrimSpace(walletAddress)
	if address == "" {
		metrics.AggregationsTotal.WithLabelValues("connect", "rejected").Inc()
		return nil, entity.ErrWalletRequired
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Portfolio aggregation panicked", "wallet_address", address, "panic", r)
			snapshot, err = nil, fmt.Errorf("%w: %v", entity.ErrAggregationFailed, r)
		}
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.AggregationsTotal.WithLabelValues("connect", status).Inc()
	}()

	s.logger.Debug("Aggregating portfolio", "wallet_address", address, "chains_count", len(chains))

	// Результаты пишутся по индексу сети: порядок при равной стоимости сохраняется
	results := make([]*entity.AssetBalance, len(chains))
	var (
		errMu     sync.Mutex
		fetchErrs []entity.PortfolioError
	)

	g, gctx := errgroup.WithContext(ctx)
	if s.maxConcurrentRequests > 0 {
		g.SetLimit(s.maxConcurrentRequests)
	}

	for i, chain := range chains {
		g.Go(func() error {
			asset, perr := s.fetchAsset(gctx, address, chain)
			if perr != nil {
				errMu.Lock()
				fetchErrs = append(fetchErrs, *perr)
				errMu.Unlock()
				return nil
			}
			results[i] = asset
			return nil
		})
	}
	// Горутины не возвращают ошибок: сбой одной сети не отменяет остальные
	_ = g.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("portfolio aggregation for %s cancelled: %w", address, ctxErr)
	}

	assets := make([]entity.AssetBalance, 0, len(chains))
	for _, a := range results {
		if a != nil {
			assets = append(assets, *a)
		}
	}

	snapshot = entity.NewPortfolioSnapshot(address, assets)
	s.logger.Info("Portfolio aggregated",
		"wallet_address", address,
		"assets", len(snapshot.Assets),
		"failed_chains", len(fetchErrs),
		"total_value_usd", snapshot.TotalValueUSD.StringFixed(2))
	return snapshot, nil
}

// fetchAsset fetches and prices one chain. Any failure, including a panic, is reported
// as a PortfolioError and never propagates.
func (s *PortfolioServiceImpl) fetchAsset(
	ctx context.Context,
	address string,
	chain entity.ChainDescriptor,
) (asset *entity.AssetBalance, perr *entity.PortfolioError) {
	provider := string(chain.ProviderKind)
	start := time.Now()

	fail := func(msg string) (*entity.AssetBalance, *entity.PortfolioError) {
		metrics.FetchTotal.WithLabelValues(chain.ID, provider, "error").Inc()
		s.logger.Warn("Failed to fetch native balance", "wallet_address", address, "chain", chain.Name, "provider", provider, "error", msg)
		return nil, &entity.PortfolioError{
			WalletAddress: address,
			ChainID:       chain.ID,
			ChainName:     chain.Name,
			Provider:      provider,
			Message:       msg,
		}
	}

	defer func() {
		metrics.FetchLatency.WithLabelValues(chain.ID, provider).Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			asset, perr = fail(fmt.Sprintf("panic: %v", r))
		}
	}()

	fetcher, err := s.fetcherProvider.GetFetcher(chain)
	if err != nil {
		return fail("failed to get fetcher: " + err.Error())
	}
	if kind := fetcher.Provider(); kind != "" {
		provider = string(kind)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	nb, err := fetcher.FetchNativeBalance(fetchCtx, address, chain)
	if err != nil {
		return fail(err.Error())
	}
	if nb == nil {
		return fail("provider returned no balance")
	}

	// Цена запрашивается в рамках того же таймаута, что и баланс
	price, ok := lookupPrice(fetchCtx, s.priceResolver, chain.Symbol)
	if !ok {
		s.logger.Debug("No USD price for native asset, valuing at zero", "symbol", chain.Symbol)
		price = 0
	}

	metrics.FetchTotal.WithLabelValues(chain.ID, provider, "ok").Inc()
	a := entity.NewAssetBalance(nb, price)
	return &a, nil
}

var _ port.PortfolioService = (*PortfolioServiceImpl)(nil)
