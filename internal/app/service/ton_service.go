package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quantora_agent/internal/app/port"
	"quantora_agent/internal/app/service/insight"
	"quantora_agent/internal/domain/entity"
	"quantora_agent/internal/pkg/metrics"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// TonAssetsServiceImpl implements port.TonAssetsService.
type TonAssetsServiceImpl struct {
	accounts      port.TonAccountProvider
	holdings      port.TonHoldingsProvider
	priceResolver port.PriceResolver
	tonChain      entity.ChainDescriptor
	thresholds    entity.InsightThresholds
	logger        port.Logger
	fetchTimeout  time.Duration
}

// NewTonAssetsService creates a new instance of TonAssetsServiceImpl.
// holdings may be nil, in which case jettons and NFTs are reported empty.
func NewTonAssetsService(
	accounts port.TonAccountProvider,
	holdings port.TonHoldingsProvider,
	pr port.PriceResolver,
	tonChain entity.ChainDescriptor,
	thresholds entity.InsightThresholds,
	l port.Logger,
	fetchTimeout time.Duration,
) *TonAssetsServiceImpl {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &TonAssetsServiceImpl{
		accounts:      accounts,
		holdings:      holdings,
		priceResolver: pr,
		tonChain:      tonChain,
		thresholds:    thresholds,
		logger:        l,
		fetchTimeout:  fetchTimeout,
	}
}

// TonAssets implements port.TonAssetsService.
func (s *TonAssetsServiceImpl) TonAssets(ctx context.Context, address string) (report *entity.TonAssetsReport, err error) {
	address = strings.TrimSpace(address)
	if address == "" {
		metrics.AggregationsTotal.WithLabelValues("ton", "rejected").Inc()
		return nil, entity.ErrAddressRequired
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("TON assets aggregation panicked", "address", address, "panic", r)
			report, err = nil, fmt.Errorf("%w: %v", entity.ErrAggregationFailed, r)
		}
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.AggregationsTotal.WithLabelValues("ton", status).Inc()
	}()

	var (
		account *entity.TonAccount
		jettons []entity.JettonHolding
		nfts    []entity.NFTItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (gerr error) {
		defer func() {
			if r := recover(); r != nil {
				gerr = fmt.Errorf("%w: %v", entity.ErrAggregationFailed, r)
			}
		}()
		fetchCtx, cancel := context.WithTimeout(gctx, s.fetchTimeout)
		defer cancel()
		a, aerr := s.accounts.GetAccount(fetchCtx, address)
		if aerr != nil {
			return aerr
		}
		account = a
		return nil
	})
	if s.holdings != nil {
		g.Go(func() error {
			jettons = s.fetchJettons(gctx, address)
			return nil
		})
		g.Go(func() error {
			nfts = s.fetchNFTs(gctx, address)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Warn("Failed to fetch TON account", "address", address, "error", err)
		return nil, fmt.Errorf("failed to fetch TON account %s: %w", address, err)
	}
	if jettons == nil {
		jettons = []entity.JettonHolding{}
	}
	if nfts == nil {
		nfts = []entity.NFTItem{}
	}

	priceCtx, cancelPrice := context.WithTimeout(ctx, s.fetchTimeout)
	tonPrice, ok := lookupPrice(priceCtx, s.priceResolver, s.tonChain.Symbol)
	cancelPrice()
	if !ok {
		s.logger.Debug("No USD price for TON, valuing at zero")
		tonPrice = 0
	}

	assets := make([]entity.AssetBalance, 0, len(jettons)+1)
	assets = append(assets, entity.NewAssetBalance(&entity.NativeBalance{
		WalletAddress: address,
		Chain:         s.tonChain,
		Balance:       account.Balance,
	}, tonPrice))
	for _, j := range jettons {
		assets = append(assets, entity.AssetBalance{
			ChainID:       s.tonChain.ID,
			Chain:         s.tonChain.Name,
			Symbol:        j.Symbol,
			Name:          j.Name,
			NativeBalance: j.Balance,
			PriceUSD:      j.PriceUSD,
			ValueUSD:      j.ValueUSD,
		})
	}
	snapshot := entity.NewPortfolioSnapshot(address, assets)

	report = &entity.TonAssetsReport{
		Address:   address,
		Account:   *account,
		TonPrice:  decimal.NewFromFloat(tonPrice),
		Jettons:   jettons,
		NFTs:      nfts,
		Portfolio: snapshot,
		Insight:   insight.Score(snapshot, jettons, len(nfts), s.thresholds),
	}

	s.logger.Info("TON assets aggregated",
		"address", address,
		"jettons", len(jettons),
		"nfts", len(nfts),
		"total_value_usd", snapshot.TotalValueUSD.StringFixed(2))
	return report, nil
}

func (s *TonAssetsServiceImpl) fetchJettons(ctx context.Context, address string) (out []entity.JettonHolding) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Jetton fetch panicked", "address", address, "panic", r)
			out = []entity.JettonHolding{}
		}
	}()
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	jettons, err := s.holdings.GetJettons(fetchCtx, address)
	if err != nil {
		s.logger.Warn("Failed to fetch jettons, reporting none", "address", address, "error", err)
		return []entity.JettonHolding{}
	}
	return jettons
}

func (s *TonAssetsServiceImpl) fetchNFTs(ctx context.Context, address string) (out []entity.NFTItem) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("NFT fetch panicked", "address", address, "panic", r)
			out = []entity.NFTItem{}
		}
	}()
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	nfts, err := s.holdings.GetNFTs(fetchCtx, address)
	if err != nil {
		s.logger.Warn("Failed to fetch NFTs, reporting none", "address", address, "error", err)
		return []entity.NFTItem{}
	}
	return nfts
}

var _ port.TonAssetsService = (*TonAssetsServiceImpl)(nil)
