package port

import (
	"context"

	"quantora_agent/internal/domain/entity"
)

// PortfolioService aggregates native balances of a wallet across chains.
type PortfolioService interface {
	// Aggregate fetches every chain concurrently and returns the priced, sorted snapshot.
	// Chains that fail are left out of the result; only a blank address or an unexpected
	// internal failure returns an error.
	Aggregate(ctx context.Context, walletAddress string, chains []entity.ChainDescriptor) (*entity.PortfolioSnapshot, error)
}

// TonAssetsService builds the TON holdings report.
type TonAssetsService interface {
	TonAssets(ctx context.Context, address string) (*entity.TonAssetsReport, error)
}
