package httpclient

import (
	"context"

	"quantora_agent/internal/entity"
)

// MoralisClient defines the interface for interacting with the Moralis EVM index API.
type MoralisClient interface {
	GetNativeBalance(ctx context.Context, address string, chainID string) (*entity.MoralisBalanceResponse, error)
}
