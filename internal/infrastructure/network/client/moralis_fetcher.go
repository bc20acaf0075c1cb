package client

import (
	"context"
	"fmt"

	"quantora_agent/internal/app/port"
	"quantora_agent/internal/domain/entity"
	"quantora_agent/internal/infrastructure/httpclient"
	"quantora_agent/internal/pkg/utils"
)

// MoralisFetcher implements port.BalanceFetcher on top of the Moralis index API.
type MoralisFetcher struct {
	client httpclient.MoralisClient
}

// NewMoralisFetcher creates a new MoralisFetcher.
func NewMoralisFetcher(client httpclient.MoralisClient) *MoralisFetcher {
	return &MoralisFetcher{client: client}
}

// FetchNativeBalance implements port.BalanceFetcher.
func (f *MoralisFetcher) FetchNativeBalance(ctx context.Context, walletAddress string, chain entity.ChainDescriptor) (*entity.NativeBalance, error) {
	resp, err := f.client.GetNativeBalance(ctx, walletAddress, chain.ID)
	if err != nil {
		return nil, err
	}
	amount, err := utils.ParseBaseUnits(resp.Balance)
	if err != nil {
		return nil, fmt.Errorf("moralis balance for %s on %s: %w", walletAddress, chain.Name, err)
	}
	return &entity.NativeBalance{
		WalletAddress: walletAddress,
		Chain:         chain,
		Amount:        amount,
		Balance:       utils.ToDecimal(amount, chain.Decimals),
	}, nil
}

// Provider implements port.BalanceFetcher.
func (f *MoralisFetcher) Provider() entity.ProviderKind {
	return entity.ProviderMoralis
}

var _ port.BalanceFetcher = (*MoralisFetcher)(nil)
