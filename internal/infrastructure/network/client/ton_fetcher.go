package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"quantora_agent/internal/app/port"
	"quantora_agent/internal/domain/entity"
	"quantora_agent/internal/infrastructure/httpclient"
	"quantora_agent/internal/pkg/utils"
)

const tonDecimals int32 = 9

// TonFetcher reads TON account information from Toncenter.
// It serves both as a balance fetcher and as the account source of the TON holdings report.
type TonFetcher struct {
	client httpclient.ToncenterClient
}

// NewTonFetcher creates a new TonFetcher.
func NewTonFetcher(client httpclient.ToncenterClient) *TonFetcher {
	return &TonFetcher{client: client}
}

// GetAccount implements port.TonAccountProvider.
func (f *TonFetcher) GetAccount(ctx context.Context, address string) (*entity.TonAccount, error) {
	info, err := f.client.GetAddressInformation(ctx, address)
	if err != nil {
		return nil, err
	}

	// Отсутствующий баланс трактуется как ноль
	raw := strings.TrimSpace(string(info.Balance))
	amount := new(big.Int)
	if raw != "" {
		amount, err = utils.ParseBaseUnits(raw)
		if err != nil {
			return nil, fmt.Errorf("toncenter balance for %s: %w", address, err)
		}
	}

	return &entity.TonAccount{
		Address:     address,
		Nanotons:    amount.String(),
		Balance:     utils.ToDecimal(amount, tonDecimals),
		State:       info.State,
		AccountType: info.AccountType,
	}, nil
}

// FetchNativeBalance implements port.BalanceFetcher.
func (f *TonFetcher) FetchNativeBalance(ctx context.Context, walletAddress string, chain entity.ChainDescriptor) (*entity.NativeBalance, error) {
	account, err := f.GetAccount(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	amount, _ := new(big.Int).SetString(account.Nanotons, 10)
	return &entity.NativeBalance{
		WalletAddress: walletAddress,
		Chain:         chain,
		Amount:        amount,
		Balance:       account.Balance,
		Metadata: map[string]string{
			entity.MetadataAccountState: account.State,
			entity.MetadataAccountType:  account.AccountType,
		},
	}, nil
}

// Provider implements port.BalanceFetcher.
func (f *TonFetcher) Provider() entity.ProviderKind {
	return entity.ProviderToncenter
}

var (
	_ port.BalanceFetcher     = (*TonFetcher)(nil)
	_ port.TonAccountProvider = (*TonFetcher)(nil)
)
