package port

import (
	"context"

	"quantora_agent/internal/domain/entity"
)

// BalanceFetcher retrieves the native balance of a wallet on one chain.
// Implementations are specific to a provider (Alchemy, Moralis, Toncenter).
type BalanceFetcher interface {
	// FetchNativeBalance returns the native balance of walletAddress on the given chain.
	FetchNativeBalance(ctx context.Context, walletAddress string, chain entity.ChainDescriptor) (*entity.NativeBalance, error)

	// Provider returns the kind of upstream this fetcher talks to.
	Provider() entity.ProviderKind
}

// BalanceFetcherProvider hands out fetchers for chains.
type BalanceFetcherProvider interface {
	GetFetcher(chain entity.ChainDescriptor) (BalanceFetcher, error)
}

// ChainRegistry defines the interface for providing chain descriptors.
type ChainRegistry interface {
	// GetAllChainDescriptors returns the chains tracked by the multi-chain portfolio endpoint.
	GetAllChainDescriptors() []entity.ChainDescriptor

	// GetChainDescriptorByID returns a chain by id or name.
	// Возвращает описание и true, если найдено, иначе false.
	GetChainDescriptorByID(idOrName string) (entity.ChainDescriptor, bool)

	// SelectChains resolves a list of ids. An empty list or "all" selects every tracked chain.
	SelectChains(ids []string) ([]entity.ChainDescriptor, error)
}

// TonAccountProvider returns TON account information.
type TonAccountProvider interface {
	GetAccount(ctx context.Context, address string) (*entity.TonAccount, error)
}

// TonHoldingsProvider lists jettons and NFTs of a TON wallet.
type TonHoldingsProvider interface {
	GetJettons(ctx context.Context, address string) ([]entity.JettonHolding, error)
	GetNFTs(ctx context.Context, address string) ([]entity.NFTItem, error)
}
