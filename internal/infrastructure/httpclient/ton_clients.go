package httpclient

import (
	"context"

	"quantora_agent/internal/entity"
)

// ToncenterClient defines the interface for interacting with the Toncenter HTTP API.
type ToncenterClient interface {
	// GetAddressInformation returns the account information. An explicit rejection of the
	// address by Toncenter is reported as entity.ErrUpstreamRejectedAddress.
	GetAddressInformation(ctx context.Context, address string) (*entity.ToncenterAddressInfo, error)
}

// TonAPIClient defines the interface for interacting with TonAPI account endpoints.
type TonAPIClient interface {
	GetJettons(ctx context.Context, address string) (*entity.TonAPIJettonsResponse, error)
	GetNFTs(ctx context.Context, address string, limit int) (*entity.TonAPINFTsResponse, error)
}
