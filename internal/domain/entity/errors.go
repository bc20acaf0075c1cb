package entity

import "errors"

var (
	// ErrWalletRequired is returned when the wallet address of an aggregation is empty.
	ErrWalletRequired = errors.New("wallet required")
	// ErrAddressRequired is returned when a TON holdings request has no address.
	ErrAddressRequired = errors.New("missing wallet address")
	// ErrUnknownChain is returned when a requested chain is not in the registry.
	ErrUnknownChain = errors.New("unknown chain")
	// ErrUpstreamRejectedAddress is returned when a provider explicitly rejects the address.
	ErrUpstreamRejectedAddress = errors.New("upstream rejected address")
	// ErrAggregationFailed wraps unexpected failures outside per-chain fetch isolation.
	ErrAggregationFailed = errors.New("aggregation failed")
)
