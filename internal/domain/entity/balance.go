package entity

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Metadata keys exposed by the TON balance fetcher.
const (
	MetadataAccountState = "accountState"
	MetadataAccountType  = "accountType"
)

// NativeBalance represents the amount of a chain's base currency held by a wallet.
type NativeBalance struct {
	WalletAddress string            `json:"-"`
	Chain         ChainDescriptor   `json:"chain"`
	Amount        *big.Int          `json:"-"` // в минимальных единицах (wei, nanoton)
	Balance       decimal.Decimal   `json:"balance"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}
