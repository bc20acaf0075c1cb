package entity

import "math/big"

// BalanceRequestItem represents a single eth_getBalance item in a JSON-RPC batch.
type BalanceRequestItem struct {
	ID            string
	WalletAddress string
	BlockTag      string // "latest" если пусто
}

// BalanceResultItem represents the result of a single balance request from a batch.
type BalanceResultItem struct {
	RequestID     string
	WalletAddress string
	ChainID       string
	Balance       *big.Int
	Error         error
}
