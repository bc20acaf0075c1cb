package entity

import "github.com/shopspring/decimal"

// TonAccount describes the TON wallet as reported by the account information endpoint.
type TonAccount struct {
	Address     string          `json:"address"`
	Nanotons    string          `json:"-"`
	Balance     decimal.Decimal `json:"tonBalance"`
	State       string          `json:"accountState"`
	AccountType string          `json:"accountType"`
}

// JettonHolding is a fungible token held by a TON wallet.
type JettonHolding struct {
	Address  string          `json:"address"`
	Name     string          `json:"name"`
	Symbol   string          `json:"symbol"`
	Decimals int32           `json:"decimals"`
	Image    string          `json:"image,omitempty"`
	Balance  decimal.Decimal `json:"balance"`
	PriceUSD decimal.Decimal `json:"priceUsd"`
	ValueUSD decimal.Decimal `json:"valueUsd"`
}

// NFTItem is a non-fungible item held by a TON wallet.
type NFTItem struct {
	Address        string `json:"address"`
	Index          int64  `json:"index"`
	Name           string `json:"name,omitempty"`
	Image          string `json:"image,omitempty"`
	CollectionName string `json:"collectionName,omitempty"`
}

// TonAssetsReport aggregates everything known about a TON wallet.
type TonAssetsReport struct {
	Address   string             `json:"address"`
	Account   TonAccount         `json:"account"`
	TonPrice  decimal.Decimal    `json:"tonPrice"`
	Jettons   []JettonHolding    `json:"jettons"`
	NFTs      []NFTItem          `json:"nfts"`
	Portfolio *PortfolioSnapshot `json:"portfolio"`
	Insight   PortfolioInsight   `json:"insight"`
}
