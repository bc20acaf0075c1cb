package entity

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AssetBalance is a priced balance of a single asset inside a snapshot.
type AssetBalance struct {
	ChainID       string          `json:"chainId"`
	Chain         string          `json:"chain"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name,omitempty"`
	NativeBalance decimal.Decimal `json:"nativeBalance"`
	PriceUSD      decimal.Decimal `json:"priceUsd"`
	ValueUSD      decimal.Decimal `json:"valueUsd"`
}

// NewAssetBalance prices a native balance. A zero price yields a zero value.
func NewAssetBalance(nb *NativeBalance, priceUSD float64) AssetBalance {
	price := decimal.NewFromFloat(priceUSD)
	return AssetBalance{
		ChainID:       nb.Chain.ID,
		Chain:         nb.Chain.Name,
		Symbol:        nb.Chain.Symbol,
		Name:          nb.Chain.Name,
		NativeBalance: nb.Balance,
		PriceUSD:      price,
		ValueUSD:      nb.Balance.Mul(price),
	}
}

// PortfolioSnapshot is the result of one aggregation. Assets are ordered by ValueUSD, descending,
// and TotalValueUSD is always their exact sum.
type PortfolioSnapshot struct {
	WalletAddress string          `json:"walletAddress"`
	TotalValueUSD decimal.Decimal `json:"totalValueUsd"`
	Assets        []AssetBalance  `json:"assets"`
}

// NewPortfolioSnapshot totals and orders the given assets.
func NewPortfolioSnapshot(walletAddress string, assets []AssetBalance) *PortfolioSnapshot {
	ordered := make([]AssetBalance, len(assets))
	copy(ordered, assets)

	total := decimal.Zero
	for _, a := range ordered {
		total = total.Add(a.ValueUSD)
	}

	// Стабильная сортировка: при равной стоимости сохраняется порядок сетей
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ValueUSD.GreaterThan(ordered[j].ValueUSD)
	})

	return &PortfolioSnapshot{
		WalletAddress: walletAddress,
		TotalValueUSD: total,
		Assets:        ordered,
	}
}

// MaxAllocation returns the share of the total held by the largest asset and that asset's symbol.
func (p *PortfolioSnapshot) MaxAllocation() (float64, string) {
	if p == nil || len(p.Assets) == 0 || !p.TotalValueUSD.IsPositive() {
		return 0, ""
	}
	top := p.Assets[0]
	for _, a := range p.Assets[1:] {
		if a.ValueUSD.GreaterThan(top.ValueUSD) {
			top = a
		}
	}
	return top.ValueUSD.Div(p.TotalValueUSD).InexactFloat64(), top.Symbol
}
