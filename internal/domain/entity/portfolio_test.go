package entity

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func asset(symbol string, value float64) AssetBalance {
	return AssetBalance{Symbol: symbol, ValueUSD: decimal.NewFromFloat(value)}
}

func TestNewPortfolioSnapshot_SortsAndTotals(t *testing.T) {
	s := NewPortfolioSnapshot("0xabc", []AssetBalance{
		asset("MATIC", 0.85), asset("ETH", 2600), asset("BNB", 320),
	})

	assert.Equal(t, "2920.85", s.TotalValueUSD.StringFixed(2))
	assert.Equal(t, []string{"ETH", "BNB", "MATIC"}, []string{s.Assets[0].Symbol, s.Assets[1].Symbol, s.Assets[2].Symbol})
}

func TestNewPortfolioSnapshot_StableOnTies(t *testing.T) {
	s := NewPortfolioSnapshot("0xabc", []AssetBalance{asset("ETH", 0), asset("MATIC", 0), asset("BNB", 0)})
	assert.Equal(t, "ETH", s.Assets[0].Symbol)
	assert.Equal(t, "MATIC", s.Assets[1].Symbol)
	assert.Equal(t, "BNB", s.Assets[2].Symbol)
	assert.True(t, s.TotalValueUSD.IsZero())
}

func TestNewPortfolioSnapshot_Empty(t *testing.T) {
	s := NewPortfolioSnapshot("0xabc", nil)
	assert.Empty(t, s.Assets)
	assert.True(t, s.TotalValueUSD.IsZero())

	share, top := s.MaxAllocation()
	assert.Zero(t, share)
	assert.Empty(t, top)
}

func TestMaxAllocation(t *testing.T) {
	s := NewPortfolioSnapshot("0xabc", []AssetBalance{asset("TON", 75), asset("USDT", 25)})
	share, top := s.MaxAllocation()
	assert.InDelta(t, 0.75, share, 1e-9)
	assert.Equal(t, "TON", top)
}

func TestNewAssetBalance(t *testing.T) {
	nb := &NativeBalance{
		Chain:   ChainDescriptor{ID: "eth", Name: "Ethereum", Symbol: "ETH"},
		Balance: decimal.RequireFromString("1000"),
	}
	a := NewAssetBalance(nb, 2600)
	assert.Equal(t, "2600000.00", a.ValueUSD.StringFixed(2))
	assert.Equal(t, "Ethereum", a.Chain)

	zero := NewAssetBalance(nb, 0)
	assert.True(t, zero.ValueUSD.IsZero())
}

func TestNewPortfolioSnapshot_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("total equals sum and assets are sorted descending", prop.ForAll(
		func(values []float64) bool {
			assets := make([]AssetBalance, len(values))
			expected := decimal.Zero
			for i, v := range values {
				assets[i] = asset("X", v)
				expected = expected.Add(assets[i].ValueUSD)
			}

			s := NewPortfolioSnapshot("0xabc", assets)
			if !s.TotalValueUSD.Equal(expected) || len(s.Assets) != len(values) {
				return false
			}
			for i := 1; i < len(s.Assets); i++ {
				if s.Assets[i-1].ValueUSD.LessThan(s.Assets[i].ValueUSD) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(0, 1e9)),
	))

	properties.TestingRun(t)
}
