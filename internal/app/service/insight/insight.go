// Package insight computes heuristic risk and diversification scores for a portfolio.
// The scores describe the shape of a portfolio only and predict nothing about returns.
package insight

import (
	"strings"

	"quantora_agent/internal/domain/entity"
)

const (
	minScore  = 0
	maxScore  = 10
	baseScore = 5
)

// stablecoinMarkers match USDT, USDC, USD₮, jUSDT, DAI and similar tickers.
var stablecoinMarkers = []string{"USD", "DAI"} //nolint:gochecknoglobals

// IsStablecoinLike reports whether a symbol or name looks like a USD stablecoin.
func IsStablecoinLike(symbol, name string) bool {
	s := strings.ToUpper(symbol)
	n := strings.ToUpper(name)
	for _, m := range stablecoinMarkers {
		if strings.Contains(s, m) || strings.Contains(n, m) {
			return true
		}
	}
	return false
}

// Score computes the insight for a snapshot. tokenHoldings are the non-native fungible tokens.
func Score(
	snapshot *entity.PortfolioSnapshot,
	tokenHoldings []entity.JettonHolding,
	nftCount int,
	th entity.InsightThresholds,
) entity.PortfolioInsight {
	if snapshot == nil {
		snapshot = entity.NewPortfolioSnapshot("", nil)
	}

	concentration, top := snapshot.MaxAllocation()
	total := snapshot.TotalValueUSD.InexactFloat64()
	hasStable := hasStablecoin(snapshot, tokenHoldings)

	risk := baseScore
	if concentration > th.HighConcentration {
		risk += 3
	}
	if len(snapshot.Assets) == 1 {
		risk += 2
	}
	if !hasStable && total > th.MaterialValueUSD {
		risk++
	}
	if total < th.SmallValueUSD {
		risk += 2
	}
	if len(tokenHoldings) == 0 {
		risk++
	}

	div := baseScore
	switch n := len(tokenHoldings); {
	case n >= 5:
		div += 3
	case n >= 3:
		div += 2
	case n >= 1:
		div++
	}
	if hasStable {
		div++
	}
	if concentration < th.LowConcentration {
		div++
	}
	if nftCount > 0 {
		div++
	}

	return entity.PortfolioInsight{
		RiskScore:            clamp(risk),
		DiversificationScore: clamp(div),
		MaxAllocation:        concentration,
		TopHolding:           top,
		HasStablecoin:        hasStable,
	}
}

func hasStablecoin(snapshot *entity.PortfolioSnapshot, tokenHoldings []entity.JettonHolding) bool {
	for _, a := range snapshot.Assets {
		if IsStablecoinLike(a.Symbol, a.Name) {
			return true
		}
	}
	for _, h := range tokenHoldings {
		if IsStablecoinLike(h.Symbol, h.Name) {
			return true
		}
	}
	return false
}

func clamp(v int) int {
	if v < minScore {
		return minScore
	}
	if v > maxScore {
		return maxScore
	}
	return v
}
