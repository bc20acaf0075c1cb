package entity

// PortfolioInsight holds the heuristic scores computed for a snapshot.
// Both scores are integers in [0, 10].
type PortfolioInsight struct {
	RiskScore            int     `json:"riskScore"`
	DiversificationScore int     `json:"diversificationScore"`
	MaxAllocation        float64 `json:"maxAllocation"`
	TopHolding           string  `json:"topHolding,omitempty"`
	HasStablecoin        bool    `json:"hasStablecoin"`
}

// InsightThresholds configures the heuristic scoring.
type InsightThresholds struct {
	MaterialValueUSD  float64 `yaml:"materialValueUsd"`
	SmallValueUSD     float64 `yaml:"smallValueUsd"`
	HighConcentration float64 `yaml:"highConcentration"`
	LowConcentration  float64 `yaml:"lowConcentration"`
}

// DefaultInsightThresholds returns the thresholds used when none are configured.
func DefaultInsightThresholds() InsightThresholds {
	return InsightThresholds{
		MaterialValueUSD:  100,
		SmallValueUSD:     10,
		HighConcentration: 0.9,
		LowConcentration:  0.6,
	}
}
