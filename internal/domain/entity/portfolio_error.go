package entity

// PortfolioError represents an error that occurred while fetching one chain of a portfolio.
// Such errors never fail the aggregation; the chain is left out of the snapshot.
type PortfolioError struct {
	WalletAddress string `json:"walletAddress"`
	ChainID       string `json:"chainId"`
	ChainName     string `json:"chainName"`
	Provider      string `json:"provider"`
	Message       string `json:"message"`
}
