package entity

// ProviderKind identifies which upstream API serves native balances for a chain.
type ProviderKind string

const (
	// ProviderAlchemy serves EVM balances over JSON-RPC.
	ProviderAlchemy ProviderKind = "alchemy"
	// ProviderMoralis serves EVM balances through the Moralis index REST API.
	ProviderMoralis ProviderKind = "moralis"
	// ProviderToncenter serves TON account information.
	ProviderToncenter ProviderKind = "toncenter"
)

// ChainDescriptor holds the static description of a supported chain.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type ChainDescriptor struct {
	ID           string       `json:"id" yaml:"id"`     // Идентификатор сети у провайдера (например, "eth", "0x89")
	Name         string       `json:"name" yaml:"name"` // Отображаемое имя ("Ethereum", "Polygon")
	Symbol       string       `json:"symbol" yaml:"symbol"`
	ProviderKind ProviderKind `json:"providerKind" yaml:"providerKind"`
	Decimals     int32        `json:"decimals" yaml:"decimals"` // Количество десятичных знаков для нативного токена
	CoinGeckoID  string       `json:"coinGeckoId,omitempty" yaml:"coinGeckoId,omitempty"`
}
