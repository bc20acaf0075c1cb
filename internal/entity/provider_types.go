package entity

import (
	"bytes"
	"strconv"
)

// FlexibleString decodes a JSON string or number into its textual form.
// Toncenter returns balances as strings, some mirrors return them as numbers.
type FlexibleString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*f = FlexibleString(s)
		return nil
	}
	*f = FlexibleString(data)
	return nil
}

// MoralisBalanceResponse is the body of GET /api/v2/{address}/balance.
type MoralisBalanceResponse struct {
	Balance string `json:"balance"` // wei, десятичная строка
}

// ToncenterAddressInfoResponse is the body of GET /api/v2/getAddressInformation.
type ToncenterAddressInfoResponse struct {
	OK     bool                  `json:"ok"`
	Error  string                `json:"error,omitempty"`
	Code   int                   `json:"code,omitempty"`
	Result *ToncenterAddressInfo `json:"result"`
}

// ToncenterAddressInfo contains the account fields used by the service.
type ToncenterAddressInfo struct {
	Balance     FlexibleString `json:"balance"` // nanoton
	State       string         `json:"state"`
	AccountType string         `json:"account_type,omitempty"`
}

// TonAPIJettonsResponse is the body of GET /v2/accounts/{address}/jettons.
type TonAPIJettonsResponse struct {
	Balances []TonAPIJettonBalance `json:"balances"`
}

// TonAPIJettonBalance is one jetton wallet of an account.
type TonAPIJettonBalance struct {
	Balance string              `json:"balance"`
	Price   *TonAPITokenRates   `json:"price,omitempty"`
	Jetton  TonAPIJettonPreview `json:"jetton"`
}

// TonAPITokenRates holds the fiat prices of a jetton.
type TonAPITokenRates struct {
	Prices map[string]float64 `json:"prices"`
}

// TonAPIJettonPreview describes the jetton master.
type TonAPIJettonPreview struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int32  `json:"decimals"`
	Image    string `json:"image"`
}

// TonAPINFTsResponse is the body of GET /v2/accounts/{address}/nfts.
type TonAPINFTsResponse struct {
	NFTItems []TonAPINFTItem `json:"nft_items"`
}

// TonAPINFTItem is one NFT owned by an account.
type TonAPINFTItem struct {
	Address    string            `json:"address"`
	Index      int64             `json:"index"`
	Collection *TonAPICollection `json:"collection,omitempty"`
	Metadata   map[string]any    `json:"metadata"`
	Previews   []TonAPIPreview   `json:"previews,omitempty"`
}

// TonAPICollection is the collection an NFT belongs to.
type TonAPICollection struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// TonAPIPreview is a rendered image of an NFT.
type TonAPIPreview struct {
	Resolution string `json:"resolution"`
	URL        string `json:"url"`
}

// CoinGeckoSimplePriceResponse is the body of GET /api/v3/simple/price, id -> currency -> price.
type CoinGeckoSimplePriceResponse map[string]map[string]float64
