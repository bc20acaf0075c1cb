package client

import (
	"context"
	"strings"

	"quantora_agent/internal/app/port"
	"quantora_agent/internal/domain/entity"
	"quantora_agent/internal/infrastructure/httpclient"
	"quantora_agent/internal/pkg/utils"

	"github.com/shopspring/decimal"
)

// TonHoldingsFetcher lists jettons and NFTs through TonAPI.
type TonHoldingsFetcher struct {
	client   httpclient.TonAPIClient
	nftLimit int
	logger   port.Logger
}

// NewTonHoldingsFetcher creates a new TonHoldingsFetcher.
func NewTonHoldingsFetcher(client httpclient.TonAPIClient, nftLimit int, logger port.Logger) *TonHoldingsFetcher {
	return &TonHoldingsFetcher{client: client, nftLimit: nftLimit, logger: logger}
}

// GetJettons implements port.TonHoldingsProvider. Zero and unparsable balances are skipped.
func (f *TonHoldingsFetcher) GetJettons(ctx context.Context, address string) ([]entity.JettonHolding, error) {
	resp, err := f.client.GetJettons(ctx, address)
	if err != nil {
		return nil, err
	}

	holdings := make([]entity.JettonHolding, 0, len(resp.Balances))
	for _, b := range resp.Balances {
		amount, err := utils.ParseBaseUnits(b.Balance)
		if err != nil {
			f.logger.Warn("Skipping jetton with unparsable balance", "address", address, "jetton", b.Jetton.Address, "error", err)
			continue
		}
		if amount.Sign() == 0 {
			continue
		}

		balance := utils.ToDecimal(amount, b.Jetton.Decimals)
		price := decimal.Zero
		if b.Price != nil {
			if usd, ok := lookupUSD(b.Price.Prices); ok {
				price = decimal.NewFromFloat(usd)
			}
		}

		holdings = append(holdings, entity.JettonHolding{
			Address:  b.Jetton.Address,
			Name:     b.Jetton.Name,
			Symbol:   b.Jetton.Symbol,
			Decimals: b.Jetton.Decimals,
			Image:    b.Jetton.Image,
			Balance:  balance,
			PriceUSD: price,
			ValueUSD: balance.Mul(price),
		})
	}
	return holdings, nil
}

// GetNFTs implements port.TonHoldingsProvider.
func (f *TonHoldingsFetcher) GetNFTs(ctx context.Context, address string) ([]entity.NFTItem, error) {
	resp, err := f.client.GetNFTs(ctx, address, f.nftLimit)
	if err != nil {
		return nil, err
	}

	items := make([]entity.NFTItem, 0, len(resp.NFTItems))
	for _, n := range resp.NFTItems {
		item := entity.NFTItem{
			Address: n.Address,
			Index:   n.Index,
			Name:    metadataString(n.Metadata, "name"),
			Image:   metadataString(n.Metadata, "image"),
		}
		if item.Image == "" && len(n.Previews) > 0 {
			item.Image = n.Previews[len(n.Previews)-1].URL
		}
		if n.Collection != nil {
			item.CollectionName = n.Collection.Name
		}
		items = append(items, item)
	}
	return items, nil
}

func lookupUSD(prices map[string]float64) (float64, bool) {
	for k, v := range prices {
		if strings.EqualFold(k, "usd") {
			return v, true
		}
	}
	return 0, false
}

func metadataString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

var _ port.TonHoldingsProvider = (*TonHoldingsFetcher)(nil)
