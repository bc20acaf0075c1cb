package port

import "context"

// PriceResolver определяет интерфейс для получения цены актива в USD.
type PriceResolver interface {
	// PriceUSD returns the USD price of the asset with the given symbol and whether it was found.
	PriceUSD(ctx context.Context, symbol string) (float64, bool)
}
