package service

import (
	"context"

	"quantora_agent/internal/app/port"
)

type priceResult struct {
	price float64
	ok    bool
}

// lookupPrice resolves symbol but never waits past ctx. A resolver that ignores ctx is left
// to finish in the background and the asset is valued at zero.
func lookupPrice(ctx context.Context, pr port.PriceResolver, symbol string) (float64, bool) {
	done := make(chan priceResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- priceResult{}
			}
		}()
		p, ok := pr.PriceUSD(ctx, symbol)
		done <- priceResult{price: p, ok: ok}
	}()

	select {
	case r := <-done:
		return r.price, r.ok
	case <-ctx.Done():
		// результат мог прийти одновременно с дедлайном
		select {
		case r := <-done:
			return r.price, r.ok
		default:
			return 0, false
		}
	}
}
