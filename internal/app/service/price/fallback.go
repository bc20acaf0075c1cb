package price

import (
	"context"

	"quantora_agent/internal/app/port"
)

// FallbackResolver asks each resolver in order and returns the first positive price.
type FallbackResolver struct {
	resolvers []port.PriceResolver
}

// NewFallbackResolver creates a FallbackResolver. Nil resolvers are ignored.
func NewFallbackResolver(resolvers ...port.PriceResolver) *FallbackResolver {
	rs := make([]port.PriceResolver, 0, len(resolvers))
	for _, r := range resolvers {
		if r != nil {
			rs = append(rs, r)
		}
	}
	return &FallbackResolver{resolvers: rs}
}

// PriceUSD implements port.PriceResolver.
func (f *FallbackResolver) PriceUSD(ctx context.Context, symbol string) (float64, bool) {
	for _, r := range f.resolvers {
		if p, ok := r.PriceUSD(ctx, symbol); ok && p > 0 {
			return p, true
		}
	}
	return 0, false
}

var _ port.PriceResolver = (*FallbackResolver)(nil)
