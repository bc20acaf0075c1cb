package networkdefinition

import (
	"fmt"
	"strings"

	"quantora_agent/internal/app/port"
	"quantora_agent/internal/domain/entity"
)

// AllChainsSelector selects every chain tracked by the portfolio endpoint.
const AllChainsSelector = "all"

// ChainRegistry provides chain descriptors.
type ChainRegistry struct {
	logger        port.Logger
	allChains     []entity.ChainDescriptor
	trackedChains []entity.ChainDescriptor
}

// Predefined chain descriptors
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.ChainDescriptor{
		ID:           "eth",
		Name:         "Ethereum",
		Symbol:       "ETH",
		ProviderKind: entity.ProviderAlchemy,
		Decimals:     18,
		CoinGeckoID:  "ethereum",
	}
	Polygon = entity.ChainDescriptor{
		ID:           "0x89",
		Name:         "Polygon",
		Symbol:       "MATIC",
		ProviderKind: entity.ProviderMoralis,
		Decimals:     18,
		CoinGeckoID:  "matic-network",
	}
	BSC = entity.ChainDescriptor{
		ID:           "0x38",
		Name:         "BSC",
		Symbol:       "BNB",
		ProviderKind: entity.ProviderMoralis,
		Decimals:     18,
		CoinGeckoID:  "binancecoin",
	}
	TON = entity.ChainDescriptor{
		ID:           "ton",
		Name:         "TON",
		Symbol:       "TON",
		ProviderKind: entity.ProviderToncenter,
		Decimals:     9,
		CoinGeckoID:  "the-open-network",
	}
)

// allKnownChains keeps the built-in order.
var allKnownChains = []entity.ChainDescriptor{Ethereum, Polygon, BSC, TON} //nolint:gochecknoglobals

// DefaultTrackedChainIDs are the chains aggregated by the portfolio endpoint when none are configured.
var DefaultTrackedChainIDs = []string{Ethereum.ID, Polygon.ID, BSC.ID} //nolint:gochecknoglobals

// NewChainRegistry creates a registry tracking trackedIDs (DefaultTrackedChainIDs when empty).
// Unknown ids are skipped with a warning.
func NewChainRegistry(log port.Logger, trackedIDs []string) *ChainRegistry {
	r := &ChainRegistry{
		logger:        log,
		allChains:     allKnownChains,
		trackedChains: make([]entity.ChainDescriptor, 0, len(allKnownChains)),
	}

	if len(trackedIDs) == 0 {
		trackedIDs = DefaultTrackedChainIDs
	}

	seen := make(map[string]struct{}, len(trackedIDs))
	for _, id := range trackedIDs {
		chain, ok := r.lookup(id)
		if !ok {
			r.logger.Warn(fmt.Sprintf("Chain '%s' is configured as tracked but has no built-in descriptor. Skipping.", id))
			continue
		}
		if _, dup := seen[chain.ID]; dup {
			continue
		}
		seen[chain.ID] = struct{}{}
		r.trackedChains = append(r.trackedChains, chain)
	}

	if len(r.trackedChains) == 0 {
		r.logger.Warn("No tracked chains configured. The portfolio endpoint will return empty snapshots.")
	} else {
		r.logger.Info(fmt.Sprintf("ChainRegistry initialized. Tracked chains: %d", len(r.trackedChains)))
		for _, c := range r.trackedChains {
			r.logger.Debug(fmt.Sprintf("  - Tracked chain: %s (ID: %s, provider: %s)", c.Name, c.ID, c.ProviderKind))
		}
	}

	return r
}

// GetAllChainDescriptors returns the list of tracked chain descriptors.
func (r *ChainRegistry) GetAllChainDescriptors() []entity.ChainDescriptor {
	if r == nil {
		return []entity.ChainDescriptor{}
	}
	chainsCopy := make([]entity.ChainDescriptor, len(r.trackedChains))
	copy(chainsCopy, r.trackedChains)
	return chainsCopy
}

// GetChainDescriptorByID returns any built-in chain by id or name, case-insensitively.
func (r *ChainRegistry) GetChainDescriptorByID(idOrName string) (entity.ChainDescriptor, bool) {
	if r == nil {
		return entity.ChainDescriptor{}, false
	}
	return r.lookup(idOrName)
}

// SelectChains resolves the requested ids, keeping their order and dropping duplicates.
func (r *ChainRegistry) SelectChains(ids []string) ([]entity.ChainDescriptor, error) {
	requested := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			requested = append(requested, id)
		}
	}

	if len(requested) == 0 || (len(requested) == 1 && strings.EqualFold(requested[0], AllChainsSelector)) {
		return r.GetAllChainDescriptors(), nil
	}

	selected := make([]entity.ChainDescriptor, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, id := range requested {
		chain, ok := r.GetChainDescriptorByID(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", entity.ErrUnknownChain, id)
		}
		if _, dup := seen[chain.ID]; dup {
			continue
		}
		seen[chain.ID] = struct{}{}
		selected = append(selected, chain)
	}
	return selected, nil
}

func (r *ChainRegistry) lookup(idOrName string) (entity.ChainDescriptor, bool) {
	key := strings.TrimSpace(idOrName)
	for _, c := range r.allChains {
		if strings.EqualFold(c.ID, key) || strings.EqualFold(c.Name, key) {
			return c, true
		}
	}
	return entity.ChainDescriptor{}, false
}

var _ port.ChainRegistry = (*ChainRegistry)(nil)
