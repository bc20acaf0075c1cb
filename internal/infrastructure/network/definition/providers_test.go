package networkdefinition

import (
	"testing"

	"quantora_agent/internal/domain/entity"
	"quantora_agent/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainIDs(chains []entity.ChainDescriptor) []string {
	ids := make([]string, 0, len(chains))
	for _, c := range chains {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestNewChainRegistry_DefaultTracked(t *testing.T) {
	r := NewChainRegistry(logger.NewSlogAdapter(), nil)
	assert.Equal(t, []string{"eth", "0x89", "0x38"}, chainIDs(r.GetAllChainDescriptors()))
}

func TestNewChainRegistry_SkipsUnknownAndDuplicates(t *testing.T) {
	r := NewChainRegistry(logger.NewSlogAdapter(), []string{"0x38", "solana", "BSC", "eth"})
	assert.Equal(t, []string{"0x38", "eth"}, chainIDs(r.GetAllChainDescriptors()))
}

func TestGetChainDescriptorByID(t *testing.T) {
	r := NewChainRegistry(logger.NewSlogAdapter(), nil)

	c, ok := r.GetChainDescriptorByID("ETH")
	require.True(t, ok)
	assert.Equal(t, "Ethereum", c.Name)

	c, ok = r.GetChainDescriptorByID("polygon")
	require.True(t, ok)
	assert.Equal(t, "0x89", c.ID)

	c, ok = r.GetChainDescriptorByID("ton")
	require.True(t, ok)
	assert.Equal(t, int32(9), c.Decimals)

	_, ok = r.GetChainDescriptorByID("solana")
	assert.False(t, ok)
}

func TestSelectChains(t *testing.T) {
	r := NewChainRegistry(logger.NewSlogAdapter(), nil)

	all, err := r.SelectChains(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	all, err = r.SelectChains([]string{"all"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := r.SelectChains([]string{" 0x38", "eth", "bsc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"0x38", "eth"}, chainIDs(some))

	_, err = r.SelectChains([]string{"eth", "dogecoin"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrUnknownChain)
	assert.Contains(t, err.Error(), "dogecoin")
}

func TestGetAllChainDescriptors_ReturnsCopy(t *testing.T) {
	r := NewChainRegistry(logger.NewSlogAdapter(), nil)
	chains := r.GetAllChainDescriptors()
	chains[0].Name = "mutated"
	assert.Equal(t, "Ethereum", r.GetAllChainDescriptors()[0].Name)
}
