package definition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solagent/internal/domain/entity"
	"solagent/internal/pkg/logger"
)

func TestNetworkDefinitionProvider(t *testing.T) {
	p := NewNetworkDefinitionProvider(logger.Nop())

	def, err := p.GetNetworkDefinitionByName("Mainnet")
	require.NoError(t, err)
	assert.Equal(t, "mainnet-beta", def.Identifier)
	assert.Equal(t, uint8(9), def.Decimals)

	_, err = p.GetNetworkDefinitionByName("testnet-x")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	all := p.GetAllNetworkDefinitions()
	require.Len(t, all, 2)
	assert.Equal(t, "devnet", all[0].Identifier)
}

func TestExplorerTxURL(t *testing.T) {
	assert.Equal(t, "https://explorer.solana.com/tx/abc", ExplorerTxURL(MainnetBeta, "abc"))
	assert.Equal(t, "https://explorer.solana.com/tx/abc?cluster=devnet", ExplorerTxURL(Devnet, "abc"))
}
