package definition

import (
	"fmt"
	"sort"
	"strings"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
)

// NetworkDefinitionProvider serves the known Solana cluster definitions.
type NetworkDefinitionProvider struct {
	logger  port.Logger
	allDefs map[string]entity.NetworkDefinition
}

var (
	MainnetBeta = entity.NetworkDefinition{
		Name:             "Solana Mainnet Beta",
		Identifier:       "mainnet-beta",
		NativeSymbol:     "SOL",
		Decimals:         9,
		PrimaryRPCURL:    "https://api.mainnet-beta.solana.com",
		BlockExplorerURL: "https://explorer.solana.com",
	}
	Devnet = entity.NetworkDefinition{
		Name:             "Solana Devnet",
		Identifier:       "devnet",
		NativeSymbol:     "SOL",
		Decimals:         9,
		PrimaryRPCURL:    "https://api.devnet.solana.com",
		BlockExplorerURL: "https://explorer.solana.com/?cluster=devnet",
	}
)

// allKnownDefinitions is a helper to quickly access all hardcoded definitions.
var allKnownDefinitions = map[string]entity.NetworkDefinition{
	MainnetBeta.Identifier: MainnetBeta,
	Devnet.Identifier:      Devnet,
}

// NewNetworkDefinitionProvider creates a new NetworkDefinitionProvider.
func NewNetworkDefinitionProvider(log port.Logger) *NetworkDefinitionProvider {
	return &NetworkDefinitionProvider{
		logger:  log,
		allDefs: allKnownDefinitions,
	}
}

// GetAllNetworkDefinitions returns every known cluster ordered by identifier.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	defs := make([]entity.NetworkDefinition, 0, len(p.allDefs))
	for _, d := range p.allDefs {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Identifier < defs[j].Identifier })
	return defs
}

// GetNetworkDefinitionByName returns a cluster by identifier. "mainnet" is accepted
// as an alias of "mainnet-beta".
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, error) {
	id := strings.ToLower(strings.TrimSpace(identifier))
	if id == "mainnet" {
		id = MainnetBeta.Identifier
	}
	def, ok := p.allDefs[id]
	if !ok {
		p.logger.Warn("Unknown cluster requested", "cluster", identifier)
		return entity.NetworkDefinition{}, fmt.Errorf("%w: unknown cluster %q", entity.ErrInvalidInput, identifier)
	}
	return def, nil
}

// ExplorerTxURL links a transaction signature on the cluster's block explorer.
func ExplorerTxURL(def entity.NetworkDefinition, signature string) string {
	base, query, _ := strings.Cut(def.BlockExplorerURL, "?")
	u := base + "/tx/" + signature
	if query != "" {
		u += "?" + query
	}
	return u
}
