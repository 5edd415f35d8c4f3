package entity

// NetworkDefinition holds the configuration for a Solana cluster.
type NetworkDefinition struct {
	Name             string `json:"name" yaml:"name"`
	Identifier       string `json:"identifier" yaml:"identifier"` // "mainnet-beta", "devnet"
	NativeSymbol     string `json:"nativeSymbol" yaml:"nativeSymbol"`
	Decimals         uint8  `json:"decimals" yaml:"decimals"`
	PrimaryRPCURL    string `json:"primaryRpcUrl" yaml:"primaryRpcUrl"`
	BlockExplorerURL string `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}
