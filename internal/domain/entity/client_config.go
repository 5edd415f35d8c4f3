package entity

const (
	DefaultRPCURL     = "https://api.mainnet-beta.solana.com"
	DefaultCommitment = "confirmed"
)

// ClientConfig holds the RPC endpoint and read commitment level.
type ClientConfig struct {
	RPC        string `json:"rpc"`
	Commitment string `json:"commitment"`
}

// DefaultClientConfig returns the mainnet-beta configuration.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{RPC: DefaultRPCURL, Commitment: DefaultCommitment}
}

// ClientConfigFor returns the configuration used on a cluster whose primary endpoint is
// rpcURL when nothing is persisted.
func ClientConfigFor(rpcURL string) ClientConfig {
	return ClientConfig{RPC: rpcURL}.WithDefaults()
}

// WithDefaults fills every empty field from DefaultClientConfig.
func (c ClientConfig) WithDefaults() ClientConfig {
	return c.WithDefaultsFrom(DefaultClientConfig())
}

// WithDefaultsFrom fills every empty field from d.
func (c ClientConfig) WithDefaultsFrom(d ClientConfig) ClientConfig {
	if c.RPC == "" {
		c.RPC = d.RPC
	}
	if c.Commitment == "" {
		c.Commitment = d.Commitment
	}
	return c
}
