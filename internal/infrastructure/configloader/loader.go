package configloader

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ClusterConfig selects the token registry and network definition.
type ClusterConfig struct {
	Name       string `yaml:"name"`       // "mainnet-beta" or "devnet"
	TokensFile string `yaml:"tokensFile"` // optional extra tokens, relative to the home dir
}

// JupiterConfig holds Jupiter API specific configurations.
type JupiterConfig struct {
	QuoteURL             string `yaml:"quoteURL"`
	PriceURL             string `yaml:"priceURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	SlippageBps          int    `yaml:"slippageBps"`
}

// TokenPriceServiceConfig holds configuration for the TokenPriceService.
type TokenPriceServiceConfig struct {
	MaxTokensPerBatchRequest int `yaml:"maxTokensPerBatchRequest"`
	CacheTTLSeconds          int `yaml:"cacheTTLSeconds"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines int     `yaml:"max_concurrent_routines"`
	RPCCallTimeoutSeconds int     `yaml:"rpc_call_timeout_seconds"`
	RPCRequestsPerSecond  float64 `yaml:"rpc_requests_per_second"`
	RPCBurst              int     `yaml:"rpc_burst"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	TextFile string `yaml:"textFile"`
}

// Config is the top-level application settings structure.
type Config struct {
	Logging       LoggingConfig           `yaml:"logging"`
	Cluster       ClusterConfig           `yaml:"cluster"`
	Jupiter       JupiterConfig           `yaml:"jupiter"`
	TokenPriceSvc TokenPriceServiceConfig `yaml:"tokenPriceService"`
	Performance   PerformanceConfig       `yaml:"performance"`
	Metrics       MetricsConfig           `yaml:"metrics"`
}

const (
	DefaultQuoteURL = "https://quote-api.jup.ag/v6/quote"
	DefaultPriceURL = "https://api.jup.ag/price/v2"
)

// Default returns the settings used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML settings file from the given path and merges defaults for every
// missing field. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Cluster.Name == "" {
		c.Cluster.Name = "mainnet-beta"
	}
	if c.Cluster.TokensFile == "" {
		c.Cluster.TokensFile = "tokens.json"
	}

	if c.Jupiter.QuoteURL == "" {
		c.Jupiter.QuoteURL = DefaultQuoteURL
	}
	if c.Jupiter.PriceURL == "" {
		c.Jupiter.PriceURL = DefaultPriceURL
	}
	if c.Jupiter.RequestTimeoutMillis <= 0 {
		c.Jupiter.RequestTimeoutMillis = 10000
	}
	if c.Jupiter.SlippageBps <= 0 {
		c.Jupiter.SlippageBps = 50
	}

	if c.TokenPriceSvc.MaxTokensPerBatchRequest <= 0 {
		c.TokenPriceSvc.MaxTokensPerBatchRequest = 50
	}
	if c.TokenPriceSvc.CacheTTLSeconds <= 0 {
		c.TokenPriceSvc.CacheTTLSeconds = 60
	}

	if c.Performance.MaxConcurrentRoutines <= 0 {
		c.Performance.MaxConcurrentRoutines = 8
	}
	if c.Performance.RPCCallTimeoutSeconds <= 0 {
		c.Performance.RPCCallTimeoutSeconds = 30
	}
	if c.Performance.RPCRequestsPerSecond <= 0 {
		c.Performance.RPCRequestsPerSecond = 10
	}
	if c.Performance.RPCBurst <= 0 {
		c.Performance.RPCBurst = 5
	}
}

// Validate rejects settings that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Jupiter.SlippageBps > 10000 {
		return fmt.Errorf("jupiter.slippageBps must be at most 10000, got %d", c.Jupiter.SlippageBps)
	}
	return nil
}

// RPCTimeout returns the per-call RPC timeout.
func (c *Config) RPCTimeout() time.Duration {
	return time.Duration(c.Performance.RPCCallTimeoutSeconds) * time.Second
}

// HTTPTimeout returns the price/quote request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.Jupiter.RequestTimeoutMillis) * time.Millisecond
}

// PriceCacheTTL returns how long a fetched price stays valid.
func (c *Config) PriceCacheTTL() time.Duration {
	return time.Duration(c.TokenPriceSvc.CacheTTLSeconds) * time.Second
}
