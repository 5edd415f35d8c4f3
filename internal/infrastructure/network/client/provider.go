package client

import (
	"fmt"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
	"solagent/internal/pkg/metrics"
)

// solanaClientProvider implements port.SolanaClientProvider.
type solanaClientProvider struct {
	clients map[entity.ClientConfig]*SolanaClient
	mu      sync.Mutex
	opts    Options
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewSolanaClientProvider creates a provider that builds clients on first use and
// caches them per configuration.
func NewSolanaClientProvider(opts Options, logger *zap.Logger, m *metrics.Metrics) port.SolanaClientProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &solanaClientProvider{
		clients: make(map[entity.ClientConfig]*SolanaClient),
		opts:    opts,
		logger:  logger,
		metrics: m,
	}
}

// GetClient returns the cached client for cfg, creating it if needed.
func (p *solanaClientProvider) GetClient(cfg entity.ClientConfig) (port.SolanaClient, error) {
	cfg = cfg.WithDefaults()
	u, err := url.Parse(cfg.RPC)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: RPC endpoint %q is not an http(s) URL", entity.ErrInvalidInput, cfg.RPC)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.clients[cfg]; ok {
		return c, nil
	}
	p.logger.Debug("Creating new Solana client", zap.String("rpc", cfg.RPC), zap.String("commitment", cfg.Commitment))
	c := NewSolanaClient(cfg, p.opts, p.logger, p.metrics)
	p.clients[cfg] = c
	return c, nil
}
