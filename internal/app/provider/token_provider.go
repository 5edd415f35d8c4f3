package provider

import (
	"fmt"
	"sync"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
	"solagent/internal/infrastructure/registry"
	"solagent/internal/infrastructure/tokenloader"
)

// TokenRegistryProvider builds the token registry for one cluster from the built-in list
// plus the optional user token file, once.
type TokenRegistryProvider struct {
	cluster   string
	tokenFile string
	logger    port.Logger

	once     sync.Once
	registry *entity.TokenRegistry
	err      error
}

// NewTokenRegistryProvider creates a new TokenRegistryProvider.
func NewTokenRegistryProvider(cluster, tokenFile string, logger port.Logger) *TokenRegistryProvider {
	return &TokenRegistryProvider{cluster: cluster, tokenFile: tokenFile, logger: logger}
}

// Registry returns the cached registry, loading it on first use.
func (p *TokenRegistryProvider) Registry() (*entity.TokenRegistry, error) {
	p.once.Do(func() {
		extra, err := tokenloader.NewTokenLoader(p.tokenFile, p.logger).Load()
		if err != nil {
			p.err = fmt.Errorf("load user tokens: %w", err)
			return
		}
		p.registry, p.err = registry.Build(p.cluster, extra...)
		if p.err == nil {
			p.logger.Debug("Token registry ready", "cluster", p.cluster, "tokens", p.registry.Len(), "user_tokens", len(extra))
		}
	})
	return p.registry, p.err
}
