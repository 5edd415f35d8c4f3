package service

import (
	"fmt"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
)

// solanaClient returns the client for the persisted configuration. Fields that are not
// persisted come from defaults, the active cluster's configuration.
func solanaClient(cs port.ConfigStore, cp port.SolanaClientProvider, defaults entity.ClientConfig) (port.SolanaClient, error) {
	cfg := defaults.WithDefaults()
	stored, err := cs.Load()
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}
	if stored != nil {
		cfg = stored.WithDefaultsFrom(cfg)
	}
	return cp.GetClient(cfg)
}
