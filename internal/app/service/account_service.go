package service

import (
	"context"
	"fmt"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 1000
)

// accountServiceImpl implements port.AccountService.
type accountServiceImpl struct {
	clientProvider port.SolanaClientProvider
	configStore    port.ConfigStore
	clientDefaults entity.ClientConfig
	logger         port.Logger
}

// NewAccountService creates a new instance of accountServiceImpl.
func NewAccountService(cp port.SolanaClientProvider, cs port.ConfigStore, defaults entity.ClientConfig, l port.Logger) port.AccountService {
	return &accountServiceImpl{clientProvider: cp, configStore: cs, clientDefaults: defaults, logger: l}
}

func (s *accountServiceImpl) Status(ctx context.Context) (*entity.ClusterStatus, error) {
	client, err := solanaClient(s.configStore, s.clientProvider, s.clientDefaults)
	if err != nil {
		return nil, err
	}
	slot, err := client.GetSlot(ctx)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	bh, err := client.GetRecentBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("get latest blockhash: %w", err)
	}
	return &entity.ClusterStatus{Config: client.Config(), Slot: slot, Blockhash: bh}, nil
}

func (s *accountServiceImpl) AccountInfo(ctx context.Context, address string) (*entity.AccountInfo, error) {
	client, err := solanaClient(s.configStore, s.clientProvider, s.clientDefaults)
	if err != nil {
		return nil, err
	}
	return client.GetAccountInfo(ctx, address)
}

// History returns recent signatures; limit is clamped to [1, MaxHistoryLimit].
func (s *accountServiceImpl) History(ctx context.Context, address string, limit int) ([]entity.SignatureInfo, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		s.logger.Debug("History limit clamped", "requested", limit, "max", MaxHistoryLimit)
		limit = MaxHistoryLimit
	}
	client, err := solanaClient(s.configStore, s.clientProvider, s.clientDefaults)
	if err != nil {
		return nil, err
	}
	return client.GetSignaturesForAddress(ctx, address, limit)
}
