package walletstore

import (
	"sync"

	"solagent/internal/domain/entity"
)

// MemoryStore is an in-process WalletStore and ConfigStore.
type MemoryStore struct {
	mu     sync.Mutex
	wallet *entity.WalletRecord
	config *entity.ClientConfig
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (*entity.WalletRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.wallet == nil {
		return nil, nil
	}
	rec := *m.wallet
	rec.SecretKey = append(entity.SecretKey(nil), m.wallet.SecretKey...)
	return &rec, nil
}

func (m *MemoryStore) Save(rec entity.WalletRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.SecretKey = append(entity.SecretKey(nil), rec.SecretKey...)
	m.wallet = &rec
	return nil
}

func (m *MemoryStore) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallet = nil
	return nil
}

// Configs returns a ConfigStore view over the same MemoryStore.
func (m *MemoryStore) Configs() *MemoryConfigStore {
	return &MemoryConfigStore{m: m}
}

// MemoryConfigStore is the ConfigStore half of a MemoryStore.
type MemoryConfigStore struct {
	m *MemoryStore
}

func (c *MemoryConfigStore) Load() (*entity.ClientConfig, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if c.m.config == nil {
		return nil, nil
	}
	cfg := *c.m.config
	return &cfg, nil
}

func (c *MemoryConfigStore) Save(cfg entity.ClientConfig) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.config = &cfg
	return nil
}
