package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go/rpc"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
	"solagent/internal/infrastructure/walletstore"
)

// WalletServiceImpl implements port.WalletService.
type WalletServiceImpl struct {
	store     port.WalletStore
	configs   port.ConfigStore
	defaults  entity.ClientConfig
	keys      port.KeyGenerator
	validator port.AddressValidator
	logger    port.Logger
	now       func() time.Time
}

// NewWalletService creates a new instance of WalletServiceImpl.
// defaults is written to config.json on first use and reported while nothing is persisted.
func NewWalletService(ws port.WalletStore, cs port.ConfigStore, defaults entity.ClientConfig, kg port.KeyGenerator, av port.AddressValidator, l port.Logger) *WalletServiceImpl {
	return &WalletServiceImpl{
		store:     ws,
		configs:   cs,
		defaults:  defaults.WithDefaults(),
		keys:      kg,
		validator: av,
		logger:    l,
		now:       time.Now,
	}
}

var _ port.WalletService = (*WalletServiceImpl)(nil)

// InitWallet generates and persists a new keypair.
// The existence check and the write are not atomic across processes.
func (s *WalletServiceImpl) InitWallet() (*entity.WalletRecord, error) {
	if err := s.ensureAbsent(); err != nil {
		return nil, err
	}

	pub, secret, err := s.keys.Generate()
	if err != nil {
		return nil, err
	}
	created := s.now().UTC()
	rec := entity.WalletRecord{PublicKey: pub, SecretKey: secret, CreatedAt: &created}
	if err := s.persist(rec); err != nil {
		return nil, err
	}
	s.logger.Info("Wallet created", "address", pub)
	return &rec, nil
}

// ImportWallet validates a base58 secret key, derives its address and persists it.
func (s *WalletServiceImpl) ImportWallet(base58Secret string) (*entity.WalletRecord, error) {
	if err := s.ensureAbsent(); err != nil {
		return nil, err
	}

	secret, err := walletstore.DecodeSecret(strings.TrimSpace(base58Secret))
	if err != nil {
		return nil, err
	}
	pub, err := s.keys.PublicKeyFromSecret(secret)
	if err != nil {
		return nil, err
	}
	imported := s.now().UTC()
	rec := entity.WalletRecord{PublicKey: pub, SecretKey: secret, ImportedAt: &imported}
	if err := s.persist(rec); err != nil {
		return nil, err
	}
	s.logger.Info("Wallet imported", "address", pub)
	return &rec, nil
}

func (s *WalletServiceImpl) ensureAbsent() error {
	existing, err := s.store.Load()
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: wallet %s", entity.ErrAlreadyExists, existing.PublicKey)
	}
	return nil
}

func (s *WalletServiceImpl) persist(rec entity.WalletRecord) error {
	if err := s.store.Save(rec); err != nil {
		return err
	}
	cfg, err := s.configs.Load()
	if err != nil {
		// the wallet is already saved; a broken config.json is reported by later commands
		s.logger.Warn("Could not read client config after saving wallet", "error", err)
		return nil
	}
	if cfg == nil {
		if err := s.configs.Save(s.defaults); err != nil {
			return fmt.Errorf("write default client config: %w", err)
		}
	}
	return nil
}

// LoadWallet implements port.WalletService.
func (s *WalletServiceImpl) LoadWallet() (*entity.WalletRecord, error) {
	return s.store.Load()
}

// DeleteWallet implements port.WalletService.
func (s *WalletServiceImpl) DeleteWallet() error {
	return s.store.Delete()
}

// ResolveAddress implements port.WalletService.
func (s *WalletServiceImpl) ResolveAddress(explicit string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		if err := s.validator.ValidateAddress(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}
	rec, err := s.store.Load()
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", fmt.Errorf("%w: no wallet", entity.ErrNotFound)
	}
	return rec.PublicKey, nil
}

// LoadConfig returns the persisted client config, or the defaults.
func (s *WalletServiceImpl) LoadConfig() (entity.ClientConfig, error) {
	cfg, err := s.configs.Load()
	if err != nil {
		return entity.ClientConfig{}, err
	}
	if cfg == nil {
		return s.defaults, nil
	}
	return cfg.WithDefaultsFrom(s.defaults), nil
}

// SetConfig updates the non-empty fields and persists the result.
func (s *WalletServiceImpl) SetConfig(rpcURL, commitment string) (entity.ClientConfig, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return entity.ClientConfig{}, err
	}
	if rpcURL != "" {
		if err := validateRPCURL(rpcURL); err != nil {
			return entity.ClientConfig{}, err
		}
		cfg.RPC = rpcURL
	}
	if commitment != "" {
		c, err := ParseCommitment(commitment)
		if err != nil {
			return entity.ClientConfig{}, err
		}
		cfg.Commitment = c
	}
	if err := s.configs.Save(cfg); err != nil {
		return entity.ClientConfig{}, err
	}
	s.logger.Info("Client config updated", "rpc", cfg.RPC, "commitment", cfg.Commitment)
	return cfg, nil
}

func validateRPCURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: RPC endpoint %q must be an http(s) URL", entity.ErrInvalidInput, raw)
	}
	return nil
}

// ParseCommitment normalises a commitment level name.
func ParseCommitment(s string) (string, error) {
	switch c := rpc.CommitmentType(strings.ToLower(strings.TrimSpace(s))); c {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
		return string(c), nil
	}
	return "", fmt.Errorf("%w: commitment %q must be one of processed, confirmed, finalized", entity.ErrInvalidInput, s)
}
