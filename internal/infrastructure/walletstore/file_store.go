package walletstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
	"solagent/internal/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	WalletFileName = "wallet.json"
	ConfigFileName = "config.json"

	dirPerm  os.FileMode = 0o700
	filePerm os.FileMode = 0o600

	homeEnvVar     = "SOLAGENT_HOME"
	defaultDirName = ".solagent"
)

// DefaultDir returns $SOLAGENT_HOME when set, otherwise ~/.solagent.
func DefaultDir() (string, error) {
	if dir := os.Getenv(homeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultDirName), nil
}

// FileStore keeps wallet.json and config.json in one directory.
// The directory is created on the first write, never on reads.
type FileStore struct {
	dir    string
	logger port.Logger
}

var (
	_ port.WalletStore = (*FileStore)(nil)
	_ port.ConfigStore = (*ConfigFileStore)(nil)
)

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string, log port.Logger) *FileStore {
	return &FileStore{dir: dir, logger: log}
}

// Dir returns the configuration directory.
func (s *FileStore) Dir() string { return s.dir }

// WalletPath returns the full path of the wallet file.
func (s *FileStore) WalletPath() string { return filepath.Join(s.dir, WalletFileName) }

// ConfigPath returns the full path of the client config file.
func (s *FileStore) ConfigPath() string { return filepath.Join(s.dir, ConfigFileName) }

// Configs returns the ConfigStore that shares this directory.
func (s *FileStore) Configs() *ConfigFileStore {
	return &ConfigFileStore{store: s}
}

func (s *FileStore) ensureDir() error {
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("create config directory %s: %w", s.dir, err)
	}
	return nil
}

// Load reads the wallet record. A missing file yields (nil, nil).
func (s *FileStore) Load() (*entity.WalletRecord, error) {
	path := s.WalletPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Wallet file not present", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read wallet file %s: %w", path, err)
	}

	var rec entity.WalletRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: wallet file %s: %v", entity.ErrCorruptState, path, err)
	}
	if rec.PublicKey == "" {
		return nil, fmt.Errorf("%w: wallet file %s has no publicKey", entity.ErrCorruptState, path)
	}
	s.logger.Debug("Wallet loaded", "path", path, "address", rec.PublicKey)
	return &rec, nil
}

// Save writes the wallet record atomically with owner-only permissions.
func (s *FileStore) Save(rec entity.WalletRecord) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal wallet record: %w", err)
	}
	if err := utils.WriteFileAtomic(s.WalletPath(), data, filePerm); err != nil {
		return fmt.Errorf("failed to write wallet file: %w", err)
	}
	s.logger.Info("Wallet saved", "path", s.WalletPath(), "address", rec.PublicKey)
	return nil
}

// Delete removes the wallet file. Deleting a missing wallet is not an error.
func (s *FileStore) Delete() error {
	err := os.Remove(s.WalletPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete wallet file: %w", err)
	}
	s.logger.Info("Wallet removed", "path", s.WalletPath())
	return nil
}

// ConfigFileStore reads and writes config.json next to the wallet.
type ConfigFileStore struct {
	store *FileStore
}

// persistedConfig accepts the field names used by older config files.
type persistedConfig struct {
	RPC        string `json:"rpc"`
	RPCURL     string `json:"rpcUrl"`
	Endpoint   string `json:"endpoint"`
	Commitment string `json:"commitment"`
}

func (p persistedConfig) clientConfig() entity.ClientConfig {
	cfg := entity.ClientConfig{RPC: p.RPC, Commitment: p.Commitment}
	if cfg.RPC == "" {
		cfg.RPC = p.RPCURL
	}
	if cfg.RPC == "" {
		cfg.RPC = p.Endpoint
	}
	return cfg
}

// Load reads config.json. A missing file yields (nil, nil). Fields absent from the file
// are left empty for the caller to fill from the active cluster.
func (c *ConfigFileStore) Load() (*entity.ClientConfig, error) {
	path := c.store.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var raw persistedConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: config file %s: %v", entity.ErrCorruptState, path, err)
	}
	cfg := raw.clientConfig()
	return &cfg, nil
}

// Save writes config.json.
func (c *ConfigFileStore) Save(cfg entity.ClientConfig) error {
	if err := c.store.ensureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal client config: %w", err)
	}
	if err := utils.WriteFileAtomic(c.store.ConfigPath(), data, filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	c.store.logger.Debug("Client config saved", "path", c.store.ConfigPath(), "rpc", cfg.RPC)
	return nil
}
