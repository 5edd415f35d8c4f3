package port

import "solagent/internal/domain/entity"

// WalletStore persists the single wallet record.
// Load returns (nil, nil) when no record exists.
type WalletStore interface {
	Load() (*entity.WalletRecord, error)
	Save(record entity.WalletRecord) error
	Delete() error
}

// ConfigStore persists the client configuration.
// Load returns (nil, nil) when nothing is persisted yet.
type ConfigStore interface {
	Load() (*entity.ClientConfig, error)
	Save(cfg entity.ClientConfig) error
}

// KeyGenerator produces key material and derives public addresses from it.
// Implementations wrap a real signing library; callers treat the bytes as opaque.
type KeyGenerator interface {
	Generate() (publicKey string, secret []byte, err error)
	PublicKeyFromSecret(secret []byte) (string, error)
}

// AddressValidator checks that a string is a well-formed account address.
type AddressValidator interface {
	ValidateAddress(address string) error
}

// WalletService manages the local wallet and client configuration.
type WalletService interface {
	// InitWallet creates a new keypair; entity.ErrAlreadyExists when one is present.
	InitWallet() (*entity.WalletRecord, error)
	// ImportWallet persists an existing base58 encoded secret key.
	ImportWallet(base58Secret string) (*entity.WalletRecord, error)
	// LoadWallet returns (nil, nil) when no wallet exists.
	LoadWallet() (*entity.WalletRecord, error)
	DeleteWallet() error

	// ResolveAddress returns explicit after validation, or the wallet address.
	// entity.ErrNotFound when neither is available.
	ResolveAddress(explicit string) (string, error)

	LoadConfig() (entity.ClientConfig, error)
	SetConfig(rpc, commitment string) (entity.ClientConfig, error)
}
