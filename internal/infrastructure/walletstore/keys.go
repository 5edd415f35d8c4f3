package walletstore

import (
	"crypto/ed25519"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"solagent/internal/domain/entity"
)

// SolanaKeys generates Ed25519 keypairs and validates addresses with solana-go.
type SolanaKeys struct{}

// NewSolanaKeys returns a SolanaKeys.
func NewSolanaKeys() SolanaKeys { return SolanaKeys{} }

// Generate creates a new random keypair. The secret is the 64-byte seed||public form.
func (SolanaKeys) Generate() (string, []byte, error) {
	priv, err := solana.NewRandomPrivateKey()
	if err != nil {
		return "", nil, fmt.Errorf("generate keypair: %w", err)
	}
	return priv.PublicKey().String(), []byte(priv), nil
}

// PublicKeyFromSecret derives the address of a 64-byte secret key.
func (SolanaKeys) PublicKeyFromSecret(secret []byte) (string, error) {
	if len(secret) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("%w: secret key must be %d bytes, got %d", entity.ErrInvalidInput, ed25519.PrivateKeySize, len(secret))
	}
	pub := solana.PrivateKey(secret).PublicKey()
	fromSeed := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize]).Public().(ed25519.PublicKey)
	if !pub.Equals(solana.PublicKeyFromBytes(fromSeed)) {
		return "", fmt.Errorf("%w: secret key halves do not match", entity.ErrInvalidInput)
	}
	return pub.String(), nil
}

// ValidateAddress checks that address decodes to a 32-byte public key.
func (SolanaKeys) ValidateAddress(address string) error {
	if _, err := solana.PublicKeyFromBase58(address); err != nil {
		return fmt.Errorf("%w: address %q: %v", entity.ErrInvalidInput, address, err)
	}
	return nil
}

// DecodeSecret parses a base58 encoded 64-byte secret key as exported by common wallets.
func DecodeSecret(encoded string) ([]byte, error) {
	raw, err := base58.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: secret is not base58: %v", entity.ErrInvalidInput, err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: secret key must be %d bytes, got %d", entity.ErrInvalidInput, ed25519.PrivateKeySize, len(raw))
	}
	return raw, nil
}

// EncodeSecret renders a secret key as base58 for backup.
func EncodeSecret(secret []byte) string {
	return base58.Encode(secret)
}
