package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solagent/internal/domain/entity"
	"solagent/internal/infrastructure/walletstore"
	"solagent/internal/pkg/logger"
)

func newWalletService() (*WalletServiceImpl, *walletstore.MemoryStore) {
	store := walletstore.NewMemoryStore()
	keys := walletstore.NewSolanaKeys()
	svc := NewWalletService(store, store.Configs(), entity.DefaultClientConfig(), keys, keys, logger.Nop())
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc, store
}

func TestInitWallet(t *testing.T) {
	svc, store := newWalletService()

	rec, err := svc.InitWallet()
	require.NoError(t, err)
	assert.NotEmpty(t, rec.PublicKey)
	assert.Len(t, rec.SecretKey, 64)
	require.NotNil(t, rec.CreatedAt)

	cfg, err := store.Configs().Load()
	require.NoError(t, err)
	require.NotNil(t, cfg, "default config must be written")
	assert.Equal(t, entity.DefaultClientConfig(), *cfg)

	_, err = svc.InitWallet()
	assert.ErrorIs(t, err, entity.ErrAlreadyExists)
}

func TestInitWallet_KeepsExistingConfig(t *testing.T) {
	svc, store := newWalletService()
	require.NoError(t, store.Configs().Save(entity.ClientConfig{RPC: "http://localhost:8899", Commitment: "finalized"}))

	_, err := svc.InitWallet()
	require.NoError(t, err)

	cfg, err := svc.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8899", cfg.RPC)
}

func TestImportWallet(t *testing.T) {
	keys := walletstore.NewSolanaKeys()
	pub, secret, err := keys.Generate()
	require.NoError(t, err)

	svc, _ := newWalletService()
	rec, err := svc.ImportWallet(" " + walletstore.EncodeSecret(secret) + "\n")
	require.NoError(t, err)
	assert.Equal(t, pub, rec.PublicKey)
	require.NotNil(t, rec.ImportedAt)
	assert.Nil(t, rec.CreatedAt)

	_, err = svc.ImportWallet(walletstore.EncodeSecret(secret))
	assert.ErrorIs(t, err, entity.ErrAlreadyExists)
}

func TestImportWallet_Invalid(t *testing.T) {
	svc, _ := newWalletService()
	_, err := svc.ImportWallet("abc")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestLoadAndDeleteWallet(t *testing.T) {
	svc, _ := newWalletService()

	rec, err := svc.LoadWallet()
	require.NoError(t, err)
	assert.Nil(t, rec)
	require.NoError(t, svc.DeleteWallet())

	created, err := svc.InitWallet()
	require.NoError(t, err)
	rec, err = svc.LoadWallet()
	require.NoError(t, err)
	assert.Equal(t, created.PublicKey, rec.PublicKey)

	require.NoError(t, svc.DeleteWallet())
	rec, err = svc.LoadWallet()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestResolveAddress(t *testing.T) {
	svc, _ := newWalletService()

	_, err := svc.ResolveAddress("")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = svc.ResolveAddress("bad address")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	addr, err := svc.ResolveAddress("11111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "11111111111111111111111111111111", addr)

	rec, err := svc.InitWallet()
	require.NoError(t, err)
	addr, err = svc.ResolveAddress("")
	require.NoError(t, err)
	assert.Equal(t, rec.PublicKey, addr)
}

func TestSetConfig(t *testing.T) {
	svc, _ := newWalletService()

	cfg, err := svc.SetConfig("", "FINALIZED")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultRPCURL, cfg.RPC)
	assert.Equal(t, "finalized", cfg.Commitment)

	cfg, err = svc.SetConfig("https://rpc.example.org", "")
	require.NoError(t, err)
	assert.Equal(t, "finalized", cfg.Commitment)

	_, err = svc.SetConfig("", "eventually")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	_, err = svc.SetConfig("ws://rpc.example.org", "")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	loaded, err := svc.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.example.org", loaded.RPC)
}
