package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solagent/internal/domain/entity"
	"solagent/internal/infrastructure/walletstore"
	"solagent/internal/pkg/logger"
)

const devnetRPC = "https://api.devnet.solana.com"

func TestClusterDefaults_InitWritesClusterEndpoint(t *testing.T) {
	store := walletstore.NewMemoryStore()
	keys := walletstore.NewSolanaKeys()
	svc := NewWalletService(store, store.Configs(), entity.ClientConfigFor(devnetRPC), keys, keys, logger.Nop())

	cfg, err := svc.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, devnetRPC, cfg.RPC)
	assert.Equal(t, entity.DefaultCommitment, cfg.Commitment)

	_, err = svc.InitWallet()
	require.NoError(t, err)
	stored, err := store.Configs().Load()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, devnetRPC, stored.RPC)

	cfg, err = svc.SetConfig("", "finalized")
	require.NoError(t, err)
	assert.Equal(t, devnetRPC, cfg.RPC)
}

func TestClusterDefaults_ClientUsesClusterEndpoint(t *testing.T) {
	store := walletstore.NewMemoryStore()
	provider := &fakeProvider{client: newFakeSolana()}
	svc := NewAccountService(provider, store.Configs(), entity.ClientConfigFor(devnetRPC), logger.Nop())

	_, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, devnetRPC, provider.last.RPC)
	assert.Equal(t, entity.DefaultCommitment, provider.last.Commitment)

	// a config file without an endpoint keeps the cluster's
	require.NoError(t, store.Configs().Save(entity.ClientConfig{Commitment: "processed"}))
	_, err = svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, devnetRPC, provider.last.RPC)
	assert.Equal(t, "processed", provider.last.Commitment)

	require.NoError(t, store.Configs().Save(entity.ClientConfig{RPC: "http://localhost:8899"}))
	_, err = svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8899", provider.last.RPC)
}
