package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solagent/internal/infrastructure/cli"
)

func writeSettings(t *testing.T, home, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(home, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, settingsFileName), []byte(body), 0o600))
}

func TestWire_DevnetUsesDevnetEndpoint(t *testing.T) {
	home := t.TempDir()
	writeSettings(t, home, "cluster:\n  name: devnet\n")

	deps, _, err := wire(cli.Options{Home: home})
	require.NoError(t, err)
	assert.Equal(t, "devnet", deps.Network.Identifier)

	usdc, ok := deps.Registry.Lookup("USDC")
	require.True(t, ok)
	assert.Equal(t, "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU", usdc.Mint)

	cfg, err := deps.Wallet.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, deps.Network.PrimaryRPCURL, cfg.RPC)

	_, err = deps.Wallet.InitWallet()
	require.NoError(t, err)
	cfg, err = deps.Wallet.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://api.devnet.solana.com", cfg.RPC)

	data, err := os.ReadFile(filepath.Join(home, "config.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "api.devnet.solana.com")
}

func TestWire_DefaultsToMainnet(t *testing.T) {
	home := t.TempDir()

	deps, _, err := wire(cli.Options{Home: home, LogLevel: "error"})
	require.NoError(t, err)
	assert.Equal(t, "mainnet-beta", deps.Network.Identifier)

	cfg, err := deps.Wallet.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.RPC)
}

func TestWire_UnknownCluster(t *testing.T) {
	home := t.TempDir()
	writeSettings(t, home, "cluster:\n  name: testnet-x\n")

	_, _, err := wire(cli.Options{Home: home})
	assert.Error(t, err)
}

func TestRun_ConfigShowReportsClusterEndpoint(t *testing.T) {
	home := t.TempDir()
	writeSettings(t, home, "cluster:\n  name: devnet\n")

	build := func(opts cli.Options) (*cli.Dependencies, error) {
		deps, _, err := wire(opts)
		return deps, err
	}
	var out, errOut bytes.Buffer
	code := cli.Run(context.Background(), build, []string{"--home", home, "config", "show"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "https://api.devnet.solana.com")
}
