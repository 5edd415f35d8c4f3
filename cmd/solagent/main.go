package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"solagent/internal/app/provider"
	"solagent/internal/app/service"
	"solagent/internal/client"
	"solagent/internal/domain/entity"
	"solagent/internal/infrastructure/cli"
	"solagent/internal/infrastructure/configloader"
	clientprovider "solagent/internal/infrastructure/network/client"
	networkdefinition "solagent/internal/infrastructure/network/definition"
	"solagent/internal/infrastructure/walletstore"
	"solagent/internal/pkg/logger"
	"solagent/internal/pkg/metrics"
)

const settingsFileName = "settings.yaml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var zapLogger *zap.Logger
	build := func(opts cli.Options) (*cli.Dependencies, error) {
		deps, zl, err := wire(opts)
		zapLogger = zl
		return deps, err
	}

	code := cli.Run(ctx, build, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if zapLogger != nil {
		_ = zapLogger.Sync()
	}
	os.Exit(code)
}

// wire loads settings, initializes logging and builds every service. Nothing here
// touches the network; clients dial on first use.
func wire(opts cli.Options) (*cli.Dependencies, *zap.Logger, error) {
	home := opts.Home
	if home == "" {
		dir, err := walletstore.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		home = dir
	}

	settingsPath := opts.Settings
	if settingsPath == "" {
		settingsPath = filepath.Join(home, settingsFileName)
	}
	cfg, err := configloader.Load(settingsPath)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	zapLogger, err := logger.Init(level, cfg.Logging.File)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	appLogger := logger.NewSlogAdapter()
	logger.Debug("Settings loaded", "path", settingsPath, "home", home, "cluster", cfg.Cluster.Name)

	m := metrics.New()
	metricsFile := cfg.Metrics.TextFile
	if opts.MetricsFile != "" {
		metricsFile = opts.MetricsFile
	}

	networks := networkdefinition.NewNetworkDefinitionProvider(appLogger)
	network, err := networks.GetNetworkDefinitionByName(cfg.Cluster.Name)
	if err != nil {
		return nil, zapLogger, err
	}

	tokensFile := cfg.Cluster.TokensFile
	if tokensFile != "" && !filepath.IsAbs(tokensFile) {
		tokensFile = filepath.Join(home, tokensFile)
	}
	registry, err := provider.NewTokenRegistryProvider(network.Identifier, tokensFile, appLogger).Registry()
	if err != nil {
		return nil, zapLogger, err
	}

	store := walletstore.NewFileStore(home, appLogger)
	configs := store.Configs()
	clientDefaults := entity.ClientConfigFor(network.PrimaryRPCURL)
	keys := walletstore.NewSolanaKeys()

	clients := clientprovider.NewSolanaClientProvider(clientprovider.Options{
		Timeout:           cfg.RPCTimeout(),
		RequestsPerSecond: cfg.Performance.RPCRequestsPerSecond,
		Burst:             cfg.Performance.RPCBurst,
	}, zapLogger, m)
	jupiter := client.NewJupiterClient(
		cfg.Jupiter.PriceURL,
		cfg.Jupiter.QuoteURL,
		cfg.HTTPTimeout(),
		cfg.TokenPriceSvc.MaxTokensPerBatchRequest,
		zapLogger,
		m,
	)

	prices := service.NewTokenPriceService(registry, jupiter, appLogger, service.PriceOptions{
		CacheTTL:          cfg.PriceCacheTTL(),
		MaxTokensPerBatch: cfg.TokenPriceSvc.MaxTokensPerBatchRequest,
	}, m)

	deps := &cli.Dependencies{
		Wallet:      service.NewWalletService(store, configs, clientDefaults, keys, keys, appLogger),
		Balances:    service.NewBalanceService(registry, clients, configs, clientDefaults, prices, appLogger, m, cfg.Performance.MaxConcurrentRoutines),
		Prices:      prices,
		Quotes:      service.NewQuoteService(registry, jupiter, appLogger, cfg.Jupiter.SlippageBps),
		Transfers:   service.NewTransferService(registry, clients, configs, clientDefaults, keys, appLogger),
		Accounts:    service.NewAccountService(clients, configs, clientDefaults, appLogger),
		Registry:    registry,
		Network:     network,
		Networks:    networks.GetAllNetworkDefinitions(),
		Home:        home,
		Metrics:     m,
		MetricsFile: metricsFile,
		Logger:      appLogger,
	}
	return deps, zapLogger, nil
}
