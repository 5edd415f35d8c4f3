package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
	"solagent/internal/pkg/metrics"
)

// Options are the global flags shared by every command.
type Options struct {
	Home        string
	Settings    string
	LogLevel    string
	MetricsFile string
}

// Dependencies is everything a command may use. It is built once per invocation,
// after the global flags are parsed.
type Dependencies struct {
	Wallet    port.WalletService
	Balances  port.BalanceService
	Prices    port.TokenPriceService
	Quotes    port.QuoteService
	Transfers port.TransferService
	Accounts  port.AccountService

	Registry *entity.TokenRegistry
	Network  entity.NetworkDefinition
	Networks []entity.NetworkDefinition

	Home        string
	Metrics     *metrics.Metrics
	MetricsFile string
	Logger      port.Logger
}

// Builder wires Dependencies from the parsed global flags.
type Builder func(opts Options) (*Dependencies, error)

type application struct {
	build   Builder
	opts    Options
	deps    *Dependencies
	out     io.Writer
	command string
}

// Run executes one command line and returns the process exit code.
func Run(ctx context.Context, build Builder, args []string, stdout, stderr io.Writer) int {
	a := &application{build: build, out: stdout}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	started := time.Now()
	err := root.ExecuteContext(ctx)
	a.finish(time.Since(started))

	if err != nil {
		msg, code := describeError(err)
		fmt.Fprintln(stderr, "Error: "+msg)
		return code
	}
	return 0
}

func (a *application) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "solagent",
		Short: "solagent - a Solana wallet and market toolkit",
		Long: `solagent keeps one local wallet, reads balances from a Solana RPC node and
prices and swap quotes from Jupiter. Transfers are simulated, never signed.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.command = strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
			deps, err := a.build(a.opts)
			if err != nil {
				return err
			}
			a.deps = deps
			return nil
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	})

	root.PersistentFlags().StringVar(&a.opts.Home, "home", "", "wallet and config directory (default $SOLAGENT_HOME or ~/.solagent)")
	root.PersistentFlags().StringVar(&a.opts.Settings, "settings", "", "application settings file (default <home>/settings.yaml)")
	root.PersistentFlags().StringVar(&a.opts.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(
		a.initCmd(),
		a.importCmd(),
		a.addressCmd(),
		a.deleteCmd(),
		a.configCmd(),
		a.tokensCmd(),
		a.clustersCmd(),
		a.balanceCmd(),
		a.priceCmd(),
		a.quoteCmd(),
		a.sendCmd(),
		a.historyCmd(),
		a.statusCmd(),
		a.accountCmd(),
	)
	return root
}

// finish records the command duration and flushes the metrics textfile.
func (a *application) finish(elapsed time.Duration) {
	if a.deps == nil {
		return
	}
	a.deps.Metrics.ObserveCommand(a.command, elapsed)
	if err := a.deps.Metrics.WriteTextfile(a.deps.MetricsFile); err != nil && a.deps.Logger != nil {
		a.deps.Logger.Warn("Failed to write metrics", "error", err)
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
		}
		return nil
	}
}

func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
		}
		return nil
	}
}
