package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"solagent/internal/domain/entity"
	"solagent/internal/infrastructure/walletstore"
)

const noWalletGuidance = "No wallet found. Run `solagent init` to create one, or `solagent import <secret>` to use an existing key."

func (a *application) printNoWallet() {
	fmt.Fprintln(a.out, noWalletGuidance)
}

// resolveAddress returns the explicit address or the wallet address. ok is false when
// neither exists; the guidance has been printed by then.
func (a *application) resolveAddress(explicit string) (addr string, ok bool, err error) {
	addr, err = a.deps.Wallet.ResolveAddress(explicit)
	if errors.Is(err, entity.ErrNotFound) {
		a.printNoWallet()
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return addr, true, nil
}

func (a *application) initCmd() *cobra.Command {
	var showSecret bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new wallet",
		Args:  exactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			rec, err := a.deps.Wallet.InitWallet()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Wallet created.")
			a.printWalletRecord(rec, showSecret)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showSecret, "show-secret", false, "print the base58 secret key once")
	return cmd
}

func (a *application) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <base58-secret>",
		Short: "Import an existing 64-byte secret key",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			rec, err := a.deps.Wallet.ImportWallet(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Wallet imported.")
			a.printWalletRecord(rec, false)
			return nil
		},
	}
}

func (a *application) printWalletRecord(rec *entity.WalletRecord, showSecret bool) {
	fmt.Fprintf(a.out, "Address:    %s\n", rec.PublicKey)
	if a.deps.Home != "" {
		fmt.Fprintf(a.out, "Stored in:  %s\n", filepath.Join(a.deps.Home, walletstore.WalletFileName))
	}
	if showSecret {
		fmt.Fprintf(a.out, "Secret key: %s\n", walletstore.EncodeSecret(rec.SecretKey))
		fmt.Fprintln(a.out, "Keep the secret key private. Anyone holding it controls the wallet.")
	}
}

func (a *application) addressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address",
		Args:  exactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			rec, err := a.deps.Wallet.LoadWallet()
			if err != nil {
				return err
			}
			if rec == nil {
				a.printNoWallet()
				return nil
			}
			fmt.Fprintln(a.out, rec.PublicKey)
			return nil
		},
	}
}

func (a *application) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the local wallet",
		Args:  exactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("%w: refusing to delete the wallet without --yes", entity.ErrInvalidInput)
			}
			rec, err := a.deps.Wallet.LoadWallet()
			if err != nil && !errors.Is(err, entity.ErrCorruptState) {
				return err
			}
			corrupt := err != nil
			if err := a.deps.Wallet.DeleteWallet(); err != nil {
				return err
			}
			switch {
			case corrupt:
				fmt.Fprintln(a.out, "Unreadable wallet file deleted.")
				return nil
			case rec == nil:
				fmt.Fprintln(a.out, "No wallet to delete.")
				return nil
			default:
				fmt.Fprintf(a.out, "Wallet %s deleted.\n", rec.PublicKey)
				return nil
			}
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func (a *application) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the RPC configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the RPC configuration",
		Args:  exactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := a.deps.Wallet.LoadConfig()
			if err != nil {
				return err
			}
			a.printClientConfig(cfg)
			return nil
		},
	}

	var rpcURL, commitment string
	set := &cobra.Command{
		Use:   "set",
		Short: "Change the RPC endpoint or commitment",
		Args:  exactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			if rpcURL == "" && commitment == "" {
				return fmt.Errorf("%w: nothing to set, pass --rpc or --commitment", entity.ErrInvalidInput)
			}
			cfg, err := a.deps.Wallet.SetConfig(rpcURL, commitment)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Configuration saved.")
			a.printClientConfig(cfg)
			return nil
		},
	}
	set.Flags().StringVar(&rpcURL, "rpc", "", "RPC endpoint URL")
	set.Flags().StringVar(&commitment, "commitment", "", "processed, confirmed or finalized")

	cmd.AddCommand(show, set)
	return cmd
}

func (a *application) printClientConfig(cfg entity.ClientConfig) {
	fmt.Fprintf(a.out, "RPC endpoint: %s\n", cfg.RPC)
	fmt.Fprintf(a.out, "Commitment:   %s\n", cfg.Commitment)
	if a.deps.Home != "" {
		fmt.Fprintf(a.out, "Config file:  %s\n", filepath.Join(a.deps.Home, walletstore.ConfigFileName))
	}
}

func (a *application) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens",
		Short: "List the tokens known on the active cluster",
		Args:  exactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SYMBOL\tNAME\tDECIMALS\tMINT")
			for _, t := range a.deps.Registry.Tokens() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", t.Symbol, t.Name, t.Decimals, t.Mint)
			}
			return w.Flush()
		},
	}
}

func (a *application) clustersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clusters",
		Short: "List the supported clusters",
		Args:  exactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CLUSTER\tNAME\tDEFAULT RPC\tACTIVE")
			for _, n := range a.deps.Networks {
				active := ""
				if n.Identifier == a.deps.Network.Identifier {
					active = "(active)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.Identifier, n.Name, n.PrimaryRPCURL, active)
			}
			return w.Flush()
		},
	}
}
