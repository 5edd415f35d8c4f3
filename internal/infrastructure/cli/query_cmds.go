package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"solagent/internal/app/service"
	"solagent/internal/domain/entity"
	"solagent/internal/infrastructure/network/definition"
	"solagent/internal/pkg/utils"
)

func (a *application) balanceCmd() *cobra.Command {
	var symbol, address string
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show native and token balances with USD values",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, ok, err := a.resolveAddress(address)
			if err != nil || !ok {
				return err
			}

			var report *entity.BalanceReport
			if symbol != "" {
				report, err = a.deps.Balances.GetTokenBalance(cmd.Context(), addr, symbol)
			} else {
				report, err = a.deps.Balances.GetAllBalances(cmd.Context(), addr)
			}
			if err != nil {
				return err
			}
			return a.printReport(report)
		},
	}
	cmd.Flags().StringVar(&symbol, "token", "", "report a single token, zero balances included")
	cmd.Flags().StringVar(&address, "address", "", "account to inspect instead of the wallet")
	return cmd
}

func (a *application) printReport(r *entity.BalanceReport) error {
	fmt.Fprintf(a.out, "Address: %s\n\n", r.Address)
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "TOKEN\tBALANCE\tPRICE (USD)\tVALUE (USD)\t")
	for _, e := range r.Entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			e.Token.Symbol,
			utils.FormatAmount(e.Quantity, e.Token.Digits()),
			formatPrice(e.Price),
			formatValue(e.Value),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nTotal value: %s\n", formatUSD(r.TotalValue))
	for _, s := range r.Skipped {
		fmt.Fprintf(a.out, "Skipped %s: %s\n", s.TokenSymbol, s.Message)
	}
	return nil
}

func (a *application) priceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price <SYMBOL>",
		Short: "Show the USD price of a token",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, ok := a.deps.Registry.Lookup(args[0])
			if !ok {
				return entity.UnknownTokenError(args[0])
			}
			p := a.deps.Prices.GetTokenPrice(cmd.Context(), token.Symbol)
			if !p.Available {
				fmt.Fprintf(a.out, "%s: price unavailable\n", token.Symbol)
				return nil
			}
			fmt.Fprintf(a.out, "%s: %s\n", token.Symbol, formatUSD(p.Value))
			return nil
		},
	}
}

func (a *application) quoteCmd() *cobra.Command {
	var from, to, amount string
	var slippage int
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Request a swap quote from Jupiter",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := utils.ParseAmount(amount)
			if err != nil {
				return fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
			}
			q, err := a.deps.Quotes.Quote(cmd.Context(), from, to, n, slippage)
			if err != nil {
				return err
			}
			in, _ := a.deps.Registry.Lookup(from)
			out, _ := a.deps.Registry.Lookup(to)

			fmt.Fprintf(a.out, "Quote: %s %s -> %s\n", n.String(), in.Symbol, out.Symbol)
			fmt.Fprintf(a.out, "  Input:         %s %s (%d base units)\n",
				utils.ToDisplayUnits(q.InAmount, in.Decimals).String(), in.Symbol, q.InAmount)
			fmt.Fprintf(a.out, "  Output:        %s %s\n", utils.FormatAmount(q.OutAmountDisplay, out.Digits()), out.Symbol)
			fmt.Fprintf(a.out, "  Route hops:    %d\n", q.HopCount)
			fmt.Fprintf(a.out, "  Price impact:  %s%%\n", q.PriceImpactPct.Shift(2).Round(4).String())
			fmt.Fprintf(a.out, "  Slippage:      %d bps\n", q.SlippageBps)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "input token symbol")
	cmd.Flags().StringVar(&to, "to", "", "output token symbol")
	cmd.Flags().StringVar(&amount, "amount", "", "input amount in display units")
	cmd.Flags().IntVar(&slippage, "slippage-bps", 0, "slippage tolerance in basis points (default from settings)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func (a *application) sendCmd() *cobra.Command {
	var to, amount, symbol, memo string
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Simulate a transfer; nothing is signed or broadcast",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, ok, err := a.resolveAddress("")
			if err != nil || !ok {
				return err
			}
			n, err := utils.ParseAmount(amount)
			if err != nil {
				return fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
			}

			plan, err := a.deps.Transfers.SimulateTransfer(cmd.Context(), entity.TransferRequest{
				From:   from,
				To:     to,
				Symbol: symbol,
				Amount: n,
				Memo:   memo,
			})
			if plan != nil {
				a.printPlan(plan, err == nil)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	cmd.Flags().StringVar(&amount, "amount", "", "amount in display units")
	cmd.Flags().StringVar(&symbol, "token", "", "token symbol (default native SOL)")
	cmd.Flags().StringVar(&memo, "memo", "", "memo attached to the transfer")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func (a *application) printPlan(p *entity.TransferPlan, ready bool) {
	native := a.deps.Registry.Native()
	fmt.Fprintln(a.out, "SIMULATION MODE: the transfer below is validated only, never signed or broadcast.")
	fmt.Fprintf(a.out, "From:         %s\n", p.From)
	fmt.Fprintf(a.out, "To:           %s\n", p.To)
	fmt.Fprintf(a.out, "Amount:       %s %s (%d base units)\n", p.Amount.String(), p.Token.Symbol, p.BaseUnits)
	if p.Memo != "" {
		fmt.Fprintf(a.out, "Memo:         %s\n", p.Memo)
	}
	fmt.Fprintf(a.out, "Network fee:  %s %s\n", p.NativeFee.String(), native.Symbol)
	fmt.Fprintf(a.out, "Total %s:    %s %s\n", native.Symbol, service.TotalNativeCost(p).String(), native.Symbol)
	fmt.Fprintf(a.out, "Balance:      %s %s\n", utils.FormatAmount(p.Balance, p.Token.Digits()), p.Token.Symbol)
	if ready {
		fmt.Fprintf(a.out, "Blockhash:    %s (valid through block height %d)\n", p.Blockhash.Hash, p.Blockhash.LastValidBlockHeight)
	}
}

func (a *application) historyCmd() *cobra.Command {
	var limit int
	var address string
	var links bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent transaction signatures",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, ok, err := a.resolveAddress(address)
			if err != nil || !ok {
				return err
			}
			sigs, err := a.deps.Accounts.History(cmd.Context(), addr, limit)
			if err != nil {
				return err
			}
			if len(sigs) == 0 {
				fmt.Fprintf(a.out, "No transactions found for %s.\n", addr)
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SIGNATURE\tSLOT\tTIME (UTC)\tSTATUS\tMEMO")
			for _, s := range sigs {
				sig := s.Signature
				if links {
					sig = definition.ExplorerTxURL(a.deps.Network, s.Signature)
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", sig, s.Slot, formatBlockTime(s.BlockTime), signatureStatus(s), s.Memo)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", service.DefaultHistoryLimit, "number of signatures to show")
	cmd.Flags().StringVar(&address, "address", "", "account to inspect instead of the wallet")
	cmd.Flags().BoolVar(&links, "links", false, "print block explorer links instead of bare signatures")
	return cmd
}

func (a *application) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the RPC endpoint, slot and latest blockhash",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.deps.Accounts.Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Cluster:      %s\n", a.deps.Network.Identifier)
			fmt.Fprintf(a.out, "RPC endpoint: %s\n", st.Config.RPC)
			fmt.Fprintf(a.out, "Commitment:   %s\n", st.Config.Commitment)
			fmt.Fprintf(a.out, "Slot:         %d\n", st.Slot)
			fmt.Fprintf(a.out, "Blockhash:    %s\n", st.Blockhash.Hash)
			fmt.Fprintf(a.out, "Valid until:  block height %d\n", st.Blockhash.LastValidBlockHeight)
			return nil
		},
	}
}

func (a *application) accountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account [ADDRESS]",
		Short: "Summarize an on-chain account (the wallet by default)",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit := ""
			if len(args) == 1 {
				explicit = args[0]
			}
			addr, ok, err := a.resolveAddress(explicit)
			if err != nil || !ok {
				return err
			}
			info, err := a.deps.Accounts.AccountInfo(cmd.Context(), addr)
			if err != nil {
				return err
			}
			if info == nil {
				fmt.Fprintf(a.out, "Account %s does not exist on chain.\n", addr)
				return nil
			}
			native := a.deps.Registry.Native()
			fmt.Fprintf(a.out, "Address:      %s\n", addr)
			fmt.Fprintf(a.out, "Balance:      %s %s (%d lamports)\n",
				utils.FormatAmount(utils.ToDisplayUnits(info.Lamports, native.Decimals), int(native.Decimals)), native.Symbol, info.Lamports)
			fmt.Fprintf(a.out, "Owner:        %s\n", info.Owner)
			fmt.Fprintf(a.out, "Executable:   %s\n", yesNo(info.Executable))
			fmt.Fprintf(a.out, "Rent epoch:   %d\n", info.RentEpoch)
			fmt.Fprintf(a.out, "Data length:  %d bytes\n", info.DataLength)
			return nil
		},
	}
}

func formatBlockTime(t *int64) string {
	if t == nil {
		return "-"
	}
	return time.Unix(*t, 0).UTC().Format(time.DateTime)
}

func signatureStatus(s entity.SignatureInfo) string {
	if s.Failed {
		return "failed"
	}
	if s.ConfirmationStatus != "" {
		return strings.ToLower(s.ConfirmationStatus)
	}
	return "ok"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
