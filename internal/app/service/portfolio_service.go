package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
	"solagent/internal/pkg/metrics"
)

// BalanceServiceImpl implements port.BalanceService.
type BalanceServiceImpl struct {
	registry              *entity.TokenRegistry
	clientProvider        port.SolanaClientProvider
	configStore           port.ConfigStore
	clientDefaults        entity.ClientConfig
	tokenPriceSvc         port.TokenPriceService
	logger                port.Logger
	metrics               *metrics.Metrics
	maxConcurrentRoutines int
}

// NewBalanceService creates a new instance of BalanceServiceImpl.
func NewBalanceService(
	registry *entity.TokenRegistry,
	cp port.SolanaClientProvider,
	cs port.ConfigStore,
	defaults entity.ClientConfig,
	tps port.TokenPriceService,
	l port.Logger,
	m *metrics.Metrics,
	maxRoutines int,
) *BalanceServiceImpl {
	if maxRoutines <= 0 {
		maxRoutines = 1
	}
	return &BalanceServiceImpl{
		registry:              registry,
		clientProvider:        cp,
		configStore:           cs,
		clientDefaults:        defaults,
		tokenPriceSvc:         tps,
		logger:                l,
		metrics:               m,
		maxConcurrentRoutines: maxRoutines,
	}
}

var _ port.BalanceService = (*BalanceServiceImpl)(nil)

// GetAllBalances reports the native asset, always, followed by every registry token with a
// positive balance. A failed token lookup drops that token only; a failed native lookup
// fails the report.
func (s *BalanceServiceImpl) GetAllBalances(ctx context.Context, address string) (*entity.BalanceReport, error) {
	client, err := solanaClient(s.configStore, s.clientProvider, s.clientDefaults)
	if err != nil {
		return nil, err
	}

	lookups := s.fetchBalances(ctx, client, address, s.registry.Tokens())
	native, others := lookups[0], lookups[1:]
	if !native.OK() {
		return nil, fmt.Errorf("native balance for %s: %w", address, native.Err)
	}

	symbols := []string{native.Token.Symbol}
	for _, l := range others {
		if l.OK() && l.Balance.IsPositive() {
			symbols = append(symbols, l.Token.Symbol)
		}
	}
	prices := s.tokenPriceSvc.GetTokenPrices(ctx, symbols)

	report := AssembleReport(address, native, others, prices, false)
	for _, skipped := range report.Skipped {
		s.logger.Warn("Token balance lookup failed, omitting from report",
			"address", address, "symbol", skipped.TokenSymbol, "error", skipped.Message)
	}
	s.logger.Debug("Balance report assembled", "address", address, "entries", len(report.Entries), "skipped", len(report.Skipped))
	return report, nil
}

// GetTokenBalance reports a single token, including a zero balance.
func (s *BalanceServiceImpl) GetTokenBalance(ctx context.Context, address, symbol string) (*entity.BalanceReport, error) {
	token, ok := s.registry.Lookup(symbol)
	if !ok {
		return nil, entity.UnknownTokenError(symbol)
	}
	client, err := solanaClient(s.configStore, s.clientProvider, s.clientDefaults)
	if err != nil {
		return nil, err
	}

	pos := s.registry.Position(token.Symbol)
	lookup := s.fetchBalances(ctx, client, address, []entity.TokenDescriptor{token})[0]
	lookup.Position = pos
	if !lookup.OK() {
		return nil, fmt.Errorf("%s balance for %s: %w", token.Symbol, address, lookup.Err)
	}

	prices := map[string]entity.Price{}
	if token.IsNative || lookup.Balance.IsPositive() {
		prices = s.tokenPriceSvc.GetTokenPrices(ctx, []string{token.Symbol})
	}

	if token.IsNative {
		return AssembleReport(address, lookup, nil, prices, true), nil
	}
	report := AssembleReport(address, entity.TokenLookup{}, []entity.TokenLookup{lookup}, prices, true)
	return report, nil
}

// fetchBalances queries every token concurrently. Results are written to the slot of the
// token's index, so the returned order matches tokens regardless of completion order.
func (s *BalanceServiceImpl) fetchBalances(ctx context.Context, client port.SolanaClient, address string, tokens []entity.TokenDescriptor) []entity.TokenLookup {
	lookups := make([]entity.TokenLookup, len(tokens))

	var eg errgroup.Group
	eg.SetLimit(s.maxConcurrentRoutines)
	for i, token := range tokens {
		eg.Go(func() error {
			var (
				bal decimal.Decimal
				err error
			)
			if token.IsNative {
				bal, err = client.GetBalance(ctx, address)
			} else {
				bal, err = client.GetTokenBalance(ctx, address, token.Mint)
			}
			s.metrics.TokenLookup(err == nil)
			lookups[i] = entity.TokenLookup{Position: i, Token: token, Balance: bal, Err: err}
			return nil
		})
	}
	_ = eg.Wait()
	return lookups
}

// AssembleReport builds a report from balance lookups and prices. The native entry, when
// native.Token.Symbol is set, is always first and always present. Other lookups follow in
// Position order; failed ones go to Skipped and zero balances are dropped unless
// includeZero is set. Prices are keyed by upper-case symbol.
func AssembleReport(address string, native entity.TokenLookup, lookups []entity.TokenLookup, prices map[string]entity.Price, includeZero bool) *entity.BalanceReport {
	report := &entity.BalanceReport{
		Address:    address,
		Entries:    make([]entity.BalanceEntry, 0, len(lookups)+1),
		TotalValue: decimal.Zero,
	}

	if native.Token.Symbol != "" {
		report.Entries = append(report.Entries, newEntry(native, prices))
	}

	ordered := make([]entity.TokenLookup, len(lookups))
	copy(ordered, lookups)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

	for _, l := range ordered {
		if !l.OK() {
			report.Skipped = append(report.Skipped, entity.TokenLookupError{
				WalletAddress: address,
				TokenSymbol:   l.Token.Symbol,
				Mint:          l.Token.Mint,
				IsNative:      l.Token.IsNative,
				Message:       l.Err.Error(),
			})
			continue
		}
		if !includeZero && !l.Balance.IsPositive() {
			continue
		}
		report.Entries = append(report.Entries, newEntry(l, prices))
	}

	for _, e := range report.Entries {
		if e.Value.Available {
			report.TotalValue = report.TotalValue.Add(e.Value.Value)
		}
	}
	return report
}

func newEntry(l entity.TokenLookup, prices map[string]entity.Price) entity.BalanceEntry {
	price := prices[strings.ToUpper(l.Token.Symbol)]
	entry := entity.BalanceEntry{Token: l.Token, Quantity: l.Balance, Price: price}
	if price.Available {
		entry.Value = entity.PriceOf(l.Balance.Mul(price.Value))
	}
	return entry
}
