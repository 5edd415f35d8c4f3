package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
	"solagent/internal/infrastructure/httpclient"
	"solagent/internal/pkg/utils"
)

// quoteServiceImpl implements port.QuoteService.
type quoteServiceImpl struct {
	registry        *entity.TokenRegistry
	jupiter         httpclient.JupiterClient
	logger          port.Logger
	defaultSlippage int
}

// NewQuoteService creates a new instance of quoteServiceImpl.
func NewQuoteService(registry *entity.TokenRegistry, jc httpclient.JupiterClient, l port.Logger, defaultSlippageBps int) port.QuoteService {
	if defaultSlippageBps <= 0 {
		defaultSlippageBps = entity.DefaultSlippageBps
	}
	return &quoteServiceImpl{
		registry:        registry,
		jupiter:         jc,
		logger:          l,
		defaultSlippage: defaultSlippageBps,
	}
}

// Quote resolves both symbols before any network call and returns a quote whose
// OutAmountDisplay uses the output token's decimals.
func (s *quoteServiceImpl) Quote(ctx context.Context, fromSymbol, toSymbol string, amount decimal.Decimal, slippageBps int) (*entity.SwapQuote, error) {
	from, ok := s.registry.Lookup(fromSymbol)
	if !ok {
		return nil, entity.UnknownTokenError(fromSymbol)
	}
	to, ok := s.registry.Lookup(toSymbol)
	if !ok {
		return nil, entity.UnknownTokenError(toSymbol)
	}
	if from.Mint == to.Mint {
		return nil, fmt.Errorf("%w: cannot quote %s to itself", entity.ErrInvalidInput, from.Symbol)
	}

	quote, err := s.GetSwapQuote(ctx, from.Mint, to.Mint, amount, from.Decimals, slippageBps)
	if err != nil {
		return nil, err
	}
	quote.OutAmountDisplay = utils.ToDisplayUnits(quote.OutAmount, to.Decimals)
	return quote, nil
}

// GetSwapQuote floors amount to base units and requests a quote. When the output mint
// is registered the display amount is filled in as well.
func (s *quoteServiceImpl) GetSwapQuote(ctx context.Context, inputMint, outputMint string, amount decimal.Decimal, inputDecimals uint8, slippageBps int) (*entity.SwapQuote, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", entity.ErrInvalidInput, amount.String())
	}
	if slippageBps <= 0 {
		slippageBps = s.defaultSlippage
	}
	if slippageBps > 10000 {
		return nil, fmt.Errorf("%w: slippage %d bps exceeds 100%%", entity.ErrInvalidInput, slippageBps)
	}

	baseUnits, err := utils.ToBaseUnits(amount, inputDecimals)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}
	if baseUnits == 0 {
		return nil, fmt.Errorf("%w: amount %s is below the smallest unit", entity.ErrInvalidInput, amount.String())
	}

	s.logger.Debug("Requesting swap quote", "input_mint", inputMint, "output_mint", outputMint, "amount", baseUnits, "slippage_bps", slippageBps)
	quote, err := s.jupiter.GetQuote(ctx, httpclient.QuoteRequest{
		InputMint:   inputMint,
		OutputMint:  outputMint,
		Amount:      baseUnits,
		SlippageBps: slippageBps,
	})
	if err != nil {
		return nil, fmt.Errorf("quote %s -> %s: %w", inputMint, outputMint, err)
	}
	if out, ok := s.registry.LookupMint(outputMint); ok {
		quote.OutAmountDisplay = utils.ToDisplayUnits(quote.OutAmount, out.Decimals)
	}
	return quote, nil
}
