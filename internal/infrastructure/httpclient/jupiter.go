package httpclient

import (
	"context"

	"github.com/shopspring/decimal"

	"solagent/internal/domain/entity"
)

// QuoteRequest holds the parameters of one quote call. Amount is in base units.
type QuoteRequest struct {
	InputMint   string
	OutputMint  string
	Amount      uint64
	SlippageBps int
}

// JupiterClient defines the interface for interacting with the Jupiter price and quote APIs.
type JupiterClient interface {
	// GetPrices returns USD prices keyed by mint. Mints without a price are absent.
	GetPrices(ctx context.Context, mints []string) (map[string]decimal.Decimal, error)

	// GetQuote returns a swap quote. OutAmountDisplay is left for the caller to fill.
	GetQuote(ctx context.Context, req QuoteRequest) (*entity.SwapQuote, error)
}
