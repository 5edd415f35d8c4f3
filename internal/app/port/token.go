package port

import (
	"context"

	"github.com/shopspring/decimal"

	"solagent/internal/domain/entity"
)

// TokenPriceService provides best-effort USD prices. It never returns errors:
// anything that goes wrong yields entity.Unavailable.
type TokenPriceService interface {
	GetTokenPrice(ctx context.Context, symbol string) entity.Price
	// GetTokenPrices prices several symbols at once, keyed by upper-case symbol.
	GetTokenPrices(ctx context.Context, symbols []string) map[string]entity.Price
}

// QuoteService resolves symbols and requests swap quotes.
type QuoteService interface {
	Quote(ctx context.Context, fromSymbol, toSymbol string, amount decimal.Decimal, slippageBps int) (*entity.SwapQuote, error)
	GetSwapQuote(ctx context.Context, inputMint, outputMint string, amount decimal.Decimal, inputDecimals uint8, slippageBps int) (*entity.SwapQuote, error)
}

// TokenRegistryProvider supplies the token registry of the active cluster.
type TokenRegistryProvider interface {
	Registry() (*entity.TokenRegistry, error)
}
