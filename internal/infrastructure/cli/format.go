package cli

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"solagent/internal/domain/entity"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

var one = decimal.NewFromInt(1)

// formatUSD prints cents for amounts of a dollar or more and up to eight decimals below.
func formatUSD(d decimal.Decimal) string {
	if d.Abs().LessThan(one) && !d.IsZero() {
		return "$" + d.Round(8).String()
	}
	return "$" + d.StringFixed(2)
}

func formatPrice(p entity.Price) string {
	if !p.Available {
		return "n/a"
	}
	return formatUSD(p.Value)
}

func formatValue(p entity.Price) string {
	if !p.Available {
		return "n/a"
	}
	return "$" + p.Value.StringFixed(2)
}

// describeError turns a command error into the message shown to the user and an exit code.
func describeError(err error) (string, int) {
	var (
		rpcErr   *entity.RPCError
		quoteErr *entity.QuoteError
	)
	switch {
	case errors.As(err, &quoteErr):
		return "quote rejected by Jupiter: " + quoteErr.Error(), exitFailure
	case errors.As(err, &rpcErr):
		return fmt.Sprintf("RPC node returned error %d: %s", rpcErr.Code, rpcErr.Message), exitFailure
	case errors.Is(err, entity.ErrTimeout):
		return "request timed out: " + err.Error(), exitFailure
	case errors.Is(err, entity.ErrTransport):
		return "network error: " + err.Error(), exitFailure
	case errors.Is(err, entity.ErrAlreadyExists):
		return err.Error() + ". Run `solagent delete --yes` first to replace it", exitFailure
	case errors.Is(err, entity.ErrCorruptState):
		return "stored data is unreadable: " + err.Error(), exitFailure
	case errors.Is(err, entity.ErrUnknownToken):
		return err.Error() + ". Run `solagent tokens` to list known tokens", exitUsage
	case errors.Is(err, entity.ErrInvalidInput):
		return err.Error(), exitUsage
	default:
		return err.Error(), exitFailure
	}
}
