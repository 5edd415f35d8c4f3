package port

import (
	"context"

	"solagent/internal/domain/entity"
)

// BalanceService aggregates balances and prices into reports.
type BalanceService interface {
	// GetAllBalances reports the native asset and every registry token with a positive balance.
	GetAllBalances(ctx context.Context, address string) (*entity.BalanceReport, error)

	// GetTokenBalance reports one token, including a zero balance.
	GetTokenBalance(ctx context.Context, address, symbol string) (*entity.BalanceReport, error)
}
