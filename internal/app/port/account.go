package port

import (
	"context"

	"solagent/internal/domain/entity"
)

// AccountService wraps read-only cluster and account queries.
type AccountService interface {
	Status(ctx context.Context) (*entity.ClusterStatus, error)
	// AccountInfo returns nil when the account does not exist.
	AccountInfo(ctx context.Context, address string) (*entity.AccountInfo, error)
	History(ctx context.Context, address string, limit int) ([]entity.SignatureInfo, error)
}

// TransferService plans transfers without signing or broadcasting them.
type TransferService interface {
	SimulateTransfer(ctx context.Context, req entity.TransferRequest) (*entity.TransferPlan, error)
}
