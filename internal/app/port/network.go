package port

import (
	"context"

	"github.com/shopspring/decimal"

	"solagent/internal/domain/entity"
)

// SolanaClient is a JSON-RPC client bound to one ClientConfig.
type SolanaClient interface {
	// Call issues one JSON-RPC request and returns the raw result field.
	Call(ctx context.Context, method string, params []any) ([]byte, error)

	// GetBalance returns the native balance in display units; 0 for unknown accounts.
	GetBalance(ctx context.Context, address string) (decimal.Decimal, error)

	// GetTokenBalance returns the balance of the first token account owned by address for mint.
	GetTokenBalance(ctx context.Context, address, mint string) (decimal.Decimal, error)

	GetRecentBlockhash(ctx context.Context) (entity.Blockhash, error)
	GetSlot(ctx context.Context) (uint64, error)

	// GetAccountInfo returns nil when the account does not exist.
	GetAccountInfo(ctx context.Context, address string) (*entity.AccountInfo, error)
	GetSignaturesForAddress(ctx context.Context, address string, limit int) ([]entity.SignatureInfo, error)

	// Config returns the configuration the client is bound to.
	Config() entity.ClientConfig
}

// SolanaClientProvider builds clients lazily so that commands without network needs never dial.
type SolanaClientProvider interface {
	GetClient(cfg entity.ClientConfig) (SolanaClient, error)
}
