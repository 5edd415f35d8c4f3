package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no wallet (or other persisted record) exists.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when initializing over an existing wallet.
	ErrAlreadyExists = errors.New("already exists")

	// ErrCorruptState is returned when a persisted file exists but cannot be parsed.
	ErrCorruptState = errors.New("corrupt state")

	// ErrTransport is returned on connection failures and unexpected HTTP statuses.
	ErrTransport = errors.New("transport error")

	// ErrTimeout is returned when an RPC call exceeds its deadline.
	ErrTimeout = errors.New("timeout")

	// ErrUnknownToken is returned when a symbol is not in the registry.
	ErrUnknownToken = errors.New("unknown token")

	// ErrInvalidInput is returned when user input fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientFunds is returned when a simulated transfer exceeds the sender's balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// RPCError is a structured error returned by the JSON-RPC node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// QuoteError is a structured error returned by the quote provider.
type QuoteError struct {
	Message   string
	ErrorCode string
}

func (e *QuoteError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("quote error (%s): %s", e.ErrorCode, e.Message)
	}
	return "quote error: " + e.Message
}

// UnknownTokenError wraps ErrUnknownToken with the offending symbol.
func UnknownTokenError(symbol string) error {
	return fmt.Errorf("%w: %s", ErrUnknownToken, symbol)
}
