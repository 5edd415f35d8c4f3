package entity

import "github.com/shopspring/decimal"

// MaxMemoBytes is the largest memo accepted by the memo program in a single transfer.
const MaxMemoBytes = 566

// TransferRequest describes a transfer the user asked for.
type TransferRequest struct {
	From   string
	To     string
	Symbol string // empty means the native asset
	Amount decimal.Decimal
	Memo   string
}

// TransferPlan is the validated, unsigned result of a simulated transfer.
type TransferPlan struct {
	From       string
	To         string
	Token      TokenDescriptor
	Amount     decimal.Decimal
	BaseUnits  uint64
	Memo       string
	Balance    decimal.Decimal // sender balance of Token
	NativeFee  decimal.Decimal
	FeeBalance decimal.Decimal // sender native balance available for the fee
	Blockhash  Blockhash
}

// ClusterStatus is the output of the status command.
type ClusterStatus struct {
	Config    ClientConfig
	Slot      uint64
	Blockhash Blockhash
}
