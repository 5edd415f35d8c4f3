package entity

import "github.com/shopspring/decimal"

// DefaultSlippageBps is the slippage tolerance used when the caller does not set one.
const DefaultSlippageBps = 50

// SwapQuote is the parsed answer of the quote provider.
type SwapQuote struct {
	InputMint        string
	OutputMint       string
	InAmount         uint64
	OutAmount        uint64
	OutAmountDisplay decimal.Decimal
	HopCount         int
	PriceImpactPct   decimal.Decimal
	SlippageBps      int
	Raw              []byte
}

// SignatureInfo is one entry of an address's transaction history.
type SignatureInfo struct {
	Signature          string
	Slot               uint64
	BlockTime          *int64
	Failed             bool
	Memo               string
	ConfirmationStatus string
}

// AccountInfo summarises an on-chain account.
type AccountInfo struct {
	Lamports   uint64
	Owner      string
	Executable bool
	RentEpoch  uint64
	DataLength int
}

// Blockhash is a recent blockhash with the last block height at which it is valid.
type Blockhash struct {
	Hash                 string
	LastValidBlockHeight uint64
}
