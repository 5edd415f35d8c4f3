package entity

// TokenLookupError records a token that was left out of a report because its lookup failed.
type TokenLookupError struct {
	WalletAddress string
	TokenSymbol   string
	Mint          string
	IsNative      bool
	Message       string
}
