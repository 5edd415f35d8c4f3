package entity

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

// JupiterPriceResponse is the body of the price endpoint. Mints without a price map to null.
type JupiterPriceResponse struct {
	Data      map[string]*JupiterPriceData `json:"data"`
	TimeTaken float64                      `json:"timeTaken"`
}

// JupiterPriceData is the price entry for one mint.
type JupiterPriceData struct {
	ID    string      `json:"id"`
	Type  string      `json:"type"`
	Price FlexDecimal `json:"price"`
}

// JupiterQuoteResponse is the body of the quote endpoint.
type JupiterQuoteResponse struct {
	InputMint            string             `json:"inputMint"`
	InAmount             string             `json:"inAmount"`
	OutputMint           string             `json:"outputMint"`
	OutAmount            string             `json:"outAmount"`
	OtherAmountThreshold string             `json:"otherAmountThreshold"`
	SwapMode             string             `json:"swapMode"`
	SlippageBps          int                `json:"slippageBps"`
	PriceImpactPct       FlexDecimal        `json:"priceImpactPct"`
	RoutePlan            []JupiterRoutePlan `json:"routePlan"`
	ContextSlot          uint64             `json:"contextSlot"`

	// set on failure
	Error     string `json:"error"`
	ErrorCode string `json:"errorCode"`
}

// JupiterRoutePlan is one hop of a quoted route.
type JupiterRoutePlan struct {
	SwapInfo struct {
		AmmKey     string `json:"ammKey"`
		Label      string `json:"label"`
		InputMint  string `json:"inputMint"`
		OutputMint string `json:"outputMint"`
		InAmount   string `json:"inAmount"`
		OutAmount  string `json:"outAmount"`
	} `json:"swapInfo"`
	Percent int `json:"percent"`
}

// FlexDecimal decodes a decimal sent either as a JSON string or a JSON number.
// A null or empty value decodes to the zero value with Valid false.
type FlexDecimal struct {
	Value decimal.Decimal
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexDecimal) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = FlexDecimal{}
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("decode decimal %s: %w", string(data), err)
	}
	*f = FlexDecimal{Value: d, Valid: true}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexDecimal) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(f.Value.String())
}
