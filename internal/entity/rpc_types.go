package entity

import jsoniter "github.com/json-iterator/go"

// RPCRequest is a JSON-RPC 2.0 request envelope.
type RPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

// RPCResponse is a JSON-RPC 2.0 response envelope.
type RPCResponse struct {
	JSONRPC string              `json:"jsonrpc"`
	ID      uint64              `json:"id"`
	Result  jsoniter.RawMessage `json:"result,omitempty"`
	Error   *RPCErrorBody       `json:"error,omitempty"`
}

// RPCErrorBody is the error member of a JSON-RPC response.
type RPCErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RPCContext is the slot context wrapped around most Solana results.
type RPCContext struct {
	Slot uint64 `json:"slot"`
}

// BalanceResult is the result of getBalance.
type BalanceResult struct {
	Context RPCContext `json:"context"`
	Value   uint64     `json:"value"`
}

// TokenAmount is the parsed token amount of an SPL token account.
type TokenAmount struct {
	Amount         string   `json:"amount"`
	Decimals       uint8    `json:"decimals"`
	UIAmount       *float64 `json:"uiAmount"`
	UIAmountString string   `json:"uiAmountString"`
}

// TokenAccountsResult is the result of getTokenAccountsByOwner with jsonParsed encoding.
type TokenAccountsResult struct {
	Context RPCContext `json:"context"`
	Value   []struct {
		Pubkey  string `json:"pubkey"`
		Account struct {
			Data struct {
				Parsed struct {
					Info struct {
						Mint        string      `json:"mint"`
						Owner       string      `json:"owner"`
						TokenAmount TokenAmount `json:"tokenAmount"`
					} `json:"info"`
					Type string `json:"type"`
				} `json:"parsed"`
				Program string `json:"program"`
			} `json:"data"`
		} `json:"account"`
	} `json:"value"`
}

// LatestBlockhashResult is the result of getLatestBlockhash.
type LatestBlockhashResult struct {
	Context RPCContext `json:"context"`
	Value   struct {
		Blockhash            string `json:"blockhash"`
		LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
	} `json:"value"`
}

// AccountInfoResult is the result of getAccountInfo with base64 encoding. Value is nil
// for accounts that do not exist.
type AccountInfoResult struct {
	Context RPCContext `json:"context"`
	Value   *struct {
		Lamports   uint64   `json:"lamports"`
		Owner      string   `json:"owner"`
		Executable bool     `json:"executable"`
		RentEpoch  uint64   `json:"rentEpoch"`
		Data       []string `json:"data"`
		Space      *int     `json:"space"`
	} `json:"value"`
}

// SignatureResult is one element of getSignaturesForAddress.
type SignatureResult struct {
	Signature          string              `json:"signature"`
	Slot               uint64              `json:"slot"`
	Err                jsoniter.RawMessage `json:"err"`
	Memo               *string             `json:"memo"`
	BlockTime          *int64              `json:"blockTime"`
	ConfirmationStatus string              `json:"confirmationStatus"`
}
