package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
	wire "solagent/internal/entity"
	"solagent/internal/pkg/metrics"
	"solagent/internal/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultRPCTimeout = 30 * time.Second

	lamportsDecimals = 9
)

// Options tune a SolanaClient. Zero values fall back to defaults.
type Options struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// SolanaClient implements port.SolanaClient over JSON-RPC 2.0 using fasthttp.
// Every call is a single attempt.
type SolanaClient struct {
	cfg       entity.ClientConfig
	http      *fasthttp.Client
	timeout   time.Duration
	limiter   *rate.Limiter
	logger    *zap.Logger
	metrics   *metrics.Metrics
	requestID atomic.Uint64
}

var _ port.SolanaClient = (*SolanaClient)(nil)

// NewSolanaClient creates a client bound to cfg.
func NewSolanaClient(cfg entity.ClientConfig, opts Options, logger *zap.Logger, m *metrics.Metrics) *SolanaClient {
	cfg = cfg.WithDefaults()
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultRPCTimeout
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SolanaClient{
		cfg:     cfg,
		http:    &fasthttp.Client{Name: "solagent"},
		timeout: opts.Timeout,
		limiter: limiter,
		logger:  logger.Named("SolanaClient"),
		metrics: m,
	}
}

// Config returns the configuration the client is bound to.
func (c *SolanaClient) Config() entity.ClientConfig {
	return c.cfg
}

// Call issues one JSON-RPC request and returns the raw result.
func (c *SolanaClient) Call(ctx context.Context, method string, params []any) ([]byte, error) {
	start := time.Now()
	result, err := c.do(ctx, method, params)
	c.metrics.ObserveRPC(method, outcomeOf(err), time.Since(start))
	return result, err
}

func (c *SolanaClient) do(ctx context.Context, method string, params []any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s: %v", entity.ErrTimeout, method, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrTransport, method, err)
	}

	body, err := json.Marshal(wire.RPCRequest{
		JSONRPC: "2.0",
		ID:      c.requestID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", method, err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.cfg.RPC)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBodyRaw(body)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	c.logger.Debug("RPC request", zap.String("method", method), zap.String("endpoint", c.cfg.RPC))
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			return nil, fmt.Errorf("%w: %s after %s", entity.ErrTimeout, method, c.timeout)
		}
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrTransport, method, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Debug("RPC non-200 response",
			zap.String("method", method),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()))
		return nil, fmt.Errorf("%w: %s: HTTP status %d", entity.ErrTransport, method, resp.StatusCode())
	}

	var envelope wire.RPCResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s: decode response: %v", entity.ErrTransport, method, err)
	}
	if envelope.Error != nil {
		return nil, &entity.RPCError{Code: envelope.Error.Code, Message: envelope.Error.Message}
	}

	// copy out of the pooled response buffer
	return append([]byte(nil), envelope.Result...), nil
}

func outcomeOf(err error) string {
	var rpcErr *entity.RPCError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &rpcErr):
		return "rpc_error"
	case errors.Is(err, entity.ErrTimeout):
		return "timeout"
	default:
		return "transport_error"
	}
}

func (c *SolanaClient) commitment() map[string]any {
	return map[string]any{"commitment": c.cfg.Commitment}
}

func decodeResult(method string, raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: decode %s result: %v", entity.ErrTransport, method, err)
	}
	return nil
}

// GetBalance returns the SOL balance of address. Unknown accounts report zero.
func (c *SolanaClient) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	raw, err := c.Call(ctx, "getBalance", []any{address, c.commitment()})
	if err != nil {
		return decimal.Zero, err
	}
	var res wire.BalanceResult
	if err := decodeResult("getBalance", raw, &res); err != nil {
		return decimal.Zero, err
	}
	return utils.ToDisplayUnits(res.Value, lamportsDecimals), nil
}

// GetTokenBalance returns the UI amount of the first token account owned by address
// for mint, or zero when there is none. Further accounts for the same mint are ignored.
func (c *SolanaClient) GetTokenBalance(ctx context.Context, address, mint string) (decimal.Decimal, error) {
	params := []any{
		address,
		map[string]any{"mint": mint},
		map[string]any{"encoding": "jsonParsed", "commitment": c.cfg.Commitment},
	}
	raw, err := c.Call(ctx, "getTokenAccountsByOwner", params)
	if err != nil {
		return decimal.Zero, err
	}
	var res wire.TokenAccountsResult
	if err := decodeResult("getTokenAccountsByOwner", raw, &res); err != nil {
		return decimal.Zero, err
	}
	if len(res.Value) == 0 {
		return decimal.Zero, nil
	}
	if len(res.Value) > 1 {
		c.logger.Debug("Multiple token accounts for mint, using the first",
			zap.String("mint", mint), zap.Int("accounts", len(res.Value)))
	}
	return parseTokenAmount(res.Value[0].Account.Data.Parsed.Info.TokenAmount)
}

func parseTokenAmount(a wire.TokenAmount) (decimal.Decimal, error) {
	if a.UIAmountString != "" {
		d, err := decimal.NewFromString(a.UIAmountString)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: bad uiAmountString %q: %v", entity.ErrTransport, a.UIAmountString, err)
		}
		return d, nil
	}
	if a.Amount != "" {
		base, err := decimal.NewFromString(a.Amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: bad token amount %q: %v", entity.ErrTransport, a.Amount, err)
		}
		return base.Shift(-int32(a.Decimals)), nil
	}
	if a.UIAmount != nil {
		return decimal.NewFromFloat(*a.UIAmount), nil
	}
	return decimal.Zero, nil
}

// GetRecentBlockhash returns the latest blockhash via getLatestBlockhash.
func (c *SolanaClient) GetRecentBlockhash(ctx context.Context) (entity.Blockhash, error) {
	raw, err := c.Call(ctx, "getLatestBlockhash", []any{c.commitment()})
	if err != nil {
		return entity.Blockhash{}, err
	}
	var res wire.LatestBlockhashResult
	if err := decodeResult("getLatestBlockhash", raw, &res); err != nil {
		return entity.Blockhash{}, err
	}
	return entity.Blockhash{Hash: res.Value.Blockhash, LastValidBlockHeight: res.Value.LastValidBlockHeight}, nil
}

// GetSlot returns the current slot.
func (c *SolanaClient) GetSlot(ctx context.Context) (uint64, error) {
	raw, err := c.Call(ctx, "getSlot", []any{c.commitment()})
	if err != nil {
		return 0, err
	}
	var slot uint64
	if err := decodeResult("getSlot", raw, &slot); err != nil {
		return 0, err
	}
	return slot, nil
}

// GetAccountInfo returns a summary of an account, or nil when it does not exist.
func (c *SolanaClient) GetAccountInfo(ctx context.Context, address string) (*entity.AccountInfo, error) {
	params := []any{address, map[string]any{"encoding": "base64", "commitment": c.cfg.Commitment}}
	raw, err := c.Call(ctx, "getAccountInfo", params)
	if err != nil {
		return nil, err
	}
	var res wire.AccountInfoResult
	if err := decodeResult("getAccountInfo", raw, &res); err != nil {
		return nil, err
	}
	if res.Value == nil {
		return nil, nil
	}

	info := &entity.AccountInfo{
		Lamports:   res.Value.Lamports,
		Owner:      res.Value.Owner,
		Executable: res.Value.Executable,
		RentEpoch:  res.Value.RentEpoch,
	}
	switch {
	case res.Value.Space != nil:
		info.DataLength = *res.Value.Space
	case len(res.Value.Data) > 0:
		if data, err := base64.StdEncoding.DecodeString(res.Value.Data[0]); err == nil {
			info.DataLength = len(data)
		}
	}
	return info, nil
}

// GetSignaturesForAddress returns up to limit recent signatures, newest first.
func (c *SolanaClient) GetSignaturesForAddress(ctx context.Context, address string, limit int) ([]entity.SignatureInfo, error) {
	opts := map[string]any{"commitment": signatureCommitment(c.cfg.Commitment)}
	if limit > 0 {
		opts["limit"] = limit
	}
	raw, err := c.Call(ctx, "getSignaturesForAddress", []any{address, opts})
	if err != nil {
		return nil, err
	}
	var res []wire.SignatureResult
	if err := decodeResult("getSignaturesForAddress", raw, &res); err != nil {
		return nil, err
	}

	out := make([]entity.SignatureInfo, 0, len(res))
	for _, s := range res {
		info := entity.SignatureInfo{
			Signature:          s.Signature,
			Slot:               s.Slot,
			BlockTime:          s.BlockTime,
			Failed:             len(s.Err) > 0 && string(s.Err) != "null",
			ConfirmationStatus: s.ConfirmationStatus,
		}
		if s.Memo != nil {
			info.Memo = *s.Memo
		}
		out = append(out, info)
	}
	return out, nil
}

// signatureCommitment maps processed to confirmed, which getSignaturesForAddress requires
// at minimum.
func signatureCommitment(commitment string) string {
	if strings.EqualFold(commitment, string(rpc.CommitmentProcessed)) {
		return string(rpc.CommitmentConfirmed)
	}
	return commitment
}
