package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"solagent/internal/domain/entity"
	wire "solagent/internal/entity"
	"solagent/internal/infrastructure/httpclient"
	"solagent/internal/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// jupiterClientImpl is the fasthttp implementation of httpclient.JupiterClient.
type jupiterClientImpl struct {
	client              *fasthttp.Client
	priceURL            string
	quoteURL            string
	timeout             time.Duration
	logger              *zap.Logger
	metrics             *metrics.Metrics
	maxTokensPerRequest int
}

// NewJupiterClient creates a new instance of jupiterClientImpl.
func NewJupiterClient(priceURL, quoteURL string, timeout time.Duration, maxTokensPerRequest int, logger *zap.Logger, m *metrics.Metrics) httpclient.JupiterClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &jupiterClientImpl{
		client:              &fasthttp.Client{Name: "solagent"},
		priceURL:            strings.TrimRight(priceURL, "/"),
		quoteURL:            strings.TrimRight(quoteURL, "/"),
		timeout:             timeout,
		logger:              logger.Named("JupiterClient"),
		metrics:             m,
		maxTokensPerRequest: maxTokensPerRequest,
	}
}

// get performs a GET and returns the status code and a copy of the body.
func (c *jupiterClientImpl) get(ctx context.Context, endpoint, requestURL string) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", entity.ErrTransport, err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	c.logger.Debug("Requesting Jupiter", zap.String("url", requestURL))
	start := time.Now()
	err := c.client.DoDeadline(req, resp, deadline)
	if err != nil {
		c.metrics.ObserveHTTP(endpoint, "transport_error", time.Since(start))
		c.logger.Debug("Jupiter request failed", zap.String("url", requestURL), zap.Error(err))
		if errors.Is(err, fasthttp.ErrTimeout) {
			return 0, nil, fmt.Errorf("%w: %w: %s", entity.ErrTransport, entity.ErrTimeout, endpoint)
		}
		return 0, nil, fmt.Errorf("%w: %s: %v", entity.ErrTransport, endpoint, err)
	}

	outcome := "ok"
	if resp.StatusCode() != fasthttp.StatusOK {
		outcome = "status_" + strconv.Itoa(resp.StatusCode())
	}
	c.metrics.ObserveHTTP(endpoint, outcome, time.Since(start))
	return resp.StatusCode(), append([]byte(nil), resp.Body()...), nil
}

// GetPrices implements httpclient.JupiterClient.
func (c *jupiterClientImpl) GetPrices(ctx context.Context, mints []string) (map[string]decimal.Decimal, error) {
	if len(mints) == 0 {
		return map[string]decimal.Decimal{}, nil
	}
	if c.maxTokensPerRequest > 0 && len(mints) > c.maxTokensPerRequest {
		return nil, fmt.Errorf("number of mints (%d) exceeds max tokens per request (%d)", len(mints), c.maxTokensPerRequest)
	}

	q := url.Values{}
	q.Set("ids", strings.Join(mints, ","))
	requestURL := c.priceURL + "?" + q.Encode()

	status, body, err := c.get(ctx, "price", requestURL)
	if err != nil {
		return nil, err
	}
	if status != fasthttp.StatusOK {
		c.logger.Warn("Jupiter price request failed", zap.Int("statusCode", status), zap.ByteString("responseBody", body))
		return nil, fmt.Errorf("%w: price API status %d", entity.ErrTransport, status)
	}

	var parsed wire.JupiterPriceResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode price response: %v", entity.ErrTransport, err)
	}

	prices := make(map[string]decimal.Decimal, len(parsed.Data))
	for mint, data := range parsed.Data {
		if data == nil || !data.Price.Valid {
			continue
		}
		prices[mint] = data.Price.Value
	}
	c.logger.Debug("Jupiter prices received", zap.Int("requested", len(mints)), zap.Int("priced", len(prices)))
	return prices, nil
}

// GetQuote implements httpclient.JupiterClient.
func (c *jupiterClientImpl) GetQuote(ctx context.Context, r httpclient.QuoteRequest) (*entity.SwapQuote, error) {
	q := url.Values{}
	q.Set("inputMint", r.InputMint)
	q.Set("outputMint", r.OutputMint)
	q.Set("amount", strconv.FormatUint(r.Amount, 10))
	q.Set("slippageBps", strconv.Itoa(r.SlippageBps))
	requestURL := c.quoteURL + "?" + q.Encode()

	status, body, err := c.get(ctx, "quote", requestURL)
	if err != nil {
		return nil, err
	}

	var parsed wire.JupiterQuoteResponse
	decodeErr := json.Unmarshal(body, &parsed)
	if decodeErr == nil && parsed.Error != "" {
		return nil, &entity.QuoteError{Message: parsed.Error, ErrorCode: parsed.ErrorCode}
	}
	if status != fasthttp.StatusOK {
		c.logger.Warn("Jupiter quote request failed", zap.Int("statusCode", status), zap.ByteString("responseBody", body))
		return nil, fmt.Errorf("%w: quote API status %d", entity.ErrTransport, status)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode quote response: %v", entity.ErrTransport, decodeErr)
	}

	outAmount, err := strconv.ParseUint(parsed.OutAmount, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad outAmount %q", entity.ErrTransport, parsed.OutAmount)
	}
	inAmount := r.Amount
	if parsed.InAmount != "" {
		if v, err := strconv.ParseUint(parsed.InAmount, 10, 64); err == nil {
			inAmount = v
		}
	}
	slippage := parsed.SlippageBps
	if slippage == 0 {
		slippage = r.SlippageBps
	}

	return &entity.SwapQuote{
		InputMint:      r.InputMint,
		OutputMint:     r.OutputMint,
		InAmount:       inAmount,
		OutAmount:      outAmount,
		HopCount:       len(parsed.RoutePlan),
		PriceImpactPct: parsed.PriceImpactPct.Value,
		SlippageBps:    slippage,
		Raw:            body,
	}, nil
}
