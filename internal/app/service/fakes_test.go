package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
	"solagent/internal/infrastructure/httpclient"
)

var errBoom = errors.New("boom")

// fakeSolana serves balances from maps and counts calls.
type fakeSolana struct {
	mu        sync.Mutex
	native    map[string]decimal.Decimal
	tokens    map[string]decimal.Decimal // key: address+"/"+mint
	failMints map[string]error
	nativeErr error
	calls     atomic.Int32
	cfg       entity.ClientConfig
}

func newFakeSolana() *fakeSolana {
	return &fakeSolana{
		native:    map[string]decimal.Decimal{},
		tokens:    map[string]decimal.Decimal{},
		failMints: map[string]error{},
		cfg:       entity.DefaultClientConfig(),
	}
}

func (f *fakeSolana) Call(context.Context, string, []any) ([]byte, error) {
	f.calls.Add(1)
	return nil, errors.New("not implemented")
}

func (f *fakeSolana) GetBalance(_ context.Context, address string) (decimal.Decimal, error) {
	f.calls.Add(1)
	if f.nativeErr != nil {
		return decimal.Zero, f.nativeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.native[address], nil
}

func (f *fakeSolana) GetTokenBalance(_ context.Context, address, mint string) (decimal.Decimal, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failMints[mint]; ok {
		return decimal.Zero, err
	}
	return f.tokens[address+"/"+mint], nil
}

func (f *fakeSolana) GetRecentBlockhash(context.Context) (entity.Blockhash, error) {
	f.calls.Add(1)
	return entity.Blockhash{Hash: "FakeHash", LastValidBlockHeight: 100}, nil
}

func (f *fakeSolana) GetSlot(context.Context) (uint64, error) {
	f.calls.Add(1)
	return 777, nil
}

func (f *fakeSolana) GetAccountInfo(_ context.Context, address string) (*entity.AccountInfo, error) {
	f.calls.Add(1)
	if address == "Missing" {
		return nil, nil
	}
	return &entity.AccountInfo{Lamports: 1, Owner: "Owner"}, nil
}

func (f *fakeSolana) GetSignaturesForAddress(_ context.Context, _ string, limit int) ([]entity.SignatureInfo, error) {
	f.calls.Add(1)
	out := make([]entity.SignatureInfo, limit)
	return out, nil
}

func (f *fakeSolana) Config() entity.ClientConfig { return f.cfg }

type fakeProvider struct {
	client *fakeSolana
	last   entity.ClientConfig
}

func (p *fakeProvider) GetClient(cfg entity.ClientConfig) (port.SolanaClient, error) {
	p.last = cfg
	return p.client, nil
}

// fakeJupiter serves prices by mint and canned quotes.
type fakeJupiter struct {
	mu          sync.Mutex
	prices      map[string]decimal.Decimal
	priceErr    error
	priceCalls  int
	batches     [][]string
	quote       *entity.SwapQuote
	quoteErr    error
	quoteCalls  int
	lastRequest httpclient.QuoteRequest
}

func (f *fakeJupiter) GetPrices(_ context.Context, mints []string) (map[string]decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.priceCalls++
	f.batches = append(f.batches, append([]string(nil), mints...))
	if f.priceErr != nil {
		return nil, f.priceErr
	}
	out := map[string]decimal.Decimal{}
	for _, m := range mints {
		if p, ok := f.prices[m]; ok {
			out[m] = p
		}
	}
	return out, nil
}

func (f *fakeJupiter) GetQuote(_ context.Context, r httpclient.QuoteRequest) (*entity.SwapQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quoteCalls++
	f.lastRequest = r
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	q := *f.quote
	q.InputMint, q.OutputMint, q.InAmount, q.SlippageBps = r.InputMint, r.OutputMint, r.Amount, r.SlippageBps
	return &q, nil
}

// fakePrices is a static TokenPriceService.
type fakePrices struct {
	prices    map[string]decimal.Decimal
	requested [][]string
}

func (f *fakePrices) GetTokenPrice(ctx context.Context, symbol string) entity.Price {
	return f.GetTokenPrices(ctx, []string{symbol})[strings.ToUpper(symbol)]
}

func (f *fakePrices) GetTokenPrices(_ context.Context, symbols []string) map[string]entity.Price {
	f.requested = append(f.requested, symbols)
	out := map[string]entity.Price{}
	for _, s := range symbols {
		key := strings.ToUpper(s)
		if p, ok := f.prices[key]; ok {
			out[key] = entity.PriceOf(p)
		} else {
			out[key] = entity.Unavailable
		}
	}
	return out
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testRegistry() *entity.TokenRegistry {
	return entity.NewTokenRegistry(
		entity.TokenDescriptor{Symbol: "SOL", Mint: "SolMint", Decimals: 9},
		entity.TokenDescriptor{Symbol: "USDC", Mint: "UsdcMint", Decimals: 6},
		entity.TokenDescriptor{Symbol: "JUP", Mint: "JupMint", Decimals: 6},
		entity.TokenDescriptor{Symbol: "BONK", Mint: "BonkMint", Decimals: 5, DisplayDigits: 8},
	)
}
