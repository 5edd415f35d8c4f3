package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solagent/internal/domain/entity"
	"solagent/internal/infrastructure/walletstore"
	"solagent/internal/pkg/logger"
	"solagent/internal/pkg/metrics"
	"solagent/internal/pkg/utils"
)

const owner = "OwnerAddr"

func newBalanceFixture(prices map[string]string) (*BalanceServiceImpl, *fakeSolana, *fakePrices) {
	sol := newFakeSolana()
	fp := &fakePrices{prices: map[string]decimal.Decimal{}}
	for k, v := range prices {
		fp.prices[k] = d(v)
	}
	store := walletstore.NewMemoryStore()
	svc := NewBalanceService(testRegistry(), &fakeProvider{client: sol}, store.Configs(), entity.DefaultClientConfig(), fp, logger.Nop(), metrics.New(), 4)
	return svc, sol, fp
}

func TestGetAllBalances_OnlyNativeWhenOthersZero(t *testing.T) {
	svc, sol, _ := newBalanceFixture(map[string]string{"SOL": "150"})
	sol.native[owner] = d("2.5")

	report, err := svc.GetAllBalances(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)

	e := report.Entries[0]
	assert.Equal(t, "SOL", e.Token.Symbol)
	assert.Equal(t, "2.500000", utils.FormatAmount(e.Quantity, e.Token.Digits()))
	require.True(t, e.Value.Available)
	assert.True(t, d("375").Equal(e.Value.Value))
	assert.True(t, d("375").Equal(report.TotalValue))
}

func TestGetAllBalances_NativeAlwaysIncluded(t *testing.T) {
	svc, _, _ := newBalanceFixture(nil)

	report, err := svc.GetAllBalances(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.True(t, report.Entries[0].Quantity.IsZero())
	assert.False(t, report.Entries[0].Price.Available)
	assert.False(t, report.Entries[0].Value.Available)
}

func TestGetAllBalances_FailureIsolationAndOrder(t *testing.T) {
	svc, sol, fp := newBalanceFixture(map[string]string{"SOL": "100", "BONK": "0.00002"})
	sol.native[owner] = d("1")
	sol.tokens[owner+"/UsdcMint"] = d("10")
	sol.tokens[owner+"/BonkMint"] = d("1000000")
	sol.failMints["UsdcMint"] = errBoom

	report, err := svc.GetAllBalances(context.Background(), owner)
	require.NoError(t, err)

	require.Len(t, report.Entries, 2)
	assert.Equal(t, "SOL", report.Entries[0].Token.Symbol)
	assert.Equal(t, "BONK", report.Entries[1].Token.Symbol)
	assert.True(t, d("20").Equal(report.Entries[1].Value.Value))

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "USDC", report.Skipped[0].TokenSymbol)
	assert.Contains(t, report.Skipped[0].Message, "boom")

	// zero-balance JUP and failed USDC are never priced
	require.Len(t, fp.requested, 1)
	assert.ElementsMatch(t, []string{"SOL", "BONK"}, fp.requested[0])
	assert.True(t, d("120").Equal(report.TotalValue))
}

func TestGetAllBalances_NativeFailureAborts(t *testing.T) {
	svc, sol, _ := newBalanceFixture(nil)
	sol.nativeErr = entity.ErrTimeout

	_, err := svc.GetAllBalances(context.Background(), owner)
	assert.ErrorIs(t, err, entity.ErrTimeout)
}

func TestGetTokenBalance_ZeroIsReported(t *testing.T) {
	svc, _, fp := newBalanceFixture(map[string]string{"USDC": "1"})

	report, err := svc.GetTokenBalance(context.Background(), owner, "usdc")
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, "USDC", report.Entries[0].Token.Symbol)
	assert.True(t, report.Entries[0].Quantity.IsZero())
	assert.Empty(t, fp.requested)
}

func TestGetTokenBalance_Native(t *testing.T) {
	svc, sol, _ := newBalanceFixture(map[string]string{"SOL": "10"})
	sol.native[owner] = d("0.5")

	report, err := svc.GetTokenBalance(context.Background(), owner, "SOL")
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.True(t, report.Entries[0].Token.IsNative)
	assert.True(t, d("5").Equal(report.TotalValue))
}

func TestGetTokenBalance_UnknownTokenNoNetwork(t *testing.T) {
	svc, sol, _ := newBalanceFixture(nil)

	_, err := svc.GetTokenBalance(context.Background(), owner, "NOPE")
	assert.ErrorIs(t, err, entity.ErrUnknownToken)
	assert.Equal(t, int32(0), sol.calls.Load())
}

func TestGetTokenBalance_FailureSurfaces(t *testing.T) {
	svc, sol, _ := newBalanceFixture(nil)
	sol.failMints["JupMint"] = entity.ErrTransport

	_, err := svc.GetTokenBalance(context.Background(), owner, "JUP")
	assert.ErrorIs(t, err, entity.ErrTransport)
}

func TestAssembleReport_OrdersByPosition(t *testing.T) {
	reg := testRegistry()
	tokens := reg.Tokens()
	native := entity.TokenLookup{Position: 0, Token: tokens[0], Balance: d("0")}
	lookups := []entity.TokenLookup{
		{Position: 3, Token: tokens[3], Balance: d("5")},
		{Position: 1, Token: tokens[1], Balance: d("2")},
		{Position: 2, Token: tokens[2], Balance: d("0")},
	}
	prices := map[string]entity.Price{"USDC": entity.PriceOf(d("1"))}

	report := AssembleReport("a", native, lookups, prices, false)
	require.Len(t, report.Entries, 3)
	assert.Equal(t, []string{"SOL", "USDC", "BONK"}, symbolsOf(report))
	assert.False(t, report.Entries[2].Value.Available)
	assert.True(t, d("2").Equal(report.TotalValue))

	withZero := AssembleReport("a", native, lookups, prices, true)
	assert.Equal(t, []string{"SOL", "USDC", "JUP", "BONK"}, symbolsOf(withZero))
}

func symbolsOf(r *entity.BalanceReport) []string {
	out := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Token.Symbol
	}
	return out
}
