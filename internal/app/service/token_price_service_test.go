package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solagent/internal/domain/entity"
	"solagent/internal/pkg/logger"
	"solagent/internal/pkg/metrics"
)

func newPriceService(jc *fakeJupiter, batch int) *tokenPriceServiceImpl {
	return NewTokenPriceService(testRegistry(), jc, logger.Nop(), PriceOptions{CacheTTL: time.Minute, MaxTokensPerBatch: batch}, metrics.New()).(*tokenPriceServiceImpl)
}

func TestGetTokenPrice_UnknownSymbolUnavailable(t *testing.T) {
	jc := &fakeJupiter{}
	svc := newPriceService(jc, 10)

	p := svc.GetTokenPrice(context.Background(), "DOGE")
	assert.False(t, p.Available)
	assert.Equal(t, 0, jc.priceCalls)
}

func TestGetTokenPrice_TransportFailureUnavailable(t *testing.T) {
	jc := &fakeJupiter{priceErr: entity.ErrTransport}
	svc := newPriceService(jc, 10)

	p := svc.GetTokenPrice(context.Background(), "usdc")
	assert.False(t, p.Available)
	assert.Equal(t, 1, jc.priceCalls)

	// misses are not cached
	svc.GetTokenPrice(context.Background(), "usdc")
	assert.Equal(t, 2, jc.priceCalls)
}

func TestGetTokenPrices_BatchesAndCaches(t *testing.T) {
	jc := &fakeJupiter{prices: map[string]decimal.Decimal{
		"SolMint":  d("150.25"),
		"UsdcMint": d("1"),
		"BonkMint": d("0.00002"),
	}}
	svc := newPriceService(jc, 2)

	prices := svc.GetTokenPrices(context.Background(), []string{"sol", "USDC", "JUP", "BONK", "XYZ"})
	require.Len(t, prices, 5)
	assert.True(t, prices["SOL"].Available)
	assert.True(t, d("150.25").Equal(prices["SOL"].Value))
	assert.False(t, prices["JUP"].Available)
	assert.False(t, prices["XYZ"].Available)
	assert.Equal(t, [][]string{{"SolMint", "UsdcMint"}, {"JupMint", "BonkMint"}}, jc.batches)

	again := svc.GetTokenPrice(context.Background(), "SOL")
	assert.True(t, again.Available)
	assert.Equal(t, 2, jc.priceCalls, "cached price must not hit the API")
}
