package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solagent/internal/domain/entity"
	"solagent/internal/infrastructure/httpclient"
	"solagent/internal/pkg/metrics"
)

func newJupiter(srvURL string) httpclient.JupiterClient {
	return NewJupiterClient(srvURL+"/price", srvURL+"/quote", 2*time.Second, 3, nil, metrics.New())
}

func TestGetPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/price", r.URL.Path)
		assert.Equal(t, "m1,m2,m3", r.URL.Query().Get("ids"))
		_, _ = w.Write([]byte(`{"data":{"m1":{"id":"m1","price":"142.5"},"m2":{"id":"m2","price":1.0001},"m3":null},"timeTaken":0.01}`))
	}))
	defer srv.Close()

	prices, err := newJupiter(srv.URL).GetPrices(context.Background(), []string{"m1", "m2", "m3"})
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, "142.5", prices["m1"].String())
	assert.Equal(t, "1.0001", prices["m2"].String())
}

func TestGetPrices_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	c := newJupiter(srv.URL)

	_, err := c.GetPrices(context.Background(), []string{"m1"})
	assert.ErrorIs(t, err, entity.ErrTransport)

	_, err = c.GetPrices(context.Background(), []string{"a", "b", "c", "d"})
	assert.ErrorContains(t, err, "exceeds max tokens")

	prices, err := c.GetPrices(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, prices)
}

func TestGetQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "in", q.Get("inputMint"))
		assert.Equal(t, "out", q.Get("outputMint"))
		assert.Equal(t, "1999999995", q.Get("amount"))
		assert.Equal(t, "50", q.Get("slippageBps"))
		_, _ = w.Write([]byte(`{"inputMint":"in","inAmount":"1999999995","outputMint":"out","outAmount":"284123456",
			"slippageBps":50,"priceImpactPct":"0.0012","routePlan":[{"percent":100},{"percent":100}]}`))
	}))
	defer srv.Close()

	quote, err := newJupiter(srv.URL).GetQuote(context.Background(), httpclient.QuoteRequest{
		InputMint: "in", OutputMint: "out", Amount: 1999999995, SlippageBps: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(284123456), quote.OutAmount)
	assert.Equal(t, uint64(1999999995), quote.InAmount)
	assert.Equal(t, 2, quote.HopCount)
	assert.Equal(t, "0.0012", quote.PriceImpactPct.String())
	assert.NotEmpty(t, quote.Raw)
}

func TestGetQuote_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Could not find any route","errorCode":"COULD_NOT_FIND_ANY_ROUTE"}`))
	}))
	defer srv.Close()

	_, err := newJupiter(srv.URL).GetQuote(context.Background(), httpclient.QuoteRequest{InputMint: "a", OutputMint: "b", Amount: 1, SlippageBps: 50})
	var qErr *entity.QuoteError
	require.True(t, errors.As(err, &qErr), "got %v", err)
	assert.Equal(t, "Could not find any route", qErr.Message)
	assert.Equal(t, "COULD_NOT_FIND_ANY_ROUTE", qErr.ErrorCode)
}

func TestGetQuote_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()

	_, err := newJupiter(u).GetQuote(context.Background(), httpclient.QuoteRequest{InputMint: "a", OutputMint: "b", Amount: 1})
	assert.ErrorIs(t, err, entity.ErrTransport)
}

func TestGetQuote_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewJupiterClient(srv.URL, srv.URL, 50*time.Millisecond, 10, nil, nil)
	_, err := c.GetQuote(context.Background(), httpclient.QuoteRequest{InputMint: "a", OutputMint: "b", Amount: 1})
	assert.ErrorIs(t, err, entity.ErrTransport)
	assert.ErrorIs(t, err, entity.ErrTimeout)
}
