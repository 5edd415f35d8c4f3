package service

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
	"solagent/internal/infrastructure/httpclient"
	"solagent/internal/pkg/metrics"
	"solagent/internal/pkg/utils"
)

// PriceOptions tune the TokenPriceService.
type PriceOptions struct {
	CacheTTL          time.Duration
	MaxTokensPerBatch int
}

// tokenPriceServiceImpl implements port.TokenPriceService
type tokenPriceServiceImpl struct {
	registry    *entity.TokenRegistry
	jupiter     httpclient.JupiterClient
	logger      port.Logger
	metrics     *metrics.Metrics
	pricesCache *cache.Cache // mint -> decimal.Decimal
	batchSize   int
}

// NewTokenPriceService creates a new instance of tokenPriceServiceImpl.
func NewTokenPriceService(
	registry *entity.TokenRegistry,
	jc httpclient.JupiterClient,
	l port.Logger,
	opts PriceOptions,
	m *metrics.Metrics,
) port.TokenPriceService {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}
	return &tokenPriceServiceImpl{
		registry:    registry,
		jupiter:     jc,
		logger:      l,
		metrics:     m,
		pricesCache: cache.New(opts.CacheTTL, 2*opts.CacheTTL),
		batchSize:   opts.MaxTokensPerBatch,
	}
}

// GetTokenPrice implements port.TokenPriceService.
func (s *tokenPriceServiceImpl) GetTokenPrice(ctx context.Context, symbol string) entity.Price {
	return s.GetTokenPrices(ctx, []string{symbol})[strings.ToUpper(strings.TrimSpace(symbol))]
}

// GetTokenPrices implements port.TokenPriceService. Every requested symbol is present in
// the result; unknown symbols and failed lookups map to entity.Unavailable.
func (s *tokenPriceServiceImpl) GetTokenPrices(ctx context.Context, symbols []string) map[string]entity.Price {
	result := make(map[string]entity.Price, len(symbols))
	symbolsByMint := make(map[string][]string)
	var toFetch []string

	for _, raw := range symbols {
		key := strings.ToUpper(strings.TrimSpace(raw))
		result[key] = entity.Unavailable

		token, ok := s.registry.Lookup(key)
		if !ok {
			s.logger.Debug("Price requested for unknown symbol", "symbol", raw)
			continue
		}
		if cached, found := s.pricesCache.Get(token.Mint); found {
			s.metrics.PriceCache(true)
			result[key] = cached.(entity.Price)
			continue
		}
		if _, pending := symbolsByMint[token.Mint]; !pending {
			s.metrics.PriceCache(false)
			toFetch = append(toFetch, token.Mint)
		}
		symbolsByMint[token.Mint] = append(symbolsByMint[token.Mint], key)
	}

	for _, batch := range utils.BatchStrings(toFetch, s.batchSize) {
		prices, err := s.jupiter.GetPrices(ctx, batch)
		if err != nil {
			s.logger.Warn("Failed to fetch prices, treating as unavailable", "mints", len(batch), "error", err)
			continue
		}
		for _, mint := range batch {
			value, ok := prices[mint]
			if !ok {
				s.logger.Debug("No price returned for mint", "mint", mint)
				continue
			}
			price := entity.PriceOf(value)
			s.pricesCache.Set(mint, price, cache.DefaultExpiration)
			for _, key := range symbolsByMint[mint] {
				result[key] = price
			}
		}
	}
	return result
}
