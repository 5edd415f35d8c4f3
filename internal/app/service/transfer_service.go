package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
	"solagent/internal/pkg/utils"
)

// BaseFeeLamports is the signature fee of a single-signer transaction.
const BaseFeeLamports = 5000

// transferServiceImpl implements port.TransferService. It validates and prices a
// transfer and never signs or broadcasts anything.
type transferServiceImpl struct {
	registry       *entity.TokenRegistry
	clientProvider port.SolanaClientProvider
	configStore    port.ConfigStore
	clientDefaults entity.ClientConfig
	validator      port.AddressValidator
	logger         port.Logger
}

// NewTransferService creates a new instance of transferServiceImpl.
func NewTransferService(registry *entity.TokenRegistry, cp port.SolanaClientProvider, cs port.ConfigStore, defaults entity.ClientConfig, av port.AddressValidator, l port.Logger) port.TransferService {
	return &transferServiceImpl{
		registry:       registry,
		clientProvider: cp,
		configStore:    cs,
		clientDefaults: defaults,
		validator:      av,
		logger:         l,
	}
}

// SimulateTransfer implements port.TransferService.
func (s *transferServiceImpl) SimulateTransfer(ctx context.Context, req entity.TransferRequest) (*entity.TransferPlan, error) {
	if err := s.validator.ValidateAddress(req.To); err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}
	if req.To == req.From {
		return nil, fmt.Errorf("%w: recipient equals sender", entity.ErrInvalidInput)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", entity.ErrInvalidInput)
	}
	if len(req.Memo) > entity.MaxMemoBytes {
		return nil, fmt.Errorf("%w: memo is %d bytes, limit is %d", entity.ErrInvalidInput, len(req.Memo), entity.MaxMemoBytes)
	}

	token := s.registry.Native()
	if sym := strings.TrimSpace(req.Symbol); sym != "" {
		t, ok := s.registry.Lookup(sym)
		if !ok {
			return nil, entity.UnknownTokenError(sym)
		}
		token = t
	}

	baseUnits, err := utils.ToBaseUnits(req.Amount, token.Decimals)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}
	if baseUnits == 0 {
		return nil, fmt.Errorf("%w: amount %s is below the smallest unit of %s", entity.ErrInvalidInput, req.Amount.String(), token.Symbol)
	}

	client, err := solanaClient(s.configStore, s.clientProvider, s.clientDefaults)
	if err != nil {
		return nil, err
	}

	native := s.registry.Native()
	plan := &entity.TransferPlan{
		From:      req.From,
		To:        req.To,
		Token:     token,
		Amount:    utils.ToDisplayUnits(baseUnits, token.Decimals),
		BaseUnits: baseUnits,
		Memo:      req.Memo,
		NativeFee: utils.ToDisplayUnits(BaseFeeLamports, native.Decimals),
	}

	plan.FeeBalance, err = client.GetBalance(ctx, req.From)
	if err != nil {
		return nil, fmt.Errorf("sender balance: %w", err)
	}
	if token.IsNative {
		plan.Balance = plan.FeeBalance
	} else {
		plan.Balance, err = client.GetTokenBalance(ctx, req.From, token.Mint)
		if err != nil {
			return nil, fmt.Errorf("sender %s balance: %w", token.Symbol, err)
		}
	}

	needed := plan.Amount
	if token.IsNative {
		needed = needed.Add(plan.NativeFee)
	}
	if plan.Balance.LessThan(needed) {
		return plan, fmt.Errorf("%w: have %s %s, need %s", entity.ErrInsufficientFunds,
			plan.Balance.String(), token.Symbol, needed.String())
	}
	if !token.IsNative && plan.FeeBalance.LessThan(plan.NativeFee) {
		return plan, fmt.Errorf("%w: have %s %s for fees, need %s", entity.ErrInsufficientFunds,
			plan.FeeBalance.String(), native.Symbol, plan.NativeFee.String())
	}

	plan.Blockhash, err = client.GetRecentBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("recent blockhash: %w", err)
	}
	s.logger.Info("Transfer simulated", "from", req.From, "to", req.To, "symbol", token.Symbol,
		"base_units", baseUnits, "blockhash", plan.Blockhash.Hash)
	return plan, nil
}

// TotalNativeCost is the SOL a plan would debit, fee included.
func TotalNativeCost(plan *entity.TransferPlan) decimal.Decimal {
	if plan.Token.IsNative {
		return plan.Amount.Add(plan.NativeFee)
	}
	return plan.NativeFee
}
