package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solagent/internal/domain/entity"
	"solagent/internal/infrastructure/walletstore"
	"solagent/internal/pkg/logger"
)

const (
	sender    = "SenderAddr"
	recipient = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
)

func newTransferFixture() (*fakeSolana, *transferServiceImpl) {
	sol := newFakeSolana()
	store := walletstore.NewMemoryStore()
	svc := NewTransferService(testRegistry(), &fakeProvider{client: sol}, store.Configs(), entity.DefaultClientConfig(), walletstore.NewSolanaKeys(), logger.Nop())
	return sol, svc.(*transferServiceImpl)
}

func TestSimulateTransfer_Native(t *testing.T) {
	sol, svc := newTransferFixture()
	sol.native[sender] = d("2")

	plan, err := svc.SimulateTransfer(context.Background(), entity.TransferRequest{
		From: sender, To: recipient, Amount: d("1.5"), Memo: "rent",
	})
	require.NoError(t, err)
	assert.Equal(t, "SOL", plan.Token.Symbol)
	assert.Equal(t, uint64(1500000000), plan.BaseUnits)
	assert.Equal(t, "FakeHash", plan.Blockhash.Hash)
	assert.True(t, d("0.000005").Equal(plan.NativeFee))
	assert.True(t, d("1.500005").Equal(TotalNativeCost(plan)))
}

func TestSimulateTransfer_InsufficientNative(t *testing.T) {
	sol, svc := newTransferFixture()
	sol.native[sender] = d("1.5")

	plan, err := svc.SimulateTransfer(context.Background(), entity.TransferRequest{From: sender, To: recipient, Amount: d("1.5")})
	assert.ErrorIs(t, err, entity.ErrInsufficientFunds)
	require.NotNil(t, plan)
	assert.True(t, d("1.5").Equal(plan.Balance))
}

func TestSimulateTransfer_Token(t *testing.T) {
	sol, svc := newTransferFixture()
	sol.native[sender] = d("0.01")
	sol.tokens[sender+"/UsdcMint"] = d("25")

	plan, err := svc.SimulateTransfer(context.Background(), entity.TransferRequest{
		From: sender, To: recipient, Symbol: "usdc", Amount: d("10.1234567"),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(10123456), plan.BaseUnits)
	assert.Equal(t, "10.123456", plan.Amount.String())
	assert.True(t, d("0.000005").Equal(TotalNativeCost(plan)))
}

func TestSimulateTransfer_TokenNeedsFeeBalance(t *testing.T) {
	sol, svc := newTransferFixture()
	sol.tokens[sender+"/UsdcMint"] = d("25")

	_, err := svc.SimulateTransfer(context.Background(), entity.TransferRequest{From: sender, To: recipient, Symbol: "USDC", Amount: d("1")})
	assert.ErrorIs(t, err, entity.ErrInsufficientFunds)
}

func TestSimulateTransfer_ValidationBeforeNetwork(t *testing.T) {
	sol, svc := newTransferFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		req  entity.TransferRequest
		want error
	}{
		{"bad recipient", entity.TransferRequest{From: sender, To: "nope", Amount: d("1")}, entity.ErrInvalidInput},
		{"self transfer", entity.TransferRequest{From: recipient, To: recipient, Amount: d("1")}, entity.ErrInvalidInput},
		{"zero amount", entity.TransferRequest{From: sender, To: recipient, Amount: d("0")}, entity.ErrInvalidInput},
		{"dust", entity.TransferRequest{From: sender, To: recipient, Amount: d("0.0000000001")}, entity.ErrInvalidInput},
		{"unknown token", entity.TransferRequest{From: sender, To: recipient, Symbol: "DOGE", Amount: d("1")}, entity.ErrUnknownToken},
		{"long memo", entity.TransferRequest{From: sender, To: recipient, Amount: d("1"), Memo: string(make([]byte, entity.MaxMemoBytes+1))}, entity.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SimulateTransfer(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, int32(0), sol.calls.Load())
}
