package registry

import (
	"fmt"
	"strings"

	"solagent/internal/domain/entity"
)

// WrappedSOLMint is the mint that price and quote providers use for native SOL.
const WrappedSOLMint = "So11111111111111111111111111111111111111112"

var mainnetTokens = []entity.TokenDescriptor{
	{Symbol: "SOL", Name: "Solana", Mint: WrappedSOLMint, Decimals: 9},
	{Symbol: "USDC", Name: "USD Coin", Mint: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", Decimals: 6},
	{Symbol: "USDT", Name: "Tether USD", Mint: "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB", Decimals: 6},
	{Symbol: "JUP", Name: "Jupiter", Mint: "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN", Decimals: 6},
	{Symbol: "RAY", Name: "Raydium", Mint: "4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R", Decimals: 6},
	{Symbol: "mSOL", Name: "Marinade staked SOL", Mint: "mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So", Decimals: 9},
	{Symbol: "JitoSOL", Name: "Jito Staked SOL", Mint: "J1toso1uCk3RLmjorhTtrVwY9HJ7X8V9yYac6Y7kGCPn", Decimals: 9},
	// low unit price, more digits to stay readable
	{Symbol: "BONK", Name: "Bonk", Mint: "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", Decimals: 5, DisplayDigits: 8},
}

var devnetTokens = []entity.TokenDescriptor{
	{Symbol: "SOL", Name: "Solana", Mint: WrappedSOLMint, Decimals: 9},
	{Symbol: "USDC", Name: "USD Coin (devnet)", Mint: "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU", Decimals: 6},
}

// Defaults returns the built-in descriptors for a cluster, native asset first.
func Defaults(cluster string) ([]entity.TokenDescriptor, error) {
	var src []entity.TokenDescriptor
	switch strings.ToLower(cluster) {
	case "mainnet-beta", "mainnet":
		src = mainnetTokens
	case "devnet":
		src = devnetTokens
	default:
		return nil, fmt.Errorf("%w: no token registry for cluster %q", entity.ErrInvalidInput, cluster)
	}
	out := make([]entity.TokenDescriptor, len(src))
	copy(out, src)
	return out, nil
}

// Build returns the registry for a cluster with extra tokens appended after the built-ins.
// Extras that reuse a built-in symbol or mint are ignored.
func Build(cluster string, extra ...entity.TokenDescriptor) (*entity.TokenRegistry, error) {
	tokens, err := Defaults(cluster)
	if err != nil {
		return nil, err
	}
	return entity.NewTokenRegistry(append(tokens, extra...)...), nil
}
