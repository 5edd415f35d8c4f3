package entity

import "strings"

// DefaultDisplayDigits is used for tokens that do not declare their own display precision.
const DefaultDisplayDigits = 6

// TokenDescriptor holds the details of a specific fungible asset.
type TokenDescriptor struct {
	Symbol        string `json:"symbol" yaml:"symbol"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	Mint          string `json:"mint" yaml:"mint"`
	Decimals      uint8  `json:"decimals" yaml:"decimals"`
	DisplayDigits int    `json:"displayDigits,omitempty" yaml:"displayDigits,omitempty"`
	IsNative      bool   `json:"-" yaml:"-"`
}

// Digits returns the number of fractional digits used when printing amounts of this token.
func (t TokenDescriptor) Digits() int {
	if t.DisplayDigits > 0 {
		return t.DisplayDigits
	}
	return DefaultDisplayDigits
}

// TokenRegistry is an ordered, read-only set of token descriptors.
// The native asset is always at position zero.
type TokenRegistry struct {
	tokens   []TokenDescriptor
	bySymbol map[string]int
	byMint   map[string]int
}

// NewTokenRegistry builds a registry from the given descriptors. The first descriptor is
// treated as the native asset. Later duplicates of a symbol or mint are ignored.
func NewTokenRegistry(tokens ...TokenDescriptor) *TokenRegistry {
	r := &TokenRegistry{
		tokens:   make([]TokenDescriptor, 0, len(tokens)),
		bySymbol: make(map[string]int, len(tokens)),
		byMint:   make(map[string]int, len(tokens)),
	}
	for i, t := range tokens {
		key := strings.ToUpper(t.Symbol)
		if _, dup := r.bySymbol[key]; dup {
			continue
		}
		if _, dup := r.byMint[t.Mint]; dup {
			continue
		}
		t.IsNative = i == 0
		r.bySymbol[key] = len(r.tokens)
		r.byMint[t.Mint] = len(r.tokens)
		r.tokens = append(r.tokens, t)
	}
	return r
}

// Native returns the native asset descriptor.
func (r *TokenRegistry) Native() TokenDescriptor {
	return r.tokens[0]
}

// Tokens returns a copy of all descriptors in declaration order.
func (r *TokenRegistry) Tokens() []TokenDescriptor {
	out := make([]TokenDescriptor, len(r.tokens))
	copy(out, r.tokens)
	return out
}

// Lookup finds a descriptor by symbol, case-insensitively.
func (r *TokenRegistry) Lookup(symbol string) (TokenDescriptor, bool) {
	i, ok := r.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return TokenDescriptor{}, false
	}
	return r.tokens[i], true
}

// LookupMint finds a descriptor by mint address.
func (r *TokenRegistry) LookupMint(mint string) (TokenDescriptor, bool) {
	i, ok := r.byMint[mint]
	if !ok {
		return TokenDescriptor{}, false
	}
	return r.tokens[i], true
}

// Position returns the declaration index of a symbol, or -1.
func (r *TokenRegistry) Position(symbol string) int {
	i, ok := r.bySymbol[strings.ToUpper(symbol)]
	if !ok {
		return -1
	}
	return i
}

// Len returns the number of registered tokens.
func (r *TokenRegistry) Len() int {
	return len(r.tokens)
}
