package tokenloader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gagliardetto/solana-go"
	jsoniter "github.com/json-iterator/go"

	"solagent/internal/app/port"
	"solagent/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxDecimals bounds token decimals to what a u64 amount can express.
const maxDecimals = 19

// TokenFileLoader reads user-defined tokens from a JSON array of descriptors.
type TokenFileLoader struct {
	path   string
	logger port.Logger
}

// NewTokenLoader creates a new TokenFileLoader.
func NewTokenLoader(path string, log port.Logger) *TokenFileLoader {
	return &TokenFileLoader{path: path, logger: log}
}

// Load parses the token file. A missing file yields no tokens and no error.
// Malformed entries are skipped with a warning; an unparsable file is an error.
func (l *TokenFileLoader) Load() ([]entity.TokenDescriptor, error) {
	if l.path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Debug("No user token file", "path", l.path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token file %s: %w", l.path, err)
	}

	var tokensInFile []entity.TokenDescriptor
	if err := json.Unmarshal(data, &tokensInFile); err != nil {
		return nil, fmt.Errorf("%w: token file %s: %v", entity.ErrCorruptState, l.path, err)
	}

	valid := make([]entity.TokenDescriptor, 0, len(tokensInFile))
	for i, token := range tokensInFile {
		token.Symbol = strings.TrimSpace(token.Symbol)
		if token.Symbol == "" {
			l.logger.Warn("Token without symbol in file, skipping token.", "path", l.path, "index", i)
			continue
		}
		if _, err := solana.PublicKeyFromBase58(token.Mint); err != nil {
			l.logger.Warn("Token has invalid mint address, skipping token.", "path", l.path, "token_symbol", token.Symbol, "mint", token.Mint, "error", err)
			continue
		}
		if token.Decimals > maxDecimals {
			l.logger.Warn("Token decimals out of range, skipping token.", "path", l.path, "token_symbol", token.Symbol, "decimals", token.Decimals)
			continue
		}
		valid = append(valid, token)
	}

	l.logger.Info("Loaded user tokens from file", "path", l.path, "count", len(valid), "skipped", len(tokensInFile)-len(valid))
	return valid, nil
}
