package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// SecretKey is private key material. It is persisted as a JSON array of numbers
// and never rendered by the fmt verbs.
type SecretKey []byte

// MarshalJSON encodes the key as a number array instead of base64.
func (k SecretKey) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range k {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(v)))
	}
	b.WriteByte(']')
	return []byte(b.String()), nil
}

// UnmarshalJSON decodes a number array.
func (k *SecretKey) UnmarshalJSON(data []byte) error {
	var nums []int
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &nums); err != nil {
		return err
	}
	out := make(SecretKey, len(nums))
	for i, n := range nums {
		if n < 0 || n > 255 {
			return fmt.Errorf("secret key byte %d out of range: %d", i, n)
		}
		out[i] = byte(n)
	}
	*k = out
	return nil
}

// String redacts the key.
func (k SecretKey) String() string { return "[redacted]" }

// GoString redacts the key.
func (k SecretKey) GoString() string { return "[redacted]" }

// WalletRecord is the single locally persisted keypair.
type WalletRecord struct {
	PublicKey  string     `json:"publicKey"`
	SecretKey  SecretKey  `json:"secretKey"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	Mnemonic   string     `json:"mnemonic,omitempty"`
	ImportedAt *time.Time `json:"importedAt,omitempty"`
}

// Public returns a copy of the record with private material removed.
func (w WalletRecord) Public() WalletRecord {
	w.SecretKey = nil
	w.Mnemonic = ""
	return w
}
