package matching

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strings"
)

const (
	codeLength = 10
	codeGroup  = 5
	// Sin 0/O, 1/I/L ni U: se dicta por teléfono sin ambigüedad.
	codeAlphabet = "23456789ABCDEFGHJKMNPQRSTVWXYZ"
)

// NewExchangeCode genera XXXXX-XXXXX con crypto/rand.
func NewExchangeCode() (string, error) {
	limit := big.NewInt(int64(len(codeAlphabet)))
	out := make([]byte, 0, codeLength+1)
	for i := 0; i < codeLength; i++ {
		if i == codeGroup {
			out = append(out, '-')
		}
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		out = append(out, codeAlphabet[n.Int64()])
	}
	return string(out), nil
}

// NormalizeExchangeCode tolera minúsculas, espacios y guiones mal puestos.
func NormalizeExchangeCode(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r == '-' || r == ' ' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	raw := b.String()
	if len(raw) != codeLength {
		return raw
	}
	return raw[:codeGroup] + "-" + raw[codeGroup:]
}

func ValidExchangeCode(s string) bool {
	if len(s) != codeLength+1 || s[codeGroup] != '-' {
		return false
	}
	for i, r := range s {
		if i == codeGroup {
			continue
		}
		if !strings.ContainsRune(codeAlphabet, r) {
			return false
		}
	}
	return true
}

func HashExchangeCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
