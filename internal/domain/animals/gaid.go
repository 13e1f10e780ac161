package animals

import (
	"crypto/rand"
	"strings"
)

const (
	gaidPrefix = "GAID-"
	gaidLength = 12
	// Crockford base32: sin I, L, O, U.
	gaidAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

// NewGAID genera un identificador global estable (60 bits de entropía).
func NewGAID() (string, error) {
	buf := make([]byte, gaidLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, gaidLength)
	for i, b := range buf {
		out[i] = gaidAlphabet[int(b)&31]
	}
	return gaidPrefix + string(out), nil
}

// NormalizeGAID acepta minúsculas, espacios y el prefijo opcional.
func NormalizeGAID(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, gaidPrefix) {
		s = gaidPrefix + s
	}
	return s
}

func ValidGAID(s string) bool {
	if !strings.HasPrefix(s, gaidPrefix) {
		return false
	}
	body := strings.TrimPrefix(s, gaidPrefix)
	if len(body) != gaidLength {
		return false
	}
	for _, r := range body {
		if !strings.ContainsRune(gaidAlphabet, r) {
			return false
		}
	}
	return true
}
