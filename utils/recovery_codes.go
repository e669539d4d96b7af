package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	RecoveryCodeLength = 8
	NumRecoveryCodes   = 10
)

// GenerateRecoveryCodes generates a set of random two-factor recovery
// codes in XXXX-XXXX form.
func GenerateRecoveryCodes() ([]string, error) {
	codes := make([]string, NumRecoveryCodes)
	for i := range codes {
		bytes := make([]byte, RecoveryCodeLength/2)
		if _, err := rand.Read(bytes); err != nil {
			return nil, err
		}
		code := strings.ToUpper(hex.EncodeToString(bytes))
		codes[i] = code[:4] + "-" + code[4:]
	}
	return codes, nil
}

// HashString returns the hex SHA-256 of s; used to store recovery codes
// without keeping them in the clear.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashRecoveryCodes hashes the recovery codes for storage. The dash is
// stripped first so redemption can accept the code with or without it.
func HashRecoveryCodes(codes []string) []string {
	hashed := make([]string, len(codes))
	for i, code := range codes {
		hashed[i] = HashString(strings.ReplaceAll(code, "-", ""))
	}
	return hashed
}
