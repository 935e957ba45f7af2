package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"feecalc/internal/models"

	"golang.org/x/crypto/blake2b"
)

const ReportKeyPrefix = "report"

// GenerateKey creates a standardized cache key
func GenerateKey(entity, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}

// ReportKey fingerprints in under a rate table version. Inputs that encode
// to the same JSON share a key.
func ReportKey(version string, in models.Inputs) (string, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to encode inputs: %w", err)
	}
	sum := blake2b.Sum256(raw)
	return GenerateKey(ReportKeyPrefix, version, hex.EncodeToString(sum[:])), nil
}
