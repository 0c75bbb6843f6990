// Package hasher produces the one-way identity digests attached to contact
// data. Digests are unsalted SHA-256 so the same canonical value hashes
// identically across sessions and services, which ad platforms require for
// audience matching.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"

	"datalayer/pkg/identity/normalize"
)

// DigestLength is the length of every non-null digest in hex characters.
const DigestLength = sha256.Size * 2

// Sum returns the lowercase hex SHA-256 of value, or nil when value is empty.
func Sum(value string) *string {
	if value == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(value))
	digest := hex.EncodeToString(sum[:])
	return &digest
}

// Field normalizes raw as kind and hashes the result.
func Field(raw any, kind normalize.Kind, countryHint string) *string {
	normalized, ok := normalize.Normalize(raw, kind, countryHint)
	if !ok {
		return nil
	}
	return Sum(normalized)
}
