package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
)

// PayloadDigest computes the lowercase hex SHA-256 digest of a record
// payload. Pure and deterministic; the empty payload hashes to the
// well-known empty-input digest, so a zero-record snapshot is sealed
// like any other. The header is never part of the hashed input, which
// is what lets the digest live inside the header itself.
func PayloadDigest(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
