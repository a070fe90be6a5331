package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashToken generates a SHA256 hash of an opaque token (refresh or password
// reset). Only the hash is ever persisted; the plaintext stays with the client.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareTokenHash compares a plain token with its stored SHA256 hash in
// constant time. The `token` parameter is the raw token string, not a hash.
func CompareTokenHash(token string, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashToken(token)), []byte(storedHash)) == 1
}
