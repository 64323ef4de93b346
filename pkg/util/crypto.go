package util

import (
	"crypto/sha256"
	"crypto/subtle"
)

// SecretEqual 恒定时间比较两个口令的 SHA256 摘要，避免时序泄露
func SecretEqual(given, expected string) bool {
	givenHash := sha256.Sum256([]byte(given))
	expectedHash := sha256.Sum256([]byte(expected))
	return subtle.ConstantTimeCompare(givenHash[:], expectedHash[:]) == 1
}
