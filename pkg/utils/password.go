package utils

import (
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// HashPassword derives a salted Argon2id hash and returns it as "<salt>$<hash>".
// A fresh salt is drawn on every call.
func HashPassword(password string) string {
	salt := strings.ReplaceAll(uuid.NewString(), "-", "")
	return salt + "$" + derive(password, salt)
}

// CheckPassword reports whether password matches a value produced by HashPassword
func CheckPassword(password, stored string) bool {
	salt, hash, ok := strings.Cut(stored, "$")
	if !ok || salt == "" || hash == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(derive(password, salt)), []byte(hash)) == 1
}

func derive(password, salt string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(key)
}
