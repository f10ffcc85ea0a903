package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// VerifyPIN сравнивает введенный PIN с настроенным. При заданном
// bcrypt-хэше сверяется хэш, иначе открытый PIN в константное время.
// Это не криптографическая защита сессии, а простой шлюз для одного
// пользователя.
func VerifyPIN(pin, configuredPIN, configuredHash string) bool {
	if configuredHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(configuredHash), []byte(pin)) == nil
	}

	if configuredPIN == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(pin), []byte(configuredPIN)) == 1
}

// HashPIN хэширует PIN через bcrypt для AUTH_PIN_HASH.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
