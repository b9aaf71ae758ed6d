package verification

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// DefaultTokenBytes — длина токена подтверждения в байтах (в hex получится вдвое длиннее).
const DefaultTokenBytes = 32

// GenerateToken генерирует криптографически стойкий токен в hex из n случайных байт.
func GenerateToken(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
