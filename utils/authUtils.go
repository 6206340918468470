package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	const HASH_ROUNDS = 10
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), HASH_ROUNDS)
	return string(bytes), err
}

func ComparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// NewOpaqueToken returns 32 random bytes hex-encoded (256 bits of entropy).
func NewOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// RetryAfterMinutes rounds a remaining lockout duration up to whole minutes,
// never reporting less than one.
func RetryAfterMinutes(d time.Duration) int {
	minutes := int((d + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func GenerateLockoutMessage(retryAfter time.Duration) string {
	minutes := RetryAfterMinutes(retryAfter)
	if minutes == 1 {
		return "Too many failed login attempts. Please try again in 1 minute(s)."
	}
	return fmt.Sprintf("Too many failed login attempts. Please try again in %d minute(s).", minutes)
}

func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
