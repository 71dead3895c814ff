package utils

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseBoolPtr returns nil for an empty or unparsable value
func ParseBoolPtr(value string) *bool {
	if value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &b
}

// StringPtr returns nil for blank strings
func StringPtr(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// ParseDate parses YYYY-MM-DD, returning nil for an empty value
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", value, err)
	}
	return &t, nil
}

// Round2 rounds to two decimal places (currency)
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GenerateOTP creates a numeric OTP of specified length, zero padded
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		length = 6
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	code := n.String()
	return strings.Repeat("0", length-len(code)) + code, nil
}

// GenerateBookingNumber creates a human readable booking reference
func GenerateBookingNumber() string {
	now := time.Now()

	// Format: RIDE-YYYYMMDD-HHMMSS-XXXXXXXX, the suffix is the random head
	// of a v4 UUID
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := strings.ToUpper(uuid.NewString()[:8])

	return fmt.Sprintf("RIDE-%s-%s-%s", datePart, timePart, randomPart)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
