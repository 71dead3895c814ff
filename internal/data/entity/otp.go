package entity

import (
	"time"
)

type OTPPurpose string

const (
	OTPPurposeDriverOnboarding OTPPurpose = "driver_onboarding"
)

type OTP struct {
	BaseSimple
	Phone     string     `db:"phone"`
	OTPCode   string     `db:"otp_code"`
	Purpose   OTPPurpose `db:"purpose"`
	ExpiresAt time.Time  `db:"expires_at"`
	IsUsed    bool       `db:"is_used"`
}
