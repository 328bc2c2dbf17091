// models/otp.go
package models

import (
	"time"
)

// OTPRecord is one pending verification code for an email address.
// Records are owned by the OTP store; at most one exists per email.
type OTPRecord struct {
	Code      string    `json:"otp" bson:"otp"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
}

// Expired reports whether the code is past its validity window at the
// given instant.
func (r OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
