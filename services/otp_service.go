// services/otp_service.go
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/SuparBat/CampusConnect/models"
	"github.com/SuparBat/CampusConnect/repositories"
	"github.com/SuparBat/CampusConnect/utils"
)

var (
	// ErrCodeExpired is returned when the pending code is past its window
	ErrCodeExpired = errors.New("OTP expired")
	// ErrInvalidCode is returned when the submitted code does not match
	ErrInvalidCode = errors.New("invalid OTP")
)

const (
	resetCodeValidity        = 5 * time.Minute
	registrationCodeValidity = 10 * time.Minute
)

// OTPService runs one email verification flow against one store: issue
// a code, mail it, and later verify and consume it. Password reset uses
// one instance per role; registration uses a fourth with its own store.
type OTPService struct {
	store    repositories.OTPStore
	mailer   Mailer
	subject  string
	validity time.Duration

	// overridable for tests
	now     func() time.Time
	genCode func() (string, error)
}

// NewResetOTPService creates the flow for a role's password resets.
// The subject names the role so the three reset mails stay
// distinguishable in an inbox.
func NewResetOTPService(store repositories.OTPStore, mailer Mailer, subject string) *OTPService {
	return &OTPService{
		store:    store,
		mailer:   mailer,
		subject:  subject,
		validity: resetCodeValidity,
		now:      time.Now,
		genCode:  generateOTP,
	}
}

// NewRegistrationOTPService creates the flow guarding account creation
func NewRegistrationOTPService(store repositories.OTPStore, mailer Mailer) *OTPService {
	return &OTPService{
		store:    store,
		mailer:   mailer,
		subject:  "Your OTP for Campus Connect",
		validity: registrationCodeValidity,
		now:      time.Now,
		genCode:  generateOTP,
	}
}

// RequestReset issues a reset code for an existing account and mails it.
// The account must exist in the directory; issuing replaces any code
// already pending for the email. A delivery failure leaves the stored
// code valid, so a retry of the same request keeps working.
func (s *OTPService) RequestReset(ctx context.Context, dir repositories.AccountDirectory, email string) error {
	if _, err := dir.FindByEmail(ctx, email); err != nil {
		return err
	}
	code, err := s.issue(ctx, email)
	if err != nil {
		return err
	}
	body := fmt.Sprintf("Your OTP is %s. It expires in %d minutes.", code, int(s.validity.Minutes()))
	return s.mailer.Send(email, s.subject, body)
}

// RequestRegistration issues a registration code. The account does not
// exist yet, so there is no directory check.
func (s *OTPService) RequestRegistration(ctx context.Context, email string) error {
	code, err := s.issue(ctx, email)
	if err != nil {
		return err
	}
	body := fmt.Sprintf("Your OTP is: %s", code)
	return s.mailer.Send(email, s.subject, body)
}

// Verify checks the submitted code against the pending one without
// consuming it. An expired entry is dropped when detected; a mismatch
// leaves it pending so the caller can retry until it expires.
func (s *OTPService) Verify(ctx context.Context, email, code string) error {
	record, err := s.store.Get(ctx, email)
	if err != nil {
		return err
	}
	if record.Expired(s.now()) {
		_ = s.store.Delete(ctx, email)
		return ErrCodeExpired
	}
	if record.Code != code {
		return ErrInvalidCode
	}
	return nil
}

// Consume removes the pending code after its gated action succeeded
func (s *OTPService) Consume(ctx context.Context, email string) error {
	return s.store.Delete(ctx, email)
}

// ResetPassword verifies the code and, on a match, writes the new
// password hash through the directory and consumes the code.
func (s *OTPService) ResetPassword(ctx context.Context, dir repositories.AccountDirectory, email, code, newPassword string) error {
	if err := s.Verify(ctx, email, code); err != nil {
		return err
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := dir.UpdatePassword(ctx, email, hash); err != nil {
		return err
	}
	return s.Consume(ctx, email)
}

func (s *OTPService) issue(ctx context.Context, email string) (string, error) {
	code, err := s.genCode()
	if err != nil {
		return "", err
	}
	record := models.OTPRecord{Code: code, ExpiresAt: s.now().Add(s.validity)}
	if err := s.store.Put(ctx, email, record); err != nil {
		return "", err
	}
	return code, nil
}

// generateOTP draws a 6-digit code uniformly from [100000, 999999]
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
