package services

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/SuparBat/CampusConnect/models"
	"github.com/SuparBat/CampusConnect/repositories"
	"github.com/SuparBat/CampusConnect/utils"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeDirectory struct {
	accounts map[string]*models.Account
}

func newFakeDirectory(emails ...string) *fakeDirectory {
	d := &fakeDirectory{accounts: make(map[string]*models.Account)}
	for _, email := range emails {
		d.accounts[email] = &models.Account{Email: email}
	}
	return d
}

func (d *fakeDirectory) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	account, ok := d.accounts[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return account, nil
}

func (d *fakeDirectory) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if _, ok := d.accounts[account.Email]; ok {
		return nil, repositories.ErrDuplicate
	}
	d.accounts[account.Email] = account
	return account, nil
}

func (d *fakeDirectory) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	account, ok := d.accounts[email]
	if !ok {
		return repositories.ErrNotFound
	}
	account.Password = passwordHash
	return nil
}

func newTestResetService(mailer Mailer) (*OTPService, *repositories.MemoryOTPStore) {
	store := repositories.NewMemoryOTPStore()
	svc := NewResetOTPService(store, mailer, "Password Reset OTP")
	svc.genCode = func() (string, error) { return "123456", nil }
	return svc, store
}

func TestRequestResetUnknownEmail(t *testing.T) {
	mailer := &fakeMailer{}
	svc, store := newTestResetService(mailer)
	dir := newFakeDirectory()

	err := svc.RequestReset(context.Background(), dir, "ghost@mail.com")

	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("expected no mail, got %d", len(mailer.sent))
	}
	if _, err := store.Get(context.Background(), "ghost@mail.com"); !errors.Is(err, repositories.ErrNoPendingCode) {
		t.Errorf("expected no stored code, got %v", err)
	}
}

func TestRequestResetStoresAndMailsCode(t *testing.T) {
	mailer := &fakeMailer{}
	svc, store := newTestResetService(mailer)
	dir := newFakeDirectory("student@mail.com")

	if err := svc.RequestReset(context.Background(), dir, "student@mail.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}

	record, err := store.Get(context.Background(), "student@mail.com")
	if err != nil {
		t.Fatalf("stored code: %v", err)
	}
	if record.Code != "123456" {
		t.Errorf("stored code: want 123456, got %s", record.Code)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailer.sent))
	}
	mail := mailer.sent[0]
	if mail.to != "student@mail.com" {
		t.Errorf("mail recipient: got %s", mail.to)
	}
	if mail.subject != "Password Reset OTP" {
		t.Errorf("mail subject: got %s", mail.subject)
	}
	if mail.body != "Your OTP is 123456. It expires in 5 minutes." {
		t.Errorf("mail body: got %q", mail.body)
	}
}

func TestRequestResetMailFailureKeepsCode(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc, store := newTestResetService(mailer)
	dir := newFakeDirectory("student@mail.com")

	err := svc.RequestReset(context.Background(), dir, "student@mail.com")

	if err == nil {
		t.Fatal("expected mail error")
	}
	// The stored code survives the delivery failure
	if _, err := store.Get(context.Background(), "student@mail.com"); err != nil {
		t.Fatalf("expected stored code to remain, got %v", err)
	}
	if err := svc.Verify(context.Background(), "student@mail.com", "123456"); err != nil {
		t.Errorf("expected stored code to verify, got %v", err)
	}
}

func TestVerifyNoPendingCode(t *testing.T) {
	svc, _ := newTestResetService(&fakeMailer{})

	err := svc.Verify(context.Background(), "student@mail.com", "123456")

	if !errors.Is(err, repositories.ErrNoPendingCode) {
		t.Fatalf("expected ErrNoPendingCode, got %v", err)
	}
}

func TestVerifyWrongCodeLeavesCodePending(t *testing.T) {
	svc, _ := newTestResetService(&fakeMailer{})
	dir := newFakeDirectory("student@mail.com")
	svc.RequestReset(context.Background(), dir, "student@mail.com")

	if err := svc.Verify(context.Background(), "student@mail.com", "654321"); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}

	// A retry with the right code still succeeds
	if err := svc.Verify(context.Background(), "student@mail.com", "123456"); err != nil {
		t.Errorf("expected retry with correct code to pass, got %v", err)
	}
}

func TestVerifyExpiredCodeIsDropped(t *testing.T) {
	svc, store := newTestResetService(&fakeMailer{})
	dir := newFakeDirectory("student@mail.com")
	issued := time.Now()
	svc.now = func() time.Time { return issued }
	svc.RequestReset(context.Background(), dir, "student@mail.com")

	// Jump past the 5 minute window
	svc.now = func() time.Time { return issued.Add(5*time.Minute + time.Second) }

	if err := svc.Verify(context.Background(), "student@mail.com", "123456"); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected ErrCodeExpired, got %v", err)
	}
	if _, err := store.Get(context.Background(), "student@mail.com"); !errors.Is(err, repositories.ErrNoPendingCode) {
		t.Errorf("expected expired entry to be dropped, got %v", err)
	}
}

func TestVerifyJustInsideWindow(t *testing.T) {
	svc, _ := newTestResetService(&fakeMailer{})
	dir := newFakeDirectory("student@mail.com")
	issued := time.Now()
	svc.now = func() time.Time { return issued }
	svc.RequestReset(context.Background(), dir, "student@mail.com")

	svc.now = func() time.Time { return issued.Add(5*time.Minute - time.Second) }

	if err := svc.Verify(context.Background(), "student@mail.com", "123456"); err != nil {
		t.Fatalf("expected code inside window to verify, got %v", err)
	}
}

func TestReissueReplacesPendingCode(t *testing.T) {
	svc, _ := newTestResetService(&fakeMailer{})
	dir := newFakeDirectory("student@mail.com")
	svc.RequestReset(context.Background(), dir, "student@mail.com")

	svc.genCode = func() (string, error) { return "999999", nil }
	svc.RequestReset(context.Background(), dir, "student@mail.com")

	if err := svc.Verify(context.Background(), "student@mail.com", "123456"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("expected old code to be invalid, got %v", err)
	}
	if err := svc.Verify(context.Background(), "student@mail.com", "999999"); err != nil {
		t.Errorf("expected new code to verify, got %v", err)
	}
}

func TestResetPasswordUpdatesHashAndConsumesCode(t *testing.T) {
	svc, store := newTestResetService(&fakeMailer{})
	dir := newFakeDirectory("student@mail.com")
	svc.RequestReset(context.Background(), dir, "student@mail.com")

	err := svc.ResetPassword(context.Background(), dir, "student@mail.com", "123456", "newsecret123")

	if err != nil {
		t.Fatalf("reset password: %v", err)
	}
	account, _ := dir.FindByEmail(context.Background(), "student@mail.com")
	if !utils.CheckPasswordHash("newsecret123", account.Password) {
		t.Error("stored hash does not match new password")
	}
	if _, err := store.Get(context.Background(), "student@mail.com"); !errors.Is(err, repositories.ErrNoPendingCode) {
		t.Errorf("expected code to be consumed, got %v", err)
	}
}

func TestResetPasswordReplayFails(t *testing.T) {
	svc, _ := newTestResetService(&fakeMailer{})
	dir := newFakeDirectory("student@mail.com")
	svc.RequestReset(context.Background(), dir, "student@mail.com")
	svc.ResetPassword(context.Background(), dir, "student@mail.com", "123456", "newsecret123")

	err := svc.ResetPassword(context.Background(), dir, "student@mail.com", "123456", "othersecret1")

	if !errors.Is(err, repositories.ErrNoPendingCode) {
		t.Fatalf("expected replay to fail with ErrNoPendingCode, got %v", err)
	}
}

func TestResetPasswordWrongCodeLeavesPasswordUntouched(t *testing.T) {
	svc, _ := newTestResetService(&fakeMailer{})
	dir := newFakeDirectory("student@mail.com")
	oldHash, _ := utils.HashPassword("oldsecret123")
	dir.accounts["student@mail.com"].Password = oldHash
	svc.RequestReset(context.Background(), dir, "student@mail.com")

	err := svc.ResetPassword(context.Background(), dir, "student@mail.com", "654321", "newsecret123")

	if !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
	account, _ := dir.FindByEmail(context.Background(), "student@mail.com")
	if account.Password != oldHash {
		t.Error("password changed despite invalid code")
	}
}

func TestRegistrationServiceUsesTenMinuteWindow(t *testing.T) {
	store := repositories.NewMemoryOTPStore()
	svc := NewRegistrationOTPService(store, &fakeMailer{})
	svc.genCode = func() (string, error) { return "123456", nil }
	issued := time.Now()
	svc.now = func() time.Time { return issued }

	if err := svc.RequestRegistration(context.Background(), "new@mail.com"); err != nil {
		t.Fatalf("request registration: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(9 * time.Minute) }
	if err := svc.Verify(context.Background(), "new@mail.com", "123456"); err != nil {
		t.Errorf("expected code valid at 9 minutes, got %v", err)
	}

	svc.now = func() time.Time { return issued.Add(11 * time.Minute) }
	if err := svc.Verify(context.Background(), "new@mail.com", "123456"); !errors.Is(err, ErrCodeExpired) {
		t.Errorf("expected code expired at 11 minutes, got %v", err)
	}
}

func TestGenerateOTPRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateOTP()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("non-numeric code %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d outside [100000, 999999]", n)
		}
	}
}
