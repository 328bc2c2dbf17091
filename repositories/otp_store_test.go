package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SuparBat/CampusConnect/models"
)

func TestMemoryOTPStoreGetMissing(t *testing.T) {
	store := NewMemoryOTPStore()

	_, err := store.Get(context.Background(), "nobody@mail.com")

	if !errors.Is(err, ErrNoPendingCode) {
		t.Fatalf("expected ErrNoPendingCode, got %v", err)
	}
}

func TestMemoryOTPStorePutGet(t *testing.T) {
	store := NewMemoryOTPStore()
	ctx := context.Background()
	record := models.OTPRecord{Code: "123456", ExpiresAt: time.Now().Add(5 * time.Minute)}

	if err := store.Put(ctx, "student@mail.com", record); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "student@mail.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Code != "123456" {
		t.Errorf("expected code 123456, got %s", got.Code)
	}
	if !got.ExpiresAt.Equal(record.ExpiresAt) {
		t.Errorf("expiry changed: want %v, got %v", record.ExpiresAt, got.ExpiresAt)
	}
}

func TestMemoryOTPStorePutReplaces(t *testing.T) {
	store := NewMemoryOTPStore()
	ctx := context.Background()

	store.Put(ctx, "student@mail.com", models.OTPRecord{Code: "111111"})
	store.Put(ctx, "student@mail.com", models.OTPRecord{Code: "222222"})

	got, err := store.Get(ctx, "student@mail.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Code != "222222" {
		t.Errorf("expected latest code 222222, got %s", got.Code)
	}
}

func TestMemoryOTPStoreDelete(t *testing.T) {
	store := NewMemoryOTPStore()
	ctx := context.Background()
	store.Put(ctx, "student@mail.com", models.OTPRecord{Code: "123456"})

	if err := store.Delete(ctx, "student@mail.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := store.Get(ctx, "student@mail.com"); !errors.Is(err, ErrNoPendingCode) {
		t.Fatalf("expected ErrNoPendingCode after delete, got %v", err)
	}

	// Deleting an absent entry is a no-op
	if err := store.Delete(ctx, "student@mail.com"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestMemoryOTPStoreKeysAreCaseSensitive(t *testing.T) {
	store := NewMemoryOTPStore()
	ctx := context.Background()

	store.Put(ctx, "Student@Mail.com", models.OTPRecord{Code: "123456"})

	if _, err := store.Get(ctx, "student@mail.com"); !errors.Is(err, ErrNoPendingCode) {
		t.Fatalf("expected lookup under different casing to miss, got %v", err)
	}
	if _, err := store.Get(ctx, "Student@Mail.com"); err != nil {
		t.Fatalf("expected lookup under original casing to hit, got %v", err)
	}
}

func TestMemoryOTPStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryOTPStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("user%d@mail.com", i%5)
			store.Put(ctx, email, models.OTPRecord{Code: "123456"})
			store.Get(ctx, email)
			store.Delete(ctx, email)
		}(i)
	}
	wg.Wait()
}
