// repositories/otp_store.go
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/SuparBat/CampusConnect/models"
)

// ErrNoPendingCode is returned when no code has been issued for an email,
// or the previously issued one was already consumed.
var ErrNoPendingCode = errors.New("no pending code")

// OTPStore holds at most one pending verification code per email address.
// Putting a code for an email replaces whatever was pending before.
type OTPStore interface {
	Put(ctx context.Context, email string, record models.OTPRecord) error
	Get(ctx context.Context, email string) (*models.OTPRecord, error)
	Delete(ctx context.Context, email string) error
}

// MemoryOTPStore keeps pending codes in a mutex-guarded map for the
// lifetime of the process. A restart invalidates all pending codes.
type MemoryOTPStore struct {
	mu    sync.Mutex
	codes map[string]models.OTPRecord
}

// NewMemoryOTPStore creates an empty in-memory store
func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{codes: make(map[string]models.OTPRecord)}
}

func (s *MemoryOTPStore) Put(ctx context.Context, email string, record models.OTPRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = record
	return nil
}

func (s *MemoryOTPStore) Get(ctx context.Context, email string) (*models.OTPRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.codes[email]
	if !ok {
		return nil, ErrNoPendingCode
	}
	return &record, nil
}

func (s *MemoryOTPStore) Delete(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	return nil
}

// RedisOTPStore keeps pending codes in Redis so multiple instances can
// share them. Keys carry a kind prefix ("student", "company", "admin",
// "registration") so each flow keeps its own namespace, and the entry
// TTL matches the code's validity window so Redis evicts stale codes
// on its own.
type RedisOTPStore struct {
	client *redis.Client
	kind   string
}

// NewRedisOTPStore creates a store for one flow kind
func NewRedisOTPStore(client *redis.Client, kind string) *RedisOTPStore {
	return &RedisOTPStore{client: client, kind: kind}
}

func (s *RedisOTPStore) key(email string) string {
	return "otp:" + s.kind + ":" + email
}

func (s *RedisOTPStore) Put(ctx context.Context, email string, record models.OTPRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.client.Set(ctx, s.key(email), data, ttl).Err()
}

func (s *RedisOTPStore) Get(ctx context.Context, email string) (*models.OTPRecord, error) {
	data, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err == redis.Nil {
		return nil, ErrNoPendingCode
	}
	if err != nil {
		return nil, err
	}
	var record models.OTPRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}
