package memory

import (
	"context"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/jellydator/ttlcache/v3"
)

// CodeStore is a process-local auth.VerificationCodeStore used when Redis is not configured.
type CodeStore struct {
	codes *ttlcache.Cache[string, string]
}

func NewVerificationCodeStore() *CodeStore {
	return &CodeStore{
		// Reads must not extend a code's lifetime.
		codes: ttlcache.New[string, string](ttlcache.WithDisableTouchOnHit[string, string]()),
	}
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *CodeStore) Save(_ context.Context, email, codeHash string, ttl time.Duration) error {
	key := normalize(email)
	if ttl <= 0 {
		s.codes.Delete(key)
		return nil
	}
	s.codes.Set(key, codeHash, ttl)
	return nil
}

func (s *CodeStore) Get(_ context.Context, email string) (string, error) {
	item := s.codes.Get(normalize(email))
	if item == nil || item.IsExpired() {
		return "", auth.ErrVerificationCodeNotFound
	}
	return item.Value(), nil
}

func (s *CodeStore) Delete(_ context.Context, email string) error {
	s.codes.Delete(normalize(email))
	return nil
}

func (s *CodeStore) PurgeExpired(_ context.Context) (int, error) {
	before := s.codes.Len()
	s.codes.DeleteExpired()
	return max(before-s.codes.Len(), 0), nil
}
