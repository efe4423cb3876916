package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/cache"
	goredis "github.com/redis/go-redis/v9"
)

const codeKeyPrefix = "auth:code:"

type codeStoreImpl struct {
	rdb *cache.Redis
}

// NewVerificationCodeStore keeps code hashes in Redis. Expiry is delegated to key TTLs.
func NewVerificationCodeStore(rdb *cache.Redis) auth.VerificationCodeStore {
	return &codeStoreImpl{rdb: rdb}
}

func codeKey(email string) string {
	return codeKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Save implements auth.VerificationCodeStore.
func (s *codeStoreImpl) Save(ctx context.Context, email, codeHash string, ttl time.Duration) error {
	if err := s.rdb.Client.Set(ctx, codeKey(email), codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save verification code: %w", err)
	}
	return nil
}

// Get implements auth.VerificationCodeStore.
func (s *codeStoreImpl) Get(ctx context.Context, email string) (string, error) {
	hash, err := s.rdb.Client.Get(ctx, codeKey(email)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", auth.ErrVerificationCodeNotFound
		}
		return "", fmt.Errorf("failed to get verification code: %w", err)
	}
	return hash, nil
}

// Delete implements auth.VerificationCodeStore.
func (s *codeStoreImpl) Delete(ctx context.Context, email string) error {
	if err := s.rdb.Client.Del(ctx, codeKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete verification code: %w", err)
	}
	return nil
}

// PurgeExpired implements auth.VerificationCodeStore. Redis evicts expired keys itself.
func (s *codeStoreImpl) PurgeExpired(ctx context.Context) (int, error) {
	return 0, nil
}
