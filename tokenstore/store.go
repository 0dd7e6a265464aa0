package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goSSO/script"
)

// ErrCacheUnavailable wraps every Redis transport failure so callers can
// distinguish an outage from a legitimate false result.
var ErrCacheUnavailable = errors.New("cache unavailable")

// ErrLockNotAcquired is returned by WithLock when another owner holds the lock.
var ErrLockNotAcquired = errors.New("lock not acquired")

// TokenKeyPrefix is the namespace for user credential token hashes. The
// expiration watcher matches expired keys against the same prefix.
const TokenKeyPrefix = "token:"

const rateLimitKeyPrefix = "ratelimit:"

// Store exposes the atomic cache operations goSSO is built on. All methods
// are safe for concurrent use.
type Store struct {
	rdb  redis.UniversalClient
	exec *script.Executor
}

// NewStore creates a Store over the given Redis client and script executor.
func NewStore(rdb redis.UniversalClient, exec *script.Executor) *Store {
	return &Store{rdb: rdb, exec: exec}
}

// TokenKey returns the cache key for a user credential token.
func TokenKey(token string) string {
	return TokenKeyPrefix + token
}

// SaveToken writes the token hash record {user_id, create_at} with the given
// TTL in one atomic step. Returns false without error when the backend
// reports zero fields written.
func (s *Store) SaveToken(ctx context.Context, token, userID string, ttl time.Duration) (bool, error) {
	res, err := s.exec.Run(ctx, script.BatchSetHash,
		[]string{TokenKey(token)},
		int(ttl.Seconds()),
		"user_id", userID,
		"create_at", strconv.FormatInt(time.Now().Unix(), 10),
	)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return script.Int64(res) > 0, nil
}

// TokenOwner returns the user id recorded for token. A missing key or field
// is a clean miss, not an error.
func (s *Store) TokenOwner(ctx context.Context, token string) (string, bool, error) {
	userID, err := s.rdb.HGet(ctx, TokenKey(token), "user_id").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return userID, true, nil
}

// ValidateToken atomically reads the token owner and, when refreshTTL is
// positive, re-arms the key TTL in the same script step.
func (s *Store) ValidateToken(ctx context.Context, token string, refreshTTL time.Duration) (string, bool, error) {
	userID, ok, err := script.OptionalString(s.exec.Run(ctx, script.ValidateToken,
		[]string{TokenKey(token)},
		int(refreshTTL.Seconds()),
	))
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return userID, ok, nil
}

// DeleteToken removes the cache copy of token. Returns false when the key did
// not exist; deleting twice is not an error.
func (s *Store) DeleteToken(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Del(ctx, TokenKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return n > 0, nil
}

// AcquireLock attempts a scripted check-and-set of key to value with the
// given TTL. Exactly one of any set of concurrent callers wins.
func (s *Store) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	res, err := s.exec.Run(ctx, script.AcquireLock, []string{key}, value, int(ttl.Seconds()))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return script.Bool(res), nil
}

// ReleaseLock deletes key only when it still holds value, so a caller whose
// lock already expired cannot release a successor's lock.
func (s *Store) ReleaseLock(ctx context.Context, key, value string) (bool, error) {
	res, err := s.exec.Run(ctx, script.ReleaseLock, []string{key}, value)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return script.Bool(res), nil
}

// WithLock runs fn while holding the named lock under a random owner value,
// releasing it afterwards. Returns ErrLockNotAcquired when another owner
// holds the lock; fn is not run in that case.
func (s *Store) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error {
	owner := uuid.NewString()

	ok, err := s.AcquireLock(ctx, key, owner, ttl)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLockNotAcquired
	}
	// Release even when the surrounding request context is already canceled;
	// otherwise the lock lingers until its TTL.
	defer s.ReleaseLock(context.WithoutCancel(ctx), key, owner)

	return fn(ctx)
}

// RateLimit spends one request from the subject's fixed-window budget.
// remaining is reported even on denial for observability; allowed is
// authoritative.
func (s *Store) RateLimit(ctx context.Context, subjectID string, maxRequests int, window time.Duration) (allowed bool, remaining int64, err error) {
	res, err := s.exec.Run(ctx, script.RateLimit,
		[]string{rateLimitKeyPrefix + subjectID},
		time.Now().Unix(),
		int(window.Seconds()),
		maxRequests,
	)
	if err != nil {
		return false, 0, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	allowed, remaining, err = script.Pair(res)
	if err != nil {
		return false, 0, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return allowed, remaining, nil
}

// NextID returns the next value of a monotonic counter.
func (s *Store) NextID(ctx context.Context, counterKey string) (int64, error) {
	res, err := s.exec.Run(ctx, script.GetNextID, []string{counterKey})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return script.Int64(res), nil
}

// AtomicIncrement adds increment to key unless the result would exceed max
// (max 0 disables the ceiling). The TTL is armed on the counter's first
// write. Returns the resulting value on success, the current value on denial.
func (s *Store) AtomicIncrement(ctx context.Context, key string, increment, max int64, ttl time.Duration) (bool, int64, error) {
	res, err := s.exec.Run(ctx, script.AtomicIncrement, []string{key}, increment, max, int(ttl.Seconds()))
	if err != nil {
		return false, 0, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	ok, value, err := script.Pair(res)
	if err != nil {
		return false, 0, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return ok, value, nil
}

// CheckAndUpdate subtracts decrement from key unless the result would drop
// below min. Returns the resulting value on success, the current value on
// denial.
func (s *Store) CheckAndUpdate(ctx context.Context, key string, min, decrement int64) (bool, int64, error) {
	res, err := s.exec.Run(ctx, script.CheckAndUpdate, []string{key}, min, decrement)
	if err != nil {
		return false, 0, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	ok, value, err := script.Pair(res)
	if err != nil {
		return false, 0, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return ok, value, nil
}

// Get reads a raw string key. Misses are (="", false, nil).
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return val, true, nil
}

// Set writes a raw string key, with a TTL when positive.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// Del removes a raw key. Returns false when the key did not exist.
func (s *Store) Del(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return n > 0, nil
}

// HGetAll reads every field of a hash key. Missing keys yield an empty map.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return fields, nil
}
