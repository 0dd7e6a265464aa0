package script

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"
)

// ErrScriptNotFound is returned when an operation name has no registered source.
var ErrScriptNotFound = errors.New("script not registered")

// ErrScriptUnavailable is returned when Redis reports NOSCRIPT again
// immediately after a successful re-registration. It indicates a backend that
// cannot retain scripts at all, and is not retried further.
var ErrScriptUnavailable = errors.New("script unavailable after reload")

// Executor runs named atomic operations against Redis by SHA, registering
// script sources lazily and re-registering them when the backend loses its
// script cache.
//
// Executor is safe for concurrent use. Concurrent first-use of the same
// unregistered script may register it twice; SCRIPT LOAD is idempotent for
// identical source so both callers proceed with a valid SHA.
type Executor struct {
	rdb     redis.UniversalClient
	reg     *Registry
	log     hclog.Logger
	reloads atomic.Int64
}

// NewExecutor returns an Executor over the given client and registry. A nil
// logger is replaced with a null logger.
func NewExecutor(rdb redis.UniversalClient, reg *Registry, log hclog.Logger) *Executor {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Executor{rdb: rdb, reg: reg, log: log}
}

// Run executes the named operation with the given keys and arguments and
// returns the raw Redis reply.
//
// A NOSCRIPT reply triggers one transparent reload-and-retry; every other
// backend error is surfaced unmodified because the script may already have
// executed when the failure is a post-execution transport error.
func (e *Executor) Run(ctx context.Context, name string, keys []string, args ...interface{}) (interface{}, error) {
	sha, ok := e.reg.SHA(name)
	if !ok {
		var err error
		sha, err = e.load(ctx, name)
		if err != nil {
			return nil, err
		}
	}

	res, err := e.rdb.EvalSha(ctx, sha, keys, args...).Result()
	if err == nil || errors.Is(err, redis.Nil) {
		return res, err
	}
	if !redis.HasErrorPrefix(err, "NOSCRIPT") {
		return nil, err
	}

	// The backend restarted or evicted the script. Forget the stale SHA,
	// register the source again, and retry exactly once.
	e.log.Warn("script missing from redis, reloading", "script", name)
	e.reg.ClearSHA(name)
	e.reloads.Add(1)

	sha, err = e.load(ctx, name)
	if err != nil {
		return nil, err
	}

	res, err = e.rdb.EvalSha(ctx, sha, keys, args...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		if redis.HasErrorPrefix(err, "NOSCRIPT") {
			return nil, fmt.Errorf("%w: %s", ErrScriptUnavailable, name)
		}
		return nil, err
	}
	return res, err
}

// Preload registers every script in the registry with Redis. Individual
// failures are logged and do not abort the rest; the failed scripts load on
// demand at first use.
func (e *Executor) Preload(ctx context.Context) error {
	var firstErr error
	for _, name := range e.reg.Names() {
		if _, err := e.load(ctx, name); err != nil {
			e.log.Error("script preload failed, will load on demand", "script", name, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Reloads returns the number of NOSCRIPT-triggered re-registrations since
// construction.
func (e *Executor) Reloads() int64 {
	return e.reloads.Load()
}

func (e *Executor) load(ctx context.Context, name string) (string, error) {
	source, ok := e.reg.Source(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrScriptNotFound, name)
	}

	sha, err := e.rdb.ScriptLoad(ctx, source).Result()
	if err != nil {
		return "", fmt.Errorf("script load %s: %w", name, err)
	}
	e.reg.SetSHA(name, sha)
	return sha, nil
}

// Bool interprets an integer script reply as a boolean.
func Bool(res interface{}) bool {
	n, ok := res.(int64)
	return ok && n == 1
}

// Int64 interprets an integer script reply, returning 0 for anything else.
func Int64(res interface{}) int64 {
	n, _ := res.(int64)
	return n
}

// Pair decodes a {success, value} array reply. The boolean is authoritative:
// callers must ignore the numeric payload when success is false beyond using
// it for observability.
func Pair(res interface{}) (bool, int64, error) {
	arr, ok := res.([]interface{})
	if !ok || len(arr) != 2 {
		return false, 0, fmt.Errorf("unexpected script reply %T", res)
	}
	return Int64(arr[0]) == 1, Int64(arr[1]), nil
}

// OptionalString folds the redis.Nil miss reply into a presence flag.
func OptionalString(res interface{}, err error) (string, bool, error) {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	s, ok := res.(string)
	if !ok {
		return "", false, fmt.Errorf("unexpected script reply %T", res)
	}
	return s, true, nil
}
