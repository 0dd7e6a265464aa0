package goSSO

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/MrEthical07/goSSO/password"
	"github.com/MrEthical07/goSSO/repository"
	"github.com/MrEthical07/goSSO/script"
	"github.com/MrEthical07/goSSO/tokenstore"
)

// Redis key namespace. Fixed for interop with existing deployments.
const (
	accountTokenKeyPrefix = "account_token:"
	ssoKeyPrefix          = "sso:"
)

// Engine is the session and token authority. Construct it through [Builder];
// all methods are safe for concurrent use after Build.
type Engine struct {
	config   Config
	log      hclog.Logger
	store    *tokenstore.Store
	exec     *script.Executor
	repo     repository.Repository
	verifier password.Verifier
	licenses LicenseMap
	metrics  *Metrics
	watcher  *ExpirationWatcher
	cleanup  *CleanupCoordinator
}

func accountTokenKey(token string) string {
	return accountTokenKeyPrefix + token
}

func ssoKey(cookie string) string {
	return ssoKeyPrefix + cookie
}

// Start preloads the atomic scripts into Redis and starts the expiration
// watcher. Call it after Build and before serving requests; the two-phase
// split keeps construction allocation-only.
//
// Script preload failures are logged and tolerated — the executor registers
// scripts on demand — but a watcher subscription failure is fatal since the
// cleanup pipeline would silently never run.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.exec.Preload(ctx); err != nil {
		e.log.Warn("some scripts failed to preload, will load on demand", "error", err)
	}
	if err := e.watcher.Start(ctx); err != nil {
		return wrapInternal(err)
	}
	e.log.Info("engine started",
		"channel", e.config.Notifications.Channel,
		"token_prefix", e.config.Notifications.TokenKeyPrefix)
	return nil
}

// Close stops the expiration watcher. Safe to call on a nil or never-started
// engine.
func (e *Engine) Close() {
	if e == nil || e.watcher == nil {
		return
	}
	e.watcher.Close()
}

// Store exposes the cache primitive layer (locks, counters, rate limits) for
// collaborators that need them outside the authentication flows.
func (e *Engine) Store() *tokenstore.Store {
	return e.store
}

// MetricsSnapshot returns a copy of the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}
