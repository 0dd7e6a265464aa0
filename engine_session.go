package goSSO

import (
	"context"
	"strings"
	"time"

	"github.com/MrEthical07/goSSO/internal"
)

// LoginResult is the outcome of a successful SSO login.
type LoginResult struct {
	Username  string
	SSOCookie string
	// ExpiresIn is the cookie lifetime, for Set-Cookie Max-Age semantics at
	// the HTTP layer.
	ExpiresIn time.Duration
}

// LoginUser authenticates a user under an existing account token and mints
// the SSO session cookie.
//
// The cookie value stored in the cache is "{accountToken}:{username}" so
// session validation can re-derive and compare the embedded account token on
// every request instead of trusting prior validation.
func (e *Engine) LoginUser(ctx context.Context, accountToken, username, plaintextPassword string) (*LoginResult, error) {
	if accountToken == "" || username == "" || plaintextPassword == "" {
		return nil, ErrMissingParameter
	}

	if e.config.RateLimit.Enabled {
		allowed, _, err := e.store.RateLimit(ctx, "login:"+username,
			e.config.RateLimit.MaxRequests, e.config.RateLimit.Window)
		if err != nil {
			return nil, wrapInternal(err)
		}
		if !allowed {
			e.metrics.Inc(MetricLoginRateLimited)
			return nil, ErrRateLimited
		}
	}

	_, ok, err := e.store.Get(ctx, accountTokenKey(accountToken))
	if err != nil {
		return nil, wrapInternal(err)
	}
	if !ok {
		e.metrics.Inc(MetricLoginFailure)
		e.log.Warn("login with invalid account token", "username", username)
		return nil, ErrAccountTokenInvalid
	}

	user, err := e.repo.FindUserByID(ctx, username)
	if err != nil {
		e.log.Error("user lookup failed", "username", username, "error", err)
		return nil, wrapInternal(err)
	}
	if user == nil {
		e.metrics.Inc(MetricLoginFailure)
		return nil, ErrLoginUserNotFound
	}
	if !user.IsActive {
		e.metrics.Inc(MetricLoginFailure)
		return nil, ErrAccountInactive
	}
	if !e.verifier.Verify(plaintextPassword, user.PasswordHash) {
		e.metrics.Inc(MetricLoginFailure)
		e.log.Warn("login password mismatch", "username", username)
		return nil, ErrInvalidPassword
	}

	cookie, err := internal.NewToken()
	if err != nil {
		return nil, wrapInternal(err)
	}

	ssoValue := accountToken + ":" + user.Username
	if err := e.store.Set(ctx, ssoKey(cookie), ssoValue, e.config.Tokens.SSOCookieTTL); err != nil {
		e.log.Error("sso cookie cache write failed", "username", username, "error", err)
		return nil, wrapInternal(err)
	}

	e.metrics.Inc(MetricLoginSuccess)
	e.log.Info("user logged in", "username", user.Username)
	return &LoginResult{
		Username:  user.Username,
		SSOCookie: cookie,
		ExpiresIn: e.config.Tokens.SSOCookieTTL,
	}, nil
}

// KeepAlive re-arms the TTLs of both credentials by re-writing each stored
// value unchanged. The SSO refresh only runs after the account token refresh
// succeeded; a missing entry yields the specific invalid-token error for that
// credential rather than a generic failure.
func (e *Engine) KeepAlive(ctx context.Context, accountToken, ssoCookie string) error {
	if accountToken == "" || ssoCookie == "" {
		return ErrMissingParameter
	}

	val, ok, err := e.store.Get(ctx, accountTokenKey(accountToken))
	if err != nil {
		return wrapInternal(err)
	}
	if !ok {
		return ErrAccountTokenInvalid
	}
	if err := e.store.Set(ctx, accountTokenKey(accountToken), val, e.config.Tokens.AccountTokenTTL); err != nil {
		return wrapInternal(err)
	}

	ssoVal, ok, err := e.store.Get(ctx, ssoKey(ssoCookie))
	if err != nil {
		return wrapInternal(err)
	}
	if !ok {
		return ErrSSOCookieInvalid
	}
	if err := e.store.Set(ctx, ssoKey(ssoCookie), ssoVal, e.config.Tokens.SSOCookieTTL); err != nil {
		return wrapInternal(err)
	}

	e.metrics.Inc(MetricKeepAlive)
	return nil
}

// ValidateSession decides whether the supplied credential pair names a live
// session. Called by the inbound request filter on every protected request.
//
// A stored value without the ':' separator is corruption (a bug or
// tampering), reported distinctly from auth failure; a parseable value whose
// embedded account token differs from the supplied one is an auth failure.
func (e *Engine) ValidateSession(ctx context.Context, accountToken, ssoCookie string) error {
	if accountToken == "" || ssoCookie == "" {
		return ErrMissingParameter
	}

	val, ok, err := e.store.Get(ctx, ssoKey(ssoCookie))
	if err != nil {
		return wrapInternal(err)
	}
	if !ok {
		e.metrics.Inc(MetricSessionDenied)
		return ErrSessionInvalid
	}

	sep := strings.IndexByte(val, ':')
	if sep < 0 {
		e.metrics.Inc(MetricSessionCorrupted)
		e.log.Error("corrupted session value in cache", "cookie_prefix", safePrefix(ssoCookie))
		return ErrSessionCorrupted
	}

	if val[:sep] != accountToken {
		e.metrics.Inc(MetricSessionDenied)
		e.log.Warn("session account token mismatch", "cookie_prefix", safePrefix(ssoCookie))
		return ErrTokenMismatch
	}

	e.metrics.Inc(MetricSessionValidated)
	return nil
}

// safePrefix truncates a credential for logging. Full token values never
// reach the logs.
func safePrefix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8]
}
