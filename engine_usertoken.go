package goSSO

import (
	"context"
	"time"

	"github.com/MrEthical07/goSSO/internal"
	"github.com/MrEthical07/goSSO/repository"
)

// AuthenticateUser checks a user's password against the durable store.
// Unknown user and wrong password both come back as ErrInvalidCredentials so
// the response does not reveal which usernames exist.
func (e *Engine) AuthenticateUser(ctx context.Context, userID, plaintextPassword string) (*repository.User, error) {
	if userID == "" || plaintextPassword == "" {
		return nil, ErrMissingParameter
	}

	user, err := e.repo.FindUserByID(ctx, userID)
	if err != nil {
		e.log.Error("user lookup failed", "user_id", userID, "error", err)
		return nil, wrapInternal(err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	if !e.verifier.Verify(plaintextPassword, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueUserToken mints a user credential token, writing the durable record
// first and the cache shadow copy second.
//
// The durable store is authoritative: a cache write failure after the durable
// insert succeeded is logged and counted but does not fail the issuance,
// because validation falls back to the durable record on any cache miss.
func (e *Engine) IssueUserToken(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrMissingParameter
	}

	token, err := internal.NewToken()
	if err != nil {
		return "", wrapInternal(err)
	}

	now := time.Now()
	rec := &repository.TokenRecord{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(e.config.Tokens.UserTokenTTL),
	}
	if err := e.repo.SaveToken(ctx, rec); err != nil {
		e.log.Error("durable token insert failed", "user_id", userID, "error", err)
		return "", wrapInternal(err)
	}

	ok, err := e.store.SaveToken(ctx, token, userID, e.config.Tokens.UserTokenTTL)
	if err != nil || !ok {
		e.metrics.Inc(MetricCacheWriteDropped)
		e.log.Warn("token saved to durable store but cache write failed",
			"user_id", userID, "error", err)
	}

	e.metrics.Inc(MetricUserTokenIssued)
	return token, nil
}

// ValidateUserToken decides whether token is a live credential for userID.
//
// Cache first: a hit answers without touching the durable store. Any cache
// miss — including a cache outage, which is treated as a miss — falls back to
// the durable record, whose validity is an explicit ExpiresAt comparison
// against the wall clock, never presence alone.
func (e *Engine) ValidateUserToken(ctx context.Context, token, userID string) error {
	if token == "" || userID == "" {
		return ErrMissingParameter
	}

	owner, ok, err := e.store.TokenOwner(ctx, token)
	if err != nil {
		e.log.Warn("token cache read failed, falling back to durable store", "error", err)
	} else if ok {
		if owner != userID {
			e.metrics.Inc(MetricUserTokenDenied)
			return ErrTokenOwnerMismatch
		}
		e.metrics.Inc(MetricUserTokenValidated)
		return nil
	}

	rec, err := e.repo.FindTokenByValue(ctx, token)
	if err != nil {
		e.log.Error("durable token lookup failed", "error", err)
		return wrapInternal(err)
	}
	if rec == nil {
		e.metrics.Inc(MetricUserTokenDenied)
		return ErrTokenInvalid
	}
	if time.Now().After(rec.ExpiresAt) {
		e.metrics.Inc(MetricUserTokenDenied)
		return ErrTokenExpired
	}
	if rec.UserID != userID {
		e.metrics.Inc(MetricUserTokenDenied)
		return ErrTokenOwnerMismatch
	}

	e.metrics.Inc(MetricUserTokenValidated)
	return nil
}

// GetUserInfo returns the user record for a direct info lookup. Unlike the
// login flows, a missing user here is a plain not-found.
func (e *Engine) GetUserInfo(ctx context.Context, userID string) (*repository.User, error) {
	if userID == "" {
		return nil, ErrMissingParameter
	}

	user, err := e.repo.FindUserByID(ctx, userID)
	if err != nil {
		e.log.Error("user lookup failed", "user_id", userID, "error", err)
		return nil, wrapInternal(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Logout removes a user credential token from both tiers. Reports whether
// either tier held the token; repeating a logout is not an error.
func (e *Engine) Logout(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, ErrMissingParameter
	}

	cacheDeleted, err := e.store.DeleteToken(ctx, token)
	if err != nil {
		// The durable delete is the one that matters; the cache copy dies by
		// TTL at the latest.
		e.log.Warn("token cache delete failed", "error", err)
	}

	dbDeleted, err := e.repo.DeleteToken(ctx, token)
	if err != nil {
		e.log.Error("durable token delete failed", "error", err)
		return false, wrapInternal(err)
	}
	return cacheDeleted || dbDeleted, nil
}
