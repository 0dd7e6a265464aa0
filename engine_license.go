package goSSO

import (
	"context"
	"crypto/subtle"

	"github.com/MrEthical07/goSSO/internal"
)

// RegisterLicense authenticates a licensed software instance and mints its
// account token.
//
// The consumer secret must match exactly; on success the token maps back to
// the consumer key in the cache (key account_token:{token}, TTL
// Tokens.AccountTokenTTL) so issued tokens stay traceable to their license.
// A cache write failure is an internal error — the token has not been handed
// to anyone, so nothing needs to be rolled back.
func (e *Engine) RegisterLicense(ctx context.Context, consumerKey, consumerSecret string) (string, error) {
	if consumerKey == "" || consumerSecret == "" {
		return "", ErrMissingParameter
	}

	secret, ok := e.licenses[consumerKey]
	if !ok || subtle.ConstantTimeCompare([]byte(secret), []byte(consumerSecret)) != 1 {
		e.metrics.Inc(MetricLicenseDenied)
		e.log.Warn("license validation failed", "consumer_key", consumerKey)
		return "", ErrInvalidLicense
	}

	token, err := internal.NewToken()
	if err != nil {
		return "", wrapInternal(err)
	}

	if err := e.store.Set(ctx, accountTokenKey(token), consumerKey, e.config.Tokens.AccountTokenTTL); err != nil {
		e.log.Error("account token cache write failed", "consumer_key", consumerKey, "error", err)
		return "", wrapInternal(err)
	}

	e.metrics.Inc(MetricLicenseGranted)
	e.log.Info("account token issued", "consumer_key", consumerKey)
	return token, nil
}
