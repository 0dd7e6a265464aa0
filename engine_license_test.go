package goSSO

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrEthical07/goSSO/internal"
)

func TestRegisterLicenseIssuesAccountToken(t *testing.T) {
	fx := newTestEngine(t, nil)
	ctx := context.Background()

	token, err := fx.engine.RegisterLicense(ctx, testConsumerKey, testConsumerSecret)
	if err != nil {
		t.Fatalf("register license: %v", err)
	}
	if len(token) != internal.TokenLength {
		t.Fatalf("token length %d, want %d", len(token), internal.TokenLength)
	}

	// The cache maps the token back to the consumer key.
	val, err := fx.mr.Get(accountTokenKey(token))
	if err != nil {
		t.Fatalf("cache read: %v", err)
	}
	if val != testConsumerKey {
		t.Fatalf("account token maps to %q, want %q", val, testConsumerKey)
	}

	ttl := fx.mr.TTL(accountTokenKey(token))
	if ttl <= 0 || ttl > 24*time.Hour {
		t.Fatalf("unexpected account token TTL %v", ttl)
	}

	if got := fx.engine.MetricsSnapshot().LicenseGranted; got != 1 {
		t.Fatalf("LicenseGranted = %d, want 1", got)
	}
}

func TestRegisterLicenseRejectsBadCredentials(t *testing.T) {
	fx := newTestEngine(t, nil)
	ctx := context.Background()

	cases := []struct {
		name    string
		key     string
		secret  string
		wantErr error
	}{
		{"empty key", "", testConsumerSecret, ErrMissingParameter},
		{"empty secret", testConsumerKey, "", ErrMissingParameter},
		{"unknown key", "not_registered", testConsumerSecret, ErrInvalidLicense},
		{"wrong secret", testConsumerKey, "wrong", ErrInvalidLicense},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.engine.RegisterLicense(ctx, tc.key, tc.secret)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}

	if got := fx.engine.MetricsSnapshot().LicenseDenied; got != 2 {
		t.Fatalf("LicenseDenied = %d, want 2", got)
	}
}

func TestRegisterLicenseTokensAreUnique(t *testing.T) {
	fx := newTestEngine(t, nil)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		token, err := fx.engine.RegisterLicense(ctx, testConsumerKey, testConsumerSecret)
		if err != nil {
			t.Fatalf("register license: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token issued: %s", token)
		}
		seen[token] = true
	}
}

func TestRegisterLicenseCacheOutage(t *testing.T) {
	fx := newTestEngine(t, nil)
	fx.mr.Close()

	_, err := fx.engine.RegisterLicense(context.Background(), testConsumerKey, testConsumerSecret)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal on cache outage, got %v", err)
	}
}

func TestErrorCodesAreStable(t *testing.T) {
	cases := []struct {
		err  *Error
		code int
	}{
		{ErrInvalidLicense, 1001},
		{ErrAccountTokenInvalid, 1002},
		{ErrLoginUserNotFound, 1003},
		{ErrAccountInactive, 1004},
		{ErrInvalidPassword, 1005},
		{ErrSSOCookieInvalid, 1006},
		{ErrRateLimited, 429},
		{ErrInternal, 500},
	}
	for _, tc := range cases {
		if tc.err.Code != tc.code {
			t.Errorf("%q carries code %d, want %d", tc.err.Message, tc.err.Code, tc.code)
		}
	}
}
