package goSSO

import (
	"context"
	"testing"
	"time"
)

func TestNormalizeNotification(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"raw key", "token:abc123", "token:abc123"},
		{"surrounding whitespace", "  token:abc123\n", "token:abc123"},
		{"quoted", `"token:abc123"`, "token:abc123"},
		{"escaped quotes", `\"token:abc123\"`, "token:abc123"},
		{"escaped backslash", `token:a\\b`, `token:a\b`},
		{"quoted with inner whitespace", `" token:abc123 "`, "token:abc123"},
		{"lone quote kept", `"token:abc123`, `"token:abc123`},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeNotification(tc.in); got != tc.want {
				t.Fatalf("normalizeNotification(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// waitFor polls cond until it holds or the deadline passes. The watcher
// consumes events on its own goroutine, so assertions need a little patience.
func waitFor(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestWatcherRoutesExpiredTokensToCleanup(t *testing.T) {
	fx := newTestEngine(t, nil)
	ctx := context.Background()

	token, err := fx.engine.IssueUserToken(ctx, "alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if err := fx.engine.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer fx.engine.Close()

	// miniredis does not emit keyspace events on expiry, so deliver the
	// notification the way the server would.
	fx.mr.Publish("__keyevent@0__:expired", "token:"+token)

	if !waitFor(t, 2*time.Second, func() bool { return len(fx.repo.deleted()) == 1 }) {
		t.Fatalf("expected one durable delete, got %v", fx.repo.deleted())
	}
	if got := fx.repo.deleted()[0]; got != token {
		t.Fatalf("deleted %q, want %q", got, token)
	}
	if rec, _ := fx.repo.FindTokenByValue(ctx, token); rec != nil {
		t.Fatal("durable record survived the expiration event")
	}
}

func TestWatcherIgnoresForeignAndMalformedKeys(t *testing.T) {
	fx := newTestEngine(t, nil)
	ctx := context.Background()

	if err := fx.engine.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer fx.engine.Close()

	// None of these name a token: wrong namespace, empty id, other channels'
	// key shapes.
	fx.mr.Publish("__keyevent@0__:expired", "sso:some-cookie")
	fx.mr.Publish("__keyevent@0__:expired", "account_token:some-token")
	fx.mr.Publish("__keyevent@0__:expired", "token:")
	fx.mr.Publish("__keyevent@0__:expired", "unrelated")

	// A real one afterwards proves the loop survived them all.
	fx.mr.Publish("__keyevent@0__:expired", "token:final")

	if !waitFor(t, 2*time.Second, func() bool { return len(fx.repo.deleted()) >= 1 }) {
		t.Fatal("watcher stopped consuming")
	}
	deleted := fx.repo.deleted()
	if len(deleted) != 1 || deleted[0] != "final" {
		t.Fatalf("expected only the final token deleted, got %v", deleted)
	}
}

func TestWatcherNormalizesQuotedPayloads(t *testing.T) {
	fx := newTestEngine(t, nil)
	ctx := context.Background()

	if err := fx.engine.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer fx.engine.Close()

	fx.mr.Publish("__keyevent@0__:expired", `"token:quoted-one"`)

	if !waitFor(t, 2*time.Second, func() bool { return len(fx.repo.deleted()) == 1 }) {
		t.Fatalf("expected one durable delete, got %v", fx.repo.deleted())
	}
	if got := fx.repo.deleted()[0]; got != "quoted-one" {
		t.Fatalf("deleted %q, want quoted-one", got)
	}
}
