package password

import (
	"strings"
	"testing"
)

func TestArgon2RoundTrip(t *testing.T) {
	a, err := NewArgon2(DefaultArgon2Config())
	if err != nil {
		t.Fatalf("new argon2: %v", err)
	}

	hash, err := a.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected PHC prefix: %q", hash)
	}

	if !a.Verify("correct horse battery staple", hash) {
		t.Fatal("correct password rejected")
	}
	if a.Verify("wrong password entirely", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestArgon2SaltsDiffer(t *testing.T) {
	a, err := NewArgon2(DefaultArgon2Config())
	if err != nil {
		t.Fatalf("new argon2: %v", err)
	}
	h1, err := a.Hash("same password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := a.Hash("same password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical; salt is not random")
	}
}

func TestArgon2MalformedHashVerifiesFalse(t *testing.T) {
	a, err := NewArgon2(DefaultArgon2Config())
	if err != nil {
		t.Fatalf("new argon2: %v", err)
	}
	for _, hash := range []string{
		"",
		"not-a-phc-string",
		"$argon2id$v=19$m=65536,t=2,p=2$short$short",
		"$bcrypt$v=19$m=65536,t=2,p=2$AAAA$AAAA",
	} {
		if a.Verify("anything", hash) {
			t.Fatalf("malformed hash %q verified true", hash)
		}
	}
}

func TestArgon2ConfigValidation(t *testing.T) {
	cfg := DefaultArgon2Config()
	cfg.Memory = 1024
	if _, err := NewArgon2(cfg); err == nil {
		t.Fatal("undersized memory accepted")
	}

	cfg = DefaultArgon2Config()
	cfg.SaltLength = 4
	if _, err := NewArgon2(cfg); err == nil {
		t.Fatal("undersized salt accepted")
	}
}

func TestSHA256HexInterop(t *testing.T) {
	v := SHA256Hex{}

	// Digest of "secret123" as a legacy deployment would have stored it.
	stored := v.Hash("secret123")
	if len(stored) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(stored))
	}

	if !v.Verify("secret123", stored) {
		t.Fatal("correct password rejected")
	}
	if v.Verify("secret124", stored) {
		t.Fatal("wrong password accepted")
	}
	if v.Verify("secret123", "deadbeef") {
		t.Fatal("truncated stored hash accepted")
	}
}
