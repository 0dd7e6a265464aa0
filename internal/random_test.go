package internal

import "testing"

func TestNewTokenFormat(t *testing.T) {
	tok, err := NewToken()
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	if len(tok) != TokenLength {
		t.Fatalf("expected %d chars, got %d (%q)", TokenLength, len(tok), tok)
	}
	for _, c := range tok {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Fatalf("non-hex character %q in token %q", c, tok)
		}
	}
}

// Token values are bearer credentials; collisions or repeats across draws
// would be a direct security failure.
func TestNewTokenUnpredictable(t *testing.T) {
	const draws = 10000
	seen := make(map[string]struct{}, draws)
	for i := 0; i < draws; i++ {
		tok, err := NewToken()
		if err != nil {
			t.Fatalf("new token: %v", err)
		}
		if _, dup := seen[tok]; dup {
			t.Fatalf("duplicate token after %d draws: %q", i, tok)
		}
		seen[tok] = struct{}{}
	}
}

func TestNewTokenPrefixDispersion(t *testing.T) {
	// A biased generator would concentrate leading bytes. With 4096 draws the
	// expected count per leading byte value is 16; zero hits on a large share
	// of values indicates broken randomness.
	counts := make(map[byte]int)
	for i := 0; i < 4096; i++ {
		tok, err := NewToken()
		if err != nil {
			t.Fatalf("new token: %v", err)
		}
		counts[tok[0]]++
	}
	// Leading char is one of 16 hex digits.
	if len(counts) < 12 {
		t.Fatalf("leading hex digit dispersion too low: %d distinct values", len(counts))
	}
}
