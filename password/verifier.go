package password

// Verifier checks a plaintext password against a stored hash. Implementations
// must be safe for concurrent use and must not leak timing information about
// the stored hash.
type Verifier interface {
	Verify(plaintext, storedHash string) bool
}
