package script

import (
	"embed"
	"fmt"
	"sync"
)

//go:embed scripts/*.lua
var scriptFS embed.FS

// Names of the production atomic operations shipped with goSSO.
const (
	ValidateToken   = "validate_token"
	RateLimit       = "rate_limit"
	AcquireLock     = "acquire_lock"
	ReleaseLock     = "release_lock"
	GetNextID       = "get_next_id"
	AtomicIncrement = "atomic_increment"
	BatchSetHash    = "batch_set_hash"
	CheckAndUpdate  = "check_and_update"
)

var defaultScripts = []string{
	ValidateToken,
	RateLimit,
	AcquireLock,
	ReleaseLock,
	GetNextID,
	AtomicIncrement,
	BatchSetHash,
	CheckAndUpdate,
}

type entry struct {
	source string
	sha    string
}

// Registry maps operation names to Lua source text and the SHA assigned by
// Redis once the source has been registered.
//
// Reads vastly outnumber writes: sources are loaded during initialization and
// SHAs change only when Redis loses its script cache. Lookups take the read
// lock only, so concurrent hot-path execution is never serialized. Two callers
// racing the same lazy registration both write a SHA for identical source;
// last write wins and both values are valid.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// DefaultRegistry returns a Registry preloaded with the embedded production
// scripts.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	for _, name := range defaultScripts {
		source, err := scriptFS.ReadFile("scripts/" + name + ".lua")
		if err != nil {
			return nil, fmt.Errorf("read embedded script %s: %w", name, err)
		}
		r.Load(name, string(source))
	}
	return r, nil
}

// Load stores source text under name. Loading is idempotent and last write
// wins; any previously cached SHA is discarded since it no longer matches the
// source.
func (r *Registry) Load(name, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &entry{source: source}
}

// Has reports whether a script is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Source returns the Lua source for name.
func (r *Registry) Source(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return "", false
	}
	return e.source, true
}

// SHA returns the cached Redis script digest for name, if one has been
// registered with the backend.
func (r *Registry) SHA(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok || e.sha == "" {
		return "", false
	}
	return e.sha, true
}

// SetSHA records the digest Redis assigned for name. A no-op for unknown
// names.
func (r *Registry) SetSHA(name, sha string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		e.sha = sha
	}
}

// ClearSHA forgets the cached digest for name, forcing re-registration on the
// next execution. Called when Redis reports NOSCRIPT.
func (r *Registry) ClearSHA(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		e.sha = ""
	}
}

// Names returns the registered script names in unspecified order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}
