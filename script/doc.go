// Package script manages the atomic Lua operations goSSO executes against Redis.
//
// # Script lifecycle
//
// Each operation is identified by name. The [Registry] holds the Lua source and
// the SHA1 digest Redis assigns on SCRIPT LOAD. The [Executor] resolves a name
// to its SHA, invokes EVALSHA, and transparently re-registers the source when
// Redis reports NOSCRIPT (restart or script-cache eviction). The retry happens
// exactly once per call; a second NOSCRIPT failure is surfaced as
// [ErrScriptUnavailable] rather than looping against a backend that cannot
// retain scripts.
//
// A SHA is only meaningful for the lifetime of the Redis process it was
// registered against, so it is never persisted and never trusted across
// executor restarts.
//
// # Architecture boundaries
//
// This package owns script identity and execution mechanics only. Key naming,
// argument construction, and reply interpretation for specific operations
// belong to the tokenstore package.
//
// # What this package must NOT do
//
//   - Import goSSO or tokenstore (no upward imports).
//   - Retry any failure other than NOSCRIPT — a transport error after the
//     script ran would make a blind retry a double execution.
package script
