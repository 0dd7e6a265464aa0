// Package password implements the pluggable password verification goSSO uses
// during login.
//
// Two implementations ship with the module: [Argon2] (argon2id, PHC-encoded,
// the default for new deployments) and [SHA256Hex] (bare hex-encoded SHA-256,
// kept for interop with stored hashes from pre-existing deployments).
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Which verifier a
// deployment runs is a Config decision made at Build time; lockouts and
// rate limiting belong to the engine.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and hashes.
//   - Import any other goSSO package.
//   - Log plaintext passwords or hash parameters.
package password
