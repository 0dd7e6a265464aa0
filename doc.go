// Package goSSO provides a session and token authority backed by Redis, with a
// durable relational store as the system of record for users and long-term
// token records.
//
// The package manages two credential classes: long-lived account tokens
// (software/license level, 24h TTL) and short-lived SSO session cookies (user
// level, 2h TTL), plus user credential tokens that live in both the durable
// store and a cache shadow copy. All multi-step cache mutations run as
// server-side Lua scripts so concurrent clients can never interleave inside an
// operation.
//
// # Architecture boundaries
//
// goSSO is the public surface. It exposes [Engine], [Builder], [Config], coded
// errors, and value types. Script lifecycle lives in the script package, cache
// primitives in tokenstore, and the durable store behind the
// repository.Repository interface. The HTTP routing layer, request filters,
// and response shaping are the caller's concern; every Engine method returns a
// typed outcome carrying a stable error code, never a bare backend error.
//
// # Consistency model
//
// The durable store is authoritative and the cache is a best-effort
// accelerator: a cache write failure after a successful durable write does not
// fail the operation, and a cache miss always falls back to the durable store.
// Cache-side TTL expiry drives the cleanup pipeline that removes the durable
// shadow records.
//
// # What this package must NOT do
//
//   - Expose Redis clients or script internals in its public API.
//   - Perform I/O before [Engine.Start] other than inside Engine methods.
//   - Leak backend error text into client-visible error messages.
package goSSO
