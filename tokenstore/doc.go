// Package tokenstore provides the typed cache primitives behind goSSO: token
// records, distributed locks, counters, and rate limiting, all built on the
// script executor plus raw Redis reads and writes.
//
// # Error channel
//
// Every method keeps business results and infrastructure failures on separate
// channels. A lock that is already held, a token that does not exist, or a
// rate limit that denies all come back as false values with a nil error; a
// Redis transport failure always comes back as an error wrapping
// [ErrCacheUnavailable]. Callers that conflate the two would turn transient
// outages into business denials.
//
// # Key namespace
//
// The namespace is fixed for interop with existing deployments:
//
//	token:{token}        hash {user_id, create_at}, caller-specified TTL
//	ratelimit:{subject}  fixed-window counters, bucketed by coarse time
//
// # What this package must NOT do
//
//   - Decide authentication policy — that belongs to the Engine.
//   - Touch the durable store.
package tokenstore
