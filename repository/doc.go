// Package repository is the durable system of record for users and long-term
// token records.
//
// The cache is a best-effort accelerator on top of this store: a cache miss
// never implies non-existence, and token validity in the durable copy is
// decided by comparing the explicit expiry timestamp against the wall clock,
// never by record presence alone.
//
// [Repository] is the capability interface the engine consumes; [Postgres] is
// the production implementation. Lookups that find nothing return (nil, nil),
// keeping absence distinct from infrastructure failure.
package repository
