// Package catalog provides SQLite-backed storage for compiled schema
// snapshots.
//
// The catalog is an append-only, content-addressed history:
//   - Each record is keyed by the snapshot's canonical schema hash
//   - Writing the same hash twice is a silent no-op
//   - A monotonic seq column orders records; timestamps are never used
//
// Deterministic query results: all reads order by seq ASC, hash ASC
// COLLATE BINARY, so identical catalogs list identically.
//
// Hashes and canonical bytes come from internal/ir: RFC 8785 canonical
// JSON and SHA-256 with domain separation.
package catalog
