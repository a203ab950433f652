// Package resolver maps type annotations to resolved IR nodes.
//
// The package owns the schema-build core: the per-build type registry,
// the recursive annotation resolver, the union builder, and the generic
// specializer. Everything operates on an explicit *Registry instance -
// there is no process-wide registry, so independent schema builds stay
// isolated and cannot poison each other's specialization caches.
//
// Schema construction is a one-shot, synchronous process. Resolution
// errors are never caught or retried internally; they propagate to the
// caller, which is expected to halt startup. A Registry is not safe for
// concurrent mutation.
package resolver
