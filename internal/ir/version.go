package ir

// Version constants for the IR schema and resolver.
const (
	// IRVersion is the IR schema version.
	IRVersion = "1"

	// ResolverVersion is the typegraph resolver version.
	ResolverVersion = "0.1.0"
)
