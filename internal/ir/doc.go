// Package ir provides the canonical intermediate representation for
// typegraph schemas.
//
// This package contains type definitions and pure structural operations
// only. All other internal packages import ir; ir imports nothing
// internal. This ensures IR remains the foundational layer with no
// circular dependencies.
//
// Key design constraints:
//   - Expr and TypeNode are sealed interfaces (marker-method pattern);
//     backends can type-switch exhaustively
//   - ObjectDef instances are shared by reference, never copied -
//     referential identity IS definition identity
//   - Canonical JSON (RFC 8785) is the only serialization used for
//     content-addressed schema identity
package ir
