// Package testutil provides deterministic helpers for schema tests.
//
// Registries built here carry a fixed build ID, so snapshots and
// golden comparisons are byte-identical across runs. All Must*
// helpers fail the test on error instead of returning it.
package testutil

import (
	"testing"

	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/typegraph/internal/compiler"
	"github.com/roach88/typegraph/internal/ir"
	"github.com/roach88/typegraph/internal/resolver"
)

// FixedBuildID is the build ID used by NewRegistry.
//
// Production registries get a fresh UUIDv7 per build; tests pin the ID
// so identical declarations produce identical snapshots.
const FixedBuildID = "build-test-00000000-0000-0000-0000-000000000001"

// NewRegistry creates an empty registry with the fixed test build ID.
func NewRegistry(t *testing.T) *resolver.Registry {
	t.Helper()
	return resolver.NewRegistryWithBuildID(FixedBuildID)
}

// MustObject registers an object type, failing the test on error.
func MustObject(t *testing.T, reg *resolver.Registry, name string, fields ...ir.Field) *ir.ObjectDef {
	t.Helper()
	def, err := reg.Object(name, fields...)
	if err != nil {
		t.Fatalf("Object(%s) failed: %v", name, err)
	}
	return def
}

// MustGeneric registers a generic template, failing the test on error.
func MustGeneric(t *testing.T, reg *resolver.Registry, name string, params []string, fields ...ir.Field) *ir.ObjectDef {
	t.Helper()
	def, err := reg.Generic(name, params, fields...)
	if err != nil {
		t.Fatalf("Generic(%s) failed: %v", name, err)
	}
	return def
}

// MustUnion builds a named union, failing the test on error.
func MustUnion(t *testing.T, reg *resolver.Registry, name string, members ...ir.Expr) *ir.Union {
	t.Helper()
	u, err := resolver.Union(reg, name, members...)
	if err != nil {
		t.Fatalf("Union(%s) failed: %v", name, err)
	}
	return u
}

// MustCompile compiles a CUE schema document into a registry with the
// fixed test build ID, failing the test on error.
func MustCompile(t *testing.T, src string) *resolver.Registry {
	t.Helper()
	reg := resolver.NewRegistryWithBuildID(FixedBuildID)
	v := cuecontext.New().CompileString(src)
	if err := v.Err(); err != nil {
		t.Fatalf("CompileString failed: %v", err)
	}
	if err := compiler.CompileInto(v, reg); err != nil {
		t.Fatalf("CompileInto failed: %v", err)
	}
	return reg
}

// MustSnapshot validates and snapshots a registry, failing the test on
// error.
func MustSnapshot(t *testing.T, reg *resolver.Registry) *resolver.Snapshot {
	t.Helper()
	snap, err := resolver.BuildSnapshot(reg)
	if err != nil {
		t.Fatalf("BuildSnapshot failed: %v", err)
	}
	return snap
}
