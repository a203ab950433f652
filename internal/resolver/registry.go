package resolver

import (
	"sort"

	"github.com/google/uuid"

	"github.com/roach88/typegraph/internal/ir"
)

// Registry tracks the user-defined schema types, built unions, and
// generic specializations of one schema build.
//
// One registry accompanies each schema build; entries live for the
// lifetime of the build with no eviction. Insertion is idempotent for
// identical keys.
type Registry struct {
	buildID string

	defs   map[string]*ir.ObjectDef
	specs  map[specKey]*ir.ObjectDef
	unions map[string]*ir.Union
}

// specKey caches specializations by (definition identity, argument
// tuple). The definition pointer IS the identity; the argument tuple is
// keyed structurally.
type specKey struct {
	def  *ir.ObjectDef
	args string
}

// NewRegistry creates an empty registry with a UUIDv7 build ID.
//
// UUIDv7 embeds a timestamp in the most significant bits, making build
// IDs sortable by creation time, which helps when correlating catalog
// records.
func NewRegistry() *Registry {
	return NewRegistryWithBuildID(uuid.Must(uuid.NewV7()).String())
}

// NewRegistryWithBuildID creates a registry with a caller-supplied build
// ID. Tests use fixed IDs for deterministic snapshots.
func NewRegistryWithBuildID(id string) *Registry {
	return &Registry{
		buildID: id,
		defs:    make(map[string]*ir.ObjectDef),
		specs:   make(map[specKey]*ir.ObjectDef),
		unions:  make(map[string]*ir.Union),
	}
}

// BuildID returns the registry's build identifier.
func (r *Registry) BuildID() string {
	return r.buildID
}

// Object registers a plain (non-generic) schema type and returns its
// definition handle. All downstream resolution operates on handles.
func (r *Registry) Object(name string, fields ...ir.Field) (*ir.ObjectDef, error) {
	return r.register(&ir.ObjectDef{Name: name, Fields: fields})
}

// Generic registers a parametrized generic type. Field annotations may
// reference the declared parameters via ir.Param.
func (r *Registry) Generic(name string, params []string, fields ...ir.Field) (*ir.ObjectDef, error) {
	return r.register(&ir.ObjectDef{
		Name:       name,
		Fields:     fields,
		IsGeneric:  true,
		TypeParams: params,
	})
}

func (r *Registry) register(def *ir.ObjectDef) (*ir.ObjectDef, error) {
	if def.Name == "" {
		return nil, &InvalidAnnotationError{Reason: "type name must be non-empty"}
	}
	if ir.IsScalarKind(ir.ScalarKind(def.Name)) {
		return nil, &DuplicateTypeNameError{Name: def.Name}
	}
	if r.nameTaken(def.Name) {
		return nil, &DuplicateTypeNameError{Name: def.Name}
	}
	r.defs[def.Name] = def
	return def, nil
}

// nameTaken reports whether a name is used by a definition or a union.
func (r *Registry) nameTaken(name string) bool {
	if _, ok := r.defs[name]; ok {
		return true
	}
	_, ok := r.unions[name]
	return ok
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*ir.ObjectDef, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// LookupUnion returns the union registered under name.
func (r *Registry) LookupUnion(name string) (*ir.Union, bool) {
	u, ok := r.unions[name]
	return u, ok
}

// Contains reports whether def participates in this registry's schema.
// Participation is identity-based: a definition constructed outside the
// registry does not participate even if a type of the same name does.
func (r *Registry) Contains(def *ir.ObjectDef) bool {
	if def == nil {
		return false
	}
	return r.defs[def.Name] == def
}

// Definitions returns all registered definitions sorted by name.
func (r *Registry) Definitions() []*ir.ObjectDef {
	out := make([]*ir.ObjectDef, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Unions returns all built unions sorted by name.
func (r *Registry) Unions() []*ir.Union {
	out := make([]*ir.Union, 0, len(r.unions))
	for _, u := range r.unions {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// specialization returns the cached specialization for a key.
func (r *Registry) specialization(key specKey) (*ir.ObjectDef, bool) {
	def, ok := r.specs[key]
	return def, ok
}

// storeSpecialization registers a specialized definition under both its
// derived name and its cache key.
func (r *Registry) storeSpecialization(key specKey, def *ir.ObjectDef) {
	r.specs[key] = def
	r.defs[def.Name] = def
}
