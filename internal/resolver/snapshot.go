package resolver

import (
	"fmt"
	"strings"

	"github.com/roach88/typegraph/internal/ir"
)

// Snapshot is the fully resolved, canonically encoded form of one
// schema build. Canonical holds RFC 8785 JSON; Hash is its
// content-addressed identity. The build ID is carried alongside but
// excluded from the hashed document, so identical declarations hash
// identically across builds.
type Snapshot struct {
	BuildID   string
	Hash      string
	Canonical []byte

	// TypeHashes maps each non-generic type name to the hash of its own
	// canonical document.
	TypeHashes map[string]string
}

// BuildSnapshot validates the registry, resolves every declaration, and
// produces the canonical schema document. Validation errors are
// build-fatal: no partial snapshot is produced.
func BuildSnapshot(reg *Registry) (*Snapshot, error) {
	if errs := Validate(reg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
	}

	typeHashes := make(map[string]string)
	var types []any
	for _, def := range reg.Definitions() {
		doc, err := defDoc(reg, def)
		if err != nil {
			return nil, err
		}
		types = append(types, doc)

		canonical, err := ir.MarshalCanonical(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding type `%s`: %w", def.Name, err)
		}
		typeHashes[def.Name] = ir.TypeDefHash(canonical)
	}

	var unions []any
	for _, u := range reg.Unions() {
		unions = append(unions, ir.CanonicalNode(u))
	}

	doc := map[string]any{
		"ir_version": ir.IRVersion,
		"types":      emptyAsList(types),
		"unions":     emptyAsList(unions),
	}

	canonical, err := ir.MarshalCanonical(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}

	return &Snapshot{
		BuildID:    reg.BuildID(),
		Hash:       ir.SchemaHash(canonical),
		Canonical:  canonical,
		TypeHashes: typeHashes,
	}, nil
}

// defDoc encodes one definition. Non-generic fields are resolved to
// nodes; generic templates keep their structural expression keys, since
// a template is not resolvable until specialized.
func defDoc(reg *Registry, def *ir.ObjectDef) (map[string]any, error) {
	fields := make([]any, len(def.Fields))
	for i, f := range def.Fields {
		fieldDoc := map[string]any{"name": f.Name}
		if def.IsGeneric {
			fieldDoc["type_expr"] = ir.ExprKey(f.Type)
		} else {
			node, err := Resolve(reg, f.Type)
			if err != nil {
				return nil, fmt.Errorf("resolving `%s.%s`: %w", def.Name, f.Name, err)
			}
			fieldDoc["type"] = ir.CanonicalNode(node)
		}
		fields[i] = fieldDoc
	}

	doc := map[string]any{
		"name":       def.Name,
		"fields":     fields,
		"is_generic": def.IsGeneric,
	}
	if def.Description != "" {
		doc["description"] = def.Description
	}
	if len(def.TypeParams) > 0 {
		params := make([]any, len(def.TypeParams))
		for i, p := range def.TypeParams {
			params[i] = p
		}
		doc["type_params"] = params
	}
	return doc, nil
}

// emptyAsList keeps empty collections as [] rather than null in the
// canonical document.
func emptyAsList(v []any) []any {
	if v == nil {
		return []any{}
	}
	return v
}
