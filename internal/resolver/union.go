package resolver

import (
	"errors"
	"strings"

	"github.com/roach88/typegraph/internal/ir"
)

// Union builds a named union over the given member annotations.
//
// Members resolve in declared order; generic members are specialized
// first and re-checked. Order and identity are preserved exactly as
// declared - duplicate members are kept verbatim. The built union is
// interned in the registry, so building the same name with equal
// members returns a structurally equal node; the same name with
// different members is a collision.
func Union(reg *Registry, name string, members ...ir.Expr) (*ir.Union, error) {
	return buildUnion(reg, name, "", members, false)
}

// UnionDescribed is Union with a description attached.
func UnionDescribed(reg *Registry, name, description string, members []ir.Expr) (*ir.Union, error) {
	return buildUnion(reg, name, description, members, false)
}

func buildUnion(reg *Registry, name, description string, members []ir.Expr, derived bool) (*ir.Union, error) {
	// Checked before any resolution work.
	if len(members) == 0 {
		return nil, &EmptyUnionError{UnionName: name}
	}

	resolved := make([]*ir.ObjectDef, len(members))
	for i, m := range members {
		def, err := resolveUnionMember(reg, m, name)
		if err != nil {
			return nil, err
		}
		resolved[i] = def
	}

	if derived && name == "" {
		name = deriveUnionName(resolved)
	}

	if existing, ok := reg.LookupUnion(name); ok {
		if sameResolved(existing, resolved) {
			return existing, nil
		}
		return nil, &DuplicateTypeNameError{Name: name}
	}
	if _, ok := reg.Lookup(name); ok {
		return nil, &DuplicateTypeNameError{Name: name}
	}

	u := &ir.Union{
		Name:        name,
		Description: description,
		Members:     members,
		Resolved:    resolved,
		NameDerived: derived,
	}
	reg.unions[name] = u
	return u, nil
}

// resolveUnionMember resolves one member and enforces the union
// participation rules: members must be registered object types.
func resolveUnionMember(reg *Registry, m ir.Expr, unionName string) (*ir.ObjectDef, error) {
	node, err := Resolve(reg, m)
	if err != nil {
		// An unresolved forward reference inside a union reads better
		// as a union membership error than an annotation error.
		var ia *InvalidAnnotationError
		if errors.As(err, &ia) && ia.Reference != "" {
			return nil, &InvalidUnionTypeError{UnionName: unionName, TypeName: ia.Reference}
		}
		return nil, err
	}

	switch n := node.(type) {
	case ir.Scalar:
		return nil, &InvalidUnionTypeError{UnionName: unionName, TypeName: string(n.Kind), Scalar: true}
	case ir.ObjectRef:
		if !reg.Contains(n.Definition) {
			return nil, &InvalidUnionTypeError{UnionName: unionName, TypeName: n.Definition.Name}
		}
		return n.Definition, nil
	default:
		return nil, &InvalidUnionTypeError{UnionName: unionName, TypeName: ir.NodeName(node)}
	}
}

// deriveUnionName concatenates member simple names in declaration order:
// members User, Error derive "UserError".
func deriveUnionName(resolved []*ir.ObjectDef) string {
	var b strings.Builder
	for _, def := range resolved {
		b.WriteString(def.Name)
	}
	return b.String()
}

func sameResolved(u *ir.Union, resolved []*ir.ObjectDef) bool {
	if len(u.Resolved) != len(resolved) {
		return false
	}
	for i, def := range resolved {
		if u.Resolved[i] != def {
			return false
		}
	}
	return true
}
