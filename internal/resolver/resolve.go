package resolver

import (
	"fmt"

	"github.com/roach88/typegraph/internal/ir"
)

// Resolve maps a type expression to its resolved IR node. It is pure
// given a fully populated registry: repeated calls with equal
// expressions produce equal nodes, and resolving never mutates anything
// beyond the registry's union and specialization caches.
func Resolve(reg *Registry, expr ir.Expr) (ir.TypeNode, error) {
	switch x := expr.(type) {
	case ir.ScalarExpr:
		if !ir.IsScalarKind(x.Kind) {
			return nil, &InvalidAnnotationError{Reason: fmt.Sprintf("unknown scalar kind `%s`", x.Kind)}
		}
		return ir.Scalar{Kind: x.Kind}, nil

	case ir.RefExpr:
		return resolveDef(x.Def)

	case ir.LazyExpr:
		if def, ok := reg.Lookup(x.Name); ok {
			return resolveDef(def)
		}
		if u, ok := reg.LookupUnion(x.Name); ok {
			return u, nil
		}
		if ir.IsScalarKind(ir.ScalarKind(x.Name)) {
			return ir.Scalar{Kind: ir.ScalarKind(x.Name)}, nil
		}
		return nil, &InvalidAnnotationError{Reference: x.Name}

	case ir.OptionalExpr:
		// Nested optionals collapse to a single layer.
		inner := x.Of
		for {
			o, ok := inner.(ir.OptionalExpr)
			if !ok {
				break
			}
			inner = o.Of
		}
		node, err := Resolve(reg, inner)
		if err != nil {
			return nil, err
		}
		return ir.Optional{Of: node}, nil

	case ir.ListExpr:
		node, err := Resolve(reg, x.Of)
		if err != nil {
			return nil, err
		}
		return ir.List{Of: node}, nil

	case ir.UnionExpr:
		// Ad-hoc union: the default name is derived from the resolved
		// members, in declaration order.
		return buildUnion(reg, "", "", x.Members, true)

	case ir.AppliedExpr:
		def, err := appliedBase(reg, x)
		if err != nil {
			return nil, err
		}
		spec, err := Specialize(reg, def, x.Args)
		if err != nil {
			return nil, err
		}
		return ir.ObjectRef{Definition: spec}, nil

	case ir.ParamExpr:
		return nil, &InvalidAnnotationError{Reason: fmt.Sprintf("unbound type parameter `%s`", x.Name)}

	case ir.UnionRefExpr:
		// Already resolved; resolution is idempotent.
		return x.Union, nil

	case nil:
		return nil, &InvalidAnnotationError{Reason: "nil annotation"}

	default:
		return nil, &InvalidAnnotationError{Reason: fmt.Sprintf("unrecognized annotation %T", expr)}
	}
}

// resolveDef wraps a definition handle. Bare references to generic
// definitions are rejected: a generic must be applied before use.
func resolveDef(def *ir.ObjectDef) (ir.TypeNode, error) {
	if def == nil {
		return nil, &InvalidAnnotationError{Reason: "nil type reference"}
	}
	if def.IsGeneric {
		return nil, &MissingTypeArgumentsError{TypeName: def.Name, Want: len(def.TypeParams), Got: 0}
	}
	return ir.ObjectRef{Definition: def}, nil
}

// appliedBase resolves the base of a generic application to its
// definition handle.
func appliedBase(reg *Registry, x ir.AppliedExpr) (*ir.ObjectDef, error) {
	switch base := x.Base.(type) {
	case ir.RefExpr:
		if base.Def == nil {
			return nil, &InvalidAnnotationError{Reason: "nil type reference in generic application"}
		}
		return base.Def, nil
	case ir.LazyExpr:
		def, ok := reg.Lookup(base.Name)
		if !ok {
			return nil, &InvalidAnnotationError{Reference: base.Name}
		}
		return def, nil
	default:
		return nil, &InvalidAnnotationError{Reason: fmt.Sprintf("cannot apply type arguments to %T", x.Base)}
	}
}

// Annotation wraps a type expression and caches its resolution.
// Annotations are created at declaration time and resolved lazily, so
// union members and fields may forward-reference types declared later.
// The cache makes resolution idempotent and side-effect-free on repeat
// calls.
type Annotation struct {
	Expr ir.Expr

	node ir.TypeNode
}

// NewAnnotation wraps a raw type expression.
func NewAnnotation(expr ir.Expr) *Annotation {
	return &Annotation{Expr: expr}
}

// Resolve resolves the annotation against reg, caching the result.
func (a *Annotation) Resolve(reg *Registry) (ir.TypeNode, error) {
	if a.node != nil {
		return a.node, nil
	}
	node, err := Resolve(reg, a.Expr)
	if err != nil {
		return nil, err
	}
	a.node = node
	return node, nil
}

// Resolved returns the cached node, if resolution has happened.
func (a *Annotation) Resolved() (ir.TypeNode, bool) {
	return a.node, a.node != nil
}
