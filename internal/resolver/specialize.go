package resolver

import (
	"fmt"
	"strings"

	"github.com/roach88/typegraph/internal/ir"
)

// Specialize produces the concrete definition of a generic applied to
// the given type arguments. Non-generic definitions are returned
// unchanged.
//
// Specializations are cached per (definition identity, argument tuple):
// repeated calls with identical arguments return the identical instance,
// never a second allocation. The derived name substitutes each parameter
// with its bound argument's simple name - binding String to a
// one-parameter generic Edge yields StrEdge.
func Specialize(reg *Registry, def *ir.ObjectDef, args []ir.Expr) (*ir.ObjectDef, error) {
	if def == nil {
		return nil, &InvalidAnnotationError{Reason: "nil type reference"}
	}
	if !def.IsGeneric {
		return def, nil
	}
	if len(args) != len(def.TypeParams) {
		return nil, &MissingTypeArgumentsError{TypeName: def.Name, Want: len(def.TypeParams), Got: len(args)}
	}

	key := specKey{def: def, args: argsKey(args)}
	if cached, ok := reg.specialization(key); ok {
		return cached, nil
	}

	name, err := derivedSpecName(reg, def, args)
	if err != nil {
		return nil, err
	}
	if reg.nameTaken(name) {
		return nil, &DuplicateTypeNameError{Name: name}
	}

	// Explicit substitution map from parameter identity to bound
	// argument, applied recursively through field annotation trees.
	subst := make(map[string]ir.Expr, len(args))
	for i, p := range def.TypeParams {
		subst[p] = args[i]
	}

	fields := make([]ir.Field, len(def.Fields))
	for i, f := range def.Fields {
		typ, err := substituteExpr(f.Type, subst)
		if err != nil {
			return nil, fmt.Errorf("specializing `%s` field `%s`: %w", def.Name, f.Name, err)
		}
		fields[i] = ir.Field{Name: f.Name, Type: typ}
	}

	spec := &ir.ObjectDef{
		Name:        name,
		Description: def.Description,
		Fields:      fields,
		Origin:      def,
		TypeArgs:    args,
	}
	reg.storeSpecialization(key, spec)
	return spec, nil
}

// argsKey builds the structural cache key for an argument tuple.
func argsKey(args []ir.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = ir.ExprKey(a)
	}
	return strings.Join(parts, ",")
}

// derivedSpecName concatenates each argument's simple name with the
// generic's base name.
func derivedSpecName(reg *Registry, def *ir.ObjectDef, args []ir.Expr) (string, error) {
	var b strings.Builder
	for _, a := range args {
		node, err := Resolve(reg, a)
		if err != nil {
			return "", err
		}
		b.WriteString(simpleSpecName(node))
	}
	b.WriteString(def.Name)
	return b.String(), nil
}

// simpleSpecName names a resolved node for use inside a derived
// specialization name.
func simpleSpecName(n ir.TypeNode) string {
	switch x := n.(type) {
	case ir.Scalar:
		return x.Kind.SpecName()
	case ir.ObjectRef:
		return x.Definition.Name
	case ir.List:
		return simpleSpecName(x.Of) + "List"
	case ir.Optional:
		return simpleSpecName(x.Of) + "Optional"
	case *ir.Union:
		return x.Name
	default:
		return ""
	}
}

// substituteExpr rewrites parameter references in an annotation tree to
// the bound concrete arguments. Composite expressions recurse, since a
// field's annotation may itself contain the parameter.
func substituteExpr(e ir.Expr, subst map[string]ir.Expr) (ir.Expr, error) {
	switch x := e.(type) {
	case ir.ParamExpr:
		bound, ok := subst[x.Name]
		if !ok {
			return nil, &InvalidAnnotationError{Reason: fmt.Sprintf("unbound type parameter `%s`", x.Name)}
		}
		return bound, nil
	case ir.ListExpr:
		of, err := substituteExpr(x.Of, subst)
		if err != nil {
			return nil, err
		}
		return ir.ListExpr{Of: of}, nil
	case ir.OptionalExpr:
		of, err := substituteExpr(x.Of, subst)
		if err != nil {
			return nil, err
		}
		return ir.OptionalExpr{Of: of}, nil
	case ir.UnionExpr:
		members := make([]ir.Expr, len(x.Members))
		for i, m := range x.Members {
			sub, err := substituteExpr(m, subst)
			if err != nil {
				return nil, err
			}
			members[i] = sub
		}
		return ir.UnionExpr{Members: members}, nil
	case ir.AppliedExpr:
		if _, ok := x.Base.(ir.ParamExpr); ok {
			return nil, &InvalidAnnotationError{Reason: "cannot apply type arguments to a type parameter"}
		}
		argList := make([]ir.Expr, len(x.Args))
		for i, a := range x.Args {
			sub, err := substituteExpr(a, subst)
			if err != nil {
				return nil, err
			}
			argList[i] = sub
		}
		return ir.AppliedExpr{Base: x.Base, Args: argList}, nil
	default:
		// Scalars, refs, lazy refs, and union refs carry no parameters.
		return e, nil
	}
}
