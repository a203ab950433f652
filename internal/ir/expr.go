package ir

import "strings"

// Expr represents an unresolved type expression (annotation).
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the resolver.
//
// Expression forms:
//   - ScalarExpr: built-in primitive (Int, Float, String, Boolean, ID)
//   - RefExpr: handle to a registered definition
//   - LazyExpr: forward reference by name, looked up at resolve time
//   - ListExpr, OptionalExpr: wrapping composites
//   - UnionExpr: host-level union of alternatives
//   - AppliedExpr: parametrized generic application
//   - ParamExpr: generic parameter reference inside a generic definition
//   - UnionRefExpr: a previously built Union passed back as an annotation
//
// Expressions are immutable once constructed; equality is structural
// (see ExprEqual and ExprKey).
type Expr interface {
	typeExpr() // Marker method - seals interface to this package
}

// ScalarExpr wraps a built-in scalar.
type ScalarExpr struct {
	Kind ScalarKind
}

func (ScalarExpr) typeExpr() {}

// RefExpr wraps a direct handle to a definition.
type RefExpr struct {
	Def *ObjectDef
}

func (RefExpr) typeExpr() {}

// LazyExpr wraps a forward reference to a type that may not be declared
// yet. The name is looked up against the registry at resolve time.
type LazyExpr struct {
	Name string
}

func (LazyExpr) typeExpr() {}

// ListExpr wraps a sequence composite.
type ListExpr struct {
	Of Expr
}

func (ListExpr) typeExpr() {}

// OptionalExpr wraps an optional composite. Nested optionals collapse to
// a single layer at resolution.
type OptionalExpr struct {
	Of Expr
}

func (OptionalExpr) typeExpr() {}

// UnionExpr wraps an ad-hoc union of alternatives. It carries no name;
// resolution derives one from its members.
type UnionExpr struct {
	Members []Expr
}

func (UnionExpr) typeExpr() {}

// AppliedExpr wraps a generic application. Base must resolve to a
// generic definition; Args bind its parameters in declaration order.
type AppliedExpr struct {
	Base Expr
	Args []Expr
}

func (AppliedExpr) typeExpr() {}

// ParamExpr references a generic type parameter by name. Only valid
// inside the fields of a generic definition.
type ParamExpr struct {
	Name string
}

func (ParamExpr) typeExpr() {}

// UnionRefExpr wraps an already-built Union used as an annotation.
type UnionRefExpr struct {
	Union *Union
}

func (UnionRefExpr) typeExpr() {}

// Constructors. These read better at call sites than struct literals:
// resolver.Union(reg, "Result", ir.Ref(user), ir.ListOf(ir.Lazy("Error"))).

// ScalarOf returns a scalar expression.
func ScalarOf(k ScalarKind) Expr { return ScalarExpr{Kind: k} }

// Ref returns a direct reference expression.
func Ref(def *ObjectDef) Expr { return RefExpr{Def: def} }

// Lazy returns a forward reference expression.
func Lazy(name string) Expr { return LazyExpr{Name: name} }

// ListOf returns a list expression.
func ListOf(of Expr) Expr { return ListExpr{Of: of} }

// OptionalOf returns an optional expression.
func OptionalOf(of Expr) Expr { return OptionalExpr{Of: of} }

// OneOf returns an ad-hoc union expression over the given alternatives.
func OneOf(members ...Expr) Expr { return UnionExpr{Members: members} }

// Apply returns a generic application over a definition handle.
func Apply(def *ObjectDef, args ...Expr) Expr {
	return AppliedExpr{Base: RefExpr{Def: def}, Args: args}
}

// ApplyName returns a generic application over a forward reference.
func ApplyName(name string, args ...Expr) Expr {
	return AppliedExpr{Base: LazyExpr{Name: name}, Args: args}
}

// Param returns a generic parameter reference.
func Param(name string) Expr { return ParamExpr{Name: name} }

// RefUnion wraps a built union for use as an annotation.
func RefUnion(u *Union) Expr { return UnionRefExpr{Union: u} }

// ExprKey returns a stable structural key for an expression. Keys are
// unique per structure within one registry (definition names are unique
// there) and are used for specialization cache keys and structural
// equality.
func ExprKey(e Expr) string {
	switch x := e.(type) {
	case ScalarExpr:
		return string(x.Kind)
	case RefExpr:
		return x.Def.Name
	case LazyExpr:
		return x.Name
	case ListExpr:
		return "[" + ExprKey(x.Of) + "]"
	case OptionalExpr:
		return ExprKey(x.Of) + "?"
	case UnionExpr:
		parts := make([]string, len(x.Members))
		for i, m := range x.Members {
			parts[i] = ExprKey(m)
		}
		return "(" + strings.Join(parts, "|") + ")"
	case AppliedExpr:
		parts := make([]string, len(x.Args))
		for i, a := range x.Args {
			parts[i] = ExprKey(a)
		}
		return ExprKey(x.Base) + "<" + strings.Join(parts, ",") + ">"
	case ParamExpr:
		return "$" + x.Name
	case UnionRefExpr:
		return "union:" + x.Union.Name
	default:
		return ""
	}
}

// ExprEqual reports structural equality of two expressions. Definition
// names are unique within a registry, so key comparison is exact for
// expressions drawn from the same schema build.
func ExprEqual(a, b Expr) bool {
	return ExprKey(a) == ExprKey(b)
}
