package ir

// TypeNode represents a resolved, canonical schema type.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern enables exhaustive type switches in
// consumers (printers, executors, the catalog encoder).
//
// Node types:
//   - Scalar: built-in primitive
//   - ObjectRef: reference to a registered definition (shared, never copied)
//   - List, Optional: wrapping composites
//   - *Union: named union over object members
type TypeNode interface {
	typeNode() // Marker method - seals interface to this package
}

// Scalar is a resolved built-in primitive.
type Scalar struct {
	Kind ScalarKind
}

func (Scalar) typeNode() {}

// ObjectRef references a resolved object definition. The definition is
// shared with the owning registry; two ObjectRefs are equal iff they
// reference the identical definition instance.
type ObjectRef struct {
	Definition *ObjectDef
}

func (ObjectRef) typeNode() {}

// List wraps an element type.
type List struct {
	Of TypeNode
}

func (List) typeNode() {}

// Optional wraps an inner type. Resolution guarantees Of is never
// itself an Optional.
type Optional struct {
	Of TypeNode
}

func (Optional) typeNode() {}

// NodeEqual reports structural equality of two resolved nodes.
// ObjectRefs compare by definition identity; unions compare by name and
// ordered resolved members (see Union.Equal).
func NodeEqual(a, b TypeNode) bool {
	switch an := a.(type) {
	case Scalar:
		bn, ok := b.(Scalar)
		return ok && an.Kind == bn.Kind
	case ObjectRef:
		bn, ok := b.(ObjectRef)
		return ok && an.Definition == bn.Definition
	case List:
		bn, ok := b.(List)
		return ok && NodeEqual(an.Of, bn.Of)
	case Optional:
		bn, ok := b.(Optional)
		return ok && NodeEqual(an.Of, bn.Of)
	case *Union:
		bn, ok := b.(*Union)
		return ok && an.Equal(bn)
	default:
		return false
	}
}

// NodeName returns the display name of a resolved node, used in
// diagnostics and derived union names.
func NodeName(n TypeNode) string {
	switch x := n.(type) {
	case Scalar:
		return string(x.Kind)
	case ObjectRef:
		return x.Definition.Name
	case List:
		return "[" + NodeName(x.Of) + "]"
	case Optional:
		return NodeName(x.Of) + "?"
	case *Union:
		return x.Name
	default:
		return ""
	}
}
