package ir

import "fmt"

// Value is a concrete runtime value typed against the schema.
//
// This is a sealed interface - only types in this package implement it.
// Values exist so the execution surface can discriminate concrete data
// against declared union members; they are not part of schema identity.
type Value interface {
	valueNode() // Marker method - seals interface to this package
}

// StringValue is a concrete string.
type StringValue string

func (StringValue) valueNode() {}

// IntValue is a concrete integer.
type IntValue int64

func (IntValue) valueNode() {}

// FloatValue is a concrete float. Floats are legal at the value level;
// canonical encoding applies only to type-level IR, which carries none.
type FloatValue float64

func (FloatValue) valueNode() {}

// BoolValue is a concrete boolean.
type BoolValue bool

func (BoolValue) valueNode() {}

// ListValue is a concrete list.
type ListValue []Value

func (ListValue) valueNode() {}

// ObjectValue is a concrete object carrying the definition it was
// instantiated from.
type ObjectValue struct {
	Definition *ObjectDef
	Fields     map[string]Value
}

func (*ObjectValue) valueNode() {}

// Instantiate constructs a concrete object value for a resolved node.
//
// Only ObjectRef nodes are instantiable. A Union is a pure type-level
// construct with no independent runtime representation; instantiating
// one fails fast at the point of misuse, not at schema-build time.
func Instantiate(node TypeNode, fields map[string]Value) (Value, error) {
	switch n := node.(type) {
	case ObjectRef:
		for name := range fields {
			if _, ok := n.Definition.FieldNamed(name); !ok {
				return nil, fmt.Errorf("type `%s` has no field `%s`", n.Definition.Name, name)
			}
		}
		return &ObjectValue{Definition: n.Definition, Fields: fields}, nil
	case *Union:
		return nil, &UnionInstantiationError{Name: n.Name}
	default:
		return nil, fmt.Errorf("cannot instantiate non-object type `%s`", NodeName(node))
	}
}

// UnionInstantiationError reports direct instantiation of a union type.
type UnionInstantiationError struct {
	Name string
}

func (e *UnionInstantiationError) Error() string {
	return fmt.Sprintf("Cannot use union type directly: `%s` has no runtime representation", e.Name)
}

// DiscriminationError reports a value that does not match any union
// member.
type DiscriminationError struct {
	Union string
	Got   string
}

func (e *DiscriminationError) Error() string {
	return fmt.Sprintf("value of type `%s` is not a member of union `%s`", e.Got, e.Union)
}

// valueKind names a value's shape for diagnostics.
func valueKind(v Value) string {
	switch v.(type) {
	case StringValue:
		return "String"
	case IntValue:
		return "Int"
	case FloatValue:
		return "Float"
	case BoolValue:
		return "Boolean"
	case ListValue:
		return "List"
	case *ObjectValue:
		return "Object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
