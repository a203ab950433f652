package ir

// ScalarKind identifies one of the built-in scalar types.
type ScalarKind string

const (
	ScalarInt     ScalarKind = "Int"
	ScalarFloat   ScalarKind = "Float"
	ScalarString  ScalarKind = "String"
	ScalarBoolean ScalarKind = "Boolean"
	ScalarID      ScalarKind = "ID"
)

// scalarKinds is the set of valid scalar kinds.
var scalarKinds = map[ScalarKind]bool{
	ScalarInt:     true,
	ScalarFloat:   true,
	ScalarString:  true,
	ScalarBoolean: true,
	ScalarID:      true,
}

// IsScalarKind reports whether k names a built-in scalar.
func IsScalarKind(k ScalarKind) bool {
	return scalarKinds[k]
}

// SpecName returns the short name used when deriving specialization names.
// Binding String to a one-parameter generic named Edge yields "StrEdge".
func (k ScalarKind) SpecName() string {
	switch k {
	case ScalarString:
		return "Str"
	case ScalarBoolean:
		return "Bool"
	default:
		return string(k)
	}
}
