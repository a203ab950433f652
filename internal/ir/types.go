package ir

// ObjectDef is a user-declared schema type record. Definitions are owned
// by the registry that created them and are always shared by reference.
type ObjectDef struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
	IsGeneric   bool    `json:"is_generic"`
	TypeParams  []string `json:"type_params,omitempty"`

	// Origin and TypeArgs record provenance for specializations.
	// Nil/empty for directly declared definitions.
	Origin   *ObjectDef `json:"-"`
	TypeArgs []Expr     `json:"-"`
}

// Field is a named field declaration carrying an unresolved type
// expression. Resolution is deferred so declaration order across a
// schema does not matter.
type Field struct {
	Name string `json:"name"`
	Type Expr   `json:"type"`
}

// NewField constructs a field declaration.
func NewField(name string, typ Expr) Field {
	return Field{Name: name, Type: typ}
}

// Param reports whether name is one of the definition's type parameters.
func (d *ObjectDef) Param(name string) bool {
	for _, p := range d.TypeParams {
		if p == name {
			return true
		}
	}
	return false
}

// FieldNamed returns the field with the given name, if present.
func (d *ObjectDef) FieldNamed(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
