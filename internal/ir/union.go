package ir

// Union is a resolved union type. Members holds the annotations exactly
// as declared (order preserved, duplicates kept verbatim); Resolved
// holds the definition each member resolved to, in the same order.
//
// NameDerived distinguishes a union whose name was derived from its
// members from one given an explicit name; name content alone does not
// determine how the union was declared.
type Union struct {
	Name        string
	Description string
	Members     []Expr
	Resolved    []*ObjectDef
	NameDerived bool
}

func (*Union) typeNode() {}

// Equal reports whether two unions are the same union: equal names and
// identical resolved member sequences. Order is significant.
func (u *Union) Equal(o *Union) bool {
	if u == nil || o == nil {
		return u == o
	}
	return u.Name == o.Name && u.SameMembers(o)
}

// SameMembers reports whether two unions resolve to identical member
// sequences, ignoring names. This is how an ad-hoc composite annotation
// compares against a named union, since the annotation carries no
// independent name.
func (u *Union) SameMembers(o *Union) bool {
	if len(u.Resolved) != len(o.Resolved) {
		return false
	}
	for i, def := range u.Resolved {
		if o.Resolved[i] != def {
			return false
		}
	}
	return true
}

// Contains reports whether def is a member of the union.
// Membership is identity-based, matching the sharing rule for
// definitions.
func (u *Union) Contains(def *ObjectDef) bool {
	for _, d := range u.Resolved {
		if d == def {
			return true
		}
	}
	return false
}

// Discriminate returns the union member matching a concrete value.
// Used at query time to discriminate concrete values against declared
// members. Fails if the value is not an object value, or its definition
// is not a member of the union.
func (u *Union) Discriminate(v Value) (*ObjectDef, error) {
	obj, ok := v.(*ObjectValue)
	if !ok {
		return nil, &DiscriminationError{Union: u.Name, Got: valueKind(v)}
	}
	if !u.Contains(obj.Definition) {
		return nil, &DiscriminationError{Union: u.Name, Got: obj.Definition.Name}
	}
	return obj.Definition, nil
}
