package resolver

import (
	"errors"
	"fmt"
)

// EmptyUnionError reports a union declared with zero member types.
// Checked before any resolution work.
type EmptyUnionError struct {
	// UnionName is the declared name, if any.
	UnionName string
}

func (e *EmptyUnionError) Error() string {
	return "No types passed to `union`"
}

// InvalidUnionTypeError reports a union member that resolved to a
// scalar, or to a type not registered as a schema object type.
type InvalidUnionTypeError struct {
	// UnionName is the union being built.
	UnionName string

	// TypeName is the offending member's display name.
	TypeName string

	// Scalar is true when the member resolved to a built-in scalar.
	Scalar bool
}

func (e *InvalidUnionTypeError) Error() string {
	if e.Scalar {
		return fmt.Sprintf("Scalar type `%s` cannot be used in a GraphQL Union", e.TypeName)
	}
	return fmt.Sprintf("Union type `%s` is not a registered object type", e.TypeName)
}

// MissingTypeArgumentsError reports a parametrized generic reference
// supplying the wrong number of type arguments.
type MissingTypeArgumentsError struct {
	TypeName string
	Want     int
	Got      int
}

func (e *MissingTypeArgumentsError) Error() string {
	return fmt.Sprintf("generic type `%s` expects %d type argument(s), got %d", e.TypeName, e.Want, e.Got)
}

// InvalidAnnotationError reports an annotation shape the resolver does
// not recognize. Reference is set when the annotation itself was valid
// but named a type unknown to the registry.
type InvalidAnnotationError struct {
	Reason    string
	Reference string
}

func (e *InvalidAnnotationError) Error() string {
	if e.Reference != "" {
		return fmt.Sprintf("unresolved type reference `%s`", e.Reference)
	}
	return fmt.Sprintf("invalid annotation: %s", e.Reason)
}

// DuplicateTypeNameError reports a name collision within one registry.
// Type and union names share a single namespace.
type DuplicateTypeNameError struct {
	Name string
}

func (e *DuplicateTypeNameError) Error() string {
	return fmt.Sprintf("type name `%s` is already registered", e.Name)
}

// IsEmptyUnion reports whether err is an EmptyUnionError.
// Uses errors.As to handle wrapped errors.
func IsEmptyUnion(err error) bool {
	var e *EmptyUnionError
	return errors.As(err, &e)
}

// IsInvalidUnionType reports whether err is an InvalidUnionTypeError.
func IsInvalidUnionType(err error) bool {
	var e *InvalidUnionTypeError
	return errors.As(err, &e)
}

// IsMissingTypeArguments reports whether err is a
// MissingTypeArgumentsError.
func IsMissingTypeArguments(err error) bool {
	var e *MissingTypeArgumentsError
	return errors.As(err, &e)
}

// IsInvalidAnnotation reports whether err is an InvalidAnnotationError.
func IsInvalidAnnotation(err error) bool {
	var e *InvalidAnnotationError
	return errors.As(err, &e)
}

// IsDuplicateTypeName reports whether err is a DuplicateTypeNameError.
func IsDuplicateTypeName(err error) bool {
	var e *DuplicateTypeNameError
	return errors.As(err, &e)
}
