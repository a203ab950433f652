package resolver

import (
	"errors"
	"fmt"

	"github.com/roach88/typegraph/internal/ir"
)

// Validation error codes (E200-E299)
const (
	ErrUnresolvedReference  = "E201" // reference to a type never registered
	ErrInvalidAnnotationVal = "E202" // annotation shape the resolver rejects
	ErrInvalidUnionMember   = "E203" // union member is scalar or non-participating
	ErrGenericArity         = "E204" // wrong number of type arguments
	ErrUnboundParameter     = "E205" // parameter used outside its generic
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate resolves every field of every registered definition and
// returns all errors found (does not fail-fast). A clean result means
// the registry is fully resolvable into a consistent schema.
func Validate(reg *Registry) []ValidationError {
	var errs []ValidationError

	for _, def := range reg.Definitions() {
		if def.IsGeneric {
			errs = append(errs, validateGenericDef(def)...)
			continue
		}
		for _, f := range def.Fields {
			fieldPath := fmt.Sprintf("%s.fields.%s", def.Name, f.Name)
			if _, err := Resolve(reg, f.Type); err != nil {
				errs = append(errs, classify(fieldPath, err))
			}
		}
	}

	return errs
}

// validateGenericDef checks that a generic template only references its
// own declared parameters. Template fields are not resolved - they only
// become resolvable once specialized.
func validateGenericDef(def *ir.ObjectDef) []ValidationError {
	var errs []ValidationError
	for _, f := range def.Fields {
		for _, p := range paramRefs(f.Type) {
			if !def.Param(p) {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.fields.%s", def.Name, f.Name),
					Message: fmt.Sprintf("type parameter `%s` is not declared by `%s`", p, def.Name),
					Code:    ErrUnboundParameter,
				})
			}
		}
	}
	return errs
}

// paramRefs collects parameter names referenced in an annotation tree.
func paramRefs(e ir.Expr) []string {
	switch x := e.(type) {
	case ir.ParamExpr:
		return []string{x.Name}
	case ir.ListExpr:
		return paramRefs(x.Of)
	case ir.OptionalExpr:
		return paramRefs(x.Of)
	case ir.UnionExpr:
		var out []string
		for _, m := range x.Members {
			out = append(out, paramRefs(m)...)
		}
		return out
	case ir.AppliedExpr:
		out := paramRefs(x.Base)
		for _, a := range x.Args {
			out = append(out, paramRefs(a)...)
		}
		return out
	default:
		return nil
	}
}

// classify maps a resolution error to a coded validation error.
func classify(fieldPath string, err error) ValidationError {
	var (
		ia *InvalidAnnotationError
		iu *InvalidUnionTypeError
		ma *MissingTypeArgumentsError
		eu *EmptyUnionError
	)
	switch {
	case errors.As(err, &ia) && ia.Reference != "":
		return ValidationError{Field: fieldPath, Message: err.Error(), Code: ErrUnresolvedReference}
	case errors.As(err, &iu), errors.As(err, &eu):
		return ValidationError{Field: fieldPath, Message: err.Error(), Code: ErrInvalidUnionMember}
	case errors.As(err, &ma):
		return ValidationError{Field: fieldPath, Message: err.Error(), Code: ErrGenericArity}
	default:
		return ValidationError{Field: fieldPath, Message: err.Error(), Code: ErrInvalidAnnotationVal}
	}
}
