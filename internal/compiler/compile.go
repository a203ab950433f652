// Package compiler turns declarative CUE schema documents into a
// populated type registry.
//
// A schema document declares object types under "types" and named
// unions under "unions":
//
//	types: {
//		User: {
//			fields: {
//				id:      "ID"
//				name:    "String"
//				friends: "[User]"
//			}
//		}
//		Edge: {
//			params: ["T"]
//			fields: { cursor: "ID", node: "T" }
//		}
//	}
//	unions: {
//		SearchResult: ["User", "Error"]
//	}
//
// Field types use the micro-syntax of ParseTypeExpr. Declaration order
// does not matter: annotations resolve lazily, so forward references
// across the document are fine.
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/typegraph/internal/ir"
	"github.com/roach88/typegraph/internal/resolver"
)

// CompileSchema parses a CUE value into a fresh registry.
// Uses the CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the schema document root, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`types: { User: { fields: { name: "String" } } }`)
//	reg, err := CompileSchema(v)
func CompileSchema(v cue.Value) (*resolver.Registry, error) {
	reg := resolver.NewRegistry()
	if err := CompileInto(v, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// CompileInto compiles a CUE schema document into an existing registry.
// Types register before unions build, so union members may reference
// any type in the document.
func CompileInto(v cue.Value, reg *resolver.Registry) error {
	if err := v.Err(); err != nil {
		return formatCUEError(err)
	}

	typesVal := v.LookupPath(cue.ParsePath("types"))
	if typesVal.Exists() {
		if err := compileTypes(typesVal, reg); err != nil {
			return err
		}
	}

	unionsVal := v.LookupPath(cue.ParsePath("unions"))
	if unionsVal.Exists() {
		if err := compileUnions(unionsVal, reg); err != nil {
			return err
		}
	}

	if !typesVal.Exists() && !unionsVal.Exists() {
		return &CompileError{
			Field:   "schema",
			Message: "document declares neither types nor unions",
			Pos:     v.Pos(),
		}
	}

	return nil
}

func compileTypes(typesVal cue.Value, reg *resolver.Registry) error {
	iter, err := typesVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}

	for iter.Next() {
		name := iter.Label()
		if err := compileType(name, iter.Value(), reg); err != nil {
			return err
		}
	}
	return nil
}

func compileType(name string, tv cue.Value, reg *resolver.Registry) error {
	params, err := parseParams(tv)
	if err != nil {
		return err
	}
	paramSet := make(map[string]bool, len(params))
	for _, p := range params {
		paramSet[p] = true
	}

	fieldsVal := tv.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return &CompileError{
			Field:   fmt.Sprintf("types.%s", name),
			Message: "fields is required",
			Pos:     tv.Pos(),
		}
	}

	fieldIter, err := fieldsVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}

	var fields []ir.Field
	for fieldIter.Next() {
		fieldName := fieldIter.Label()
		typeStr, err := fieldIter.Value().String()
		if err != nil {
			return &CompileError{
				Field:   fmt.Sprintf("types.%s.fields.%s", name, fieldName),
				Message: "field type must be a string",
				Pos:     fieldIter.Value().Pos(),
			}
		}
		expr, err := ParseTypeExpr(typeStr, paramSet)
		if err != nil {
			return &CompileError{
				Field:   fmt.Sprintf("types.%s.fields.%s", name, fieldName),
				Message: err.Error(),
				Pos:     fieldIter.Value().Pos(),
			}
		}
		fields = append(fields, ir.NewField(fieldName, expr))
	}

	var def *ir.ObjectDef
	if len(params) > 0 {
		def, err = reg.Generic(name, params, fields...)
	} else {
		def, err = reg.Object(name, fields...)
	}
	if err != nil {
		return &CompileError{
			Field:   fmt.Sprintf("types.%s", name),
			Message: err.Error(),
			Pos:     tv.Pos(),
		}
	}

	if desc, ok := stringField(tv, "description"); ok {
		def.Description = desc
	}
	return nil
}

func parseParams(tv cue.Value) ([]string, error) {
	paramsVal := tv.LookupPath(cue.ParsePath("params"))
	if !paramsVal.Exists() {
		return nil, nil
	}

	iter, err := paramsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var params []string
	for iter.Next() {
		p, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		params = append(params, p)
	}
	return params, nil
}

// compileUnions builds declared unions. A union declaration is either a
// bare list of member type strings or an object with members and an
// optional description.
func compileUnions(unionsVal cue.Value, reg *resolver.Registry) error {
	iter, err := unionsVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}

	for iter.Next() {
		name := iter.Label()
		uv := iter.Value()

		memberVal := uv
		description := ""
		if membersField := uv.LookupPath(cue.ParsePath("members")); membersField.Exists() {
			memberVal = membersField
			if desc, ok := stringField(uv, "description"); ok {
				description = desc
			}
		}

		members, err := parseMemberList(name, memberVal)
		if err != nil {
			return err
		}

		if _, err := resolver.UnionDescribed(reg, name, description, members); err != nil {
			return &CompileError{
				Field:   fmt.Sprintf("unions.%s", name),
				Message: err.Error(),
				Pos:     uv.Pos(),
			}
		}
	}
	return nil
}

func parseMemberList(unionName string, v cue.Value) ([]ir.Expr, error) {
	iter, err := v.List()
	if err != nil {
		return nil, &CompileError{
			Field:   fmt.Sprintf("unions.%s", unionName),
			Message: "members must be a list of type strings",
			Pos:     v.Pos(),
		}
	}

	var members []ir.Expr
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("unions.%s", unionName),
				Message: "union member must be a type string",
				Pos:     iter.Value().Pos(),
			}
		}
		expr, err := ParseTypeExpr(s, nil)
		if err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("unions.%s", unionName),
				Message: err.Error(),
				Pos:     iter.Value().Pos(),
			}
		}
		members = append(members, expr)
	}
	return members, nil
}

func stringField(v cue.Value, name string) (string, bool) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return "", false
	}
	s, err := fv.String()
	if err != nil {
		return "", false
	}
	return s, true
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
