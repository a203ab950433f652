package compiler

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/roach88/typegraph/internal/ir"
)

// ParseTypeExpr parses the field type micro-syntax into a type
// expression. params names the generic parameters in scope, so "T"
// parses as a parameter reference inside a generic declaration and as a
// forward type reference everywhere else.
//
// Grammar:
//
//	expr := term { "|" term }
//	term := atom [ "?" ]
//	atom := "[" expr "]" | ident [ "<" expr { "," expr } ">" ]
//
// Examples: "String", "String?", "[User]", "User | Error",
// "Edge<String>", "[Edge<User>]?".
func ParseTypeExpr(input string, params map[string]bool) (ir.Expr, error) {
	p := &typeParser{input: input, params: params}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected %q", p.input[p.pos:])
	}
	return expr, nil
}

// SyntaxError reports a malformed type expression string.
type SyntaxError struct {
	Input   string
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid type expression %q at offset %d: %s", e.Input, e.Pos, e.Message)
}

type typeParser struct {
	input  string
	pos    int
	params map[string]bool
}

func (p *typeParser) errorf(format string, args ...any) error {
	return &SyntaxError{Input: p.input, Pos: p.pos, Message: fmt.Sprintf(format, args...)}
}

func (p *typeParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

// parseExpr parses union alternatives.
func (p *typeParser) parseExpr() (ir.Expr, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	members := []ir.Expr{first}
	for {
		p.skipSpaces()
		if p.peek() != '|' {
			break
		}
		p.pos++
		next, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		members = append(members, next)
	}

	if len(members) == 1 {
		return first, nil
	}
	return ir.UnionExpr{Members: members}, nil
}

// parseTerm parses an atom with an optional "?" suffix.
func (p *typeParser) parseTerm() (ir.Expr, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.peek() == '?' {
		p.pos++
		return ir.OptionalExpr{Of: atom}, nil
	}
	return atom, nil
}

func (p *typeParser) parseAtom() (ir.Expr, error) {
	p.skipSpaces()

	if p.peek() == '[' {
		p.pos++
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSpaces()
		if p.peek() != ']' {
			return nil, p.errorf("expected ']'")
		}
		p.pos++
		return ir.ListExpr{Of: elem}, nil
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	p.skipSpaces()
	if p.peek() == '<' {
		if p.params[name] {
			return nil, p.errorf("cannot apply type arguments to parameter `%s`", name)
		}
		if ir.IsScalarKind(ir.ScalarKind(name)) {
			return nil, p.errorf("cannot apply type arguments to scalar `%s`", name)
		}
		p.pos++
		var args []ir.Expr
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			p.skipSpaces()
			if p.peek() == ',' {
				p.pos++
				continue
			}
			break
		}
		if p.peek() != '>' {
			return nil, p.errorf("expected '>'")
		}
		p.pos++
		return ir.ApplyName(name, args...), nil
	}

	switch {
	case ir.IsScalarKind(ir.ScalarKind(name)):
		return ir.ScalarOf(ir.ScalarKind(name)), nil
	case p.params[name]:
		return ir.Param(name), nil
	default:
		return ir.Lazy(name), nil
	}
}

func (p *typeParser) parseIdent() (string, error) {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if unicode.IsLetter(c) || c == '_' || (p.pos > start && unicode.IsDigit(c)) {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return "", p.errorf("expected type name")
	}
	return strings.TrimSpace(p.input[start:p.pos]), nil
}
