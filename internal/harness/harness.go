package harness

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/typegraph/internal/compiler"
	"github.com/roach88/typegraph/internal/resolver"
)

// Result reports one scenario execution.
type Result struct {
	// Passed is true when every expectation held.
	Passed bool

	// Failures lists expectation violations, one message each.
	Failures []string

	// Errors lists the compile and validation errors the run produced,
	// as strings (validation entries are prefixed with their code).
	Errors []string

	// Registry is the compiled registry. Nil when compilation failed.
	Registry *resolver.Registry

	// Snapshot is the canonical snapshot. Nil when the scenario
	// expected errors or compilation failed.
	Snapshot *resolver.Snapshot
}

func (r *Result) fail(format string, args ...any) {
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}

// Run executes a scenario: compile every schema document into one
// registry with the scenario's fixed build ID, validate, and (for
// error-free scenarios) build the canonical snapshot. Expectations are
// checked against what actually happened; violations land in
// Result.Failures rather than aborting the run.
func Run(scenario *Scenario) (*Result, error) {
	result := &Result{}

	docs, err := scenario.sources()
	if err != nil {
		return nil, err
	}

	reg := resolver.NewRegistryWithBuildID(scenario.buildID())
	ctx := cuecontext.New()

	compiled := true
	for _, doc := range docs {
		v := ctx.CompileString(doc)
		if err := compiler.CompileInto(v, reg); err != nil {
			result.Errors = append(result.Errors, err.Error())
			compiled = false
			break
		}
	}

	if compiled {
		result.Registry = reg
		for _, verr := range resolver.Validate(reg) {
			result.Errors = append(result.Errors, verr.Error())
		}
	}

	checkExpectations(scenario, result, compiled)

	if compiled && len(result.Errors) == 0 {
		snap, err := resolver.BuildSnapshot(reg)
		if err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
		result.Snapshot = snap
	}

	result.Passed = len(result.Failures) == 0
	return result, nil
}

func checkExpectations(scenario *Scenario, result *Result, compiled bool) {
	for _, want := range scenario.ExpectErrors {
		if !hasError(result.Errors, want) {
			result.fail("expected error %q, got %v", want, result.Errors)
		}
	}
	if len(scenario.ExpectErrors) == 0 && len(result.Errors) > 0 {
		result.fail("unexpected errors: %v", result.Errors)
	}

	if !compiled {
		return
	}

	for _, name := range scenario.ExpectTypes {
		if _, ok := result.Registry.Lookup(name); !ok {
			result.fail("expected type `%s` is not registered", name)
		}
	}
	for _, name := range scenario.ExpectUnions {
		if _, ok := result.Registry.LookupUnion(name); !ok {
			result.fail("expected union `%s` is not registered", name)
		}
	}
}

// hasError reports whether any produced error matches the expectation,
// by validation code or message substring.
func hasError(errors []string, want string) bool {
	for _, e := range errors {
		if strings.Contains(e, want) {
			return true
		}
	}
	return false
}
