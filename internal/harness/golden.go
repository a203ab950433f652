package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares the canonical schema
// document against a golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden comparison requires an error-free scenario: the fixed build ID
// is excluded from the canonical document, so the bytes depend only on
// the declared schema.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	if !result.Passed {
		return fmt.Errorf("scenario %s failed: %v", scenario.Name, result.Failures)
	}
	if result.Snapshot == nil {
		return fmt.Errorf("scenario %s produced no snapshot; golden comparison needs an error-free schema", scenario.Name)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, result.Snapshot.Canonical)

	return nil
}
