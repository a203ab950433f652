package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario defines a schema compilation conformance test.
// A scenario compiles one schema (inline and/or from files) and asserts
// on the resulting registry, validation report, or snapshot.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are stored
	// as testdata/golden/{Name}.golden.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Schema is an inline CUE schema document.
	Schema string `yaml:"schema,omitempty"`

	// SchemaFiles lists paths to CUE schema documents, relative to the
	// scenario file location. Files compile in listed order, after the
	// inline Schema, into the same registry.
	SchemaFiles []string `yaml:"schema_files,omitempty"`

	// BuildID fixes the registry build ID so runs are reproducible.
	// Defaults to "build-harness-default".
	BuildID string `yaml:"build_id,omitempty"`

	// ExpectTypes lists type names the compiled registry must contain.
	ExpectTypes []string `yaml:"expect_types,omitempty"`

	// ExpectUnions lists union names the compiled registry must contain.
	ExpectUnions []string `yaml:"expect_unions,omitempty"`

	// ExpectErrors lists expected failures. Each entry is either a
	// validation code ("E201") or a substring of a compile error
	// message. A scenario with expected errors must fail; one without
	// must succeed.
	ExpectErrors []string `yaml:"expect_errors,omitempty"`

	// dir is the directory the scenario was loaded from, for resolving
	// SchemaFiles. Empty for scenarios constructed in code.
	dir string
}

// DefaultBuildID is used when a scenario does not fix its own.
const DefaultBuildID = "build-harness-default"

// LoadScenario reads and validates a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	s.dir = filepath.Dir(path)

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// LoadScenarioDir loads every *.yaml scenario in a directory, sorted by
// filename for deterministic ordering.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Schema == "" && len(s.SchemaFiles) == 0 {
		return fmt.Errorf("schema or schema_files is required")
	}
	return nil
}

// buildID returns the scenario's fixed build ID.
func (s *Scenario) buildID() string {
	if s.BuildID != "" {
		return s.BuildID
	}
	return DefaultBuildID
}

// sources returns the CUE documents to compile, in order.
func (s *Scenario) sources() ([]string, error) {
	var docs []string
	if s.Schema != "" {
		docs = append(docs, s.Schema)
	}
	for _, rel := range s.SchemaFiles {
		path := rel
		if s.dir != "" && !filepath.IsAbs(rel) {
			path = filepath.Join(s.dir, rel)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read schema file: %w", err)
		}
		docs = append(docs, string(data))
	}
	return docs, nil
}
