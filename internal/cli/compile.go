package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/typegraph/internal/catalog"
	"github.com/roach88/typegraph/internal/compiler"
	"github.com/roach88/typegraph/internal/resolver"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output  string // output file path for the canonical IR
	Catalog string // SQLite catalog path to persist the snapshot
	Name    string // schema name for the catalog (defaults to dir base name)
}

// CompileResult is the success payload for the compile command.
type CompileResult struct {
	SchemaHash string   `json:"schema_hash"`
	BuildID    string   `json:"build_id"`
	Types      []string `json:"types"`
	Unions     []string `json:"unions"`
	Stored     bool     `json:"stored,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <schema-dir>",
		Short: "Compile CUE schema declarations to canonical IR",
		Long: `Compile CUE type and union declarations to the canonical schema IR.

The compiler registers every declared type, builds unions, resolves all
annotations, validates the schema, and produces a content-addressed
canonical JSON snapshot.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path for canonical IR")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "SQLite catalog path to persist the snapshot")
	cmd.Flags().StringVar(&opts.Name, "name", "", "schema name for the catalog (defaults to the directory name)")

	return cmd
}

func runCompile(opts *CompileOptions, schemaDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	loadResult, reg, err := CompileSchemaDir(schemaDir)
	if err != nil {
		return outputCompileError(formatter, err)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, schemaDir)
	for _, def := range reg.Definitions() {
		formatter.VerboseLog("Registered type: %s", def.Name)
	}

	// Validation failures are schema defects (exit 1), not command
	// errors (exit 2).
	if verrs := resolver.Validate(reg); len(verrs) > 0 {
		return outputValidationFailures(formatter, verrs)
	}

	snap, err := resolver.BuildSnapshot(reg)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "snapshot failed", err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, snap.Canonical, 0o644); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
			return WrapExitError(ExitCommandError, "writing output file", err)
		}
		formatter.VerboseLog("Wrote canonical IR to %s", opts.Output)
	}

	result := &CompileResult{
		SchemaHash: snap.Hash,
		BuildID:    snap.BuildID,
	}
	for _, def := range reg.Definitions() {
		result.Types = append(result.Types, def.Name)
	}
	for _, u := range reg.Unions() {
		result.Unions = append(result.Unions, u.Name)
	}

	if opts.Catalog != "" {
		name := opts.Name
		if name == "" {
			name = filepath.Base(schemaDir)
		}
		if err := storeSnapshot(opts.Catalog, name, snap); err != nil {
			_ = formatter.Error(ErrCodeCatalog, err.Error(), nil)
			return WrapExitError(ExitCommandError, "storing snapshot", err)
		}
		result.Stored = true
		formatter.VerboseLog("Stored snapshot %s as %q in %s", snap.Hash[:12], name, opts.Catalog)
	}

	return outputCompileSuccess(formatter, result)
}

func storeSnapshot(path, name string, snap *resolver.Snapshot) error {
	cat, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer cat.Close()

	_, err = cat.Put(context.Background(), catalog.RecordFromSnapshot(name, snap))
	return err
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompileResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled %d type(s), %d union(s)\n\n",
		len(result.Types), len(result.Unions))

	if len(result.Types) > 0 {
		fmt.Fprintln(formatter.Writer, "Types:")
		for _, name := range result.Types {
			fmt.Fprintf(formatter.Writer, "  %s\n", name)
		}
		fmt.Fprintln(formatter.Writer)
	}

	if len(result.Unions) > 0 {
		fmt.Fprintln(formatter.Writer, "Unions:")
		for _, name := range result.Unions {
			fmt.Fprintf(formatter.Writer, "  %s\n", name)
		}
		fmt.Fprintln(formatter.Writer)
	}

	fmt.Fprintf(formatter.Writer, "Schema hash: %s\n", result.SchemaHash)
	fmt.Fprintf(formatter.Writer, "Build ID:    %s\n", result.BuildID)
	if result.Stored {
		fmt.Fprintln(formatter.Writer, "Snapshot stored in catalog")
	}

	return nil
}

// outputCompileError outputs a load or compile error with position info
// where available. Compile errors are command-level errors (exit 2).
func outputCompileError(formatter *OutputFormatter, err error) error {
	code, message := parseCompileError(err)

	if formatter.Format == "text" {
		var compileErr *compiler.CompileError
		if errors.As(err, &compileErr) && compileErr.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n",
				compileErr.Pos.Filename(),
				compileErr.Pos.Line(),
				compileErr.Pos.Column())
		}
	}

	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// outputValidationFailures outputs validation errors and returns exit 1.
func outputValidationFailures(formatter *OutputFormatter, verrs []resolver.ValidationError) error {
	issues := validationIssues(verrs)

	if formatter.Format == "json" {
		_ = formatter.Error(ErrCodeValidation,
			fmt.Sprintf("schema failed validation with %d error(s)", len(issues)), issues)
		return NewExitError(ExitFailure, "schema failed validation")
	}

	fmt.Fprintln(formatter.Writer, "✗ Schema failed validation")
	fmt.Fprintln(formatter.Writer)
	for _, issue := range issues {
		fmt.Fprintf(formatter.Writer, "  [%s] %s: %s\n", issue.Code, issue.Field, issue.Message)
	}

	return NewExitError(ExitFailure, "schema failed validation")
}

// ValidationIssue is the JSON shape of one validation error.
type ValidationIssue struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func validationIssues(verrs []resolver.ValidationError) []ValidationIssue {
	issues := make([]ValidationIssue, len(verrs))
	for i, v := range verrs {
		issues[i] = ValidationIssue{Code: v.Code, Field: v.Field, Message: v.Message}
	}
	return issues
}
