package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/typegraph/internal/resolver"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Types  int               `json:"types"`
	Unions int               `json:"unions"`
	Errors []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <schema-dir>",
		Short: "Validate schema declarations without producing a snapshot",
		Long: `Validate CUE type and union declarations without producing output.

Compiles the schema, resolves every annotation, and reports all
validation errors. Faster feedback than compile during development.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, schemaDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loadResult, reg, err := CompileSchemaDir(schemaDir)
	if err != nil {
		return outputCompileError(formatter, err)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, schemaDir)

	result := &ValidationResult{
		Types:  len(reg.Definitions()),
		Unions: len(reg.Unions()),
	}
	result.Errors = validationIssues(resolver.Validate(reg))
	result.Valid = len(result.Errors) == 0

	if !result.Valid {
		if formatter.Format == "json" {
			_ = formatter.Success(result) // payload carries valid=false and the issues
			return NewExitError(ExitFailure, "schema failed validation")
		}
		fmt.Fprintf(formatter.Writer, "✗ Schema failed validation with %d error(s)\n\n", len(result.Errors))
		for _, issue := range result.Errors {
			fmt.Fprintf(formatter.Writer, "  [%s] %s: %s\n", issue.Code, issue.Field, issue.Message)
		}
		return NewExitError(ExitFailure, "schema failed validation")
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Schema is valid: %d type(s), %d union(s)\n", result.Types, result.Unions)
	return nil
}
