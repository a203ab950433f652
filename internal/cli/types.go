package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/typegraph/internal/catalog"
)

// TypesOptions holds flags for the types command.
type TypesOptions struct {
	*RootOptions
	Catalog string // SQLite catalog path
	Name    string // filter to one schema name
}

// CatalogEntry is the JSON shape of one stored snapshot.
type CatalogEntry struct {
	Seq       int64  `json:"seq"`
	Name      string `json:"name"`
	Hash      string `json:"hash"`
	BuildID   string `json:"build_id"`
	IRVersion string `json:"ir_version"`
}

// NewTypesCommand creates the types command, which lists stored schema
// snapshots from a catalog.
func NewTypesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TypesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List schema snapshots stored in a catalog",
		Long: `List schema snapshots stored in a SQLite catalog.

Snapshots are listed in insertion order. Use --name to restrict the
listing to one schema's history.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "SQLite catalog path (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "restrict listing to one schema name")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func runTypes(opts *TypesOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(opts.Catalog); os.IsNotExist(err) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("catalog not found: %s", opts.Catalog), nil)
		return NewExitError(ExitCommandError, "catalog not found")
	}

	cat, err := catalog.Open(opts.Catalog)
	if err != nil {
		_ = formatter.Error(ErrCodeCatalog, err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening catalog", err)
	}
	defer cat.Close()

	ctx := cmd.Context()
	var records []catalog.Record
	if opts.Name != "" {
		records, err = cat.History(ctx, opts.Name)
	} else {
		records, err = cat.List(ctx)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeCatalog, err.Error(), nil)
		return WrapExitError(ExitCommandError, "reading catalog", err)
	}

	entries := make([]CatalogEntry, len(records))
	for i, rec := range records {
		entries[i] = CatalogEntry{
			Seq:       rec.Seq,
			Name:      rec.Name,
			Hash:      rec.Hash,
			BuildID:   rec.BuildID,
			IRVersion: rec.IRVersion,
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "No snapshots stored")
		return nil
	}

	fmt.Fprintf(formatter.Writer, "%d snapshot(s):\n\n", len(entries))
	for _, e := range entries {
		hash := e.Hash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		fmt.Fprintf(formatter.Writer, "  %4d  %-20s %s  (ir v%s, %s)\n",
			e.Seq, e.Name, hash, e.IRVersion, e.BuildID)
	}

	return nil
}
