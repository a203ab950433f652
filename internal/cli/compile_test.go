package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/typegraph/internal/catalog"
)

func TestCompileValidSchema(t *testing.T) {
	dir := writeSchemaDir(t, map[string]string{"schema.cue": validSchema})

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "✓ Compiled 2 type(s), 1 union(s)")
	assert.Contains(t, output, "User")
	assert.Contains(t, output, "UserResult")
	assert.Contains(t, output, "Schema hash:")
}

func TestCompileValidSchemaJSON(t *testing.T) {
	dir := writeSchemaDir(t, map[string]string{"schema.cue": validSchema})

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, data["schema_hash"], 64)
	assert.ElementsMatch(t, []interface{}{"Error", "User"}, data["types"])
}

func TestCompileOutputToFile(t *testing.T) {
	dir := writeSchemaDir(t, map[string]string{"schema.cue": validSchema})
	outputFile := filepath.Join(t.TempDir(), "schema.json")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir, "--output", outputFile})

	err := cmd.Execute()
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	// Output is the canonical document itself.
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "1", doc["ir_version"])
}

func TestCompileStoresInCatalog(t *testing.T) {
	dir := writeSchemaDir(t, map[string]string{"schema.cue": validSchema})
	catalogPath := filepath.Join(t.TempDir(), "catalog.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir, "--catalog", catalogPath, "--name", "blog"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Snapshot stored in catalog")

	cat, err := catalog.Open(catalogPath)
	require.NoError(t, err)
	defer cat.Close()

	rec, err := cat.Latest(context.Background(), "blog")
	require.NoError(t, err)
	assert.Len(t, rec.Hash, 64)
	assert.NotEmpty(t, rec.Canonical)
}

func TestCompileMissingDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "E005")
}

func TestCompileEmptyDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "E003")
}

func TestCompileValidationFailure(t *testing.T) {
	dir := writeSchemaDir(t, map[string]string{"schema.cue": invalidSchema})

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "✗ Schema failed validation")
	assert.Contains(t, output, "E201")
	assert.Contains(t, output, "User.fields.pet")
}

func TestCompileBadDeclaration(t *testing.T) {
	dir := writeSchemaDir(t, map[string]string{
		"schema.cue": `types: { User: { fields: { id: "[ID" } } }`,
	})

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "E101")
	assert.Contains(t, buf.String(), "invalid type expression")
}

func TestCompileVerboseLogsToStderr(t *testing.T) {
	dir := writeSchemaDir(t, map[string]string{"schema.cue": validSchema})

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json", Verbose: true}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	// stdout stays valid JSON; diagnostics land on stderr.
	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Contains(t, errOut.String(), "Registered type: User")
}
