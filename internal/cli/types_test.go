package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/typegraph/internal/catalog"
)

func seedCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	cat, err := catalog.Open(path)
	require.NoError(t, err)
	defer cat.Close()

	ctx := context.Background()
	for _, rec := range []catalog.Record{
		{Hash: "aaa", Name: "blog", BuildID: "build-1", IRVersion: "1", Canonical: []byte("{}")},
		{Hash: "bbb", Name: "shop", BuildID: "build-2", IRVersion: "1", Canonical: []byte("{}")},
		{Hash: "ccc", Name: "blog", BuildID: "build-3", IRVersion: "1", Canonical: []byte("{}")},
	} {
		_, err := cat.Put(ctx, rec)
		require.NoError(t, err)
	}
	return path
}

func TestTypesListsCatalog(t *testing.T) {
	path := seedCatalog(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTypesCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--catalog", path})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "3 snapshot(s):")
	assert.Contains(t, output, "blog")
	assert.Contains(t, output, "shop")
}

func TestTypesFiltersByName(t *testing.T) {
	path := seedCatalog(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewTypesCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--catalog", path, "--name", "blog"})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	entries, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, entries, 2)
	for _, e := range entries {
		entry := e.(map[string]interface{})
		assert.Equal(t, "blog", entry["name"])
	}
}

func TestTypesEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	cat, err := catalog.Open(path)
	require.NoError(t, err)
	cat.Close()

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTypesCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--catalog", path})

	err = cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No snapshots stored")
}

func TestTypesMissingCatalog(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTypesCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--catalog", filepath.Join(t.TempDir(), "nope.db")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "catalog not found")
}
