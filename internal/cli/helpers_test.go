package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeSchemaDir creates a temp directory with the given CUE files.
func writeSchemaDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

const validSchema = `types: {
	User: {
		fields: {
			id:   "ID"
			name: "String"
		}
	}
	Error: {
		fields: { message: "String" }
	}
}
unions: {
	UserResult: ["User", "Error"]
}
`

const invalidSchema = `types: {
	User: {
		fields: { pet: "Ghost" }
	}
}
`
