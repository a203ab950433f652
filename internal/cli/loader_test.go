package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSchemaDirMergesFiles(t *testing.T) {
	dir := writeSchemaDir(t, map[string]string{
		"posts.cue":   `types: { Post: { fields: { author: "Author" } } }`,
		"authors.cue": `types: { Author: { fields: { name: "String" } } }`,
	})

	result, err := LoadSchemaDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, result.FileCount)

	_, reg, err := CompileSchemaDir(dir)
	require.NoError(t, err)

	_, ok := reg.Lookup("Post")
	assert.True(t, ok)
	_, ok = reg.Lookup("Author")
	assert.True(t, ok)
}

func TestLoadSchemaDirErrors(t *testing.T) {
	tests := []struct {
		name string
		dir  func(t *testing.T) string
		code string
	}{
		{
			name: "missing directory",
			dir:  func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") },
			code: ErrCodeNotFound,
		},
		{
			name: "no cue files",
			dir:  func(t *testing.T) string { return t.TempDir() },
			code: ErrCodeNoFiles,
		},
		{
			name: "file not a directory",
			dir: func(t *testing.T) string {
				return writeSchemaDir(t, map[string]string{"x.cue": "types: {}"}) + "/x.cue"
			},
			code: ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSchemaDir(tt.dir(t))
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.code, loadErr.Code)
		})
	}
}

func TestFindCUEFilesRecursive(t *testing.T) {
	dir := writeSchemaDir(t, map[string]string{
		"a.cue": "types: {}",
		"b.txt": "ignored",
	})

	files, err := FindCUEFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.cue", filepath.Base(files[0]))
}

func TestMapFieldToErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeTypeDecl, MapFieldToErrorCode("types.User"))
	assert.Equal(t, ErrCodeTypeDecl, MapFieldToErrorCode("types.User.fields.id"))
	assert.Equal(t, ErrCodeUnionDecl, MapFieldToErrorCode("unions.SearchResult"))
	assert.Equal(t, ErrCodeEmptyDoc, MapFieldToErrorCode("schema"))
	assert.Equal(t, ErrCodeGeneric, MapFieldToErrorCode("something"))
}
