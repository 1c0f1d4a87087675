package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "scanner")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}
	return tempDir
}

func TestProjectScanner(t *testing.T) {
	t.Parallel()
	tempDir := writeTree(t, map[string]string{
		"nouns.lexd":          "LEXICON N",
		"verbs.LEXC":          "LEXICON Root",
		"notes.txt":           "This is a text file",
		"sub/phon.twol":       "Alphabet a ;",
		".git/hooks/x.lexd":   "LEXICON H",
		"sub/deep/rules.xfst": "regex a ;",
	})

	scannedFiles, err := New(tempDir, ".lexd", ".lexc", ".twol", ".xfst").Scan()
	require.NoError(t, err)

	var paths []string
	for _, file := range scannedFiles {
		rel, err := filepath.Rel(tempDir, file.Path)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
		assert.Greater(t, file.Size, int64(0))
	}
	assert.Equal(t, []string{"nouns.lexd", "sub/deep/rules.xfst", "sub/phon.twol", "verbs.LEXC"}, paths)
}

func TestScannerWithoutExtensions(t *testing.T) {
	t.Parallel()
	tempDir := writeTree(t, map[string]string{"a.txt": "a", "b/c.md": "c"})

	files, err := New(tempDir).Scan()
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestScannerSingleFile(t *testing.T) {
	t.Parallel()
	tempDir := writeTree(t, map[string]string{"one.lexd": "LEXICON X"})
	path := filepath.Join(tempDir, "one.lexd")

	files, err := New(path, ".lexd").Scan()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, path, files[0].Path)

	files, err = New(path, ".lexc").Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScannerMissingRoot(t *testing.T) {
	t.Parallel()
	_, err := New(filepath.Join(t.TempDir(), "missing")).Scan()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
