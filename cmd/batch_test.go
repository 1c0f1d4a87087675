package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	lexd := writeFile(t, dir, "nouns.lexd", "LEXICON N\na<n> # a\n")
	twol := writeFile(t, dir, "sub/phon.twol", "Alphabet a b ;\n")

	stdout, _, err := execute(t, "", "batch", "-q", "-r", "a/b", dir)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, "LEXICON N\nb<n> # a\n", readFile(t, lexd))
	assert.Equal(t, "Alphabet b b ;\n", readFile(t, twol))
}

func TestBatchCommandDryRun(t *testing.T) {
	dir := t.TempDir()
	lexd := writeFile(t, dir, "nouns.lexd", "LEXICON N\na\n")

	stdout, _, err := execute(t, "", "batch", "--dry-run", "--diff", "-r", "a/b", lexd)
	require.NoError(t, err)
	assert.Contains(t, stdout, "+b\n")
	assert.Contains(t, stdout, "1 of 1 files changed, 1 ranges rewritten")
	assert.Equal(t, "LEXICON N\na\n", readFile(t, lexd))
}

func TestBatchCommandFixedDialect(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lexicon.txt", "LEXICON N\na\n")

	_, _, err := execute(t, "", "batch", "-q", "-d", "-r", "a/b", path)
	require.NoError(t, err)
	assert.Equal(t, "LEXICON N\nb\n", readFile(t, path))
}

func TestBatchCommandFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.lexd", "LEXICON N\na\n")
	bad := writeFile(t, dir, "bad.lexd", "LEXICON N\n\xff\n")

	stdout, _, err := execute(t, "", "batch", "-r", "a/b", dir)
	assert.Error(t, err)
	assert.Contains(t, stdout, "1 failed")
	assert.Equal(t, "LEXICON N\n\xff\n", readFile(t, bad))
	assert.Equal(t, "LEXICON N\nb\n", readFile(t, filepath.Join(dir, "good.lexd")))
}

func TestBatchCommandRequiresRules(t *testing.T) {
	_, _, err := execute(t, "", "batch", t.TempDir())
	assert.Error(t, err)
}
