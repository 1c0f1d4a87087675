package grep

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apertium/apgrep/internal/types"
)

func TestProcessPaths(t *testing.T) {
	t.Parallel()
	dir, err := os.MkdirTemp("", "process_paths")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	writeTemp(t, dir, "nouns.lexd", "LEXICON N\na<n> # a\n")
	writeTemp(t, dir, "sub/verbs.lexc", "LEXICON Root\na%<v%>:a V ;\n")
	writeTemp(t, dir, "sub/phon.twol", "Alphabet a b ;\n")
	writeTemp(t, dir, "sub/same.xfst", "regex b ;\n")
	writeTemp(t, dir, "notes.txt", "a a a\n")

	resolve := DialectResolver(zap.NewNop(), []string{"a/b"}, "")
	results, err := ProcessPaths(context.Background(), zap.NewNop(), resolve, []string{dir}, BatchOptions{Workers: 2})
	require.NoError(t, err)
	require.Len(t, results, 4)

	byName := make(map[string]Result)
	for _, r := range results {
		require.NoError(t, r.Err)
		byName[filepath.Base(r.Path)] = r
	}
	assert.Equal(t, types.Lexd, byName["nouns.lexd"].Dialect)
	assert.True(t, byName["nouns.lexd"].Written)
	assert.False(t, byName["same.xfst"].Written)

	expected := map[string]string{
		"nouns.lexd":     "LEXICON N\nb<n> # a\n",
		"sub/verbs.lexc": "LEXICON Root\nb%<v%>:b V ;\n",
		"sub/phon.twol":  "Alphabet b b ;\n",
		"sub/same.xfst":  "regex b ;\n",
		"notes.txt":      "a a a\n",
	}
	for name, want := range expected {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, want, string(got), name)
	}
}

func TestProcessPathsDryRunWithDiff(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeTemp(t, dir, "nouns.lexd", "LEXICON N\na\n")

	results, err := ProcessPaths(context.Background(), nil, StaticResolver(lexdEngine(t, "a/b")), []string{path}, BatchOptions{DryRun: true, Diff: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Written)
	assert.Equal(t, 1, results[0].Changed)
	assert.Contains(t, results[0].Diff, "+b")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "LEXICON N\na\n", string(got))
}

func TestProcessPathsReportsFailures(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	good := writeTemp(t, dir, "good.lexd", "LEXICON N\na\n")
	bad := writeTemp(t, dir, "bad.lexd", "LEXICON N\n\xff\n")
	unknown := writeTemp(t, dir, "unknown.dat", "a\n")

	resolve := DialectResolver(nil, []string{"a/b"}, "")
	results, err := ProcessPaths(context.Background(), nil, resolve, []string{good, bad, unknown}, BatchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Error(t, results[2].Err)
}

func TestProcessPathsMissingPath(t *testing.T) {
	t.Parallel()
	_, err := ProcessPaths(context.Background(), nil, StaticResolver(new(mockReplacer)), []string{filepath.Join(t.TempDir(), "missing")}, BatchOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProcessPathsContextCancellation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for i := 0; i < 10; i++ {
		writeTemp(t, dir, fmt.Sprintf("f%d.lexd", i), "LEXICON N\na\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ProcessPaths(ctx, nil, StaticResolver(new(mockReplacer)), []string{dir}, BatchOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDialectResolverCachesEngines(t *testing.T) {
	t.Parallel()
	resolve := DialectResolver(nil, []string{"a/b"}, "")

	first, err := resolve("x.lexd")
	require.NoError(t, err)
	second, err := resolve("dir/y.LEXD")
	require.NoError(t, err)
	assert.Same(t, first, second)

	twol, err := resolve("z.twolc")
	require.NoError(t, err)
	assert.Equal(t, types.Twolc, twol.Dialect())

	_, err = resolve("notes.txt")
	assert.Error(t, err)
}
