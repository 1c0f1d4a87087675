// Package grep is the public entry point of apgrep: it loads rules, builds
// engines and rewrites files.
package grep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/apertium/apgrep/internal"
	"github.com/apertium/apgrep/internal/fixer"
	"github.com/apertium/apgrep/internal/types"
	"github.com/apertium/apgrep/rules"
)

// Stdio is the path that stands for standard input or standard output.
const Stdio = "-"

// ErrSameFile is returned when the input and output of ReplaceFile name
// the same file.
var ErrSameFile = errors.New("input and output must be different files")

// Replacer rewrites whole documents of one dialect.
type Replacer interface {
	Run(doc []byte) (internal.Result, error)
	Dialect() types.Dialect
}

// WriteOptions control how a rewritten document is written.
type WriteOptions struct {
	DryRun bool
	Diff   bool
	Stdin  io.Reader
	Stdout io.Writer
}

func (o WriteOptions) stdin() io.Reader {
	if o.Stdin == nil {
		return os.Stdin
	}
	return o.Stdin
}

func (o WriteOptions) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

// Result summarizes the processing of one file.
type Result struct {
	Path    string
	Dialect types.Dialect
	Ranges  int
	Changed int
	Written bool
	Diff    string
	Err     error
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// New builds an engine for dialect. Rules that can never match are
// reported as warnings but kept.
func New(dialect types.Dialect, rs []types.Rule, logger *zap.Logger) (*internal.Engine, error) {
	logger = nopIfNil(logger)
	for _, w := range rules.Warnings(dialect, rs) {
		logger.Warn(w)
	}

	engine, err := internal.NewEngine(dialect, rs)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rs))
	for _, rule := range engine.Rules() {
		names = append(names, rule.Name)
	}
	logger.Debug("Engine ready", zap.Stringer("dialect", dialect), zap.Strings("rules", names))
	return engine, nil
}

// LoadRules parses the inline rules and then appends the rules of the
// rule-set file, if one is given.
func LoadRules(dialect types.Dialect, inline []string, file string) ([]types.Rule, error) {
	rs, err := rules.ParseAll(dialect, inline)
	if err != nil {
		return nil, err
	}
	if file == "" {
		return rs, nil
	}

	f, err := rules.Load(file)
	if err != nil {
		return nil, fmt.Errorf("error loading rules: %w", err)
	}
	fileRules, err := f.Compile(dialect)
	if err != nil {
		return nil, fmt.Errorf("error loading rules from %s: %w", file, err)
	}
	return append(rs, fileRules...), nil
}

// ReplaceFile rewrites in and writes the result to out. Either may be
// Stdio. Nothing is written when reading or rewriting fails.
func ReplaceFile(
	ctx context.Context,
	logger *zap.Logger,
	engine Replacer,
	in, out string,
	opts WriteOptions,
) (Result, error) {
	logger = nopIfNil(logger)
	result := Result{Path: in, Dialect: engine.Dialect()}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if sameFile(in, out) {
		return result, fmt.Errorf("%w: %s", ErrSameFile, in)
	}

	doc, err := readInput(in, opts.stdin())
	if err != nil {
		return result, err
	}

	rewritten, err := run(engine, in, doc, &result)
	if err != nil {
		return result, err
	}
	if opts.Diff {
		if result.Diff, err = fixer.Diff(in, string(doc), rewritten); err != nil {
			return result, err
		}
	}
	if opts.DryRun {
		return result, nil
	}

	if out == Stdio {
		if _, err := io.WriteString(opts.stdout(), rewritten); err != nil {
			return result, fmt.Errorf("error writing output: %w", err)
		}
	} else if err := fixer.WriteFile(out, []byte(rewritten)); err != nil {
		return result, fmt.Errorf("error writing %s: %w", out, err)
	}
	result.Written = true

	logger.Debug("Document rewritten",
		zap.String("input", in),
		zap.String("output", out),
		zap.Int("ranges", result.Ranges),
		zap.Int("changed", result.Changed))
	return result, nil
}

func run(engine Replacer, path string, doc []byte, result *Result) (string, error) {
	res, err := engine.Run(doc)
	if err != nil {
		return "", fmt.Errorf("error processing %s: %w", path, err)
	}
	result.Ranges = res.Ranges
	result.Changed = res.Changed
	return res.Output, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == Stdio {
		doc, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading standard input: %w", err)
		}
		return doc, nil
	}

	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return doc, nil
}

func sameFile(in, out string) bool {
	if in == Stdio || out == Stdio {
		return false
	}
	a, errA := filepath.Abs(in)
	b, errB := filepath.Abs(out)
	if errA == nil && errB == nil && a == b {
		return true
	}

	infoIn, errA := os.Stat(in)
	infoOut, errB := os.Stat(out)
	return errA == nil && errB == nil && os.SameFile(infoIn, infoOut)
}
