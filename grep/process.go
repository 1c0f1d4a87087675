package grep

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/apertium/apgrep/internal"
	"github.com/apertium/apgrep/internal/fixer"
	"github.com/apertium/apgrep/internal/types"
	"github.com/apertium/apgrep/scanner"
)

// Resolver returns the engine to use for a file.
type Resolver func(path string) (Replacer, error)

// StaticResolver uses one engine for every file.
func StaticResolver(engine Replacer) Resolver {
	return func(string) (Replacer, error) {
		return engine, nil
	}
}

// DialectResolver infers the dialect of each file from its extension and
// builds (once per dialect) an engine from the inline rules and the
// rule-set file.
func DialectResolver(logger *zap.Logger, inline []string, ruleFile string) Resolver {
	var (
		mu      sync.Mutex
		engines = make(map[types.Dialect]*internal.Engine)
	)

	return func(path string) (Replacer, error) {
		d, ok := types.DialectFromPath(path)
		if !ok {
			return nil, fmt.Errorf("cannot infer the dialect of %s", path)
		}

		mu.Lock()
		defer mu.Unlock()
		if e, ok := engines[d]; ok {
			return e, nil
		}

		rs, err := LoadRules(d, inline, ruleFile)
		if err != nil {
			return nil, err
		}
		e, err := New(d, rs, logger)
		if err != nil {
			return nil, err
		}
		engines[d] = e
		return e, nil
	}
}

// BatchOptions control ProcessPaths. Files are rewritten in place.
type BatchOptions struct {
	DryRun   bool
	Diff     bool
	Workers  int
	Progress bool
}

// CollectFiles expands directories into the dialect source files they
// contain. Plain file paths are kept as they are.
func CollectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		found, err := scanner.New(path, types.Extensions()...).Scan()
		if err != nil {
			return nil, fmt.Errorf("error walking directory %s: %w", path, err)
		}
		for _, f := range found {
			files = append(files, f.Path)
		}
	}
	return files, nil
}

// ProcessPaths rewrites every file under paths in place, using a bounded
// pool of workers. A failing file is logged and reported in its Result;
// the returned error is reserved for problems that stop the whole run.
// Results are in the order the files were collected.
func ProcessPaths(
	ctx context.Context,
	logger *zap.Logger,
	resolve Resolver,
	paths []string,
	opts BatchOptions,
) ([]Result, error) {
	logger = nopIfNil(logger)

	files, err := CollectFiles(paths)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var bar *progressbar.ProgressBar
	if opts.Progress && len(files) > 1 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("rewriting"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = processFile(logger, resolve, path, opts)
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return results, ctx.Err()
}

func processFile(logger *zap.Logger, resolve Resolver, path string, opts BatchOptions) Result {
	result := Result{Path: path}

	fail := func(err error) Result {
		logger.Error("Error processing file", zap.String("file", path), zap.Error(err))
		result.Err = err
		return result
	}

	engine, err := resolve(path)
	if err != nil {
		return fail(err)
	}
	result.Dialect = engine.Dialect()

	doc, err := os.ReadFile(path)
	if err != nil {
		return fail(fmt.Errorf("error reading %s: %w", path, err))
	}
	rewritten, err := run(engine, path, doc, &result)
	if err != nil {
		return fail(err)
	}

	if opts.Diff {
		if result.Diff, err = fixer.Diff(path, string(doc), rewritten); err != nil {
			return fail(err)
		}
	}

	changed, err := fixer.New(opts.DryRun).Fix(path, doc, rewritten)
	if err != nil {
		return fail(fmt.Errorf("error writing %s: %w", path, err))
	}
	result.Written = changed && !opts.DryRun

	logger.Debug("File processed",
		zap.String("file", path),
		zap.Stringer("dialect", result.Dialect),
		zap.Int("changed", result.Changed))
	return result
}
