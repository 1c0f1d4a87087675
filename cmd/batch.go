package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/apertium/apgrep/formatter"
	"github.com/apertium/apgrep/grep"
	"github.com/apertium/apgrep/internal/types"
)

type batchOptions struct {
	dialectFlags
	replace  []string
	ruleFile string
	dryRun   bool
	diff     bool
	quiet    bool
	verbose  bool
}

func newBatchCmd(v *viper.Viper) *cobra.Command {
	opts := &batchOptions{}

	batchCmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Rewrite files and directories in place",
		Long: `Rewrite every lexd, lexc, twolc and xfst file under the given paths in
place. The dialect of each file is inferred from its extension unless a
dialect flag is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, v, opts, args)
		},
	}

	flags := batchCmd.Flags()
	flags.StringArrayVarP(&opts.replace, "replace", "r", nil, `Replacement rule "source/target" (repeatable, applied in order)`)
	flags.StringVar(&opts.ruleFile, "rules", "", "Rule-set file (YAML or TOML)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Report changes without writing them")
	flags.BoolVar(&opts.diff, "diff", false, "Print a unified diff of the changes")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Do not show progress or the summary")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "List unchanged files in the summary")
	opts.dialectFlags.register(flags)

	batchCmd.MarkFlagsOneRequired("replace", "rules")
	batchCmd.MarkFlagsMutuallyExclusive(dialectFlagNames...)
	return batchCmd
}

func runBatch(cmd *cobra.Command, v *viper.Viper, opts *batchOptions, paths []string) error {
	resolve := grep.DialectResolver(logger, opts.replace, opts.ruleFile)
	if d := opts.dialect(); d != types.DialectUnknown {
		rules, err := grep.LoadRules(d, opts.replace, opts.ruleFile)
		if err != nil {
			return err
		}
		engine, err := grep.New(d, rules, logger)
		if err != nil {
			return err
		}
		resolve = grep.StaticResolver(engine)
	}

	ctx, cancel := withTimeout(cmd.Context(), v)
	defer cancel()

	results, err := grep.ProcessPaths(ctx, logger, resolve, paths, grep.BatchOptions{
		DryRun:   opts.dryRun,
		Diff:     opts.diff,
		Workers:  v.GetInt("workers"),
		Progress: !opts.quiet,
	})
	if err != nil {
		logger.Error("Error processing paths", zap.Error(err))
		return err
	}

	out := cmd.OutOrStdout()
	if opts.diff {
		for _, r := range results {
			fmt.Fprint(out, formatter.FormatDiff(r.Diff))
		}
	}
	if !opts.quiet {
		fmt.Fprint(out, formatter.FormatSummary(results, opts.verbose))
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
