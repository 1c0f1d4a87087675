package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/apertium/apgrep/formatter"
	"github.com/apertium/apgrep/grep"
	"github.com/apertium/apgrep/internal/types"
)

const defaultTimeout = 5 * time.Minute

// ErrFindNotImplemented is returned in find mode.
var ErrFindNotImplemented = errors.New("search isn't implemented yet")

var logger = zap.NewNop()

// dialectFlags holds one bool per dialect flag.
type dialectFlags struct {
	lexd, lexc, twol, xfst bool
}

var dialectFlagNames = []string{"lexd", "lexc", "twol", "xfst"}

func (d *dialectFlags) register(flags *pflag.FlagSet) {
	flags.BoolVarP(&d.lexd, "lexd", "d", false, "Process a lexd file")
	flags.BoolVarP(&d.lexc, "lexc", "c", false, "Process a lexc file")
	flags.BoolVarP(&d.twol, "twol", "t", false, "Process a twolc file")
	flags.BoolVarP(&d.xfst, "xfst", "x", false, "Process an xfst or foma script")
}

func (d *dialectFlags) dialect() types.Dialect {
	switch {
	case d.lexd:
		return types.Lexd
	case d.lexc:
		return types.Lexc
	case d.twol:
		return types.Twolc
	case d.xfst:
		return types.Xfst
	}
	return types.DialectUnknown
}

type replaceOptions struct {
	dialectFlags
	find     []string
	replace  []string
	ruleFile string
	diff     bool
}

// Execute runs the apgrep command line.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the apgrep command tree. Every call returns fresh
// flag state.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	opts := &replaceOptions{}
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "apgrep [flags] <infile> <outfile>",
		Short: "apgrep - structure-aware search and replace for Apertium source files",
		Long: `apgrep rewrites the symbols of lexd, lexc, twolc and xfst sources
without touching comments, regexes, tag settings or escapes.

Use "-" as infile or outfile for standard input or standard output.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplace(cmd, v, opts, args[0], args[1])
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Settings file (default is ./.apgrep.yaml when present)")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.Int("workers", 0, "Number of files processed in parallel by batch (0 means one per CPU)")
	pf.Duration("timeout", defaultTimeout, "Give up after this long (0 disables the limit)")
	pf.Bool("no-color", false, "Disable coloured output")
	_ = v.BindPFlags(pf)

	flags := rootCmd.Flags()
	flags.StringArrayVarP(&opts.find, "find", "f", nil, "Pattern to search for (repeatable)")
	flags.StringArrayVarP(&opts.replace, "replace", "r", nil, `Replacement rule "source/target" (repeatable, applied in order)`)
	flags.StringVar(&opts.ruleFile, "rules", "", "Rule-set file (YAML or TOML)")
	flags.BoolVar(&opts.diff, "diff", false, "Print a unified diff of the changes to stderr")
	opts.dialectFlags.register(flags)

	rootCmd.MarkFlagsMutuallyExclusive("find", "replace")
	rootCmd.MarkFlagsMutuallyExclusive("find", "rules")
	rootCmd.MarkFlagsOneRequired("find", "replace", "rules")
	rootCmd.MarkFlagsMutuallyExclusive(dialectFlagNames...)
	rootCmd.MarkFlagsOneRequired(dialectFlagNames...)

	rootCmd.AddCommand(newBatchCmd(v))
	rootCmd.AddCommand(newInitCmd())
	return rootCmd
}

// initConfig loads settings from the config file and APGREP_* environment
// variables, then sets up logging and colours.
func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("apgrep")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName(".apgrep")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	if v.GetBool("no-color") {
		color.NoColor = true
	}

	l, err := newLogger(v.GetString("log-level"))
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("Configuration loaded", zap.String("config", v.ConfigFileUsed()))
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

func withTimeout(ctx context.Context, v *viper.Viper) (context.Context, context.CancelFunc) {
	if d := v.GetDuration("timeout"); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

func runReplace(cmd *cobra.Command, v *viper.Viper, opts *replaceOptions, in, out string) error {
	if len(opts.find) > 0 {
		return ErrFindNotImplemented
	}

	dialect := opts.dialect()
	rules, err := grep.LoadRules(dialect, opts.replace, opts.ruleFile)
	if err != nil {
		return err
	}
	engine, err := grep.New(dialect, rules, logger)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(cmd.Context(), v)
	defer cancel()

	result, err := grep.ReplaceFile(ctx, logger, engine, in, out, grep.WriteOptions{
		Diff:   opts.diff,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
	})
	if err != nil {
		logger.Error("Error replacing", zap.String("input", in), zap.Error(err))
		return err
	}

	if opts.diff {
		fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatDiff(result.Diff))
	}
	return nil
}
