package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/apertium/apgrep/rules"
)

const defaultRuleFile = "apgrep.yaml"

func newInitCmd() *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a rule-set template (YAML, or TOML for a .toml path)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultRuleFile
			if len(args) == 1 {
				path = args[0]
			}
			if err := initRuleFile(path, force); err != nil {
				logger.Error("Error initializing rule file", zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rule file created: %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return initCmd
}

func initRuleFile(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return rules.Write(path, rules.Template())
}
