package cmd

import (
	"fmt"
	"sort"

	"objectsync/core/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Verify the configured source",
	Long: `Checks that every configured table exists with its configured columns, or that
the records bucket exists, and reports each failure. Exits non-zero when any check fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logg.Sync()

		deps, err := connect(cfg, logg)
		if err != nil {
			return err
		}

		checks := source.Checks(cfg.Source, deps)
		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		sort.Strings(names)

		failed := 0
		for _, name := range names {
			if err := checks[name](cmd.Context()); err != nil {
				failed++
				logg.Error("Check failed", zap.String("check", name), zap.Error(err))
				continue
			}
			logg.Info("Check passed", zap.String("check", name))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d source checks failed", failed, len(checks))
		}
		logg.Info("Source is intact", zap.String("kind", cfg.Source.Kind), zap.Int("checks", len(checks)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
}
