package cmd

import (
	"context"
	"time"

	"objectsync/core/model"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	walkPath    []string
	walkForce   bool
	walkTimeout time.Duration
)

// walkCmd refreshes objects along an attribute path.
var walkCmd = &cobra.Command{
	Use:   "walk [Type:id]",
	Short: "Refresh objects along an attribute path",
	Long: `Starts at one object and refreshes each attribute of --path in turn, fanning out
over list attributes. Prints the objects reached at the end of the path as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := model.ParseRef(args[0])
		if err != nil {
			return err
		}
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		ctx, cancel := context.WithTimeout(cmd.Context(), walkTimeout)
		defer cancel()

		items, err := runRefresh(ctx, a.manager, []model.Ref{root}, walkForce)
		if err != nil {
			return err
		}
		res, err := a.manager.RefreshAll(ctx, items[0], walkPath, walkForce)
		if err != nil {
			a.logger.Error("Walk failed", zap.Error(err))
			return err
		}
		if single := res.Single(); single != nil {
			return printJSON(cmd.OutOrStdout(), single)
		}
		return printJSON(cmd.OutOrStdout(), res.Items)
	},
}

func init() {
	walkCmd.Flags().StringSliceVar(&walkPath, "path", nil, "comma separated attribute path (e.g. user_roles,role)")
	walkCmd.Flags().BoolVar(&walkForce, "force", false, "refetch objects that are already loaded")
	walkCmd.Flags().DurationVar(&walkTimeout, "timeout", time.Minute, "maximum time to wait for the fetches")
	RootCmd.AddCommand(walkCmd)
}
