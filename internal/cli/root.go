package cli

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute builds the mapfwp command tree and runs it.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:   "mapfwp",
		Short: "mapfwp augments MAPF benchmark scenarios with reachable waypoints",
		Long: `mapfwp generates waypoint-augmented scenario files for multi-agent
pathfinding benchmarks. Waypoints are placed only on terrain the agent can
reach from its (repaired) start, sampled deterministically from a seed, with
per-position collision resolution and hierarchical consistency across tiers.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newMapInfoCmd())

	return root.Execute()
}
