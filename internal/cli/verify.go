package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/mapf-waypoints/internal/verify"
)

// newVerifyCmd creates the verify command.
func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE1 FILE2",
		Short: "Check hierarchical consistency between two tier outputs",
		Long: `Verify compares two waypointed scenario files generated from the same
source in the same run, FILE1 holding the smaller tier. It checks equal
agent counts, identical original fields, and that FILE1's waypoint list is
an exact prefix of FILE2's for every agent. Exits non-zero on any mismatch.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			logger.Info("comparing", "file1", args[0], "file2", args[1])

			report, err := verify.Files(args[0], args[1])
			if err != nil {
				return err
			}
			for _, mm := range report.Mismatches {
				logger.Error("mismatch", "agent", mm.Agent, "reason", mm.Reason)
			}
			fmt.Printf("Total agents: %d\n", report.Total)
			fmt.Printf("Matches:      %d\n", report.Matches)
			fmt.Printf("Mismatches:   %d\n", len(report.Mismatches))
			fmt.Printf("Success rate: %.1f%%\n", report.MatchRate()*100)

			if !report.Ok() {
				return fmt.Errorf("%d agent(s) inconsistent", len(report.Mismatches))
			}
			return nil
		},
	}
}
