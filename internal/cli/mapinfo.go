package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/mapf-waypoints/internal/algo"
	"github.com/elektrokombinacija/mapf-waypoints/internal/core"
)

// newMapInfoCmd creates the mapinfo diagnostic command.
func newMapInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mapinfo FILE...",
		Short: "Print size, free-cell count, and connectivity of map files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			failed := 0
			for _, path := range args {
				m, err := core.LoadGridMap(path)
				if err != nil {
					logger.Error("malformed map", "path", path, "err", err)
					failed++
					continue
				}
				fmt.Printf("%s: %dx%d, %d free cells, %d component(s)\n",
					m.Name, m.Height, m.Width, len(m.FreeCells()), algo.ComponentCount(m))
			}
			if failed > 0 {
				return fmt.Errorf("%d map(s) failed to parse", failed)
			}
			return nil
		},
	}
}
