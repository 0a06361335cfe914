// Command mapfwp generates waypoint-augmented MAPF benchmark scenarios and
// verifies their cross-tier consistency.
package main

import (
	"os"

	"github.com/elektrokombinacija/mapf-waypoints/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
