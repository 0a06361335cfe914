// Command mapfwpvis displays a waypointed scenario on its map: terrain,
// agent starts, and per-agent waypoint chains. Drag to pan, scroll to zoom,
// arrow keys to cycle through agents.
package main

import (
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/mapf-waypoints/internal/core"
	"github.com/elektrokombinacija/mapf-waypoints/internal/vis"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: mapfwpvis <map-file> <waypointed-scen-file>")
		os.Exit(2)
	}

	m, err := core.LoadGridMap(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	records, err := vis.LoadRecords(os.Args[2])
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Waypoint Viewer"),
			app.Size(unit.Dp(1200), unit.Dp(900)),
		)

		application := vis.NewApp(m, records)
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
