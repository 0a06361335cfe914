package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/mapf-waypoints/internal/engine"
)

// newGenerateCmd creates the generate command.
func newGenerateCmd() *cobra.Command {
	var (
		mapsDir    string
		srcDir     string
		dstDir     string
		single     int
		seed       int64
		tiers      []int
		workers    int
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate waypoint-augmented scenario files",
		Long: `Generate pairs every subdirectory of --src with the map of the same name
in --maps and writes one output tree per waypoint tier under --dst
(<map>_<k>wp/<scen>). With --n a single tier is generated into the original
layout (<map>/<scen>).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			opts := engine.Options{
				MapsDir: mapsDir,
				SrcDir:  srcDir,
				DstDir:  dstDir,
				Seed:    seed,
				Workers: workers,
				Logger:  logger,
			}

			if configPath != "" {
				cfg, err := loadConfig(configPath)
				if err != nil {
					return err
				}
				if len(cfg.Tiers) > 0 {
					opts.Tiers = cfg.Tiers
				}
				if !cmd.Flags().Changed("seed") {
					opts.Seed = cfg.Seed
				}
				if !cmd.Flags().Changed("workers") && cfg.Workers > 0 {
					opts.Workers = cfg.Workers
				}
			}
			if cmd.Flags().Changed("tiers") {
				opts.Tiers = tiers
			}
			if cmd.Flags().Changed("n") {
				if cmd.Flags().Changed("tiers") {
					return fmt.Errorf("--n and --tiers are mutually exclusive")
				}
				opts.Tiers = []int{single}
				opts.Legacy = true
				logger.Info("running in legacy single-tier mode", "waypoints", single)
			}
			for _, k := range opts.Tiers {
				if k < 0 {
					return fmt.Errorf("negative waypoint count %d", k)
				}
			}

			p := newProgress(logger)
			stats, err := engine.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("generated %d waypoint files for %d agents",
				stats.FilesWritten, stats.Agents))
			return nil
		},
	}

	cmd.Flags().StringVar(&mapsDir, "maps", "", "directory containing .map files")
	cmd.Flags().StringVar(&srcDir, "src", "", "root directory of original scenario folders")
	cmd.Flags().StringVar(&dstDir, "dst", "", "root directory for waypointed scenarios")
	cmd.Flags().IntVar(&single, "n", 0, "single waypoint count (legacy mode)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().IntSliceVar(&tiers, "tiers", nil, "waypoint counts, one output tree each")
	cmd.Flags().IntVar(&workers, "workers", 1, "scenario files processed concurrently")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file with generation defaults")

	cobra.CheckErr(cmd.MarkFlagRequired("maps"))
	cobra.CheckErr(cmd.MarkFlagRequired("src"))
	cobra.CheckErr(cmd.MarkFlagRequired("dst"))

	return cmd
}
