package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/luforestal/school-inventory/internal/adapter/archive"
	"github.com/luforestal/school-inventory/internal/adapter/object"
	"github.com/luforestal/school-inventory/internal/adapter/photos"
	"github.com/luforestal/school-inventory/internal/adapter/shapefile"
	"github.com/luforestal/school-inventory/internal/adapter/xlsx"
	"github.com/luforestal/school-inventory/internal/config"
	"github.com/luforestal/school-inventory/internal/observability"
	"github.com/luforestal/school-inventory/internal/pipeline"
	"github.com/luforestal/school-inventory/internal/render"
)

var buildCmd = &cobra.Command{
	Use:   "build <package> <output.html>",
	Short: "Build the map for one survey package",
	Long: `Build reads a survey package and writes the interactive map to the
given output path.

The package may be a directory, a .zip archive, or an s3://bucket/key
URI pointing at a zip in S3-compatible storage (requires the MINIO_*
environment variables).

Examples:
  treemap build "./Oakwood Elementary" oakwood_tree_map.html
  treemap build survey.zip map.html
  treemap build s3://surveys/oakwood.zip map.html`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := observability.NewLogger(cfg)
		metrics := observability.NewMetrics()

		// Object storage is optional: only wire the fetcher when the
		// input actually needs it, so local runs need no credentials.
		var fetcher archive.Fetcher
		if archive.IsRemote(args[0]) {
			f, err := object.NewFetcher(cfg, logger)
			if err != nil {
				return err
			}
			fetcher = f
		}

		linker := photos.NewLinker(logger, metrics)
		p := pipeline.New(
			archive.NewLoader(fetcher, logger),
			xlsx.NewParser(logger, metrics),
			shapefile.NewParser(logger),
			linker,
			linker,
			render.NewComposer(cfg.MapZoom, logger, metrics),
			render.NewExporter(cfg.MarkerRadiusPx, cfg.PopupMaxWidthPx, logger),
			cfg.WorkDir, logger, metrics,
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return p.Run(ctx, args[0], args[1])
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
