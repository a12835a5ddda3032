package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/geoline/internal/config"
	"github.com/Faultbox/geoline/internal/logger"
)

// cfg is loaded once flags are parsed, before any subcommand runs.
var cfg *config.Config

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "geoline",
		Short:         "Render GeoJSON polylines as screen-space ribbons",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			logger.Sugar.Debugf("config: %+v", cfg)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(newViewCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newSnapshotCmd())
	root.AddCommand(newConfigCmd())
	return root
}

// inputPaths prefers paths given on the command line over data.paths.
func inputPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(cfg.Data.Paths) > 0 {
		return cfg.Data.Paths, nil
	}
	return nil, fmt.Errorf("no input files: pass GeoJSON paths or set data.paths")
}

func logStart(cmd string, paths []string) {
	logger.Info("geoline "+cmd,
		zap.Strings("paths", paths),
		zap.String("gcs", cfg.Map.GCS),
		zap.String("dataGCS", cfg.Map.DataGCS),
	)
}
