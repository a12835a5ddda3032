package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Faultbox/geoline/internal/layers"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [file.geojson...]",
		Short: "Build ribbons without a window and print geometry stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := inputPaths(args)
			if err != nil {
				return err
			}
			logStart("build", paths)

			m, err := layers.NewMap(cfg, cfg.Graphics.Width, cfg.Graphics.Height)
			if err != nil {
				return err
			}
			layer, err := layers.LoadFiles(m, cfg, paths)
			if err != nil {
				return err
			}
			if err := m.Update(); err != nil {
				return err
			}

			names := make([]string, len(paths))
			for i, p := range paths {
				names[i] = filepath.Base(p)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, layers.Report(names, layers.Stats(layer)))
			if b, ok := m.DataBounds(); ok {
				fmt.Fprintf(out, "bounds (%s): [%.3f, %.3f] - [%.3f, %.3f]\n",
					m.GCS(), b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y())
			}
			return nil
		},
	}
}
