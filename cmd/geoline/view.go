package main

import (
	"github.com/spf13/cobra"

	"github.com/Faultbox/geoline/internal/layers"
	"github.com/Faultbox/geoline/internal/viewer"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file.geojson...]",
		Short: "Open an interactive window (drag to pan, wheel to zoom, F to fit, F12 snapshot, Esc quit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := inputPaths(args)
			if err != nil {
				return err
			}
			logStart("view", paths)

			v, err := viewer.New(cfg, viewer.Options{Title: "geoline"})
			if err != nil {
				return err
			}
			defer v.Close()

			if _, err := layers.LoadFiles(v.Map(), cfg, paths); err != nil {
				return err
			}
			return v.Run()
		},
	}
}
