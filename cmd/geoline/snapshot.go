package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/geoline/internal/layers"
	"github.com/Faultbox/geoline/internal/viewer"
)

func newSnapshotCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "snapshot [file.geojson...]",
		Short: "Render the data once to an image (png, bmp or tiff)",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := inputPaths(args)
			if err != nil {
				return err
			}
			logStart("snapshot", paths)

			v, err := viewer.New(cfg, viewer.Options{Title: "geoline", Hidden: true})
			if err != nil {
				return err
			}
			defer v.Close()

			if _, err := layers.LoadFiles(v.Map(), cfg, paths); err != nil {
				return err
			}
			path, err := v.RenderOnce(output)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path, png, bmp or tiff by extension (default: generated name in snapshot.dir)")
	return cmd
}
