package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/cadstream/pkg/viewer"
)

var (
	snapshotOutput string
	snapshotWidth  int
	snapshotHeight int
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [file]",
	Short: "Render a geometry file to a PNG image",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "", "Output file (default is <file>.png)")
	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", 0, "Image width (default is sink.width)")
	snapshotCmd.Flags().IntVar(&snapshotHeight, "height", 0, "Image height (default is sink.height)")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	filename := args[0]

	model, err := decodeFile(filename)
	if err != nil {
		return err
	}

	width, height := cfg.Sink.Width, cfg.Sink.Height
	if snapshotWidth > 0 {
		width = snapshotWidth
	}
	if snapshotHeight > 0 {
		height = snapshotHeight
	}

	output := snapshotOutput
	if output == "" {
		output = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".png"
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := viewer.WritePNG(f, model, viewer.DefaultOptions(width, height)); err != nil {
		f.Close()
		return fmt.Errorf("failed to render %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%dx%d, %d triangles)\n", output, width, height, model.TriangleCount())
	return nil
}
