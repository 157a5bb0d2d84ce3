package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/cadstream/pkg/analysis"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a geometry file",
	Long:  "Decode a file and show triangle count, bounding box, dimensions, edge statistics and file size.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	model, err := decodeFile(filename)
	if err != nil {
		return err
	}

	bbox := model.Bounds()
	size := model.Size()
	center := model.Center()
	precision := model.Precision()

	fmt.Println("Model Information")
	fmt.Println("=================")
	fmt.Printf("Name: %s\n", model.Name())
	fmt.Printf("File: %s\n", filename)
	fmt.Printf("File size: %d bytes\n\n", precision.FileSizeBytes)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Triangles: %d\n", precision.TriangleCount)
	fmt.Printf("  Vertices: %d\n", precision.VertexCount)
	fmt.Printf("  Surface Area: %.6f square units\n", model.SurfaceArea())
	if precision.MaxError != nil {
		fmt.Printf("  Max Error: %.6f\n", *precision.MaxError)
	} else {
		fmt.Println("  Max Error: not computed")
	}
	fmt.Println()

	if model.Empty() {
		fmt.Println("Bounding Box: none (no geometry)")
	} else {
		fmt.Println("Bounding Box:")
		fmt.Printf("  Min: %s\n", formatVector(bbox.Min.X, bbox.Min.Y, bbox.Min.Z))
		fmt.Printf("  Max: %s\n", formatVector(bbox.Max.X, bbox.Max.Y, bbox.Max.Z))
		fmt.Printf("  Center: %s\n\n", formatVector(center.X, center.Y, center.Z))

		fmt.Println("Dimensions:")
		fmt.Printf("  Width (X): %.6f units\n", size.X)
		fmt.Printf("  Depth (Y): %.6f units\n", size.Y)
		fmt.Printf("  Height (Z): %.6f units\n", size.Z)
		fmt.Printf("  Max Dimension: %.6f units\n", model.MaxDimension())
		fmt.Printf("  Diagonal: %.6f units\n", bbox.Diagonal())

		printMeshStats(analysis.AnalyzeModel(model))
	}
	return nil
}

func printMeshStats(stats *analysis.MeshStats) {
	fmt.Println()
	fmt.Println("Mesh:")
	fmt.Printf("  Unique edges: %d\n", stats.EdgeCount)
	fmt.Printf("  Boundary edges: %d\n", stats.BoundaryEdges)
	fmt.Printf("  Non-manifold edges: %d\n", stats.NonManifoldEdges)
	fmt.Printf("  Watertight: %t\n", stats.Watertight())
	fmt.Printf("  Edge length: min %.6f, max %.6f, avg %.6f, stddev %.6f\n",
		stats.MinEdgeLength, stats.MaxEdgeLength, stats.AvgEdgeLength, stats.EdgeLengthStdDev)
}
