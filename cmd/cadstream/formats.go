package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/cadstream/pkg/format"
	"github.com/philipparndt/cadstream/version"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported file formats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Supported formats:")
		for _, tag := range format.Default.Tags() {
			decoder, err := format.Default.CreateDecoder(tag)
			if err != nil {
				return err
			}
			fmt.Printf("  %-6s %-20s %s\n", tag, decoder.Name(), strings.Join(tag.Extensions(), ", "))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cadstream %s\n", version.GetVersion())
		fmt.Printf("  commit: %s\n", version.GitCommit)
		fmt.Printf("  built:  %s\n", version.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(versionCmd)
}
