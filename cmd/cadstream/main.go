package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/cadstream/internal/config"
	_ "github.com/philipparndt/cadstream/pkg/stl"
	"github.com/philipparndt/cadstream/version"
)

var (
	cfgFile string
	cfg     = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "cadstream",
	Short: "Stream STL models from a watched directory to a viewer",
	Long: `cadstream watches a directory for STL (Stereolithography) files, decodes
each new or changed file (ASCII or binary) and publishes the resulting model
to a visualization sink.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./cadstream.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
