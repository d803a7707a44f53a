// netgraph is the command-line front end for the import pipeline:
// it validates, previews and imports tabular data files into graphs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netgraph/netgraph/pkg/config"
	"github.com/netgraph/netgraph/pkg/logging"
)

var (
	cfgPath string
	cfg     *config.Config
	logger  logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "netgraph",
	Short: "Import tabular data files into node/edge graphs",
	Long: `netgraph converts CSV, JSON and XML files into validated,
hierarchically structured graphs. It previews files, suggests column
mappings, detects column types and runs the full import pipeline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgPath != "" {
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Default()
		}
		logger = logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML configuration file")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(watchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
