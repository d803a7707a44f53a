package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/netgraph/netgraph/pkg/importer"
	"github.com/netgraph/netgraph/pkg/metrics"
)

var typesCmd = &cobra.Command{
	Use:   "types <file>",
	Short: "Detect column types and suggest field mappings",
	Args:  cobra.ExactArgs(1),
	RunE:  runTypes,
}

func runTypes(cmd *cobra.Command, args []string) error {
	imp := importer.NewImporter(logger, metrics.DefaultRegistry())

	uiConfig, err := imp.MappingUIConfig(args[0], cfg.Import.Encoding)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "column\tdetected type\tdefault mapping")

	currentByColumn := make(map[string][]string)
	for field, column := range uiConfig.CurrentMapping {
		if column != "" {
			currentByColumn[column] = append(currentByColumn[column], field)
		}
	}
	for _, column := range uiConfig.Columns {
		fields := currentByColumn[column]
		sort.Strings(fields)
		fmt.Fprintf(w, "%s\t%s\t%s\n", column, uiConfig.DetectedTypes[column], strings.Join(fields, ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(uiConfig.Suggestions) > 0 {
		fmt.Println()
		fmt.Println("Suggestions:")
		fields := make([]string, 0, len(uiConfig.Suggestions))
		for field := range uiConfig.Suggestions {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Printf("  %s: %s\n", field, strings.Join(uiConfig.Suggestions[field], ", "))
		}
	}
	return nil
}
