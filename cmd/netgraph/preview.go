package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/netgraph/netgraph/pkg/importer"
	"github.com/netgraph/netgraph/pkg/metrics"
)

var previewRows int

var (
	previewTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#00FFFF"))

	previewDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Show the head of a data file with per-column statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().IntVarP(&previewRows, "rows", "n", 10, "Number of rows to preview")
}

func runPreview(cmd *cobra.Command, args []string) error {
	imp := importer.NewImporter(logger, metrics.DefaultRegistry())

	preview, err := imp.DataPreview(args[0], cfg.Import.Encoding, previewRows)
	if err != nil {
		return err
	}

	fmt.Println(previewTitleStyle.Render(args[0]))
	fmt.Println(previewDimStyle.Render(fmt.Sprintf("%d columns, showing %d of %d rows",
		len(preview.Columns), preview.PreviewRows, preview.TotalRows)))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	header := ""
	for _, col := range preview.Columns {
		header += col + "\t"
	}
	fmt.Fprintln(w, header)

	for _, record := range preview.Data {
		line := ""
		for _, col := range preview.Columns {
			line += record[col].Text() + "\t"
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()

	fmt.Println()
	fmt.Println(previewTitleStyle.Render("Columns"))

	cw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(cw, "column\ttype\tunique\tmissing")
	for _, col := range preview.Columns {
		info := preview.ColumnInfo[col]
		fmt.Fprintf(cw, "%s\t%s\t%d\t%d\n", col, info.DataType, info.UniqueCount, info.MissingCount)
	}
	return cw.Flush()
}
