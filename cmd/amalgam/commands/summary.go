package commands

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Row status labels.
const (
	statusOK     = "ok"
	statusFailed = "failed"
)

// summaryRow is one line of the per-target build summary.
type summaryRow struct {
	Target  string
	Files   int
	Imports int
	Bytes   int
	Status  string
}

// renderSummary prints the per-target summary table.
func renderSummary(w io.Writer, rows []summaryRow) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Target", "Files", "Imports", "Size", "Status"})

	for _, row := range rows {
		tw.AppendRow(table.Row{
			row.Target,
			row.Files,
			row.Imports,
			humanize.Bytes(uint64(row.Bytes)),
			colorStatus(row.Status),
		})
	}

	tw.Render()
}

func colorStatus(status string) string {
	if status == statusOK {
		return color.New(color.FgGreen).Sprint(status)
	}

	return color.New(color.FgRed).Sprint(status)
}
