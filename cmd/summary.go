package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/inference-sim/funnelsim/pipeline"
	"github.com/inference-sim/funnelsim/table"
)

// printSummary writes the best funnels and output paths after a run.
func printSummary(w io.Writer, out *pipeline.Outcome) {
	title := color.New(color.FgCyan, color.Bold)
	name := color.New(color.FgGreen).SprintFunc()

	title.Fprintln(w, "=== Funnel Comparison ===")
	if len(out.Highlights) == 0 {
		fmt.Fprintln(w, "No configurations were evaluated.")
	}
	for _, h := range out.Highlights {
		fmt.Fprintf(w, "%-28s %s (%s = %s)\n",
			h.Criterion.Title+":", name(h.Selection.Row.Configuration),
			h.Criterion.Metric, table.FormatNumber(h.Selection.Value))
	}
	fmt.Fprintf(w, "Report: %s\n", out.ReportPath)
	if out.WorkbookPath != "" {
		fmt.Fprintf(w, "Workbook: %s\n", out.WorkbookPath)
	}
}
