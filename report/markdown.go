// Package report renders the comparative funnel report and writes the
// per-configuration exports.
package report

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/text/width"

	"github.com/inference-sim/funnelsim/compare"
	"github.com/inference-sim/funnelsim/sim"
	"github.com/inference-sim/funnelsim/table"
)

// Title is the first line of every report.
const Title = "Comparative Onboarding Simulation Results"

// ComparisonColumns is the projection shown under Comparative Statistics.
var ComparisonColumns = []string{
	compare.ConfigurationColumn,
	sim.MetricSuccessRate,
	sim.MetricTotalCost,
	sim.MetricTotalTime,
	sim.MetricAvgCostPerCustomer,
	sim.MetricAvgTimePerCustomer,
}

// Run is one configuration's simulation output as the report sees it.
type Run struct {
	Configuration string
	Result        *sim.RunResult
}

// Input is everything Render needs. Runs must be in discovery order.
type Input struct {
	Runs       []Run
	Table      *compare.Table
	Highlights []compare.Highlight
}

// Render serializes the report as GitHub-flavoured Markdown. Equal inputs
// always produce identical bytes.
func Render(in Input) []byte {
	var b bytes.Buffer

	b.WriteString("# " + Title + "\n\n")

	b.WriteString("## Comparative Statistics\n\n")
	cmp := in.Table
	if cmp == nil {
		cmp = compare.BuildTable(nil)
	}
	b.WriteString(formatTable(cmp.Project(ComparisonColumns...)))
	b.WriteString("\n")

	b.WriteString("## Best Performing Funnels\n\n")
	if len(in.Highlights) == 0 {
		b.WriteString("No configurations were evaluated.\n\n")
	}
	for _, h := range in.Highlights {
		b.WriteString("### " + h.Criterion.Title + "\n\n")
		b.WriteString("**Configuration:** " + h.Selection.Row.Configuration + "\n\n")
		b.WriteString(formatTable(cmp.RowTable(h.Selection.Row)))
		b.WriteString("\n")
	}

	for _, run := range in.Runs {
		b.WriteString("## Results for " + run.Configuration + "\n\n")
		b.WriteString("### Summary Statistics\n\n")
		writeSummary(&b, run.Result.Summary.Text)
		b.WriteString("### Detailed Module Results\n\n")
		b.WriteString(formatTable(run.Result.Details))
		b.WriteString("\n")
	}

	return b.Bytes()
}

// writeSummary writes each line of the summary text as a list item so every
// figure renders on its own line.
func writeSummary(b *bytes.Buffer, summary string) {
	for _, line := range strings.Split(summary, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			b.WriteString("- " + line + "\n")
		}
	}
	b.WriteString("\n")
}

// WriteTable writes t as a pipe table: header, alignment row, one line per
// row. Numeric columns are right-aligned, text columns left-aligned. Cell
// text loses its outer whitespace, as GFM would trim it anyway.
func WriteTable(w io.Writer, t *table.Table) error {
	_, err := io.WriteString(w, formatTable(t))
	return err
}

func formatTable(t *table.Table) string {
	n := len(t.Columns)
	cells := make([][]string, len(t.Rows))
	widths := make([]int, n)
	numeric := make([]bool, n)
	for j, c := range t.Columns {
		widths[j] = displayWidth(escapeCell(c))
		numeric[j] = t.IsNumeric(j)
	}
	for i, row := range t.Rows {
		cells[i] = make([]string, n)
		for j, c := range row {
			s := escapeCell(c.String())
			cells[i][j] = s
			if dw := displayWidth(s); dw > widths[j] {
				widths[j] = dw
			}
		}
	}

	var b strings.Builder
	writeLine := func(vals []string) {
		b.WriteString("|")
		for j, v := range vals {
			b.WriteString(" ")
			b.WriteString(pad(v, widths[j], numeric[j]))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	header := make([]string, n)
	for j, c := range t.Columns {
		header[j] = escapeCell(c)
	}
	writeLine(header)

	b.WriteString("|")
	for j := range t.Columns {
		dashes := strings.Repeat("-", widths[j]+1)
		if numeric[j] {
			b.WriteString(dashes + ":|")
		} else {
			b.WriteString(":" + dashes + "|")
		}
	}
	b.WriteString("\n")

	for _, row := range cells {
		writeLine(row)
	}
	return b.String()
}

// cellEscaper backslash-escapes the punctuation that would end a cell or
// start inline markup.
var cellEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"<", `\<`,
	"[", `\[`,
	"]", `\]`,
	"&", `\&`,
	"\r\n", " ",
	"\n", " ",
)

// escapeCell keeps a value on one line and inside its cell.
func escapeCell(s string) string {
	return cellEscaper.Replace(strings.TrimSpace(s))
}

func pad(s string, w int, right bool) string {
	gap := w - displayWidth(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// displayWidth counts terminal columns: East Asian wide and fullwidth runes
// take two.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
