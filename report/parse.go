package report

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/inference-sim/funnelsim/table"
)

var tableParser = goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()

// ParseTables reads back every GFM pipe table in a rendered report, in
// document order. Right-aligned columns are parsed as numbers (the missing
// marker included); other columns are kept as text. Cell text comes back
// without outer whitespace.
func ParseTables(doc []byte) ([]*table.Table, error) {
	root := tableParser.Parse(text.NewReader(doc))

	var tables []*table.Table
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		tn, ok := n.(*east.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		t, err := convertTable(tn, doc, len(tables))
		if err != nil {
			return ast.WalkStop, err
		}
		tables = append(tables, t)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func convertTable(tn *east.Table, doc []byte, idx int) (*table.Table, error) {
	numeric := make([]bool, len(tn.Alignments))
	for j, a := range tn.Alignments {
		numeric[j] = a == east.AlignRight
	}

	var t *table.Table
	for rn := tn.FirstChild(); rn != nil; rn = rn.NextSibling() {
		vals := cellTexts(rn, doc)
		switch rn.(type) {
		case *east.TableHeader:
			t = table.New(vals...)
			continue
		case *east.TableRow:
		default:
			continue
		}
		if t == nil {
			return nil, fmt.Errorf("table %d: row before header", idx+1)
		}
		row := make([]table.Cell, len(t.Columns))
		for j := range row {
			v := ""
			if j < len(vals) {
				v = vals[j]
			}
			if j >= len(numeric) || !numeric[j] {
				row[j] = table.Text(v)
				continue
			}
			c, err := table.ParseNumber(v)
			if err != nil {
				return nil, fmt.Errorf("table %d, row %d, column %q: %w", idx+1, t.Len()+1, t.Columns[j], err)
			}
			row[j] = c
		}
		t.AddRow(row...)
	}
	if t == nil {
		return nil, fmt.Errorf("table %d: no header", idx+1)
	}
	return t, nil
}

// cellTexts returns the unescaped text of every cell under n.
func cellTexts(n ast.Node, doc []byte) []string {
	var out []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *east.TableCell:
			out = append(out, string(util.UnescapePunctuations(inlineText(c, doc))))
		case *east.TableRow:
			out = append(out, cellTexts(c, doc)...)
		}
	}
	return out
}

// inlineText concatenates the raw source of the text under n, backslash
// escapes included.
func inlineText(n ast.Node, doc []byte) []byte {
	var b []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			b = append(b, v.Segment.Value(doc)...)
		case *ast.String:
			b = append(b, v.Value...)
		default:
			b = append(b, inlineText(c, doc)...)
		}
	}
	return b
}
