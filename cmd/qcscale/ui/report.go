package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Blaco/qc-scale-tool/internal/qcfile"
	"github.com/Blaco/qc-scale-tool/internal/scale"
	"github.com/Blaco/qc-scale-tool/internal/vrdfile"
)

// Table renders static rows with aligned columns.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render draws the table with the given styles.
func (t *Table) Render(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(styles.Title.Render(t.Title))
		b.WriteString("\n")
	}
	for i, h := range t.Headers {
		b.WriteString(styles.Muted.Render(pad(h, widths[i])))
		if i < len(t.Headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			b.WriteString(styles.Body.Render(pad(cell, widths[i])))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// RenderQCReport summarizes the primary-file rewrite.
func RenderQCReport(report *qcfile.Report, f scale.Factors, styles Styles) string {
	var b strings.Builder

	switch {
	case report.DirectiveReplaced:
		b.WriteString(styles.Success.Render(
			fmt.Sprintf("$scale %s -> %s (factor %s)",
				trimFloat(f.Previous), trimFloat(f.New), f.DisplayFactor())))
	case report.DirectiveInserted:
		b.WriteString(styles.Success.Render(
			fmt.Sprintf("inserted $scale %s", trimFloat(f.New))))
	}
	b.WriteString("\n")

	if len(report.Eyeballs) == 0 {
		b.WriteString(styles.Muted.Render("no eyeball lines to adjust"))
		b.WriteString("\n")
		return b.String()
	}

	tbl := Table{
		Title:   fmt.Sprintf("%d eyeball line(s) rescaled", len(report.Eyeballs)),
		Headers: []string{"line", "eye", "before / after"},
	}
	for _, ch := range report.Eyeballs {
		tbl.AddRow(fmt.Sprintf("%d", ch.Line), ch.Name, ch.Before)
		tbl.AddRow("", "", ch.After)
	}
	b.WriteString(tbl.Render(styles))
	return b.String()
}

// RenderVRDReport summarizes the helper-offset rescale.
func RenderVRDReport(report *vrdfile.Report, styles Styles) string {
	var b strings.Builder

	if report.FirstRun {
		b.WriteString(styles.Info.Render("first run: baseline captured and marker block written"))
	} else {
		b.WriteString(styles.Info.Render("marker block found: values derived from stored baseline"))
	}
	b.WriteString("\n")

	b.WriteString(styles.Body.Render(fmt.Sprintf(
		"%d rest position(s), %d translation(s) with offsets, scale %s applied",
		report.BasePosCount, report.TriggerNonZero, trimFloat(report.AppliedScale))))
	b.WriteString("\n")

	if report.NoBasePos {
		b.WriteString(styles.Warning.Render("no rest positions matched; is this really a helper-offset file?"))
		b.WriteString("\n")
	}
	if report.AllTriggersZero {
		b.WriteString(styles.Muted.Render("all trigger translations are zero; nothing to scale there"))
		b.WriteString("\n")
	}
	return b.String()
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
