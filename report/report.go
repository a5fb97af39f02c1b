package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/erraggy/rostertools/checker"
)

// Style selects the human-readable rendering style
type Style string

const (
	// StyleMarkdown renders pipe tables with an alignment row. This is the
	// default and matches the report format roster operators already consume.
	StyleMarkdown Style = "markdown"
	// StyleAligned renders space-aligned columns via text/tabwriter.
	StyleAligned Style = "aligned"
)

// ValidStyles returns the list of valid style names.
func ValidStyles() []string {
	return []string{string(StyleMarkdown), string(StyleAligned)}
}

// IsValidStyle returns true if the given string is a valid style name.
func IsValidStyle(s string) bool {
	switch Style(s) {
	case StyleMarkdown, StyleAligned:
		return true
	default:
		return false
	}
}

// Renderer renders analysis results for terminal display
type Renderer struct {
	// Style selects markdown (default) or aligned output
	Style Style
	// Writer receives the rendered report.
	// Defaults to os.Stdout if not set.
	Writer io.Writer
}

// New creates a new Renderer with default settings
func New() *Renderer {
	return &Renderer{Style: StyleMarkdown}
}

// style returns the configured style or the default.
func (r *Renderer) style() Style {
	if r.Style != "" {
		return r.Style
	}
	return StyleMarkdown
}

// writer returns the configured writer or os.Stdout.
func (r *Renderer) writer() io.Writer {
	if r.Writer != nil {
		return r.Writer
	}
	return os.Stdout
}

// RenderCheck writes the duplicate report for a check result.
//
// With no duplicates the output is a single line:
//
//	No EMP IDs were found with more than one entry in the data.
//
// With duplicates, a header line followed by a two-column table:
//
//	--- EMP IDs with more than 1 entry (2 IDs found) ---
//	| EMP ID   |   Count of Entries |
//	|:---------|-------------------:|
//	| E001     |                  3 |
//	| E002     |                  2 |
func (r *Renderer) RenderCheck(result *checker.CheckResult) error {
	w := r.writer()
	minCount := result.MinCount
	if minCount == 0 {
		minCount = 2
	}

	if !result.HasDuplicates() {
		_, err := fmt.Fprintf(w, "No %ss were found with more than %s in the data.\n",
			result.KeyField, spelledThreshold(minCount))
		return err
	}

	if _, err := fmt.Fprintf(w, "--- %ss with more than %s (%d IDs found) ---\n",
		result.KeyField, numericThreshold(minCount), len(result.Duplicates)); err != nil {
		return err
	}

	values := make([]string, len(result.Duplicates))
	counts := make([]string, len(result.Duplicates))
	for i, d := range result.Duplicates {
		values[i] = d.Value
		counts[i] = fmt.Sprintf("%d", d.Count)
	}

	cols := []tableColumn{
		{header: result.KeyField, cells: values},
		{header: "Count of Entries", cells: counts, rightAlign: true},
	}

	if r.style() == StyleAligned {
		return writeAlignedTable(w, cols)
	}
	return writeMarkdownTable(w, cols)
}

// spelledThreshold phrases the duplicate threshold for the no-duplicates
// message. The default threshold spells the number out, matching the report
// wording downstream consumers grep for.
func spelledThreshold(minCount int) string {
	if minCount == 2 {
		return "one entry"
	}
	return fmt.Sprintf("%d entries", minCount-1)
}

// numericThreshold phrases the duplicate threshold for the report header.
func numericThreshold(minCount int) string {
	if minCount == 2 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", minCount-1)
}

// tableColumn is one rendered column: a header, cell values, and alignment.
type tableColumn struct {
	header     string
	cells      []string
	rightAlign bool
}

// markdownHeaderPad is the minimum width added over the header length.
// Keeps column widths identical to the tables existing dashboards ingest.
const markdownHeaderPad = 2

// writeMarkdownTable writes a pipe table with an alignment row. Each column
// is as wide as its widest cell, at minimum the header plus two characters.
// String columns are left-aligned (':---'), numeric columns right-aligned
// ('---:').
func writeMarkdownTable(w io.Writer, cols []tableColumn) error {
	widths := make([]int, len(cols))
	for i, col := range cols {
		width := utf8.RuneCountInString(col.header) + markdownHeaderPad
		for _, cell := range col.cells {
			if n := utf8.RuneCountInString(cell); n > width {
				width = n
			}
		}
		widths[i] = width
	}

	var sb strings.Builder

	sb.WriteByte('|')
	for i, col := range cols {
		sb.WriteByte(' ')
		sb.WriteString(pad(col.header, widths[i], col.rightAlign))
		sb.WriteString(" |")
	}
	sb.WriteByte('\n')

	sb.WriteByte('|')
	for i, col := range cols {
		if col.rightAlign {
			sb.WriteString(strings.Repeat("-", widths[i]+1))
			sb.WriteByte(':')
		} else {
			sb.WriteByte(':')
			sb.WriteString(strings.Repeat("-", widths[i]+1))
		}
		sb.WriteByte('|')
	}
	sb.WriteByte('\n')

	rowCount := 0
	if len(cols) > 0 {
		rowCount = len(cols[0].cells)
	}
	for row := 0; row < rowCount; row++ {
		sb.WriteByte('|')
		for i, col := range cols {
			sb.WriteByte(' ')
			sb.WriteString(pad(col.cells[row], widths[i], col.rightAlign))
			sb.WriteString(" |")
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// pad aligns s within width columns.
func pad(s string, width int, right bool) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// writeAlignedTable writes space-aligned columns via text/tabwriter.
func writeAlignedTable(w io.Writer, cols []tableColumn) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = col.header
	}
	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return err
	}

	rowCount := 0
	if len(cols) > 0 {
		rowCount = len(cols[0].cells)
	}
	for row := 0; row < rowCount; row++ {
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = col.cells[row]
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}

	return tw.Flush()
}
