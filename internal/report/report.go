package report

import (
	"fmt"
	"io"
	"strings"

	sonic "github.com/bytedance/sonic"
	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/domain/table"
)

const (
	missingCell  = "-"
	noRowsHeader = "no rows"
)

// Options controls RenderTable. MaxRows <= 0 renders every row.
type Options struct {
	Title   string
	MaxRows int
}

func newWriter(w io.Writer) prettytable.Writer {
	t := prettytable.NewWriter()
	t.SetStyle(prettytable.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// RenderTable writes t as a text table. Numeric columns are right aligned
// and missing cells print as "-". A nil or column-less table renders a
// single "no rows" header.
func RenderTable(w io.Writer, t *table.Table, opts Options) {
	if t == nil {
		t = table.Empty()
	}

	out := newWriter(w)
	if opts.Title != "" {
		out.SetTitle("%s", opts.Title)
	}

	names := t.Columns()
	header := make(prettytable.Row, 0, len(names))
	configs := make([]prettytable.ColumnConfig, 0, len(names))
	for i, name := range names {
		header = append(header, name)
		if typ, _ := t.ColumnType(name); typ == table.TypeNumeric {
			configs = append(configs, prettytable.ColumnConfig{Number: i + 1, Align: text.AlignRight})
		}
	}
	if len(header) == 0 {
		// go-pretty renders nothing for a table without columns.
		header = prettytable.Row{noRowsHeader}
	}
	out.AppendHeader(header)
	out.SetColumnConfigs(configs)

	rows := t.NumRows()
	limit := rows
	if opts.MaxRows > 0 && opts.MaxRows < rows {
		limit = opts.MaxRows
	}
	for r := 0; r < limit; r++ {
		row := make(prettytable.Row, 0, len(names))
		for _, name := range names {
			v, _ := t.Value(name, r)
			row = append(row, formatCell(v))
		}
		out.AppendRow(row)
	}
	if limit < rows {
		out.AppendFooter(prettytable.Row{fmt.Sprintf("%d of %d rows", limit, rows)})
	}

	out.Render()
}

func formatCell(v table.Value) string {
	if v.IsMissing() {
		return missingCell
	}
	return v.Text()
}

// Summary describes one built comparison.
type Summary struct {
	Category    stats.Category    `json:"category"`
	Perspective stats.Perspective `json:"perspective"`
	Seasons     []string          `json:"seasons"`
	Rows        int               `json:"rows"`
	Columns     int               `json:"columns"`
}

func Summarize(records []stats.ComparisonRecord) []Summary {
	out := make([]Summary, 0, len(records))
	for _, record := range records {
		s := Summary{
			Category:    record.Category,
			Perspective: record.Perspective,
			Seasons:     append([]string(nil), record.Seasons...),
		}
		if record.Table != nil {
			s.Rows = record.Table.NumRows()
			s.Columns = record.Table.NumCols()
		}
		out = append(out, s)
	}
	return out
}

// RenderSummary writes one line per comparison.
func RenderSummary(w io.Writer, summaries []Summary) {
	out := newWriter(w)
	out.SetTitle("Season comparisons")
	out.AppendHeader(prettytable.Row{"Category", "Perspective", "Seasons", "Rows", "Columns"})
	for _, s := range summaries {
		out.AppendRow(prettytable.Row{s.Category, s.Perspective, strings.Join(s.Seasons, ", "), s.Rows, s.Columns})
	}
	out.Render()
}

// WriteSummaryJSON writes summaries as a JSON array followed by a newline.
func WriteSummaryJSON(w io.Writer, summaries []Summary) error {
	encoded, err := sonic.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("encode report summary: %w", err)
	}
	if _, err := w.Write(append(encoded, '\n')); err != nil {
		return fmt.Errorf("write report summary: %w", err)
	}
	return nil
}
