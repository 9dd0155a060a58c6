package shell

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tuannm99/mlinql/internal/sql/executor"
)

const msgExecuted = "Command executed."

// renderResults prints every listing result of one input line. With
// confirm set, a line that produced no listing prints a confirmation.
func renderResults(w io.Writer, results []*executor.Result, format string, confirm bool) error {
	listed := false
	for _, res := range results {
		if !res.HasRows() {
			continue
		}
		listed = true
		if err := renderResult(w, res, format); err != nil {
			return err
		}
	}
	if !listed && confirm {
		_, _ = fmt.Fprintln(w, msgExecuted)
	}
	return nil
}

func renderResult(w io.Writer, res *executor.Result, format string) error {
	if format == "json" {
		return renderJSON(w, res)
	}

	if format == "table" && len(res.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(res.Columns))
	for i, c := range res.Columns {
		header[i] = c
	}
	t.AppendHeader(header)

	for _, r := range res.Rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}
		t.AppendRow(row)
	}

	switch format {
	case "markdown":
		_, _ = fmt.Fprintln(w, t.RenderMarkdown())
	case "csv":
		_, _ = fmt.Fprintln(w, t.RenderCSV())
	default:
		_, _ = fmt.Fprintln(w, t.Render())
		_, _ = fmt.Fprintf(w, "(%d rows)\n", len(res.Rows))
	}
	return nil
}

func renderJSON(w io.Writer, res *executor.Result) error {
	out := make([]map[string]string, 0, len(res.Rows))
	for _, r := range res.Rows {
		obj := make(map[string]string, len(res.Columns))
		for i, c := range res.Columns {
			if i < len(r) {
				obj[c] = r[i]
			}
		}
		out = append(out, obj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
