package executor

// Result is what one statement hands back to the caller.
type Result struct {
	// Statement is a short upper-case tag, e.g. "CREATE TABLE".
	Statement string

	// Set only for listing statements.
	Columns []string
	Rows    [][]string
}

// HasRows reports whether the result carries a tabular report.
func (r *Result) HasRows() bool {
	return len(r.Columns) > 0
}

func listResult(stmt, column string, names []string) *Result {
	rows := make([][]string, len(names))
	for i, n := range names {
		rows[i] = []string{n}
	}
	return &Result{Statement: stmt, Columns: []string{column}, Rows: rows}
}
