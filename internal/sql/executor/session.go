package executor

// Session is the per-shell state: which database is selected, if any.
// It lives as long as the Executor that owns it and is never persisted.
type Session struct {
	database string
}

// Use selects db. It does not check that db exists.
func (s *Session) Use(db string) { s.database = db }

// Database returns the selected database and whether one is selected.
func (s *Session) Database() (string, bool) {
	return s.database, s.database != ""
}
