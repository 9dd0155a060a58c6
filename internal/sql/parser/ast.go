package parser

// Statement is the root interface for all DSL statements.
type Statement interface {
	stmtNode()
}

// Identifier names a database, table or column.
type Identifier struct {
	Name string
}

// Program is a non-empty, ordered list of statements parsed from one input.
type Program struct {
	Statements []Statement
}

// ----- CREATE DATABASE -----
type CreateDatabaseStmt struct {
	Name Identifier
}

func (*CreateDatabaseStmt) stmtNode() {}

// ----- USE -----
type UseDatabaseStmt struct {
	Name Identifier
}

func (*UseDatabaseStmt) stmtNode() {}

// ----- CREATE TABLE -----
type CreateTableStmt struct {
	Name    Identifier
	Columns []Identifier // declaration order, duplicates kept
}

func (*CreateTableStmt) stmtNode() {}

// ColumnNames flattens Columns.
func (s *CreateTableStmt) ColumnNames() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Name
	}
	return out
}

// ----- LIST -----
type ListDatabasesStmt struct{}

func (*ListDatabasesStmt) stmtNode() {}

type ListTablesStmt struct{}

func (*ListTablesStmt) stmtNode() {}
