package executor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tuannm99/mlinql/internal/catalog"
	"github.com/tuannm99/mlinql/internal/sql/parser"
)

// ErrNoDatabaseSelected is returned by statements that need a USE first.
var ErrNoDatabaseSelected = errors.New("no database selected")

// catalogStore is a small seam for unit-testing Executor without a real
// directory.
type catalogStore interface {
	Create(db string) error
	Load(db string) (catalog.Document, error)
	Save(db string, doc catalog.Document) error
	List() ([]string, error)
}

var _ catalogStore = (*catalog.Store)(nil)

// Executor materializes parsed programs into catalog documents. Each
// Executor is one session; executors never share selection state.
type Executor struct {
	store   catalogStore
	session Session
	logger  *slog.Logger
}

func NewExecutor(store *catalog.Store, logger *slog.Logger) *Executor {
	return newExecutor(store, logger)
}

func newExecutor(store catalogStore, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{store: store, logger: logger}
}

// Session exposes the executor's selection state.
func (e *Executor) Session() *Session { return &e.session }

// ExecSQL is the top-level entry: input text -> results, one per statement.
func (e *Executor) ExecSQL(input string) ([]*Result, error) {
	prog, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}
	return e.ExecProgram(prog)
}

// ExecProgram runs statements in order. The first failure stops the
// program; results of the statements before it are still returned, and
// their effects on disk stay.
func (e *Executor) ExecProgram(prog *parser.Program) ([]*Result, error) {
	results := make([]*Result, 0, len(prog.Statements))
	for i, stmt := range prog.Statements {
		res, err := e.Exec(stmt)
		if err != nil {
			e.logger.Debug("executor: statement failed",
				"index", i,
				"stmt", fmt.Sprintf("%T", stmt),
				"err", err,
			)
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Exec runs a single statement.
func (e *Executor) Exec(stmt parser.Statement) (*Result, error) {
	e.logger.Debug("executor.statement", "stmt", fmt.Sprintf("%T", stmt))

	switch s := stmt.(type) {
	case *parser.CreateDatabaseStmt:
		return e.execCreateDatabase(s)
	case *parser.UseDatabaseStmt:
		return e.execUseDatabase(s)
	case *parser.CreateTableStmt:
		return e.execCreateTable(s)
	case *parser.ListDatabasesStmt:
		return e.execListDatabases()
	case *parser.ListTablesStmt:
		return e.execListTables()
	default:
		return nil, fmt.Errorf("executor: unsupported statement type %T", stmt)
	}
}

func (e *Executor) execCreateDatabase(s *parser.CreateDatabaseStmt) (*Result, error) {
	if err := e.store.Create(s.Name.Name); err != nil {
		return nil, err
	}
	return &Result{Statement: "CREATE DATABASE"}, nil
}

func (e *Executor) execUseDatabase(s *parser.UseDatabaseStmt) (*Result, error) {
	e.session.Use(s.Name.Name)
	return &Result{Statement: "USE"}, nil
}

func (e *Executor) execCreateTable(s *parser.CreateTableStmt) (*Result, error) {
	db, ok := e.session.Database()
	if !ok {
		return nil, fmt.Errorf("create table %s: %w", s.Name.Name, ErrNoDatabaseSelected)
	}

	doc, err := e.store.Load(db)
	if err != nil {
		return nil, err
	}
	if err := doc.Put(s.Name.Name, catalog.NewTable(s.ColumnNames())); err != nil {
		return nil, err
	}

	if err := e.store.Save(db, doc); err != nil {
		return nil, err
	}
	return &Result{Statement: "CREATE TABLE"}, nil
}

func (e *Executor) execListDatabases() (*Result, error) {
	names, err := e.store.List()
	if err != nil {
		return nil, err
	}
	return listResult("LIST DATABASES", "database", names), nil
}

func (e *Executor) execListTables() (*Result, error) {
	db, ok := e.session.Database()
	if !ok {
		return nil, fmt.Errorf("list tables: %w", ErrNoDatabaseSelected)
	}

	doc, err := e.store.Load(db)
	if err != nil {
		return nil, err
	}
	return listResult("LIST TABLES", "table", doc.TableNames()), nil
}
