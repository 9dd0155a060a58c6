package parser

import (
	"errors"
	"fmt"

	"github.com/tuannm99/mlinql/internal/sql/cursor"
	"github.com/tuannm99/mlinql/internal/sql/scanner"
)

// ErrParse is the single failure outcome of parsing. It never carries a
// position: the whole input either parses or it does not.
var ErrParse = errors.New("failed to parse program")

var (
	errEmptyProgram = fmt.Errorf("%w: empty program", ErrParse)
	errBadStatement = fmt.Errorf("%w: invalid statement", ErrParse)
)

// Parser is a recursive-descent parser with two tokens of lookahead.
type Parser struct {
	cur *cursor.Cursor[scanner.Token]
}

func New(tokens []scanner.Token) *Parser {
	return &Parser{cur: cursor.New(tokens)}
}

// Parse scans and parses input in one step.
func Parse(input string) (*Program, error) {
	return New(scanner.Scan(input)).ParseProgram()
}

// ParseProgram parses Statement+. It stops at the first statement that does
// not match its production; no partial program is ever returned.
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{}
	for !p.cur.Done() {
		stmt, ok := p.parseStatement()
		if !ok {
			return nil, errBadStatement
		}
		prog.Statements = append(prog.Statements, stmt)
	}

	if len(prog.Statements) == 0 {
		return nil, errEmptyProgram
	}
	return prog, nil
}

func (p *Parser) parseStatement() (Statement, bool) {
	first, ok := p.cur.Peek(0)
	if !ok {
		return nil, false
	}
	// every statement is at least two tokens long
	second, ok := p.cur.Peek(1)
	if !ok {
		return nil, false
	}

	switch first.Kind {
	case scanner.Create:
		switch second.Kind {
		case scanner.Table:
			return p.parseCreateTable()
		case scanner.Database:
			return p.parseCreateDatabase()
		}
	case scanner.Use:
		if second.Kind == scanner.Identifier {
			return p.parseUse()
		}
	case scanner.List:
		switch second.Kind {
		case scanner.Databases:
			p.skip(2)
			return &ListDatabasesStmt{}, true
		case scanner.Tables:
			p.skip(2)
			return &ListTablesStmt{}, true
		}
	}
	return nil, false
}

// CREATE DATABASE <name>
func (p *Parser) parseCreateDatabase() (Statement, bool) {
	p.skip(2)
	name, ok := p.parseIdentifier()
	if !ok {
		return nil, false
	}
	return &CreateDatabaseStmt{Name: name}, true
}

// USE <name>
func (p *Parser) parseUse() (Statement, bool) {
	p.skip(1)
	name, ok := p.parseIdentifier()
	if !ok {
		return nil, false
	}
	return &UseDatabaseStmt{Name: name}, true
}

// CREATE TABLE <name> { <col> (, <col>)* }
func (p *Parser) parseCreateTable() (Statement, bool) {
	p.skip(2)

	name, ok := p.parseIdentifier()
	if !ok {
		return nil, false
	}
	if !p.expect(scanner.LBrace) {
		return nil, false
	}

	var cols []Identifier
	for {
		col, ok := p.parseIdentifier()
		if !ok {
			return nil, false
		}
		cols = append(cols, col)

		if next, ok := p.cur.Peek(0); ok && next.Kind == scanner.Comma {
			p.skip(1)
			continue
		}
		break
	}

	if !p.expect(scanner.RBrace) {
		return nil, false
	}
	return &CreateTableStmt{Name: name, Columns: cols}, true
}

func (p *Parser) parseIdentifier() (Identifier, bool) {
	tok, ok := p.cur.Next()
	if !ok || tok.Kind != scanner.Identifier {
		return Identifier{}, false
	}
	return Identifier{Name: tok.Literal}, true
}

// expect consumes one token and reports whether it had the given kind.
func (p *Parser) expect(kind scanner.Kind) bool {
	tok, ok := p.cur.Next()
	return ok && tok.Kind == kind
}

func (p *Parser) skip(n int) {
	for i := 0; i < n; i++ {
		p.cur.Next()
	}
}
