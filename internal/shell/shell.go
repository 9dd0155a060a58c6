// Package shell is the interactive front end: it reads one line at a time,
// hands it to the executor and prints results or errors. A failing line
// never ends the session.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tuannm99/mlinql/internal/sql/executor"
	"github.com/tuannm99/mlinql/internal/sql/parser"
)

const helpText = `statements (keywords are case sensitive):
  CREATE DATABASE <name>              create or reset <name>.json
  USE <name>                          select a database
  CREATE TABLE <name> { <col>, ... }  add or replace a table
  LIST DATABASES                      list catalog files
  LIST TABLES                         list tables of the selected database

meta commands:
  exit | quit | \q   quit
  \history           print history
  \help              show help`

type Options struct {
	Prompt string
	Output string
	// History may be nil, in which case nothing is remembered.
	History *History
}

type Shell struct {
	exec    *executor.Executor
	opts    Options
	out     io.Writer
	errOut  io.Writer
	history *History
	logger  *slog.Logger
}

func New(exec *executor.Executor, opts Options, out, errOut io.Writer, logger *slog.Logger) *Shell {
	if opts.Prompt == "" {
		opts.Prompt = "mlinql> "
	}
	if opts.Output == "" {
		opts.Output = "table"
	}
	h := opts.History
	if h == nil {
		h = NewHistory("", 0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Shell{
		exec:    exec,
		opts:    opts,
		out:     out,
		errOut:  errOut,
		history: h,
		logger:  logger,
	}
}

// Exec runs one input line and prints its results. The error is returned
// after it has been reported.
func (s *Shell) Exec(input string) error {
	results, err := s.exec.ExecSQL(input)
	if err != nil {
		// listings from statements before the failing one are still shown
		_ = renderResults(s.out, results, s.opts.Output, false)
		_, _ = fmt.Fprintf(s.errOut, "error: %v\n", err)
		return err
	}
	return renderResults(s.out, results, s.opts.Output, true)
}

// RunLine handles one raw line: meta commands or DSL statements.
// It reports whether the session should end.
func (s *Shell) RunLine(line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if isMetaCommand(line) {
		return s.runMeta(line)
	}

	_ = s.Exec(line)
	return false
}

// RunScript reads lines from r until EOF or a quit command. Used when
// stdin is not a terminal.
func (s *Shell) RunScript(r io.Reader) error {
	sc := newLineScanner(r)
	for sc.Scan() {
		if s.RunLine(sc.Text()) {
			return nil
		}
	}
	return sc.Err()
}

// Run is the interactive readline loop.
func (s *Shell) Run() error {
	if err := s.history.Load(); err != nil {
		s.logger.Warn("shell: load history", "err", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 s.opts.Prompt,
		AutoComplete:           s.completer(),
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		DisableAutoSaveHistory: true,
		Stdout:                 s.out,
		Stderr:                 s.errOut,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// preload history so arrow keys work immediately
	for _, line := range s.history.Lines() {
		_ = rl.SaveHistory(line)
	}

	_, _ = fmt.Fprintln(s.out, `type \help for help`)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			// EOF
			_, _ = fmt.Fprintln(s.out)
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !isMetaCommand(line) {
			if err := s.history.Append(line); err != nil {
				s.logger.Warn("shell: append history", "err", err)
			}
			_ = rl.SaveHistory(line)
		}

		if s.RunLine(line) {
			return nil
		}
	}
}

// maxLineSize bounds one script or history line.
const maxLineSize = 16 << 20

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	return sc
}

func isMetaCommand(line string) bool {
	return strings.HasPrefix(line, `\`) || line == "quit" || line == "exit"
}

func (s *Shell) runMeta(line string) (quit bool) {
	switch line {
	case `\q`, "quit", "exit":
		_, _ = fmt.Fprintln(s.out, "Exiting...")
		return true
	case `\help`:
		_, _ = fmt.Fprintln(s.out, helpText)
	case `\history`:
		s.history.Print(s.out, 50)
	default:
		_, _ = fmt.Fprintf(s.errOut, "unknown command: %s\n", line)
	}
	return false
}

func (s *Shell) completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("CREATE",
			readline.PcItem("DATABASE"),
			readline.PcItem("TABLE"),
		),
		readline.PcItem("USE", readline.PcItemDynamic(s.databaseNames)),
		readline.PcItem("LIST",
			readline.PcItem("DATABASES"),
			readline.PcItem("TABLES"),
		),
		readline.PcItem("exit"),
		readline.PcItem(`\help`),
		readline.PcItem(`\history`),
	)
}

// databaseNames feeds completion for USE; errors just mean no suggestions.
func (s *Shell) databaseNames(string) []string {
	res, err := s.exec.Exec(&parser.ListDatabasesStmt{})
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(res.Rows))
	for _, r := range res.Rows {
		names = append(names, r[0])
	}
	return names
}
