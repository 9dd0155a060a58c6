package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// History is the shell's own history file, one executed line per entry.
type History struct {
	path  string
	max   int
	lines []string
}

// NewHistory keeps at most max lines in memory (0 = unbounded). An empty
// path disables persistence.
func NewHistory(path string, max int) *History {
	return &History{path: path, max: max}
}

func (h *History) Load() error {
	if h.path == "" {
		return nil
	}
	f, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer func() { _ = f.Close() }()

	sc := newLineScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		h.push(s)
	}
	return sc.Err()
}

func (h *History) Append(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	h.push(line)

	if h.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = fmt.Fprintln(f, line)
	return err
}

func (h *History) Lines() []string { return h.lines }

// Print writes the last n entries (all when n <= 0), numbered from 1.
func (h *History) Print(w io.Writer, last int) {
	if last <= 0 || last > len(h.lines) {
		last = len(h.lines)
	}
	start := len(h.lines) - last
	for i := start; i < len(h.lines); i++ {
		_, _ = fmt.Fprintf(w, "%5d  %s\n", i+1, h.lines[i])
	}
}

func (h *History) push(line string) {
	h.lines = append(h.lines, line)
	if h.max > 0 && len(h.lines) > h.max {
		h.lines = h.lines[len(h.lines)-h.max:]
	}
}
