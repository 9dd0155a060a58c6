package shell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/mlinql/internal/catalog"
	"github.com/tuannm99/mlinql/internal/sql/executor"
	"github.com/tuannm99/mlinql/internal/sql/parser"
	"github.com/tuannm99/mlinql/internal/testutil"
)

type testShell struct {
	*Shell
	dir    string
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestShell(t *testing.T, opts Options) *testShell {
	t.Helper()
	dir := t.TempDir()
	logger := testutil.NewTestLogger(t)
	ex := executor.NewExecutor(catalog.NewStore(dir, logger), logger)

	var out, errOut bytes.Buffer
	return &testShell{
		Shell:  New(ex, opts, &out, &errOut, logger),
		dir:    dir,
		out:    &out,
		errOut: &errOut,
	}
}

func TestShell_ExecConfirms(t *testing.T) {
	sh := newTestShell(t, Options{})

	require.NoError(t, sh.Exec("CREATE DATABASE d"))
	assert.Equal(t, "Command executed.\n", sh.out.String())
	assert.Empty(t, sh.errOut.String())

	_, err := os.Stat(filepath.Join(sh.dir, "d.json"))
	require.NoError(t, err)
}

func TestShell_ExecParseError(t *testing.T) {
	sh := newTestShell(t, Options{})

	err := sh.Exec("CREATE TABLE")
	require.ErrorIs(t, err, parser.ErrParse)
	assert.Empty(t, sh.out.String())
	assert.Contains(t, sh.errOut.String(), "error: failed to parse program")
}

func TestShell_ExecNoDatabaseSelected(t *testing.T) {
	sh := newTestShell(t, Options{})

	err := sh.Exec("CREATE TABLE t { a }")
	require.ErrorIs(t, err, executor.ErrNoDatabaseSelected)
	assert.Contains(t, sh.errOut.String(), "no database selected")
	assert.NotContains(t, sh.out.String(), msgExecuted)
}

func TestShell_ListDatabasesTable(t *testing.T) {
	sh := newTestShell(t, Options{})

	require.NoError(t, sh.Exec("CREATE DATABASE a CREATE DATABASE b"))
	sh.out.Reset()

	require.NoError(t, sh.Exec("LIST DATABASES"))
	out := sh.out.String()
	assert.Contains(t, out, "database")
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")
	assert.Contains(t, out, "(2 rows)")
	assert.NotContains(t, out, msgExecuted)
}

func TestShell_ListEmpty(t *testing.T) {
	sh := newTestShell(t, Options{})

	require.NoError(t, sh.Exec("LIST DATABASES"))
	assert.Equal(t, "(0 rows)\n", sh.out.String())
}

func TestShell_ListTablesJSON(t *testing.T) {
	sh := newTestShell(t, Options{Output: "json"})

	require.NoError(t, sh.Exec("USE d CREATE TABLE users { id } LIST TABLES"))

	var got []map[string]string
	require.NoError(t, json.Unmarshal(sh.out.Bytes(), &got))
	assert.Equal(t, []map[string]string{{"table": "users"}}, got)
}

func TestShell_ListCSV(t *testing.T) {
	sh := newTestShell(t, Options{Output: "csv"})

	require.NoError(t, sh.Exec("CREATE DATABASE a LIST DATABASES"))
	lines := strings.Split(strings.TrimSpace(sh.out.String()), "\n")
	assert.Equal(t, []string{"database", "a"}, lines)
}

func TestShell_ListMarkdown(t *testing.T) {
	sh := newTestShell(t, Options{Output: "markdown"})

	require.NoError(t, sh.Exec("CREATE DATABASE a LIST DATABASES"))
	out := sh.out.String()
	assert.Contains(t, out, "| database |")
	assert.Contains(t, out, "a")
}

func TestShell_PartialFailureShowsEarlierListing(t *testing.T) {
	sh := newTestShell(t, Options{Output: "csv"})

	err := sh.Exec("CREATE DATABASE a LIST DATABASES LIST TABLES")
	require.ErrorIs(t, err, executor.ErrNoDatabaseSelected)
	assert.Contains(t, sh.out.String(), "database\na")
	assert.NotContains(t, sh.out.String(), msgExecuted)
}

func TestShell_RunLine(t *testing.T) {
	sh := newTestShell(t, Options{})

	assert.False(t, sh.RunLine("   "))
	assert.Empty(t, sh.out.String())

	assert.False(t, sh.RunLine("  USE d  "))
	assert.Equal(t, "Command executed.\n", sh.out.String())

	db, ok := sh.exec.Session().Database()
	require.True(t, ok)
	assert.Equal(t, "d", db)

	// a failing line keeps the session alive
	assert.False(t, sh.RunLine("CREATE TABLE"))
	assert.Contains(t, sh.errOut.String(), "error:")
}

func TestShell_MetaCommands(t *testing.T) {
	sh := newTestShell(t, Options{})

	assert.False(t, sh.RunLine(`\help`))
	assert.Contains(t, sh.out.String(), "CREATE TABLE <name>")

	assert.False(t, sh.RunLine(`\nope`))
	assert.Contains(t, sh.errOut.String(), `unknown command: \nope`)

	for _, q := range []string{"exit", " exit ", "quit", `\q`} {
		assert.True(t, sh.RunLine(q), q)
	}
}

func TestShell_ExitIsCaseSensitive(t *testing.T) {
	sh := newTestShell(t, Options{})

	assert.False(t, sh.RunLine("EXIT"))
	assert.Contains(t, sh.errOut.String(), "error:")
}

func TestShell_RunScript(t *testing.T) {
	sh := newTestShell(t, Options{})

	script := strings.Join([]string{
		"CREATE DATABASE shop",
		"USE shop",
		"CREATE TABLE users { id, name }",
		"bogus line",
		"CREATE TABLE orders { id }",
		"exit",
		"CREATE TABLE never { x }",
	}, "\n")
	require.NoError(t, sh.RunScript(strings.NewReader(script)))

	doc, err := catalog.NewStore(sh.dir, nil).Load("shop")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"orders", "users"}, doc.TableNames())
	assert.Equal(t, 1, strings.Count(sh.errOut.String(), "error:"))
}

func TestShell_RunScriptLongLine(t *testing.T) {
	sh := newTestShell(t, Options{})

	cols := make([]string, 20000)
	for i := range cols {
		cols[i] = fmt.Sprintf("column%d", i)
	}
	line := "CREATE TABLE wide { " + strings.Join(cols, ", ") + " }"
	require.Greater(t, len(line), 128<<10)

	script := "CREATE DATABASE d\nUSE d\n" + line + "\nLIST TABLES\n"
	require.NoError(t, sh.RunScript(strings.NewReader(script)))
	assert.Empty(t, sh.errOut.String())

	doc, err := catalog.NewStore(sh.dir, nil).Load("d")
	require.NoError(t, err)
	tbl, ok := doc.Table("wide")
	require.True(t, ok)
	assert.Len(t, tbl.Columns, 20000)
}

func TestShell_DatabaseNames(t *testing.T) {
	sh := newTestShell(t, Options{})
	require.NoError(t, sh.Exec("CREATE DATABASE a CREATE DATABASE b"))

	assert.ElementsMatch(t, []string{"a", "b"}, sh.databaseNames(""))
}

func TestShell_CompleterBuilds(t *testing.T) {
	sh := newTestShell(t, Options{})
	pc := sh.completer()
	require.NotNil(t, pc)
	assert.Len(t, pc.GetChildren(), 6)
}
