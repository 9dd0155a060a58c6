package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_AppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "history")

	h := NewHistory(path, 0)
	require.NoError(t, h.Append("USE a"))
	require.NoError(t, h.Append("  "))
	require.NoError(t, h.Append(" LIST TABLES "))
	assert.Equal(t, []string{"USE a", "LIST TABLES"}, h.Lines())

	reloaded := NewHistory(path, 0)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, []string{"USE a", "LIST TABLES"}, reloaded.Lines())
}

func TestHistory_LoadMissing(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "none"), 0)
	require.NoError(t, h.Load())
	assert.Empty(t, h.Lines())
}

func TestHistory_Max(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n\nc\nd\n"), 0o644))

	h := NewHistory(path, 2)
	require.NoError(t, h.Load())
	assert.Equal(t, []string{"c", "d"}, h.Lines())

	require.NoError(t, h.Append("e"))
	assert.Equal(t, []string{"d", "e"}, h.Lines())
}

func TestHistory_NoPath(t *testing.T) {
	h := NewHistory("", 0)
	require.NoError(t, h.Load())
	require.NoError(t, h.Append("USE a"))
	assert.Equal(t, []string{"USE a"}, h.Lines())
}

func TestHistory_Print(t *testing.T) {
	h := NewHistory("", 0)
	for _, l := range []string{"a", "b", "c"} {
		require.NoError(t, h.Append(l))
	}

	var buf bytes.Buffer
	h.Print(&buf, 2)
	assert.Equal(t, "    2  b\n    3  c\n", buf.String())

	buf.Reset()
	h.Print(&buf, 0)
	assert.Equal(t, "    1  a\n    2  b\n    3  c\n", buf.String())
}
