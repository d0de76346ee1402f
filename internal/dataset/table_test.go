package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadPadsShortRowsAndKeepsQuotedNewlines(t *testing.T) {
	p := writeFile(t, "movies.csv", "id,title,overview\n"+
		"1,Heat,\"A crew\nof thieves\"\n"+
		"2,Short\n")

	tbl, err := Load(p, "")
	require.NoError(t, err)
	rows, cols := tbl.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, "movies.csv", tbl.Name)
	assert.Equal(t, "A crew\nof thieves", tbl.Rows[0][2])
	assert.Equal(t, []string{"2", "Short", ""}, tbl.Rows[1])
}

func TestLoadTSVAndBOM(t *testing.T) {
	p := writeFile(t, "m.tsv", "\ufeffid\tbudget\n7\t100\n")

	tbl, err := Load(p, "")
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Index("id"))
	assert.Equal(t, 1, tbl.Index("budget"))
	assert.Equal(t, -1, tbl.Index("revenue"))
}

func TestReadEmptyInput(t *testing.T) {
	tbl, err := Read(strings.NewReader(""), ',')
	require.NoError(t, err)
	rows, cols := tbl.Shape()
	assert.Zero(t, rows)
	assert.Zero(t, cols)
}

func TestWriteRoundTrip(t *testing.T) {
	src := "a,b\n\"x,y\",2\n"
	tbl, err := Read(strings.NewReader(src), ',')
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tbl.Write(&buf))
	assert.Equal(t, src, buf.String())
}

func TestPreview(t *testing.T) {
	tbl, err := Read(strings.NewReader("title,budget,revenue\nA,1.5,3\nB,2.5,4\nC,3.5,9\n"), ',')
	require.NoError(t, err)

	out, err := Preview(tbl, 2, []string{"budget", "revenue", "missing"})
	require.NoError(t, err)
	assert.Contains(t, out, "title")
	assert.Contains(t, out, "mean")

	empty, err := Preview(&Table{Columns: []string{"a"}}, 5, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
