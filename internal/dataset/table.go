// Package dataset loads delimited files into an in-memory table of string
// cells and writes tables back out.
package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Load when the input file does not exist.
var ErrNotFound = eris.New("dataset: file not found")

// Table is a header plus rows of raw string cells. Every row has exactly
// len(Columns) cells.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Load reads a CSV, TSV or xlsx file (chosen by extension) into a Table.
// sheet selects the worksheet of an xlsx file, empty meaning the first one;
// it is ignored for delimited files.
func Load(path, sheet string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, eris.Wrapf(ErrNotFound, "open %s", path)
		}
		return nil, eris.Wrap(err, "dataset: open csv")
	}
	defer f.Close()

	var t *Table
	if isWorkbook(path) {
		t, err = ReadWorkbook(f, sheet)
	} else {
		t, err = Read(f, sniffDelimiter(path))
	}
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	rows, cols := t.Shape()
	zap.L().Debug("dataset loaded", zap.String("file", t.Name), zap.Int("rows", rows), zap.Int("columns", cols))
	return t, nil
}

// Read parses delimited records from r. Short rows are padded with empty
// cells and long rows are truncated to the header width.
func Read(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Table{}, nil
		}
		return nil, eris.Wrap(err, "dataset: read header")
	}
	t := &Table{Columns: make([]string, len(header))}
	for i, h := range header {
		t.Columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	ncol := len(t.Columns)

	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, eris.Wrapf(err, "dataset: read row %d", len(t.Rows)+1)
		}
		row := make([]string, ncol)
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) {
	return len(t.Rows), len(t.Columns)
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Write serializes the table as comma separated records.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return eris.Wrap(err, "dataset: write header")
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return eris.Wrap(err, "dataset: write rows")
	}
	return nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
