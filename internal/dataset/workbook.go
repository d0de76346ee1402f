package dataset

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

func isWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// ReadWorkbook reads one sheet of an xlsx workbook. An empty sheet name
// selects the first sheet. The first row is the header; rows are padded or
// truncated to its width as in Read.
func ReadWorkbook(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: open workbook")
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return &Table{}, nil
		}
		sheet = sheets[0]
	} else if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, eris.Errorf("dataset: sheet %q not found (available: %s)", sheet, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read sheet %s", sheet)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}
	t := &Table{Columns: make([]string, len(rows[0]))}
	for i, h := range rows[0] {
		t.Columns[i] = strings.TrimSpace(h)
	}
	for _, rec := range rows[1:] {
		row := make([]string, len(t.Columns))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
