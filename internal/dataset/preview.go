package dataset

import (
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/rotisserie/eris"
)

// Preview renders the first n rows of the table and, when numeric is not
// empty, descriptive statistics for those columns. Columns missing from the
// table are skipped.
func Preview(t *Table, n int, numeric []string) (string, error) {
	if len(t.Rows) == 0 || len(t.Columns) == 0 {
		return "", nil
	}
	if n <= 0 {
		n = 5
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}

	head := make([][]string, 0, n+1)
	head = append(head, t.Columns)
	head = append(head, t.Rows[:n]...)
	df := dataframe.LoadRecords(head)
	if df.Err != nil {
		return "", eris.Wrap(df.Err, "dataset: preview head")
	}

	var b strings.Builder
	b.WriteString(df.String())
	b.WriteString("\n")

	var idx []int
	var names []string
	for _, name := range numeric {
		if i := t.Index(name); i >= 0 {
			idx = append(idx, i)
			names = append(names, name)
		}
	}
	if len(idx) > 0 {
		records := make([][]string, 0, len(t.Rows)+1)
		records = append(records, names)
		for _, r := range t.Rows {
			rec := make([]string, len(idx))
			for j, i := range idx {
				rec[j] = r[i]
			}
			records = append(records, rec)
		}
		stats := dataframe.LoadRecords(records)
		if stats.Err != nil {
			return "", eris.Wrap(stats.Err, "dataset: preview numeric")
		}
		desc := stats.Describe()
		if desc.Err != nil {
			return "", eris.Wrap(desc.Err, "dataset: describe")
		}
		b.WriteString(desc.String())
		b.WriteString("\n")
	}
	return b.String(), nil
}
