package analysis

import (
	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/movietrends/internal/utils"
)

const (
	sheetGenres        = "Genres"
	sheetBudgetRevenue = "BudgetRevenue"
	sheetReleases      = "Releases"
	sheetProfitability = "Profitability"
)

// WriteWorkbook exports every aggregate of res to an xlsx workbook, one sheet
// per analyzer.
func WriteWorkbook(path string, res *Results) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetGenres); err != nil {
		return eris.Wrap(err, "export: rename sheet")
	}
	for _, name := range []string{sheetBudgetRevenue, sheetReleases, sheetProfitability} {
		if _, err := f.NewSheet(name); err != nil {
			return eris.Wrapf(err, "export: new sheet %s", name)
		}
	}

	genres := make([][]any, len(res.TopGenres))
	for i, c := range res.TopGenres {
		genres[i] = []any{c.Value, c.Count}
	}
	pairs := make([][]any, len(res.BudgetRevenue))
	for i, p := range res.BudgetRevenue {
		pairs[i] = []any{p.Budget, p.Revenue}
	}
	releases := make([][]any, len(res.Releases))
	for i, c := range res.Releases {
		releases[i] = []any{c.Year, c.Count}
	}
	profit := make([][]any, len(res.Profitability))
	for i, g := range res.Profitability {
		profit[i] = []any{g.Genre, g.Mean, g.Count}
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]any
	}{
		{sheetGenres, []string{"Genre", "Count"}, genres},
		{sheetBudgetRevenue, []string{"Budget (M$)", "Revenue (M$)"}, pairs},
		{sheetReleases, []string{"Year", "Movies"}, releases},
		{sheetProfitability, []string{"Genre", "Mean Profit (M$)", "Movies"}, profit},
	}
	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.header, s.rows); err != nil {
			return err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return eris.Wrap(err, "export: encode workbook")
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return eris.Wrapf(err, "export: %s header", sheet)
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, 18)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return eris.Wrapf(err, "export: %s row %d", sheet, r+1)
			}
		}
	}
	return nil
}
