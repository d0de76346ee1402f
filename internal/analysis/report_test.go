package analysis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/movietrends/internal/movies"
)

func sampleResults() *Results {
	return &Results{
		TopGenres:     []CategoryCount{{"Drama", 5}, {"Comedy", 3}},
		BudgetRevenue: []BudgetRevenue{{2, 4}, {3, 6}, {4, 8}},
		Releases:      []YearCount{{1995, 2}, {1996, 7}, {2001, 3}},
		Profitability: []GenreProfit{{"Adventure", 120.5, 60}},
		Charts:        []Output{{Name: "genres", Title: "Top 10 Most Common Movie Genres", Path: "v/top_10_genres.png"}},
	}
}

func sampleReport() *Report {
	return &Report{
		RunID:      uuid.NewString(),
		Input:      "data/movies_metadata.csv",
		Started:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Thresholds: DefaultThresholds(),
		Stats:      movies.Stats{RowsIn: 100, ColumnsIn: 24, RowsKept: 40},
		Columns:    12,
		Results:    sampleResults(),
	}
}

func TestReportMarkdownSections(t *testing.T) {
	md := sampleReport().Markdown()
	for _, sec := range []string{"[RUN]", "[DATASET]", "[TOP GENRES]", "[BUDGET VS REVENUE]", "[RELEASES PER YEAR]", "[GENRE PROFITABILITY]", "[CHARTS]"} {
		assert.Contains(t, md, sec)
	}
	assert.Contains(t, md, "dropped 60")
	assert.Contains(t, md, "1. Drama (5)")
	assert.Contains(t, md, "Pearson r: 1.000")
	assert.Contains(t, md, "Peak: 1996 (7)")
	assert.Contains(t, md, "First: 1995 (2)")
	assert.Contains(t, md, "Last: 2001 (3)")
	assert.Contains(t, md, "Adventure: mean profit 120.50M over 60 movies")
	assert.Less(t, strings.Index(md, "[RUN]"), strings.Index(md, "[DATASET]"))
}

func TestReportMarkdownEmptyResults(t *testing.T) {
	r := &Report{}
	md := r.Markdown()
	assert.Contains(t, md, "Pearson r: n/a")
	assert.Contains(t, md, "(none)")
	assert.NotContains(t, md, "[CHARTS]")
}

func TestWriteWorkbookSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aggregates.xlsx")
	require.NoError(t, WriteWorkbook(path, sampleResults()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Genres", "BudgetRevenue", "Releases", "Profitability"}, f.GetSheetList())

	rows, err := f.GetRows("Genres")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Genre", "Count"}, rows[0])
	assert.Equal(t, []string{"Drama", "5"}, rows[1])

	rows, err = f.GetRows("Releases")
	require.NoError(t, err)
	assert.Equal(t, []string{"1996", "7"}, rows[2])
}

func TestManifestRoundTrip(t *testing.T) {
	r := sampleReport()
	finished := r.Started.Add(3 * time.Second)
	path := filepath.Join(t.TempDir(), "manifest.yaml")

	m := NewManifest(r, finished, []string{"report.md", "aggregates.xlsx"})
	require.NoError(t, m.Save(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Manifest
	require.NoError(t, yaml.Unmarshal(b, &got))
	_, err = uuid.Parse(got.RunID)
	require.NoError(t, err)
	assert.Equal(t, r.RunID, got.RunID)
	assert.True(t, got.Started.Equal(r.Started))
	assert.True(t, got.Finished.Equal(finished))
	assert.Equal(t, 100, got.RowsIn)
	assert.Equal(t, 40, got.RowsKept)
	assert.Equal(t, 2017, got.Thresholds.YearMax)
	assert.Equal(t, []string{"report.md", "aggregates.xlsx"}, got.Files)
}
