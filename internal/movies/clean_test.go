package movies

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/movietrends/internal/dataset"
)

var fullHeader = []string{
	"adult", "belongs_to_collection", "budget", "genres", "homepage", "id", "imdb_id",
	"original_language", "original_title", "overview", "popularity", "poster_path",
	"production_companies", "production_countries", "release_date", "revenue", "runtime",
	"spoken_languages", "status", "tagline", "title", "video", "vote_average", "vote_count",
}

// rawRow builds a row for fullHeader from the fields that matter.
func rawRow(budget, revenue, date, genres string) []string {
	vals := map[string]string{
		"adult": "False", "budget": budget, "genres": genres, "id": "862",
		"original_language": "en", "original_title": "T", "overview": "o",
		"popularity": "21.946943", "release_date": date, "revenue": revenue,
		"runtime": "81.0", "status": "Released", "title": "Toy Story",
		"video": "False", "vote_average": "7.7", "vote_count": "5415.0",
	}
	row := make([]string, len(fullHeader))
	for i, h := range fullHeader {
		row[i] = vals[h]
	}
	return row
}

func table(rows ...[]string) *dataset.Table {
	return &dataset.Table{Name: "movies.csv", Columns: append([]string(nil), fullHeader...), Rows: rows}
}

func TestCleanDropsZeroBudget(t *testing.T) {
	c, err := Clean(table(rawRow("0", "5000000", "1999-01-01", "[{'id':1,'name':'Drama'}]")))
	require.NoError(t, err)
	assert.True(t, c.Empty())
	assert.Equal(t, 1, c.Stats.Dropped())
}

func TestCleanRescalesAndDerivesYear(t *testing.T) {
	c, err := Clean(table(rawRow("2000000", "8000000", "2005-06-01", "[{'id':2,'name':'Action'}]")))
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	m := c.Movies[0]
	assert.Equal(t, 2.0, m.Budget)
	assert.Equal(t, 8.0, m.Revenue)
	assert.Equal(t, 2005, m.ReleaseYear)
	assert.Equal(t, 6.0, m.Profit())
	assert.Equal(t, []string{"Action"}, m.GenreNames())
	assert.InDelta(t, 21.946943, m.Popularity, 1e-9)
	assert.Equal(t, 5415, m.VoteCount)
	assert.Equal(t, "Toy Story", m.Extra["title"])
}

func TestCleanDropsInvalidRows(t *testing.T) {
	rows := [][]string{
		rawRow("abc", "100", "2001-01-01", "[]"),
		rawRow("100", "0", "2001-01-01", "[]"),
		rawRow("100", "100", "not a date", "[]"),
		rawRow("100", "", "2001-01-01", "[]"),
		rawRow("-5", "100", "2001-01-01", "[]"),
		rawRow("NaN", "100", "2001-01-01", "[]"),
		rawRow("1000000", "3000000", "2001-01-01", "[]"),
	}
	c, err := Clean(table(rows...))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 7, c.Stats.RowsIn)
	assert.Equal(t, 1, c.Stats.RowsKept)
}

func TestCleanRetainedRowsInvariant(t *testing.T) {
	rows := [][]string{
		rawRow("30000000", "373554033", "1995-10-30", "[{'id': 16, 'name': 'Animation'}]"),
		rawRow("65000000", "262797249", "1995-12-15", "[{'id': 12, 'name': 'Adventure'}]"),
		rawRow("0", "0", "1995-12-22", "[]"),
		rawRow("16000000", "81452156", "12/22/1995", "[]"),
	}
	c, err := Clean(table(rows...))
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())
	for _, m := range c.Movies {
		assert.Greater(t, m.Budget, 0.0)
		assert.Greater(t, m.Revenue, 0.0)
		assert.False(t, m.ReleaseDate.IsZero())
		assert.Equal(t, m.ReleaseDate.Year(), m.ReleaseYear)
	}
}

func TestCleanDropsUnanalyzedColumns(t *testing.T) {
	c, err := Clean(table(rawRow("1000000", "2000000", "2010-01-01", "[]")))
	require.NoError(t, err)
	for _, col := range DroppedColumns {
		assert.NotContains(t, c.Columns, col)
	}
	assert.Equal(t, ColReleaseYear, c.Columns[len(c.Columns)-1])
	assert.Len(t, c.Columns, len(fullHeader)-len(DroppedColumns)+1)
}

func TestCleanMissingRequiredColumn(t *testing.T) {
	tbl := &dataset.Table{Columns: []string{"budget", "revenue"}, Rows: [][]string{{"1", "2"}}}
	_, err := Clean(tbl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestCleanIsIdempotentOnCleanedTable(t *testing.T) {
	rows := [][]string{
		rawRow("30000000", "373554033", "1995-10-30", "[{'id': 16, 'name': 'Animation'}, {'id': 35, 'name': 'Comedy'}]"),
		rawRow("65000000", "262797249", "1995-12-15", `[{'id': 1, 'name': "Children's"}]`),
		rawRow("0", "12", "1995-12-22", "[]"),
	}
	first, err := Clean(table(rows...))
	require.NoError(t, err)

	second, err := Clean(first.Table())
	require.NoError(t, err)
	assert.Equal(t, first.Len(), second.Len())
	assert.Equal(t, first.Columns, second.Columns)
	assert.Equal(t, first.Movies[1].GenreNames(), second.Movies[1].GenreNames())
}

func TestCleanEmptyPopularityIsNaN(t *testing.T) {
	row := rawRow("1000000", "2000000", "2010-01-01", "[]")
	row[indexOf(fullHeader, "popularity")] = ""
	c, err := Clean(table(row))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(c.Movies[0].Popularity))
}

func TestCleanCastFailures(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  string
	}{
		{"popularity text", "popularity", "very"},
		{"vote_count empty", "vote_count", ""},
		{"vote_count text", "vote_count", "many"},
		{"genres code", "genres", "__import__('os')"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := rawRow("1000000", "2000000", "2010-01-01", "[]")
			row[indexOf(fullHeader, tt.column)] = tt.value
			_, err := Clean(table(row))
			assert.Error(t, err)
		})
	}
}

func TestCleanCastFailuresOnDroppedRowsAreIgnored(t *testing.T) {
	row := rawRow("0", "2000000", "2010-01-01", "not a list")
	row[indexOf(fullHeader, "vote_count")] = "many"
	c, err := Clean(table(row))
	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func TestCloneIsIndependent(t *testing.T) {
	c, err := Clean(table(rawRow("1000000", "2000000", "2010-01-01", "[{'id': 1, 'name': 'Drama'}]")))
	require.NoError(t, err)

	cp := c.Clone()
	cp.Movies[0].Budget = 99
	cp.Movies[0].Genres[0].Name = "Changed"
	cp.Movies[0].Extra["title"] = "Other"

	assert.Equal(t, 1.0, c.Movies[0].Budget)
	assert.Equal(t, "Drama", c.Movies[0].Genres[0].Name)
	assert.Equal(t, "Toy Story", c.Movies[0].Extra["title"])
}

func TestTableRoundTripsThroughCSV(t *testing.T) {
	c, err := Clean(table(rawRow("1500000", "2000000", "2010-03-04", "[{'id': 1, 'name': 'Drama'}]")))
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, c.Table().Write(&b))
	out := b.String()
	assert.Contains(t, out, "2010-03-04")
	assert.Contains(t, out, "1.5")
	assert.Contains(t, out, "{'id': 1, 'name': 'Drama'}")
}

func indexOf(cols []string, name string) int {
	for i, c := range cols {
		if c == name {
			return i
		}
	}
	return -1
}
