// Package movies turns the raw movie metadata table into typed, cleaned
// records.
package movies

import (
	"strconv"
	"time"

	"github.com/KaramelBytes/movietrends/internal/dataset"
)

// Column names used by the cleaner and analyzers.
const (
	ColBudget      = "budget"
	ColRevenue     = "revenue"
	ColReleaseDate = "release_date"
	ColReleaseYear = "release_year"
	ColGenres      = "genres"
	ColPopularity  = "popularity"
	ColVoteCount   = "vote_count"
)

const dateLayout = "2006-01-02"

// Movie is one cleaned row. Budget and Revenue are in millions.
type Movie struct {
	Budget      float64
	Revenue     float64
	ReleaseDate time.Time
	ReleaseYear int
	Popularity  float64 // NaN when the source cell was empty
	VoteCount   int
	Genres      []Genre
	// Extra holds the passthrough columns keyed by name.
	Extra map[string]string
}

// Profit is revenue minus budget, in millions.
func (m Movie) Profit() float64 {
	return m.Revenue - m.Budget
}

// GenreNames returns the genre names in source order.
func (m Movie) GenreNames() []string {
	out := make([]string, len(m.Genres))
	for i, g := range m.Genres {
		out[i] = g.Name
	}
	return out
}

// Stats records the table shape around the row-dropping step.
type Stats struct {
	RowsIn    int
	ColumnsIn int
	RowsKept  int
}

// Dropped is the number of rows removed for missing budget, revenue or date.
func (s Stats) Dropped() int {
	return s.RowsIn - s.RowsKept
}

// Cleaned is the typed result of Clean.
type Cleaned struct {
	Name    string
	Columns []string
	Movies  []Movie
	Stats   Stats
}

// Len returns the number of movies.
func (c *Cleaned) Len() int {
	return len(c.Movies)
}

// Empty reports whether cleaning left no rows.
func (c *Cleaned) Empty() bool {
	return len(c.Movies) == 0
}

// Clone returns a deep copy so that callers can mutate freely.
func (c *Cleaned) Clone() *Cleaned {
	out := &Cleaned{
		Name:    c.Name,
		Columns: append([]string(nil), c.Columns...),
		Movies:  make([]Movie, len(c.Movies)),
		Stats:   c.Stats,
	}
	for i, m := range c.Movies {
		m.Genres = append([]Genre(nil), m.Genres...)
		if m.Extra != nil {
			extra := make(map[string]string, len(m.Extra))
			for k, v := range m.Extra {
				extra[k] = v
			}
			m.Extra = extra
		}
		out.Movies[i] = m
	}
	return out
}

// Table converts the cleaned records back into a raw table restricted to
// the remaining columns.
func (c *Cleaned) Table() *dataset.Table {
	t := &dataset.Table{Name: c.Name, Columns: append([]string(nil), c.Columns...)}
	t.Rows = make([][]string, len(c.Movies))
	for i, m := range c.Movies {
		row := make([]string, len(c.Columns))
		for j, col := range c.Columns {
			row[j] = m.cell(col)
		}
		t.Rows[i] = row
	}
	return t
}

func (m Movie) cell(col string) string {
	switch col {
	case ColBudget:
		return formatFloat(m.Budget)
	case ColRevenue:
		return formatFloat(m.Revenue)
	case ColReleaseDate:
		return m.ReleaseDate.Format(dateLayout)
	case ColReleaseYear:
		return strconv.Itoa(m.ReleaseYear)
	case ColPopularity:
		return formatFloat(m.Popularity)
	case ColVoteCount:
		return strconv.Itoa(m.VoteCount)
	case ColGenres:
		return FormatGenres(m.Genres)
	default:
		return m.Extra[col]
	}
}
