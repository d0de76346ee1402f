package movies

import (
	"math"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/KaramelBytes/movietrends/internal/dataset"
)

// ErrMissingColumn is returned when a column the cleaner needs is absent.
var ErrMissingColumn = eris.New("movies: required column missing")

// DroppedColumns are removed before analysis.
var DroppedColumns = []string{
	"adult", "belongs_to_collection", "homepage",
	"imdb_id", "original_title", "overview", "poster_path",
	"production_companies", "production_countries", "spoken_languages",
	"status", "tagline", "video",
}

var requiredColumns = []string{ColBudget, ColRevenue, ColReleaseDate, ColGenres, ColPopularity, ColVoteCount}

var typedColumns = map[string]bool{
	ColBudget:      true,
	ColRevenue:     true,
	ColReleaseDate: true,
	ColReleaseYear: true,
	ColGenres:      true,
	ColPopularity:  true,
	ColVoteCount:   true,
}

// Clean coerces, filters and prunes the raw table. Rows missing a positive
// budget, a positive revenue or a parseable release date are dropped; the
// remaining budget and revenue values are rescaled to millions. An empty
// result is not an error; callers check Cleaned.Empty.
func Clean(t *dataset.Table) (*Cleaned, error) {
	idx := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		i := t.Index(name)
		if i < 0 {
			return nil, eris.Wrapf(ErrMissingColumn, "column %q", name)
		}
		idx[name] = i
	}
	log := zap.L().With(zap.String("table", t.Name))

	type staged struct {
		row     []string
		budget  float64
		revenue float64
		date    time.Time
	}
	kept := make([]staged, 0, len(t.Rows))
	for _, row := range t.Rows {
		budget, okB := parsePositive(row[idx[ColBudget]])
		revenue, okR := parsePositive(row[idx[ColRevenue]])
		date, okD := parseDate(row[idx[ColReleaseDate]])
		if !okB || !okR || !okD {
			continue
		}
		kept = append(kept, staged{row: row, budget: budget, revenue: revenue, date: date})
	}
	stats := Stats{RowsIn: len(t.Rows), ColumnsIn: len(t.Columns), RowsKept: len(kept)}
	log.Info("dropped rows missing budget, revenue or release date",
		zap.Int("rows_before", stats.RowsIn),
		zap.Int("rows_after", stats.RowsKept),
		zap.Int("dropped", stats.Dropped()),
	)

	columns := remainingColumns(t.Columns)
	extra := make(map[string]int)
	for _, col := range columns {
		if !typedColumns[col] {
			extra[col] = t.Index(col)
		}
	}

	out := &Cleaned{Name: t.Name, Columns: columns, Movies: make([]Movie, 0, len(kept)), Stats: stats}
	for n, s := range kept {
		m := Movie{
			Budget:      s.budget / 1_000_000,
			Revenue:     s.revenue / 1_000_000,
			ReleaseDate: s.date,
			ReleaseYear: s.date.Year(),
		}
		pop, err := castFloat(s.row[idx[ColPopularity]])
		if err != nil {
			return nil, eris.Wrapf(err, "movies: popularity in cleaned row %d", n)
		}
		m.Popularity = pop
		votes, err := castInt(s.row[idx[ColVoteCount]])
		if err != nil {
			return nil, eris.Wrapf(err, "movies: vote_count in cleaned row %d", n)
		}
		m.VoteCount = votes
		genres, err := ParseGenres(s.row[idx[ColGenres]])
		if err != nil {
			return nil, eris.Wrapf(err, "movies: genres in cleaned row %d", n)
		}
		m.Genres = genres
		if len(extra) > 0 {
			m.Extra = make(map[string]string, len(extra))
			for col, i := range extra {
				m.Extra[col] = s.row[i]
			}
		}
		out.Movies = append(out.Movies, m)
	}
	log.Debug("cleaned table ready", zap.Int("rows", out.Len()), zap.Int("columns", len(out.Columns)))
	return out, nil
}

// remainingColumns drops the unanalyzed columns, ignoring any already gone,
// and appends release_year unless it is present.
func remainingColumns(cols []string) []string {
	drop := make(map[string]bool, len(DroppedColumns))
	for _, c := range DroppedColumns {
		drop[c] = true
	}
	out := make([]string, 0, len(cols)+1)
	hasYear := false
	for _, c := range cols {
		if drop[c] {
			continue
		}
		if c == ColReleaseYear {
			hasYear = true
		}
		out = append(out, c)
	}
	if !hasYear {
		out = append(out, ColReleaseYear)
	}
	return out
}

// castFloat accepts an empty cell as NaN; anything else must parse.
func castFloat(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return math.NaN(), nil
	}
	f, ok := parseNumber(s)
	if !ok {
		return 0, eris.Errorf("cannot cast %q to float", s)
	}
	return f, nil
}

// castInt accepts integral or float text and truncates toward zero.
func castInt(s string) (int, error) {
	f, ok := parseNumber(s)
	if !ok {
		return 0, eris.Errorf("cannot cast %q to int", s)
	}
	return int(f), nil
}
