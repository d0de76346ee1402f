// Package analysis computes the aggregate views of the cleaned movie table
// and renders one chart per view.
package analysis

import (
	"fmt"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/KaramelBytes/movietrends/internal/movies"
)

// Thresholds controls the filters applied by the analyzers.
type Thresholds struct {
	// TopN caps the genre rankings.
	TopN int
	// MinBudget excludes movies at or below this budget (millions) from the scatter.
	MinBudget float64
	// YearMin and YearMax bound release years, both exclusive.
	YearMin int
	YearMax int
	// MinGenreCount keeps genres with strictly more movies than this.
	MinGenreCount int
}

// DefaultThresholds returns the thresholds used for the movie metadata dataset.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TopN:          10,
		MinBudget:     1,
		YearMin:       1940,
		YearMax:       2017,
		MinGenreCount: 50,
	}
}

// Output is one written chart.
type Output struct {
	Name  string
	Title string
	Path  string
}

// Results collects every aggregate of a run.
type Results struct {
	TopGenres     []CategoryCount
	BudgetRevenue []BudgetRevenue
	Releases      []YearCount
	Profitability []GenreProfit
	Charts        []Output
}

// Analyzer computes one aggregate into Results and renders it to out.Path.
type Analyzer struct {
	Name  string
	File  string
	Title func(Thresholds) string
	Run   func(ms []movies.Movie, th Thresholds, out Output, res *Results) error
}

// Analyzers returns the analyzers in execution order.
func Analyzers() []Analyzer {
	return []Analyzer{
		{
			Name:  "genres",
			File:  "top_10_genres.png",
			Title: func(th Thresholds) string { return fmt.Sprintf("Top %d Most Common Movie Genres", th.TopN) },
			Run:   runTopGenres,
		},
		{
			Name:  "budget_vs_revenue",
			File:  "budget_vs_revenue_scatter.png",
			Title: func(Thresholds) string { return "Movie Budget vs. Revenue" },
			Run:   runBudgetVsRevenue,
		},
		{
			Name:  "releases_over_time",
			File:  "releases_over_time.png",
			Title: releasesTitle,
			Run:   runReleases,
		},
		{
			Name:  "genre_profitability",
			File:  "top_10_profitable_genres.png",
			Title: func(th Thresholds) string { return fmt.Sprintf("Top %d Most Profitable Movie Genres (Average Profit)", th.TopN) },
			Run:   runGenreProfitability,
		},
	}
}

// Run executes every analyzer in turn, each on its own copy of the cleaned
// table. The first failure stops the run. onSaved, if set, is called after
// each chart is written.
func Run(c *movies.Cleaned, outDir string, th Thresholds, onSaved func(Output)) (*Results, error) {
	if c.Empty() {
		return nil, eris.New("analysis: cleaned table is empty")
	}
	res := &Results{}
	for _, a := range Analyzers() {
		out := Output{Name: a.Name, Title: a.Title(th), Path: filepath.Join(outDir, a.File)}
		log := zap.L().With(zap.String("analyzer", a.Name))
		log.Debug("running analyzer", zap.String("path", out.Path))

		work := c.Clone()
		if err := a.Run(work.Movies, th, out, res); err != nil {
			return res, eris.Wrapf(err, "analysis: %s", a.Name)
		}
		res.Charts = append(res.Charts, out)
		log.Info("chart written", zap.String("path", out.Path))
		if onSaved != nil {
			onSaved(out)
		}
	}
	return res, nil
}
