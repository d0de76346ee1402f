package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/KaramelBytes/movietrends/internal/movies"
	"github.com/KaramelBytes/movietrends/internal/utils"
)

// Report summarizes one pipeline run for humans.
type Report struct {
	RunID      string
	Input      string
	Started    time.Time
	Thresholds Thresholds
	Stats      movies.Stats
	Columns    int
	Results    *Results
}

// Markdown renders the report as sectioned plain Markdown.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[RUN]\n")
	if r.RunID != "" {
		b.WriteString(fmt.Sprintf("ID: %s\n", r.RunID))
	}
	if !r.Started.IsZero() {
		b.WriteString(fmt.Sprintf("Started: %s\n", r.Started.UTC().Format(time.RFC3339)))
	}
	th := r.Thresholds
	b.WriteString(fmt.Sprintf("Thresholds: top_n=%d, min_budget=%g, years=(%d, %d), min_genre_count=%d\n\n",
		th.TopN, th.MinBudget, th.YearMin, th.YearMax, th.MinGenreCount))

	b.WriteString("[DATASET]\n")
	if r.Input != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Input))
	}
	b.WriteString(fmt.Sprintf("Rows before cleaning: %d (columns %d)\n", r.Stats.RowsIn, r.Stats.ColumnsIn))
	b.WriteString(fmt.Sprintf("Rows after cleaning: %d (columns %d, dropped %d)\n\n", r.Stats.RowsKept, r.Columns, r.Stats.Dropped()))

	res := r.Results
	if res == nil {
		res = &Results{}
	}

	b.WriteString("[TOP GENRES]\n")
	if len(res.TopGenres) == 0 {
		b.WriteString("(none)\n")
	}
	for i, c := range res.TopGenres {
		b.WriteString(fmt.Sprintf("%d. %s (%d)\n", i+1, c.Value, c.Count))
	}
	b.WriteString("\n")

	b.WriteString("[BUDGET VS REVENUE]\n")
	b.WriteString(fmt.Sprintf("Pairs: %d\n", len(res.BudgetRevenue)))
	if corr := Pearson(res.BudgetRevenue); !math.IsNaN(corr) {
		b.WriteString(fmt.Sprintf("Pearson r: %.3f\n", corr))
	} else {
		b.WriteString("Pearson r: n/a\n")
	}
	b.WriteString("\n")

	b.WriteString("[RELEASES PER YEAR]\n")
	if n := len(res.Releases); n > 0 {
		first, last := res.Releases[0], res.Releases[n-1]
		peak, _ := PeakYear(res.Releases)
		b.WriteString(fmt.Sprintf("First: %d (%d)\n", first.Year, first.Count))
		b.WriteString(fmt.Sprintf("Last: %d (%d)\n", last.Year, last.Count))
		b.WriteString(fmt.Sprintf("Peak: %d (%d)\n", peak.Year, peak.Count))
	} else {
		b.WriteString("(none)\n")
	}
	b.WriteString("\n")

	b.WriteString("[GENRE PROFITABILITY]\n")
	if len(res.Profitability) == 0 {
		b.WriteString("(none)\n")
	}
	for i, g := range res.Profitability {
		b.WriteString(fmt.Sprintf("%d. %s: mean profit %.2fM over %d movies\n", i+1, g.Genre, g.Mean, g.Count))
	}

	if len(res.Charts) > 0 {
		b.WriteString("\n[CHARTS]\n")
		for _, c := range res.Charts {
			b.WriteString(fmt.Sprintf("- %s: %s\n", c.Title, c.Path))
		}
	}
	return b.String()
}

// WriteMarkdown writes the Markdown report to path.
func (r *Report) WriteMarkdown(path string) error {
	return utils.SafeWriteFile(path, []byte(r.Markdown()))
}
