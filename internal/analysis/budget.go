package analysis

import (
	"math"

	"github.com/KaramelBytes/movietrends/internal/chart"
	"github.com/KaramelBytes/movietrends/internal/movies"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/vg"
)

// BudgetRevenue is one scatter point, in millions.
type BudgetRevenue struct {
	Budget  float64
	Revenue float64
}

// BudgetVsRevenue keeps movies whose budget is strictly above minBudget.
// Lower budgets are mostly data-entry errors in this dataset.
func BudgetVsRevenue(ms []movies.Movie, minBudget float64) []BudgetRevenue {
	out := make([]BudgetRevenue, 0, len(ms))
	for _, m := range ms {
		if m.Budget > minBudget {
			out = append(out, BudgetRevenue{Budget: m.Budget, Revenue: m.Revenue})
		}
	}
	return out
}

// Pearson returns the correlation between budget and revenue, or NaN when
// there are fewer than two points or no variance.
func Pearson(pairs []BudgetRevenue) float64 {
	if len(pairs) < 2 {
		return math.NaN()
	}
	xs := make([]float64, len(pairs))
	ys := make([]float64, len(pairs))
	for i, p := range pairs {
		xs[i], ys[i] = p.Budget, p.Revenue
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}

func runBudgetVsRevenue(ms []movies.Movie, th Thresholds, out Output, res *Results) error {
	res.BudgetRevenue = BudgetVsRevenue(ms, th.MinBudget)
	xs := make([]float64, len(res.BudgetRevenue))
	ys := make([]float64, len(res.BudgetRevenue))
	for i, p := range res.BudgetRevenue {
		xs[i] = p.Budget
		ys[i] = p.Revenue
	}
	return chart.Scatter(out.Path, xs, ys, chart.Style{
		Title:  out.Title,
		XLabel: "Budget (in millions $)",
		YLabel: "Revenue (in millions $)",
		Color:  chart.Green,
		Width:  10 * vg.Inch,
		Height: 6 * vg.Inch,
		Grid:   true,
	})
}
