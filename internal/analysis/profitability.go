package analysis

import (
	"sort"

	"github.com/KaramelBytes/movietrends/internal/chart"
	"github.com/KaramelBytes/movietrends/internal/movies"
	"gonum.org/v1/plot/vg"
)

// GenreProfit is the mean profit (millions) over Count movies of a genre.
type GenreProfit struct {
	Genre string
	Mean  float64
	Count int
}

// GenreProfitability groups profit by genre, one entry per (movie, genre),
// keeps genres with more than minCount movies and returns the n highest
// means, highest first. Ties are broken by genre name.
func GenreProfitability(ms []movies.Movie, minCount, n int) []GenreProfit {
	type acc struct {
		sum float64
		cnt int
	}
	groups := map[string]*acc{}
	for _, m := range ms {
		profit := m.Profit()
		for _, name := range m.GenreNames() {
			g := groups[name]
			if g == nil {
				g = &acc{}
				groups[name] = g
			}
			g.sum += profit
			g.cnt++
		}
	}
	out := make([]GenreProfit, 0, len(groups))
	for name, g := range groups {
		if g.cnt <= minCount {
			continue
		}
		out = append(out, GenreProfit{Genre: name, Mean: g.sum / float64(g.cnt), Count: g.cnt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean == out[j].Mean {
			return out[i].Genre < out[j].Genre
		}
		return out[i].Mean > out[j].Mean
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func runGenreProfitability(ms []movies.Movie, th Thresholds, out Output, res *Results) error {
	res.Profitability = GenreProfitability(ms, th.MinGenreCount, th.TopN)

	n := len(res.Profitability)
	labels := make([]string, n)
	values := make([]float64, n)
	for i, g := range res.Profitability {
		labels[n-1-i] = g.Genre
		values[n-1-i] = g.Mean
	}
	return chart.HorizontalBars(out.Path, labels, values, chart.Style{
		Title:  out.Title,
		XLabel: "Average Profit (in millions $)",
		YLabel: "Genre",
		Color:  chart.Blue,
		Width:  12 * vg.Inch,
		Height: 8 * vg.Inch,
	})
}
