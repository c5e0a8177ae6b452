package history

import (
	"sort"

	"github.com/wonny/topmonde/internal/dataset"
)

// WindowPerformances computes the trailing performances for every complete
// rolling 12-month window of one series. Inside a window the references
// sit 12, 6 and 3 months before its end; a window with a missing or
// non-positive reference price is skipped.
func WindowPerformances(s Series) []WindowPerf {
	bars := append([]Bar(nil), s.Bars...)
	sort.SliceStable(bars, func(a, b int) bool { return bars[a].Date.Before(bars[b].Date) })

	if len(bars) < 12 {
		return nil
	}

	var out []WindowPerf
	for p := 0; p+11 < len(bars); p++ {
		ref12 := bars[p].Close
		ref6 := bars[p+6].Close
		ref3 := bars[p+9].Close
		current := bars[p+11].Close

		if ref12 <= 0 || ref6 <= 0 || ref3 <= 0 || current <= 0 {
			continue
		}

		perf12 := (current - ref12) / ref12 * 100
		perf6 := (current - ref6) / ref6 * 100
		perf3 := (current - ref3) / ref3 * 100

		out = append(out, WindowPerf{
			Ticker:      s.Symbol,
			Name:        s.Name,
			PeriodStart: bars[p].Date,
			PeriodEnd:   bars[p+11].Date,
			Perf12M:     perf12,
			Perf6M:      perf6,
			Perf3M:      perf3,
			ScoreTotal:  perf12 + perf6 + perf3,
		})
	}
	return out
}

// TopPerformers ranks every window's performances and keeps the best n per
// window, most recent window first.
func TopPerformers(perfs []WindowPerf, n int) []RankedPerf {
	byWindow := make(map[int64][]WindowPerf)
	for _, p := range perfs {
		key := p.PeriodEnd.Unix()
		byWindow[key] = append(byWindow[key], p)
	}

	windows := make([]int64, 0, len(byWindow))
	for key := range byWindow {
		windows = append(windows, key)
	}
	sort.Slice(windows, func(a, b int) bool { return windows[a] > windows[b] })

	var out []RankedPerf
	for _, key := range windows {
		window := byWindow[key]
		sort.SliceStable(window, func(a, b int) bool { return window[a].ScoreTotal > window[b].ScoreTotal })

		for i, p := range window {
			if i == n {
				break
			}
			out = append(out, RankedPerf{WindowPerf: p, Rank: i + 1})
		}
	}
	return out
}

// PerformersFrame renders ranked performers as the persisted table.
func PerformersFrame(ranked []RankedPerf) *dataset.Frame {
	f := dataset.New([]string{
		"period_start", "period_end", "period_rank",
		"ticker", "name",
		"perf_12m_pct", "perf_6m_pct", "perf_3m_pct", "score_total",
	})
	for _, r := range ranked {
		f.AddRow(
			r.PeriodStart.Format(dateLayout),
			r.PeriodEnd.Format(dateLayout),
			dataset.FormatFloat(float64(r.Rank)),
			r.Ticker,
			r.Name,
			dataset.FormatFloat(r.Perf12M),
			dataset.FormatFloat(r.Perf6M),
			dataset.FormatFloat(r.Perf3M),
			dataset.FormatFloat(r.ScoreTotal),
		)
	}
	f.RoundNumeric(2)
	return f
}
