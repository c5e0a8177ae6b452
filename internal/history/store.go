package history

import (
	"fmt"
	"os"
	"time"

	"github.com/wonny/topmonde/internal/dataset"
)

// CacheFile is the monthly data cache inside the history stage directory.
const CacheFile = "top_monde_monthly_data.csv"

const dateLayout = "2006-01-02"

// Fresh reports whether the cache at path was written on the same calendar
// day as now. A fresh cache skips fetching entirely.
func Fresh(path string, now time.Time) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	y1, m1, d1 := info.ModTime().Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SaveBars persists fetched series to the cache CSV.
func SaveBars(path string, series []Series) error {
	f := dataset.New([]string{"ticker", "date", "open", "close", "name"})
	for _, s := range series {
		for _, bar := range s.Bars {
			f.AddRow(
				s.Symbol,
				bar.Date.Format(dateLayout),
				dataset.FormatFloat(bar.Open),
				dataset.FormatFloat(bar.Close),
				s.Name,
			)
		}
	}
	return f.WriteFile(path)
}

// LoadBars reads the cache CSV back into series, preserving file order.
func LoadBars(path string) ([]Series, error) {
	f, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := dataset.Validate(f, []string{"ticker", "date", "open", "close", "name"}); err != nil {
		return nil, fmt.Errorf("cache %s: %w", path, err)
	}

	index := make(map[string]int)
	var series []Series

	for row := 0; row < f.NumRows(); row++ {
		ticker, _ := f.Value(row, "ticker")
		rawDate, _ := f.Value(row, "date")
		name, _ := f.Value(row, "name")

		date, err := time.Parse(dateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("cache row %d: bad date %q", row, rawDate)
		}
		open, ok, err := f.Float(row, "open")
		if err != nil || !ok {
			return nil, fmt.Errorf("cache row %d: bad open", row)
		}
		close, ok, err := f.Float(row, "close")
		if err != nil || !ok {
			return nil, fmt.Errorf("cache row %d: bad close", row)
		}

		i, exists := index[ticker]
		if !exists {
			i = len(series)
			index[ticker] = i
			series = append(series, Series{Symbol: ticker, Name: name})
		}
		series[i].Bars = append(series[i].Bars, Bar{Date: date, Open: open, Close: close})
	}

	return series, nil
}
