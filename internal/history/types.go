package history

import "time"

// Bar is one monthly OHLC observation.
type Bar struct {
	Date  time.Time
	Open  float64
	Close float64
}

// Series is the monthly history of one ticker.
type Series struct {
	Symbol string
	Name   string
	Bars   []Bar
}

// WindowPerf holds the trailing performances of one ticker over one
// rolling 12-month window.
type WindowPerf struct {
	Ticker      string
	Name        string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Perf12M     float64
	Perf6M      float64
	Perf3M      float64
	ScoreTotal  float64
}

// RankedPerf is a WindowPerf with its rank inside its window.
type RankedPerf struct {
	WindowPerf
	Rank int
}
