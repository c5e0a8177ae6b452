package contracts

import "errors"

// Column names of the raw snapshot export. The names are part of the input
// contract: matching is exact and case-sensitive, never positional.
const (
	ColSymbol    = "Symbol"
	ColExchange  = "Exchange"
	ColPrice     = "Price"
	ColMarketCap = "Market capitalization"
	ColPerf1M    = "Performance % 1 month"
	ColPerf3M    = "Performance % 3 months"
	ColPerf6M    = "Performance % 6 months"
	ColPerf1Y    = "Performance % 1 year"
	ColSMA21     = "Simple Moving Average (21) 1 day"
	ColSMA200    = "Simple Moving Average (200) 1 day"
)

// Derived columns appended by the scoring transform, in persisted order.
const (
	ColPerfSum   = "perf_sum"
	ColPerfNorm  = "perf_norm"
	ColPerfSum2  = "perfsum_2"
	ColPerfNorm2 = "perf_norm_2"
	ColMRAT      = "MRAT"
	ColDiff      = "Diff"
	ColScore     = "score"
	ColScore2    = "score_2"
)

// ScoringColumns is the required input set of the scoring transform.
var ScoringColumns = []string{
	ColPerf1Y,
	ColPerf6M,
	ColPerf3M,
	ColPerf1M,
	ColSMA21,
	ColSMA200,
	ColPrice,
}

// CurationColumns is the required input set of the list curator. It reads
// the enhanced artifact, so the derived scores are required too.
var CurationColumns = []string{
	ColSymbol,
	ColExchange,
	ColMarketCap,
	ColScore,
	ColScore2,
}

// DerivedColumns lists the eight appended columns in output order.
var DerivedColumns = []string{
	ColPerfSum,
	ColPerfNorm,
	ColPerfSum2,
	ColPerfNorm2,
	ColMRAT,
	ColDiff,
	ColScore,
	ColScore2,
}

// Token formats the identity of a tradable instrument the way charting
// tools import it. Two rows with the same exchange and symbol are the same
// entity downstream, whatever their other fields say.
func Token(exchange, symbol string) string {
	return exchange + ":" + symbol
}

// ErrNoSnapshots signals that no qualifying snapshot file was found in the
// expected staging location.
var ErrNoSnapshots = errors.New("no snapshot files found")
