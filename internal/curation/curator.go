package curation

import (
	"sort"
	"strconv"
	"strings"

	"github.com/wonny/topmonde/internal/contracts"
	"github.com/wonny/topmonde/internal/dataset"
	"github.com/wonny/topmonde/pkg/logger"
)

// Section header tokens of the unified list. Charting tools render lines
// starting with "//" as section titles.
const (
	HeaderTopBig    = "// Top 30 Big"
	HeaderTopGlobal = "// Top 50 Global"
)

// Config defines the selection sizes and cutoffs.
type Config struct {
	MinMarketCap   float64 // big-cap filter for the tiered selection
	TierSize       int     // tokens per tier of the Top 30
	GlobalSize     int     // size of the unfiltered Top 50 section
	ScoreThreshold float64 // cutoff of the score list
	WorstSize      int     // size of the worst performers list
}

// DefaultConfig returns the selection rules as shipped.
func DefaultConfig() Config {
	return Config{
		MinMarketCap:   10_000_000_000,
		TierSize:       15,
		GlobalSize:     50,
		ScoreThreshold: 2.7,
		WorstSize:      100,
	}
}

// Lists holds the curated token lists of one run. Order is significant:
// it reflects rank.
type Lists struct {
	Unified   []string // headed sections: tiered Top 30, then Top 50 global
	Threshold []string // every token at or above the score cutoff
	Worst     []string // lowest positive scores, ascending
}

// Curator selects and deduplicates tickers from an enhanced snapshot.
type Curator struct {
	cfg    Config
	logger *logger.Logger
}

// NewCurator creates a curator.
func NewCurator(cfg Config, log *logger.Logger) *Curator {
	return &Curator{cfg: cfg, logger: log}
}

// Curate builds the named lists from one enhanced snapshot. Any missing
// required column fails the whole run: all lists derive from the same
// snapshot and partial output would be inconsistent.
func (c *Curator) Curate(f *dataset.Frame) (*Lists, error) {
	if err := dataset.Validate(f, contracts.CurationColumns); err != nil {
		return nil, err
	}

	all := make([]int, f.NumRows())
	for i := range all {
		all[i] = i
	}

	// Market capitalization arrives as raw export text; anything
	// non-numeric drops out of the cap-filtered views only.
	bigCaps := make([]int, 0, len(all))
	for _, row := range all {
		if cap, ok := f.MaybeFloat(row, contracts.ColMarketCap); ok && cap >= c.cfg.MinMarketCap {
			bigCaps = append(bigCaps, row)
		}
	}

	top30 := c.tieredTop30(f, bigCaps)
	top50 := tokens(f, head(sortedByScore(f, all, contracts.ColScore, false), c.cfg.GlobalSize))

	lists := &Lists{
		Unified:   unifiedList(top30, top50),
		Threshold: c.thresholdList(f, all),
		Worst:     c.worstList(f, all),
	}

	c.logger.WithFields(map[string]interface{}{
		"rows":      f.NumRows(),
		"big_caps":  len(bigCaps),
		"top_30":    len(top30),
		"threshold": len(lists.Threshold),
		"worst":     len(lists.Worst),
	}).Info("Ticker lists curated")

	return lists, nil
}

// tieredTop30 ranks the big-cap universe twice: Tier A takes the best
// score_2 tokens, Tier B the best score tokens not already in Tier A,
// filled to the tier size by continuing down the ranking past duplicates.
// A small universe yields short tiers, which is allowed.
func (c *Curator) tieredTop30(f *dataset.Frame, bigCaps []int) []string {
	seen := make(map[string]bool)

	tierA := collectTokens(f, sortedByScore(f, bigCaps, contracts.ColScore2, false), c.cfg.TierSize, seen)
	tierB := collectTokens(f, sortedByScore(f, bigCaps, contracts.ColScore, false), c.cfg.TierSize, seen)

	return append(tierA, tierB...)
}

// thresholdList keeps every token whose rounded score clears the cutoff,
// best first.
func (c *Curator) thresholdList(f *dataset.Frame, all []int) []string {
	qualified := make([]int, 0)
	for _, row := range all {
		if score, ok := f.MaybeFloat(row, contracts.ColScore); ok && score >= c.cfg.ScoreThreshold {
			qualified = append(qualified, row)
		}
	}
	return tokens(f, sortedByScore(f, qualified, contracts.ColScore, false))
}

// worstList keeps the lowest strictly positive scores, ascending. A
// non-positive score disqualifies the row entirely rather than ranking it
// last, even if fewer than the list size remain.
func (c *Curator) worstList(f *dataset.Frame, all []int) []string {
	qualified := make([]int, 0)
	for _, row := range all {
		if score, ok := f.MaybeFloat(row, contracts.ColScore); ok && score > 0 {
			qualified = append(qualified, row)
		}
	}
	return tokens(f, head(sortedByScore(f, qualified, contracts.ColScore, true), c.cfg.WorstSize))
}

// unifiedList concatenates the two headed sections. Tokens already placed
// in the Top 30 section never repeat in the global one; the first
// occurrence wins and global order is otherwise preserved.
func unifiedList(top30, top50 []string) []string {
	unified := make([]string, 0, len(top30)+len(top50)+2)

	unified = append(unified, HeaderTopBig)
	unified = append(unified, top30...)

	unified = append(unified, HeaderTopGlobal)
	seen := make(map[string]bool, len(top30))
	for _, token := range top30 {
		seen[token] = true
	}
	for _, token := range top50 {
		if seen[token] {
			continue
		}
		seen[token] = true
		unified = append(unified, token)
	}

	return unified
}

// sortedByScore returns a copy of rows ordered by a score column. The sort
// is stable; rows whose score does not parse go last either way.
func sortedByScore(f *dataset.Frame, rows []int, col string, ascending bool) []int {
	out := append([]int(nil), rows...)
	sort.SliceStable(out, func(a, b int) bool {
		va, oka := f.MaybeFloat(out[a], col)
		vb, okb := f.MaybeFloat(out[b], col)
		if oka != okb {
			return oka
		}
		if !oka {
			return false
		}
		if ascending {
			return va < vb
		}
		return va > vb
	})
	return out
}

// collectTokens walks ranked rows and collects distinct tokens not in seen
// until limit is reached, marking them as it goes.
func collectTokens(f *dataset.Frame, rows []int, limit int, seen map[string]bool) []string {
	out := make([]string, 0, limit)
	for _, row := range rows {
		if len(out) == limit {
			break
		}
		token := rowToken(f, row)
		if seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, token)
	}
	return out
}

func tokens(f *dataset.Frame, rows []int) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToken(f, row))
	}
	return out
}

func rowToken(f *dataset.Frame, row int) string {
	exchange, _ := f.Value(row, contracts.ColExchange)
	symbol, _ := f.Value(row, contracts.ColSymbol)
	return contracts.Token(exchange, symbol)
}

func head(rows []int, n int) []int {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

// thresholdTag renders a cutoff for use in a filename: 2.7 -> "2_7".
func thresholdTag(threshold float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(threshold, 'f', -1, 64), ".", "_")
}
