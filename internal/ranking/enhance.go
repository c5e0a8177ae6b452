package ranking

import (
	"fmt"

	"github.com/wonny/topmonde/internal/contracts"
	"github.com/wonny/topmonde/internal/dataset"
)

// Enhance appends the derived performance and trend columns to a raw
// snapshot, fills null results with 0, rounds every numeric column to two
// decimals and reorders rows by descending score. The rounding is part of
// the persisted contract: downstream selection compares rounded values.
//
// Running Enhance on a frame that already carries the derived columns
// overwrites them in place, so enhancing an enhanced artifact recomputes
// the same values instead of duplicating columns.
func Enhance(f *dataset.Frame) error {
	if err := dataset.Validate(f, contracts.ScoringColumns); err != nil {
		return err
	}

	for _, col := range contracts.DerivedColumns {
		f.EnsureColumn(col)
	}

	for row := 0; row < f.NumRows(); row++ {
		d, err := deriveRow(f, row)
		if err != nil {
			return fmt.Errorf("derive row %d: %w", row, err)
		}
		for i, col := range contracts.DerivedColumns {
			if err := f.SetValue(row, col, dataset.FormatFloat(d[i])); err != nil {
				return err
			}
		}
	}

	f.RoundNumeric(2)

	return f.SortByFloat(contracts.ColScore, false)
}

// value is a nullable cell read. Null results of a formula are coerced to
// 0 before persistence.
type value struct {
	v  float64
	ok bool
}

func (a value) plus(b value) value {
	return value{v: a.v + b.v, ok: a.ok && b.ok}
}

func (a value) over(b value) value {
	if !a.ok || !b.ok || b.v == 0 {
		return value{}
	}
	return value{v: a.v / b.v, ok: true}
}

// or0 resolves a null to 0.
func (a value) or0() float64 {
	if !a.ok {
		return 0
	}
	return a.v
}

// deriveRow computes the eight derived fields for one row, in the order of
// contracts.DerivedColumns. A present but non-numeric required cell is a
// data error; an empty cell is null and propagates through the formulas.
func deriveRow(f *dataset.Frame, row int) ([8]float64, error) {
	var out [8]float64

	read := func(col string) (value, error) {
		v, ok, err := f.Float(row, col)
		if err != nil {
			return value{}, err
		}
		return value{v: v, ok: ok}, nil
	}

	perf1Y, err := read(contracts.ColPerf1Y)
	if err != nil {
		return out, err
	}
	perf6M, err := read(contracts.ColPerf6M)
	if err != nil {
		return out, err
	}
	perf3M, err := read(contracts.ColPerf3M)
	if err != nil {
		return out, err
	}
	perf1M, err := read(contracts.ColPerf1M)
	if err != nil {
		return out, err
	}
	sma21, err := read(contracts.ColSMA21)
	if err != nil {
		return out, err
	}
	sma200, err := read(contracts.ColSMA200)
	if err != nil {
		return out, err
	}
	price, err := read(contracts.ColPrice)
	if err != nil {
		return out, err
	}

	// Long-window momentum: 12m + 6m + 3m.
	perfSum := perf1Y.plus(perf6M).plus(perf3M)
	perfNorm := value{v: 1 + perfSum.v/1000, ok: perfSum.ok}

	// Short-window momentum uses a different triple (1m + 3m + 6m) on
	// purpose: the two sums are distinct signals.
	perfSum2 := perf1M.plus(perf3M).plus(perf6M)
	perfNorm2 := value{v: 1 + perfSum2.v/1000, ok: perfSum2.ok}

	mrat := sma21.over(sma200)
	diff := price.over(sma200)

	score := perfNorm.plus(mrat)
	score2 := perfNorm2.plus(mrat)

	out[0] = perfSum.or0()
	out[1] = perfNorm.or0()
	out[2] = perfSum2.or0()
	out[3] = perfNorm2.or0()
	out[4] = mrat.or0()
	out[5] = diff.or0()
	out[6] = score.or0()
	out[7] = score2.or0()
	return out, nil
}
