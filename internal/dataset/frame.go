package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Frame is an in-memory tabular dataset backed by a delimited text file.
// Column order is preserved from the source; cells are stored as raw text
// and parsed on access so that a read/write round trip is exact.
type Frame struct {
	cols  []string
	index map[string]int
	rows  [][]string
}

// New creates an empty frame with the given columns.
func New(cols []string) *Frame {
	f := &Frame{cols: append([]string(nil), cols...)}
	f.reindex()
	return f
}

func (f *Frame) reindex() {
	f.index = make(map[string]int, len(f.cols))
	for i, c := range f.cols {
		f.index[c] = i
	}
}

// ReadFile loads a frame from a CSV file.
func ReadFile(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: empty file", path)
	}

	f := New(records[0])
	f.rows = records[1:]
	return f, nil
}

// WriteFile persists the frame as CSV, header first, overwriting any
// existing file at path.
func (f *Frame) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(f.cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range f.rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()

	return writer.Error()
}

// Columns returns a copy of the column names in order. Mutating the result
// cannot desynchronize the frame's column index.
func (f *Frame) Columns() []string {
	cols := make([]string, len(f.cols))
	copy(cols, f.cols)
	return cols
}

// NumRows returns the number of data rows.
func (f *Frame) NumRows() int {
	return len(f.rows)
}

// HasColumn reports whether a column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// MissingColumns returns the subset of required column names absent from
// the frame, preserving the required set's order. Empty result means the
// frame satisfies the requirement.
func (f *Frame) MissingColumns(required []string) []string {
	missing := []string{}
	for _, name := range required {
		if !f.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// AddRow appends a data row sized to the header: short rows are padded
// with empty cells, cells beyond the last column are dropped.
func (f *Frame) AddRow(cells ...string) {
	row := make([]string, len(f.cols))
	copy(row, cells)
	f.rows = append(f.rows, row)
}

// EnsureColumn adds an empty column if it does not already exist.
func (f *Frame) EnsureColumn(name string) {
	if f.HasColumn(name) {
		return
	}
	f.cols = append(f.cols, name)
	f.index[name] = len(f.cols) - 1
	for i := range f.rows {
		f.rows[i] = append(f.rows[i], "")
	}
}

// Value returns the raw cell text.
func (f *Frame) Value(row int, col string) (string, error) {
	i, ok := f.index[col]
	if !ok {
		return "", fmt.Errorf("column %q not found", col)
	}
	if row < 0 || row >= len(f.rows) {
		return "", fmt.Errorf("row %d out of range", row)
	}
	if i >= len(f.rows[row]) {
		return "", nil
	}
	return f.rows[row][i], nil
}

// SetValue replaces a cell. The column must exist.
func (f *Frame) SetValue(row int, col, value string) error {
	i, ok := f.index[col]
	if !ok {
		return fmt.Errorf("column %q not found", col)
	}
	if row < 0 || row >= len(f.rows) {
		return fmt.Errorf("row %d out of range", row)
	}
	f.rows[row][i] = value
	return nil
}

// Float parses a cell as a number. An empty cell is null (ok=false, no
// error); a non-empty cell that does not parse is a data error.
func (f *Frame) Float(row int, col string) (float64, bool, error) {
	raw, err := f.Value(row, col)
	if err != nil {
		return 0, false, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("column %q row %d: not a number: %q", col, row, raw)
	}
	return v, true, nil
}

// MaybeFloat parses a cell leniently: anything that is not a number
// degrades to null instead of erroring.
func (f *Frame) MaybeFloat(row int, col string) (float64, bool) {
	raw, err := f.Value(row, col)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SortByFloat reorders rows by a numeric column. The sort is stable: rows
// with equal values keep their original relative order. Rows whose cell
// does not parse sort last in either direction.
func (f *Frame) SortByFloat(col string, ascending bool) error {
	i, ok := f.index[col]
	if !ok {
		return fmt.Errorf("column %q not found", col)
	}

	keys := make([]float64, len(f.rows))
	valid := make([]bool, len(f.rows))
	for r, row := range f.rows {
		if i < len(row) {
			if v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64); err == nil {
				keys[r], valid[r] = v, true
			}
		}
	}

	order := make([]int, len(f.rows))
	for r := range order {
		order[r] = r
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := order[a], order[b]
		if valid[ra] != valid[rb] {
			return valid[ra]
		}
		if !valid[ra] {
			return false
		}
		if ascending {
			return keys[ra] < keys[rb]
		}
		return keys[ra] > keys[rb]
	})

	sorted := make([][]string, len(f.rows))
	for pos, r := range order {
		sorted[pos] = f.rows[r]
	}
	f.rows = sorted
	return nil
}

// RoundNumeric rewrites every numeric column rounded to the given number
// of decimals. A column counts as numeric when all of its non-empty cells
// parse as numbers.
func (f *Frame) RoundNumeric(decimals int) {
	pow := math.Pow(10, float64(decimals))

	for i := range f.cols {
		numeric := false
		mixed := false
		for _, row := range f.rows {
			if i >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				mixed = true
				break
			}
			numeric = true
		}
		if !numeric || mixed {
			continue
		}
		for _, row := range f.rows {
			if i >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			v, _ := strconv.ParseFloat(cell, 64)
			row[i] = FormatFloat(math.Round(v*pow) / pow)
		}
	}
}

// FormatFloat renders a number the way the frame persists it: shortest
// decimal representation without a trailing zero fraction.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
