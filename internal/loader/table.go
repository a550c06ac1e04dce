package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/models"
)

// missingMarker is how the exports spell a missing value
const missingMarker = "--"

var (
	ErrMissingColumn = errors.New("missing column")
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrMalformed     = errors.New("malformed value")
)

// ColumnError reports required columns absent from a file
type ColumnError struct {
	File    string
	Columns []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: missing column(s) %s", e.File, strings.Join(e.Columns, ", "))
}

func (e *ColumnError) Unwrap() error { return ErrMissingColumn }

// DuplicateKeyError reports a merge key seen more than once
type DuplicateKeyError struct {
	File string
	Key  models.SeasonTableKey
	Rows [2]int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: index is not distinct: (%s, %d, %s) on rows %d and %d",
		e.File, e.Key.PlayerID, e.Key.Year, e.Key.Team, e.Rows[0], e.Rows[1])
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// table is a CSV file addressed by header name
type table struct {
	path    string
	columns map[string]int
	records [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return parseTable(path, f)
}

func parseTable(name string, r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", name, err)
	}
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return &table{path: name, columns: columns, records: records}, nil
}

func (t *table) len() int { return len(t.records) }

func (t *table) has(col string) bool {
	_, ok := t.columns[col]
	return ok
}

// require fails with a ColumnError naming every absent column
func (t *table) require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if !t.has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &ColumnError{File: t.path, Columns: missing}
	}
	return nil
}

// text returns a trimmed cell; absent columns and short rows read empty
func (t *table) text(row int, col string) string {
	i, ok := t.columns[col]
	if !ok || i >= len(t.records[row]) {
		return ""
	}
	return strings.TrimSpace(t.records[row][i])
}

// number parses a numeric cell. Empty cells and the missing marker are
// undefined; thousands separators and a trailing touchdown marker are
// stripped.
func (t *table) number(row int, col string) (models.Optional, error) {
	raw := t.text(row, col)
	v, err := parseNumber(raw)
	if err != nil {
		// header is row 1, data starts on line 2
		return models.Undefined(), fmt.Errorf("%w: %s line %d column %q: %q",
			ErrMalformed, t.path, row+2, col, raw)
	}
	return v, nil
}

// integer is number with undefined read as zero
func (t *table) integer(row int, col string) (int, error) {
	v, err := t.number(row, col)
	if err != nil {
		return 0, err
	}
	return int(v.OrZero()), nil
}

func parseNumber(raw string) (models.Optional, error) {
	if raw == "" || raw == missingMarker {
		return models.Undefined(), nil
	}
	s := strings.ReplaceAll(raw, ",", "")
	s = strings.TrimSuffix(s, "T")
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return models.Undefined(), err
	}
	return models.Some(v), nil
}
