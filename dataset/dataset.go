// Package dataset holds tabular data (column headers plus rows of
// scalar values) and encodes it into common interchange formats.
package dataset

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnsupportedFormat is returned by Export for an unrecognized
// format name.
var ErrUnsupportedFormat = errors.New("dataset: unsupported export format")

// Dataset is an ordered table: a header row followed by data rows, all
// rows the same width.
type Dataset struct {
	headers []string
	rows    [][]any
}

// Column is a labeled column view over a dataset, the in-memory
// columnar counterpart of the row-oriented exports.
type Column struct {
	Name   string
	Values []any
}

// New creates a dataset with the given column headers.
func New(headers ...string) *Dataset {
	d := &Dataset{headers: make([]string, len(headers))}
	copy(d.headers, headers)
	return d
}

// Append adds one data row. The row must match the header width.
func (d *Dataset) Append(row []any) error {
	if len(row) != len(d.headers) {
		return fmt.Errorf("dataset: row has %d values, want %d", len(row), len(d.headers))
	}
	r := make([]any, len(row))
	copy(r, row)
	d.rows = append(d.rows, r)
	return nil
}

// Headers returns the column headers.
func (d *Dataset) Headers() []string {
	headers := make([]string, len(d.headers))
	copy(headers, d.headers)
	return headers
}

// Rows returns the data rows.
func (d *Dataset) Rows() [][]any {
	rows := make([][]any, len(d.rows))
	for i, r := range d.rows {
		row := make([]any, len(r))
		copy(row, r)
		rows[i] = row
	}
	return rows
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Width returns the number of columns.
func (d *Dataset) Width() int {
	return len(d.headers)
}

// Columns returns the dataset pivoted into labeled columns.
func (d *Dataset) Columns() []Column {
	cols := make([]Column, len(d.headers))
	for i, h := range d.headers {
		values := make([]any, len(d.rows))
		for j, row := range d.rows {
			values[j] = row[i]
		}
		cols[i] = Column{Name: h, Values: values}
	}
	return cols
}

// cellString renders one scalar for the textual formats. Timestamps
// become RFC 3339 text, nil becomes the empty string.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.Format(time.RFC3339)
	case []byte:
		return string(t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// cellValue renders one scalar for the structured formats (json, yaml,
// xlsx), applying the same timestamp rule but keeping other types.
func cellValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339)
	case []byte:
		return string(t)
	default:
		return v
	}
}
