package levyt

import (
	"database/sql"
	"errors"
)

// sqlRows adapts *sql.Rows to the RowSource contract. Column metadata
// is captured once at construction so it survives cursor release.
type sqlRows struct {
	rows    *sql.Rows
	cols    []string
	aborted error
}

func newSQLRows(rows *sql.Rows) (*sqlRows, error) {
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}
	return &sqlRows{rows: rows, cols: cols}, nil
}

// Headers returns the column names of the underlying cursor.
func (s *sqlRows) Headers() []string {
	cols := make([]string, len(s.cols))
	copy(cols, s.cols)
	return cols
}

func (s *sqlRows) Next() (*Record, error) {
	if s.aborted != nil {
		return nil, s.aborted
	}
	if s.rows == nil {
		return nil, nil
	}
	if !s.rows.Next() {
		err := s.rows.Err()
		s.Close()
		if err != nil {
			if errors.Is(err, sql.ErrConnDone) {
				return nil, ErrConnectionClosed
			}
			return nil, err
		}
		return nil, nil
	}

	values := make([]any, len(s.cols))
	ptrs := make([]any, len(s.cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := s.rows.Scan(ptrs...); err != nil {
		if errors.Is(err, sql.ErrConnDone) {
			return nil, ErrConnectionClosed
		}
		return nil, err
	}
	// Drivers like go-sql-driver/mysql hand text columns back as raw
	// bytes; normalize them so records hold comparable values.
	for i, v := range values {
		if b, ok := v.([]byte); ok {
			values[i] = string(b)
		}
	}
	return NewRecord(s.cols, values), nil
}

func (s *sqlRows) Close() error {
	if s.rows == nil {
		return nil
	}
	rows := s.rows
	s.rows = nil
	return rows.Close()
}

// abort releases the cursor before natural exhaustion and makes any
// later pull fail with cause. Used when the owning connection closes
// or the owning transaction resolves with rows still pending. A source
// that already drained naturally is left alone.
func (s *sqlRows) abort(cause error) {
	if s.rows == nil {
		return
	}
	s.Close()
	s.aborted = cause
}
