package levyt

import (
	"errors"
	"fmt"

	"github.com/aisola/levyt/dataset"
)

// Sentinel errors returned by the library. All of them can be tested
// with errors.Is against the errors returned from any levyt call.
var (
	// ErrEmptyResult is returned when a result was required to contain
	// at least one row but contained none.
	ErrEmptyResult = errors.New("levyt: result contains no rows")

	// ErrMultipleResults is returned by One when the result contains
	// more than one row.
	ErrMultipleResults = errors.New("levyt: result contains more than one row")

	// ErrIndexOutOfRange is returned for positional access outside the
	// realizable range of a record or collection.
	ErrIndexOutOfRange = errors.New("levyt: index out of range")

	// ErrNoSuchColumn is returned when a record has no column with the
	// requested name.
	ErrNoSuchColumn = errors.New("levyt: no such column")

	// ErrConnectionClosed is returned when an operation requires a live
	// session but the connection has been closed.
	ErrConnectionClosed = errors.New("levyt: connection is closed")

	// ErrDatabaseClosed is returned when a connection is requested from
	// a closed database.
	ErrDatabaseClosed = errors.New("levyt: database is closed")

	// ErrTransactionResolved is returned when Commit or Rollback is
	// called on a transaction that has already been resolved.
	ErrTransactionResolved = errors.New("levyt: transaction already resolved")

	// ErrTransactionActive is returned when a second transaction is
	// started on a connection before the first resolves.
	ErrTransactionActive = errors.New("levyt: transaction already in progress")
)

// ErrUnsupportedFormat is returned by the export methods for a format
// name the dataset package does not recognize.
var ErrUnsupportedFormat = dataset.ErrUnsupportedFormat

// QueryError wraps a driver-level failure (bad SQL, constraint
// violation, type mismatch) together with the statement that caused it.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("levyt: query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func queryErr(query string, err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Query: query, Err: err}
}
