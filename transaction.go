package levyt

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aisola/levyt/internal/debug"
)

// Transaction is a unit of work scoped to one connection. It resolves
// exactly once, by Commit or Rollback; either call after resolution
// fails with ErrTransactionResolved.
type Transaction struct {
	tx       *sql.Tx
	conn     *Connection
	sources  []*sqlRows
	resolved bool
}

// Execute runs a no-rows statement inside the transaction.
func (t *Transaction) Execute(ctx context.Context, query string, params Params) error {
	if t.resolved {
		return ErrTransactionResolved
	}
	q, args, err := bindNamed(query, params, t.conn.style)
	if err != nil {
		return err
	}
	debug.Debug("executing statement in transaction", "query", q)
	if _, err := t.tx.ExecContext(ctx, q, args...); err != nil {
		return queryErr(query, err)
	}
	return nil
}

// Query runs a row-returning statement inside the transaction and
// wraps the cursor in a lazy Collection.
func (t *Transaction) Query(ctx context.Context, query string, params Params) (*Collection, error) {
	if t.resolved {
		return nil, ErrTransactionResolved
	}
	q, args, err := bindNamed(query, params, t.conn.style)
	if err != nil {
		return nil, err
	}
	debug.Debug("executing query in transaction", "query", q)
	rows, err := t.tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, queryErr(query, err)
	}
	source, err := newSQLRows(rows)
	if err != nil {
		return nil, queryErr(query, err)
	}
	t.sources = append(t.sources, source)
	t.conn.track(source)
	return NewCollection(source), nil
}

// Commit finalizes all work issued on the owning connection since the
// transaction began.
func (t *Transaction) Commit() error {
	if t.resolved {
		return ErrTransactionResolved
	}
	t.resolve()
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("levyt: commit: %w", err)
	}
	return nil
}

// Rollback discards that work.
func (t *Transaction) Rollback() error {
	if t.resolved {
		return ErrTransactionResolved
	}
	t.resolve()
	if err := t.tx.Rollback(); err != nil {
		return fmt.Errorf("levyt: rollback: %w", err)
	}
	return nil
}

// resolve marks the transaction finished and releases any cursors it
// still holds open; sql.Tx blocks Commit and Rollback while its rows
// are open.
func (t *Transaction) resolve() {
	t.resolved = true
	for _, src := range t.sources {
		src.abort(ErrTransactionResolved)
	}
	t.sources = nil
	if t.conn != nil && t.conn.tx == t {
		t.conn.tx = nil
	}
}
