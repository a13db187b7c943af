package levyt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aisola/levyt/internal/debug"
)

// Connection is one logical database session. It wraps a single
// driver connection checked out of the pool; close it to return the
// session.
//
// A connection and its open collections are not safe for concurrent
// use from multiple goroutines without external synchronization.
type Connection struct {
	conn    *sql.Conn
	style   bindStyle
	tx      *Transaction
	sources []*sqlRows
	closed  bool
}

// track registers a live cursor so Close can release it. database/sql
// blocks a connection Close while rows are open, so the connection has
// to abort its cursors first.
func (c *Connection) track(s *sqlRows) {
	c.sources = append(c.sources, s)
}

// Execute runs SQL that is not expected to return rows. Parameters are
// bound with the :name syntax. Driver-level failures surface as a
// *QueryError.
//
// While a transaction started through Transaction is active, the call
// routes through it so both idioms observe the same intermediate
// state.
func (c *Connection) Execute(ctx context.Context, query string, params Params) error {
	if c.closed {
		return ErrConnectionClosed
	}
	if c.tx != nil {
		return c.tx.Execute(ctx, query, params)
	}
	q, args, err := bindNamed(query, params, c.style)
	if err != nil {
		return err
	}
	debug.Debug("executing statement", "query", q)
	if _, err := c.conn.ExecContext(ctx, q, args...); err != nil {
		if errors.Is(err, sql.ErrConnDone) {
			return ErrConnectionClosed
		}
		return queryErr(query, err)
	}
	return nil
}

// Query runs SQL expected to return rows and wraps the live cursor in
// an open, lazily realized Collection bound to this connection. The
// collection keeps working after Close only for rows it had already
// realized.
func (c *Connection) Query(ctx context.Context, query string, params Params) (*Collection, error) {
	if c.closed {
		return nil, ErrConnectionClosed
	}
	if c.tx != nil {
		return c.tx.Query(ctx, query, params)
	}
	q, args, err := bindNamed(query, params, c.style)
	if err != nil {
		return nil, err
	}
	debug.Debug("executing query", "query", q)
	rows, err := c.conn.QueryContext(ctx, q, args...)
	if err != nil {
		if errors.Is(err, sql.ErrConnDone) {
			return nil, ErrConnectionClosed
		}
		return nil, queryErr(query, err)
	}
	source, err := newSQLRows(rows)
	if err != nil {
		return nil, queryErr(query, err)
	}
	c.track(source)
	return NewCollection(source), nil
}

// Transaction begins a transaction scoped to this connection. Only one
// transaction may be active at a time; beginning a second before the
// first resolves fails with ErrTransactionActive.
func (c *Connection) Transaction(ctx context.Context) (*Transaction, error) {
	if c.closed {
		return nil, ErrConnectionClosed
	}
	if c.tx != nil {
		return nil, ErrTransactionActive
	}
	sqlTx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("levyt: begin transaction: %w", err)
	}
	tx := &Transaction{tx: sqlTx, conn: c}
	c.tx = tx
	return tx, nil
}

// Close releases the underlying session. Collections still open
// against it fail further pulls with ErrConnectionClosed; rows they
// had already realized remain readable. Close is idempotent.
func (c *Connection) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	for _, src := range c.sources {
		src.abort(ErrConnectionClosed)
	}
	c.sources = nil
	debug.Debug("closing connection")
	return c.conn.Close()
}

func (c *Connection) String() string {
	return fmt.Sprintf("<Connection open=%t>", !c.closed)
}
