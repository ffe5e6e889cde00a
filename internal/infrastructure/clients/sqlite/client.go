package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/doug-martin/goqu/v9/exp"
	_ "github.com/mattn/go-sqlite3"

	"github.com/CoderFake/healthcare-system/internal/infrastructure/observability"
	"github.com/CoderFake/healthcare-system/pkg/config"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
)

// Dialect is the goqu dialect every statement is rendered with
const Dialect = "sqlite3"

// Executor runs parameterized statements against a connection or a transaction
type Executor interface {
	Execute(ctx context.Context, statement string, args ...interface{}) (sql.Result, error)
	Insert(ctx context.Context, table string, record goqu.Record) (int64, error)
	Update(ctx context.Context, table string, record goqu.Record, where exp.Expression) (int64, error)
	Delete(ctx context.Context, table string, where exp.Expression) (int64, error)
	From(table ...interface{}) *goqu.SelectDataset
}

// Client owns the single connection to the database file.
// Every write on Client runs in its own transaction and commits before returning.
type Client struct {
	mu      sync.RWMutex
	db      *sql.DB
	gdb     *goqu.Database
	cfg     *config.DatabaseConfig
	metrics *observability.Metrics
	closed  bool
}

var _ Executor = (*Client)(nil)

// Open opens the database file with foreign key enforcement on
func Open(cfg *config.DatabaseConfig) (*Client, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	observability.GetLogger().Debug().Str("file", cfg.File).Msg("opened database")
	return &Client{db: db, gdb: goqu.New(Dialect, db), cfg: cfg}, nil
}

// NewFromDB wraps an already opened handle. Backup and Restore are unavailable.
func NewFromDB(db *sql.DB) *Client {
	return &Client{db: db, gdb: goqu.New(Dialect, db)}
}

func openDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.DSN())
	if err != nil {
		return nil, apperrors.NewDataAccessError("failed to open database", err)
	}

	// one writer, one connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, apperrors.NewDataAccessError("failed to enable foreign keys", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperrors.NewDataAccessError("failed to connect to database", err)
	}
	return db, nil
}

// SetMetrics enables statement duration metrics
func (c *Client) SetMetrics(m *observability.Metrics) {
	c.metrics = m
}

// DB returns the underlying database connection
func (c *Client) DB() *sql.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// Close releases the connection. Calling it twice is a no-op.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.db.Close(); err != nil {
		return apperrors.NewDataAccessError("failed to close database", err)
	}
	return nil
}

// Ping verifies the connection to the database
func (c *Client) Ping(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.db.PingContext(ctx); err != nil {
		return apperrors.NewDataAccessError("database unreachable", err)
	}
	return nil
}

// From starts a prepared select bound to the connection.
// The lock covers building the dataset only: a dataset built before a Restore
// keeps the released handle and its query fails with "sql: database is closed".
// Build datasets per read rather than holding them.
func (c *Client) From(table ...interface{}) *goqu.SelectDataset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gdb.From(table...).Prepared(true)
}

// Execute runs a single parameterized statement in its own transaction
func (c *Client) Execute(ctx context.Context, statement string, args ...interface{}) (sql.Result, error) {
	var res sql.Result
	err := c.WithTx(ctx, func(tx *Tx) error {
		var err error
		res, err = tx.Execute(ctx, statement, args...)
		return err
	})
	return res, err
}

// Insert stamps timestamps, inserts record and returns the generated row id
func (c *Client) Insert(ctx context.Context, table string, record goqu.Record) (int64, error) {
	var id int64
	err := c.WithTx(ctx, func(tx *Tx) error {
		var err error
		id, err = tx.Insert(ctx, table, record)
		return err
	})
	return id, err
}

// Update stamps updated_at and updates the rows matching where
func (c *Client) Update(ctx context.Context, table string, record goqu.Record, where exp.Expression) (int64, error) {
	var n int64
	err := c.WithTx(ctx, func(tx *Tx) error {
		var err error
		n, err = tx.Update(ctx, table, record, where)
		return err
	})
	return n, err
}

// Delete removes the rows matching where
func (c *Client) Delete(ctx context.Context, table string, where exp.Expression) (int64, error) {
	var n int64
	err := c.WithTx(ctx, func(tx *Tx) error {
		var err error
		n, err = tx.Delete(ctx, table, where)
		return err
	})
	return n, err
}

func (c *Client) observe(ctx context.Context, op, table string, start time.Time) {
	observability.RecordDBMetric(ctx, c.metrics, op, table, time.Since(start))
}

func wrap(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.NewDataAccessError(fmt.Sprintf("%s %s failed", op, table), err)
}
