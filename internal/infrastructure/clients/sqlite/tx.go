package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
	"github.com/CoderFake/healthcare-system/pkg/utils"
)

// Tx is an open transaction. Writes on Tx are committed by the WithTx that created it.
type Tx struct {
	tx     *sql.Tx
	gtx    *goqu.TxDatabase
	client *Client
}

var _ Executor = (*Tx)(nil)

// WithTx runs fn inside one transaction. It commits when fn returns nil and
// rolls back when fn returns an error or panics; a panic is re-raised after
// the rollback. Errors from fn are returned unchanged.
//
// fn must only use the Tx it receives: the Client holds a single connection.
// Reads through From are not covered by the lock while they run, so a
// concurrent Restore may fail them; see From.
func (c *Client) WithTx(ctx context.Context, fn func(tx *Tx) error) (err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return apperrors.NewDataAccessError("database is closed", sql.ErrConnDone)
	}

	sqlTx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewDataAccessError("failed to begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	tx := &Tx{tx: sqlTx, gtx: goqu.NewTx(Dialect, sqlTx), client: c}
	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return apperrors.NewDataAccessError("failed to roll back transaction", rbErr)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return apperrors.NewDataAccessError("failed to commit transaction", err)
	}
	return nil
}

// From starts a prepared select bound to the transaction
func (t *Tx) From(table ...interface{}) *goqu.SelectDataset {
	return t.gtx.From(table...).Prepared(true)
}

// Execute runs a parameterized statement; a script without arguments may hold several statements
func (t *Tx) Execute(ctx context.Context, statement string, args ...interface{}) (sql.Result, error) {
	defer t.client.observe(ctx, "execute", "", time.Now())

	res, err := t.tx.ExecContext(ctx, statement, args...)
	if err != nil {
		return nil, apperrors.NewDataAccessError("statement failed", err)
	}
	return res, nil
}

// Insert stamps created_at and updated_at when the table has both columns
func (t *Tx) Insert(ctx context.Context, table string, record goqu.Record) (int64, error) {
	defer t.client.observe(ctx, "insert", table, time.Now())

	cols, err := t.columnSet(ctx, table)
	if err != nil {
		return 0, err
	}

	row := copyRecord(record)
	if cols["created_at"] && cols["updated_at"] {
		now := utils.Now()
		row["created_at"] = now
		row["updated_at"] = now
	}

	query, args, err := goqu.Dialect(Dialect).Insert(table).Rows(row).Prepared(true).ToSQL()
	if err != nil {
		return 0, wrap("build insert", table, err)
	}

	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrap("insert into", table, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrap("insert into", table, err)
	}
	return id, nil
}

// Update stamps updated_at when the column exists; zero affected rows is not an error
func (t *Tx) Update(ctx context.Context, table string, record goqu.Record, where exp.Expression) (int64, error) {
	defer t.client.observe(ctx, "update", table, time.Now())

	cols, err := t.columnSet(ctx, table)
	if err != nil {
		return 0, err
	}

	row := copyRecord(record)
	if cols["updated_at"] {
		row["updated_at"] = utils.Now()
	}
	if len(row) == 0 {
		return 0, apperrors.NewValidationError("no fields to update")
	}

	query, args, err := goqu.Dialect(Dialect).Update(table).Set(row).Where(where).Prepared(true).ToSQL()
	if err != nil {
		return 0, wrap("build update", table, err)
	}

	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrap("update", table, err)
	}
	n, err := res.RowsAffected()
	return n, wrap("update", table, err)
}

// Delete removes rows matching where and reports how many went
func (t *Tx) Delete(ctx context.Context, table string, where exp.Expression) (int64, error) {
	defer t.client.observe(ctx, "delete", table, time.Now())

	query, args, err := goqu.Dialect(Dialect).Delete(table).Where(where).Prepared(true).ToSQL()
	if err != nil {
		return 0, wrap("build delete", table, err)
	}

	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrap("delete from", table, err)
	}
	n, err := res.RowsAffected()
	return n, wrap("delete from", table, err)
}

func (t *Tx) columnSet(ctx context.Context, table string) (map[string]bool, error) {
	names, err := tableColumns(ctx, t.tx, table)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set, nil
}

func copyRecord(record goqu.Record) goqu.Record {
	row := make(goqu.Record, len(record)+2)
	for k, v := range record {
		row[k] = v
	}
	return row
}
