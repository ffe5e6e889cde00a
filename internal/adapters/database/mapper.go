package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/clients/sqlite"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
)

// ModelPtr is a pointer to a struct implementing entities.Model
type ModelPtr[T any] interface {
	*T
	entities.Model
}

// Mapper gives any model find, query, save, delete and refresh from its
// table name, primary key and column whitelist.
type Mapper[T any, PT ModelPtr[T]] struct {
	exec    sqlite.Executor
	table   string
	key     string
	columns map[string]bool
}

// NewMapper creates a mapper for model type T running on exec
func NewMapper[T any, PT ModelPtr[T]](exec sqlite.Executor) *Mapper[T, PT] {
	model := PT(new(T))
	return &Mapper[T, PT]{
		exec:    exec,
		table:   model.TableName(),
		key:     model.PrimaryKey(),
		columns: columnSet(model.Columns()),
	}
}

// Find looks a row up by primary key; nil, nil when absent
func (m *Mapper[T, PT]) Find(ctx context.Context, key interface{}) (PT, error) {
	row := new(T)
	found, err := m.exec.From(m.table).
		Where(goqu.C(m.key).Eq(key)).
		ScanStructContext(ctx, row)
	if err != nil {
		return nil, apperrors.NewDataAccessError("failed to read "+m.table, err)
	}
	if !found {
		return nil, nil
	}
	return PT(row), nil
}

// FindAll returns every row of the table
func (m *Mapper[T, PT]) FindAll(ctx context.Context) ([]PT, error) {
	return m.WhereOrdered(ctx, nil)
}

// Where returns rows matching every predicate
func (m *Mapper[T, PT]) Where(ctx context.Context, preds ...Predicate) ([]PT, error) {
	return m.WhereOrdered(ctx, nil, preds...)
}

// WhereOrdered returns rows matching every predicate sorted by order
func (m *Mapper[T, PT]) WhereOrdered(ctx context.Context, order []Order, preds ...Predicate) ([]PT, error) {
	ds, err := m.filtered(preds)
	if err != nil {
		return nil, err
	}

	for _, o := range order {
		oe, err := o.expression(m.columns)
		if err != nil {
			return nil, err
		}
		ds = ds.OrderAppend(oe)
	}

	var rows []T
	if err := ds.ScanStructsContext(ctx, &rows); err != nil {
		return nil, apperrors.NewDataAccessError("failed to query "+m.table, err)
	}

	out := make([]PT, 0, len(rows))
	for i := range rows {
		out = append(out, PT(&rows[i]))
	}
	return out, nil
}

// Count counts rows matching every predicate
func (m *Mapper[T, PT]) Count(ctx context.Context, preds ...Predicate) (int64, error) {
	ds, err := m.filtered(preds)
	if err != nil {
		return 0, err
	}
	n, err := ds.CountContext(ctx)
	if err != nil {
		return 0, apperrors.NewDataAccessError("failed to count "+m.table, err)
	}
	return n, nil
}

// Save updates the row when the model carries its key, otherwise inserts it
// and back-fills the generated key. An update matching no row is not an error.
func (m *Mapper[T, PT]) Save(ctx context.Context, model PT) error {
	if model.HasKey() {
		_, err := m.exec.Update(ctx, m.table, goqu.Record(model.Values()), m.byKey(model.KeyValue()))
		return err
	}

	id, err := m.exec.Insert(ctx, m.table, goqu.Record(model.Values()))
	if err != nil {
		return err
	}
	if ident, ok := any(model).(entities.Identifiable); ok {
		ident.SetID(id)
	}
	return nil
}

// Insert always inserts, including the key when the model carries one
func (m *Mapper[T, PT]) Insert(ctx context.Context, model PT) error {
	record := goqu.Record(model.Values())
	if model.HasKey() {
		record[m.key] = model.KeyValue()
	}

	id, err := m.exec.Insert(ctx, m.table, record)
	if err != nil {
		return err
	}
	if ident, ok := any(model).(entities.Identifiable); ok && !model.HasKey() {
		ident.SetID(id)
	}
	return nil
}

// Delete removes the model's row and reports whether one was removed
func (m *Mapper[T, PT]) Delete(ctx context.Context, model PT) (bool, error) {
	if !model.HasKey() {
		return false, apperrors.NewValidationError("cannot delete " + m.table + " row without " + m.key)
	}
	return m.DeleteByKey(ctx, model.KeyValue())
}

// DeleteByKey removes the row with key and reports whether one was removed
func (m *Mapper[T, PT]) DeleteByKey(ctx context.Context, key interface{}) (bool, error) {
	n, err := m.exec.Delete(ctx, m.table, m.byKey(key))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Refresh overwrites model with its stored row. It reports false when the
// model has no key or the row no longer exists.
func (m *Mapper[T, PT]) Refresh(ctx context.Context, model PT) (bool, error) {
	if !model.HasKey() {
		return false, nil
	}
	fresh, err := m.Find(ctx, model.KeyValue())
	if err != nil || fresh == nil {
		return false, err
	}
	*model = *fresh
	return true, nil
}

func (m *Mapper[T, PT]) byKey(key interface{}) exp.Expression {
	return goqu.C(m.key).Eq(key)
}

func (m *Mapper[T, PT]) filtered(preds []Predicate) (*goqu.SelectDataset, error) {
	ds := m.exec.From(m.table)
	for _, p := range preds {
		e, err := p.expression(m.columns)
		if err != nil {
			return nil, err
		}
		ds = ds.Where(e)
	}
	return ds, nil
}
