package database

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
)

// Operator is a comparison a Condition may use
type Operator string

const (
	OpEq   Operator = "="
	OpNe   Operator = "!="
	OpGt   Operator = ">"
	OpGte  Operator = ">="
	OpLt   Operator = "<"
	OpLte  Operator = "<="
	OpLike Operator = "LIKE"
)

// Predicate is a filter rendered against a model's column whitelist
type Predicate interface {
	expression(columns map[string]bool) (exp.Expression, error)
}

// Condition compares one named column with a bound value
type Condition struct {
	Field string
	Op    Operator
	Value interface{}
}

// Eq matches rows whose field equals value
func Eq(field string, value interface{}) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

// Contains matches rows whose field contains term
func Contains(field, term string) Condition {
	return Condition{Field: field, Op: OpLike, Value: "%" + term + "%"}
}

func (c Condition) expression(columns map[string]bool) (exp.Expression, error) {
	if !columns[c.Field] {
		return nil, apperrors.NewFieldValidationError(map[string]string{c.Field: "is not a queryable column"})
	}

	col := goqu.C(c.Field)
	switch c.Op {
	case OpEq:
		return col.Eq(c.Value), nil
	case OpNe:
		return col.Neq(c.Value), nil
	case OpGt:
		return col.Gt(c.Value), nil
	case OpGte:
		return col.Gte(c.Value), nil
	case OpLt:
		return col.Lt(c.Value), nil
	case OpLte:
		return col.Lte(c.Value), nil
	case OpLike:
		return col.Like(c.Value), nil
	default:
		return nil, apperrors.NewFieldValidationError(map[string]string{c.Field: "unsupported operator " + string(c.Op)})
	}
}

type anyOf []Predicate

// AnyOf matches rows satisfying at least one of preds
func AnyOf(preds ...Predicate) Predicate {
	return anyOf(preds)
}

func (a anyOf) expression(columns map[string]bool) (exp.Expression, error) {
	exps := make([]exp.Expression, 0, len(a))
	for _, p := range a {
		e, err := p.expression(columns)
		if err != nil {
			return nil, err
		}
		exps = append(exps, e)
	}
	return goqu.Or(exps...), nil
}

// Order sorts by one named column
type Order struct {
	Field string
	Desc  bool
}

// Asc sorts ascending by field
func Asc(field string) Order { return Order{Field: field} }

// Desc sorts descending by field
func Desc(field string) Order { return Order{Field: field, Desc: true} }

func (o Order) expression(columns map[string]bool) (exp.OrderedExpression, error) {
	if !columns[o.Field] {
		return nil, apperrors.NewFieldValidationError(map[string]string{o.Field: "is not a sortable column"})
	}
	if o.Desc {
		return goqu.C(o.Field).Desc(), nil
	}
	return goqu.C(o.Field).Asc(), nil
}

func columnSet(cols []string) map[string]bool {
	set := make(map[string]bool, len(cols))
	for _, c := range cols {
		set[c] = true
	}
	return set
}
