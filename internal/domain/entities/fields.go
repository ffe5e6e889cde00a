package entities

import (
	"strconv"
	"strings"

	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
)

// Fields is an untyped field map as collected by a form
type Fields map[string]string

// Merge returns a copy of f overlaid with update
func (f Fields) Merge(update Fields) Fields {
	out := make(Fields, len(f)+len(update))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range update {
		out[k] = v
	}
	return out
}

type fieldSetter func(value string) error

type fieldSetters map[string]fieldSetter

// apply assigns every key of f through its setter. Unknown keys and values that
// fail to convert are reported together; nothing is assigned when any key is unknown.
func (s fieldSetters) apply(f Fields) error {
	errs := map[string]string{}
	for key := range f {
		if _, ok := s[key]; !ok {
			errs[key] = "unknown field"
		}
	}
	if len(errs) > 0 {
		return apperrors.NewFieldValidationError(errs)
	}

	for key, value := range f {
		if err := s[key](value); err != nil {
			errs[key] = err.Error()
		}
	}
	if len(errs) > 0 {
		return apperrors.NewFieldValidationError(errs)
	}
	return nil
}

func setString(dst *string) fieldSetter {
	return func(v string) error {
		*dst = strings.TrimSpace(v)
		return nil
	}
}

// setOptString stores nil for a blank value
func setOptString(dst **string) fieldSetter {
	return func(v string) error {
		v = strings.TrimSpace(v)
		if v == "" {
			*dst = nil
			return nil
		}
		*dst = &v
		return nil
	}
}

func setOptFloat(dst **float64) fieldSetter {
	return func(v string) error {
		v = strings.TrimSpace(v)
		if v == "" {
			*dst = nil
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errNotNumber
		}
		*dst = &f
		return nil
	}
}

func setInt64(dst *int64) fieldSetter {
	return func(v string) error {
		v = strings.TrimSpace(v)
		if v == "" {
			*dst = 0
			return nil
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errNotInteger
		}
		*dst = n
		return nil
	}
}

type fieldError string

func (e fieldError) Error() string { return string(e) }

const (
	errNotNumber  fieldError = "must be a number"
	errNotInteger fieldError = "must be a whole number"
)

func optString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func optFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func optValue[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
