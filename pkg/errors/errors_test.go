package errors

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	t.Run("includes wrapped error", func(t *testing.T) {
		err := NewDataAccessError("failed to insert", sql.ErrConnDone)
		assert.Equal(t, "DATA_ACCESS: failed to insert: sql: connection is already closed", err.Error())
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})

	t.Run("lists fields in key order", func(t *testing.T) {
		err := NewFieldValidationError(map[string]string{
			"national_id": "must be 9 or 12 digits",
			"first_name":  "is required",
		})
		assert.Equal(t, "VALIDATION: invalid input (first_name: is required, national_id: must be 9 or 12 digits)", err.Error())
	})
}

func TestTypeHelpers(t *testing.T) {
	wrapped := fmt.Errorf("booking: %w", NewFieldConflictError("time", "slot taken"))

	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.Equal(t, map[string]string{"time": "slot taken"}, FieldErrors(wrapped))

	assert.True(t, IsNotFound(NewNotFoundError("patient not found")))
	assert.True(t, IsDataAccess(NewDataAccessError("x", nil)))
	assert.False(t, IsNotFound(sql.ErrNoRows))
	assert.Nil(t, FieldErrors(sql.ErrNoRows))
}
