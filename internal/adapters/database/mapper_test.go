package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
)

func TestMapper_Lifecycle(t *testing.T) {
	ctx := context.Background()
	_, client := newTestStore(t)
	mapper := NewMapper[entities.Patient](client)

	p := &entities.Patient{FirstName: "Nguyen", LastName: "An", NationalID: "123456789", Gender: "male", BirthDate: "2000-01-01"}

	t.Run("save on a fresh model assigns a new id and find returns the same values", func(t *testing.T) {
		require.NoError(t, mapper.Save(ctx, p))
		require.NotZero(t, p.ID)

		found, err := mapper.Find(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, p.FirstName, found.FirstName)
		assert.Equal(t, p.NationalID, found.NationalID)
		assert.NotNil(t, found.CreatedAt)

		other := &entities.Patient{FirstName: "Le", LastName: "Chi", NationalID: "987654321", Gender: "female", BirthDate: "1999-09-09"}
		require.NoError(t, mapper.Save(ctx, other))
		assert.NotEqual(t, p.ID, other.ID)
	})

	t.Run("save on a stored model keeps its id", func(t *testing.T) {
		id := p.ID
		p.Phone = strPtr("0912345678")
		require.NoError(t, mapper.Save(ctx, p))
		assert.Equal(t, id, p.ID)

		found, err := mapper.Find(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "0912345678", *found.Phone)
		assert.Equal(t, "Nguyen", found.FirstName)
	})

	t.Run("refresh overwrites in-memory fields", func(t *testing.T) {
		stale := &entities.Patient{ID: p.ID, FirstName: "changed"}
		ok, err := mapper.Refresh(ctx, stale)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Nguyen", stale.FirstName)

		ok, err = mapper.Refresh(ctx, &entities.Patient{})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("where rejects columns outside the whitelist", func(t *testing.T) {
		_, err := mapper.Where(ctx, Eq("1=1 OR first_name", "x"))
		assert.True(t, apperrors.IsValidation(err))

		_, err = mapper.Where(ctx, Condition{Field: "first_name", Op: "; DROP", Value: "x"})
		assert.True(t, apperrors.IsValidation(err))

		_, err = mapper.WhereOrdered(ctx, []Order{Desc("password")})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("where filters with bound values", func(t *testing.T) {
		rows, err := mapper.WhereOrdered(ctx, []Order{Desc("id")}, Condition{Field: "birth_date", Op: OpLt, Value: "2000-01-01"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Le", rows[0].FirstName)

		rows, err = mapper.Where(ctx, Eq("national_id", "' OR '1'='1"))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("delete then find is absent", func(t *testing.T) {
		removed, err := mapper.Delete(ctx, p)
		require.NoError(t, err)
		assert.True(t, removed)

		found, err := mapper.Find(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, found)

		removed, err = mapper.Delete(ctx, p)
		require.NoError(t, err)
		assert.False(t, removed)

		_, err = mapper.Delete(ctx, &entities.Patient{})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("find all returns an empty slice, not nil", func(t *testing.T) {
		rows, err := NewMapper[entities.Doctor](client).FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}

func TestMapper_NaturalKeyInsert(t *testing.T) {
	ctx := context.Background()
	_, client := newTestStore(t)
	mapper := NewMapper[entities.Account](client)

	a := &entities.Account{Username: "admin", FullName: "Admin", Gender: "male", Role: entities.RoleAdmin}
	a.SetPassword("123456")
	require.NoError(t, mapper.Insert(ctx, a))

	found, err := mapper.Find(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.CheckPassword("123456"))

	err = mapper.Insert(ctx, a)
	assert.True(t, apperrors.IsDataAccess(err))
}
