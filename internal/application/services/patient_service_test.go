package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoderFake/healthcare-system/internal/application/services"
	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
)

func TestPatientService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := services.NewPatientService(env.store)
	patient := env.patient(t, "123456789")

	t.Run("rejects invalid records with per-field reasons", func(t *testing.T) {
		_, err := svc.Create(ctx, entities.Fields{
			"first_name":  "N",
			"last_name":   "An",
			"national_id": "12345",
			"gender":      "other",
			"birth_date":  "2000-01-01",
			"phone":       "12345",
		})
		require.Error(t, err)
		fields := apperrors.FieldErrors(err)
		assert.Contains(t, fields, "first_name")
		assert.Contains(t, fields, "national_id")
		assert.Contains(t, fields, "gender")
		assert.Contains(t, fields, "phone")
		assert.NotContains(t, fields, "birth_date")
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		_, err := svc.Create(ctx, entities.Fields{
			"first_name":  "Le",
			"last_name":   "Chi",
			"national_id": "987654321",
			"gender":      "female",
			"birth_date":  "1999-09-09",
			"nickname":    "C",
		})
		assert.Equal(t, map[string]string{"nickname": "unknown field"}, apperrors.FieldErrors(err))
	})

	t.Run("rejects a duplicate national id", func(t *testing.T) {
		_, err := svc.Create(ctx, entities.Fields{
			"first_name":  "Le",
			"last_name":   "Chi",
			"national_id": "123456789",
			"gender":      "female",
			"birth_date":  "1999-09-09",
		})
		assert.True(t, apperrors.IsConflict(err))
		assert.Contains(t, apperrors.FieldErrors(err), "national_id")
	})

	t.Run("partial update keeps the other fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, patient.ID, entities.Fields{"phone": "0912345678", "height": "172.5"})
		require.NoError(t, err)
		assert.Equal(t, patient.ID, updated.ID)

		stored, err := svc.Get(ctx, patient.ID)
		require.NoError(t, err)
		assert.Equal(t, "0912345678", *stored.Phone)
		assert.Equal(t, 172.5, *stored.Height)
		assert.Equal(t, "Nguyen", stored.FirstName)
		assert.Equal(t, "Hue", *stored.Hometown)
	})

	t.Run("update is validated against the merged record", func(t *testing.T) {
		_, err := svc.Update(ctx, patient.ID, entities.Fields{"birth_date": "2000-02-30"})
		assert.True(t, apperrors.IsValidation(err))

		_, err = svc.Update(ctx, patient.ID, entities.Fields{"weight": "900"})
		assert.Contains(t, apperrors.FieldErrors(err), "weight")
	})

	t.Run("lookups", func(t *testing.T) {
		found, err := svc.GetByNationalID(ctx, " 123456789 ")
		require.NoError(t, err)
		assert.Equal(t, patient.ID, found.ID)

		missing, err := svc.Get(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, missing)

		rows, err := svc.Search(ctx, "hue")
		require.NoError(t, err)
		assert.Len(t, rows, 1)

		rows, err = svc.Search(ctx, "  ")
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("delete", func(t *testing.T) {
		assert.True(t, apperrors.IsNotFound(svc.Delete(ctx, 999)))
		require.NoError(t, svc.Delete(ctx, patient.ID))

		gone, err := svc.Get(ctx, patient.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func TestDoctorService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := services.NewDoctorService(env.store)
	doctor := env.doctor(t, "111222333", "Cardiology")
	env.doctor(t, "444555666", "Dermatology")

	t.Run("specialty is required", func(t *testing.T) {
		_, err := svc.Create(ctx, entities.Fields{
			"first_name":  "Pham",
			"last_name":   "Dung",
			"national_id": "777888999",
			"gender":      "male",
			"birth_date":  "1975-05-05",
		})
		assert.Equal(t, "is required", apperrors.FieldErrors(err)["specialty"])
	})

	t.Run("linked login must exist", func(t *testing.T) {
		_, err := svc.Update(ctx, doctor.ID, entities.Fields{"username": "drbinh"})
		assert.Equal(t, map[string]string{"username": "no such account"}, apperrors.FieldErrors(err))

		_, err = services.NewAuthService(env.store.Accounts(), "s", 0).CreateAccount(adminContext(), entities.Fields{
			"username":  "drbinh",
			"password":  "secret1",
			"full_name": "Tran Binh",
			"gender":    "female",
			"role":      "doctor",
		})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, doctor.ID, entities.Fields{"username": "drbinh"})
		require.NoError(t, err)
		assert.Equal(t, "drbinh", *updated.Username)
	})

	t.Run("search and specialty", func(t *testing.T) {
		rows, err := svc.Search(ctx, "derma")
		require.NoError(t, err)
		assert.Len(t, rows, 1)

		rows, err = svc.ListBySpecialty(ctx, "Cardiology")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, doctor.ID, rows[0].ID)
	})

	t.Run("upcoming skips past appointments", func(t *testing.T) {
		patient := env.patient(t, "123456789")
		appts := env.appointments()
		_, err := appts.Create(ctx, booking(patient.ID, doctor.ID, "2001-01-01", "09:00"))
		require.NoError(t, err)
		_, err = appts.Create(ctx, booking(patient.ID, doctor.ID, "2999-01-01", "09:00"))
		require.NoError(t, err)

		rows, err := svc.Upcoming(ctx, doctor.ID, 0)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "2999-01-01", rows[0].Date)
	})

	t.Run("doctor with appointments cannot be deleted", func(t *testing.T) {
		err := svc.Delete(ctx, doctor.ID)
		assert.True(t, apperrors.IsDataAccess(err))
	})
}
