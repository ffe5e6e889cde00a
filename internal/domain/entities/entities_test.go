package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
)

func TestNewPatientFromFields(t *testing.T) {
	t.Run("converts typed fields and blanks optional ones", func(t *testing.T) {
		p, err := NewPatientFromFields(Fields{
			"first_name":  " Nguyen ",
			"last_name":   "An",
			"national_id": "123456789",
			"gender":      "male",
			"birth_date":  "2000-01-01",
			"height":      "170.5",
			"phone":       "",
		})
		require.NoError(t, err)

		assert.Equal(t, "Nguyen", p.FirstName)
		require.NotNil(t, p.Height)
		assert.Equal(t, 170.5, *p.Height)
		assert.Nil(t, p.Phone)
		assert.False(t, p.HasKey())
		assert.Equal(t, "Nguyen An", p.FullName())
	})

	t.Run("rejects unknown keys by name", func(t *testing.T) {
		_, err := NewPatientFromFields(Fields{"first_name": "Nguyen", "nickname": "Bo"})

		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, map[string]string{"nickname": "unknown field"}, apperrors.FieldErrors(err))
	})

	t.Run("rejects non numeric measurements", func(t *testing.T) {
		_, err := NewPatientFromFields(Fields{"weight": "heavy"})

		assert.Equal(t, "must be a number", apperrors.FieldErrors(err)["weight"])
	})
}

func TestPatient_ApplyChangesOnlyProvidedFields(t *testing.T) {
	phone := "0912345678"
	p := &Patient{ID: 3, FirstName: "Nguyen", LastName: "An", Phone: &phone}

	require.NoError(t, p.Apply(Fields{"last_name": "Binh"}))

	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "Nguyen", p.FirstName)
	assert.Equal(t, "Binh", p.LastName)
	assert.Equal(t, "0912345678", *p.Phone)
	assert.Equal(t, "0912345678", p.ToFields()["phone"])
}

func TestPatient_Age(t *testing.T) {
	p := &Patient{BirthDate: "2000-01-01"}

	age, err := p.Age(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 24, age)

	age, err = p.Age(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 23, age)
}

func TestAppointment(t *testing.T) {
	a, err := NewAppointmentFromFields(Fields{"patient_id": "1", "doctor_id": "5", "date": "2024-06-01", "time": "09:00"})
	require.NoError(t, err)
	assert.Equal(t, AppointmentStatusWaiting, a.Status)
	assert.Equal(t, int64(5), a.DoctorID)

	other := &Appointment{DoctorID: 5, Date: "2024-06-01", Time: "09:00"}
	assert.True(t, a.SameSlot(other))
	other.DoctorID = 6
	assert.False(t, a.SameSlot(other))

	_, err = NewAppointmentFromFields(Fields{"doctor_id": "five"})
	assert.Equal(t, "must be a whole number", apperrors.FieldErrors(err)["doctor_id"])
}

func TestNewMedicalRecordFromAppointment(t *testing.T) {
	a := &Appointment{ID: 12, PatientID: 1, DoctorID: 5, Date: "2024-06-01"}

	r := NewMedicalRecordFromAppointment(a, "flu")

	assert.Equal(t, int64(1), r.PatientID)
	assert.Equal(t, int64(5), r.DoctorID)
	assert.Equal(t, "2024-06-01", r.VisitDate)
	assert.Equal(t, "flu", r.Diagnosis)
	assert.Equal(t, "Created from appointment #12", *r.Notes)
}

func TestAccount_Password(t *testing.T) {
	a, err := NewAccountFromFields(Fields{"username": "staff01", "password": "secret1", "role": "staff"})
	require.NoError(t, err)

	assert.True(t, a.CheckPassword("secret1"))
	assert.False(t, a.CheckPassword("secret2"))
	assert.True(t, a.IsStaff())
	assert.NotContains(t, a.Columns(), "password_hash")

	before := a.PasswordHash
	a.SetPassword("secret1")
	assert.NotEqual(t, before, a.PasswordHash)
	assert.True(t, a.CheckPassword("secret1"))
}

func TestAppSetting_Typed(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		typ   string
		want  interface{}
	}{
		{name: "int", value: 20, want: 20},
		{name: "float", value: 1.5, want: 1.5},
		{name: "bool", value: true, want: true},
		{name: "string", value: "Clinic", want: "Clinic"},
		{name: "explicit bool from text", value: "Yes", typ: SettingTypeBool, want: true},
		{name: "explicit bool falsy", value: "nope", typ: SettingTypeBool, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewAppSetting("k", tt.value, tt.typ)
			got, err := s.Typed()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := (&AppSetting{Key: "k", Value: "abc", Type: SettingTypeInt}).Typed()
	assert.Error(t, err)
}
