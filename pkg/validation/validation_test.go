package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldRules(t *testing.T) {
	t.Run("national id", func(t *testing.T) {
		assert.True(t, NationalID("123456789"))
		assert.True(t, NationalID("123456789012"))
		assert.False(t, NationalID("12345"))
		assert.False(t, NationalID("1234567890"))
		assert.False(t, NationalID(""))
	})

	t.Run("email", func(t *testing.T) {
		assert.True(t, Email("a@b.com"))
		assert.True(t, Email(""))
		assert.False(t, Email("not-an-email"))
	})

	t.Run("phone", func(t *testing.T) {
		assert.True(t, Phone("0912345678"))
		assert.True(t, Phone("+84912345678"))
		assert.True(t, Phone(""))
		assert.False(t, Phone("12345"))
	})

	t.Run("name", func(t *testing.T) {
		assert.True(t, Name("Nguyễn"))
		assert.False(t, Name("A"))
		assert.False(t, Name("John3"))
		assert.False(t, Name("O'Neil"))
	})

	t.Run("date and time", func(t *testing.T) {
		assert.True(t, Date("2024-02-29"))
		assert.False(t, Date("2023-02-29"))
		assert.False(t, Date("01/02/2024"))
		assert.True(t, Time("09:30"))
		assert.False(t, Time("25:00"))
		assert.False(t, Time("9:00"))
		assert.False(t, Time("09:5"))
		assert.False(t, Time(" 09:00"))
		assert.True(t, Time("23:59"))
	})

	t.Run("account fields", func(t *testing.T) {
		assert.True(t, Username("dr_smith"))
		assert.False(t, Username("abc"))
		assert.False(t, Username("has space"))
		assert.True(t, Password("123456"))
		assert.False(t, Password("12345"))
		assert.True(t, Role("staff"))
		assert.False(t, Role("root"))
	})

	t.Run("measurements", func(t *testing.T) {
		assert.True(t, Height("170.5"))
		assert.False(t, Height("20"))
		assert.False(t, Height("tall"))
		assert.True(t, Weight(""))
		assert.False(t, Weight("501"))
		assert.True(t, BloodType("AB-"))
		assert.False(t, BloodType("C+"))
	})

	t.Run("enumerations", func(t *testing.T) {
		assert.True(t, Gender("female"))
		assert.False(t, Gender("other"))
		assert.True(t, AppointmentStatus("in-progress"))
		assert.False(t, AppointmentStatus("done"))
	})
}

func TestPatient(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		errs := Patient(map[string]string{
			"first_name":  "Nguyen",
			"last_name":   "An",
			"national_id": "123456789",
			"gender":      "male",
			"birth_date":  "1990-05-01",
			"phone":       "0912345678",
			"height":      "170",
		})
		assert.Empty(t, errs)
	})

	t.Run("reports each offending field", func(t *testing.T) {
		errs := Patient(map[string]string{
			"first_name":  "Nguyen",
			"national_id": "12345",
			"gender":      "male",
			"birth_date":  "1990-05-01",
			"weight":      "0",
		})
		assert.Equal(t, reasonRequired, errs["last_name"])
		assert.Contains(t, errs, "national_id")
		assert.Contains(t, errs, "weight")
		assert.NotContains(t, errs, "first_name")
	})
}

func TestDoctor_RequiresSpecialty(t *testing.T) {
	errs := Doctor(map[string]string{
		"first_name":  "Tran",
		"last_name":   "Binh",
		"national_id": "123456789012",
		"gender":      "female",
		"birth_date":  "1980-01-01",
		"username":    "x",
	})
	assert.Equal(t, reasonRequired, errs["specialty"])
	assert.Contains(t, errs, "username")
}

func TestAppointment(t *testing.T) {
	assert.Empty(t, Appointment(map[string]string{
		"patient_id": "1", "doctor_id": "5", "date": "2024-06-01", "time": "09:00",
	}))

	errs := Appointment(map[string]string{
		"patient_id": "1", "doctor_id": "5", "date": "2024-06-01", "time": "9am", "status": "done",
	})
	assert.Contains(t, errs, "time")
	assert.Contains(t, errs, "status")
}

func TestAccount(t *testing.T) {
	errs := Account(map[string]string{
		"username": "admin", "password": "123", "full_name": "Admin User", "gender": "male", "role": "admin",
	})
	assert.Equal(t, map[string]string{"password": "must be at least 6 characters"}, errs)
}

func TestMedicalRecord(t *testing.T) {
	errs := MedicalRecord(map[string]string{"patient_id": "1", "doctor_id": "2", "visit_date": "2024-06-01"})
	assert.Equal(t, map[string]string{"diagnosis": reasonRequired}, errs)
}

func TestForUpdate(t *testing.T) {
	stored := map[string]string{"first_name": "Nguyen", "phone": "0912345678"}
	merged := ForUpdate(stored, map[string]string{"phone": "bad"})

	assert.Equal(t, "Nguyen", merged["first_name"])
	assert.Equal(t, "bad", merged["phone"])
	assert.Equal(t, "0912345678", stored["phone"])
}
