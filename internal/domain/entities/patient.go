package entities

import (
	"time"

	"github.com/CoderFake/healthcare-system/pkg/utils"
)

// Patient represents a person registered at the clinic
type Patient struct {
	ID             int64    `json:"id" db:"id"`
	FirstName      string   `json:"first_name" db:"first_name"`
	LastName       string   `json:"last_name" db:"last_name"`
	NationalID     string   `json:"national_id" db:"national_id"`
	Gender         string   `json:"gender" db:"gender"`
	BirthDate      string   `json:"birth_date" db:"birth_date"`
	Phone          *string  `json:"phone,omitempty" db:"phone"`
	Hometown       *string  `json:"hometown,omitempty" db:"hometown"`
	Address        *string  `json:"address,omitempty" db:"address"`
	Email          *string  `json:"email,omitempty" db:"email"`
	Notes          *string  `json:"notes,omitempty" db:"notes"`
	BloodType      *string  `json:"blood_type,omitempty" db:"blood_type"`
	Height         *float64 `json:"height,omitempty" db:"height"`
	Weight         *float64 `json:"weight,omitempty" db:"weight"`
	MedicalHistory *string  `json:"medical_history,omitempty" db:"medical_history"`
	Allergies      *string  `json:"allergies,omitempty" db:"allergies"`
	CreatedAt      *string  `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt      *string  `json:"updated_at,omitempty" db:"updated_at"`
}

// NewPatientFromFields builds a patient from a form field map
func NewPatientFromFields(f Fields) (*Patient, error) {
	p := &Patient{}
	if err := p.Apply(f); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply overwrites the provided fields only
func (p *Patient) Apply(f Fields) error {
	return fieldSetters{
		"id":              setInt64(&p.ID),
		"first_name":      setString(&p.FirstName),
		"last_name":       setString(&p.LastName),
		"national_id":     setString(&p.NationalID),
		"gender":          setString(&p.Gender),
		"birth_date":      setString(&p.BirthDate),
		"phone":           setOptString(&p.Phone),
		"hometown":        setOptString(&p.Hometown),
		"address":         setOptString(&p.Address),
		"email":           setOptString(&p.Email),
		"notes":           setOptString(&p.Notes),
		"blood_type":      setOptString(&p.BloodType),
		"height":          setOptFloat(&p.Height),
		"weight":          setOptFloat(&p.Weight),
		"medical_history": setOptString(&p.MedicalHistory),
		"allergies":       setOptString(&p.Allergies),
	}.apply(f)
}

// ToFields renders the stored values as a form field map
func (p *Patient) ToFields() Fields {
	return Fields{
		"first_name":      p.FirstName,
		"last_name":       p.LastName,
		"national_id":     p.NationalID,
		"gender":          p.Gender,
		"birth_date":      p.BirthDate,
		"phone":           optString(p.Phone),
		"hometown":        optString(p.Hometown),
		"address":         optString(p.Address),
		"email":           optString(p.Email),
		"notes":           optString(p.Notes),
		"blood_type":      optString(p.BloodType),
		"height":          optFloat(p.Height),
		"weight":          optFloat(p.Weight),
		"medical_history": optString(p.MedicalHistory),
		"allergies":       optString(p.Allergies),
	}
}

// FullName joins the name parts
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Age returns the calendar age at asOf
func (p *Patient) Age(asOf time.Time) (int, error) {
	return utils.AgeFromString(p.BirthDate, asOf)
}

func (p *Patient) TableName() string     { return "patients" }
func (p *Patient) PrimaryKey() string    { return "id" }
func (p *Patient) KeyValue() interface{} { return p.ID }
func (p *Patient) HasKey() bool          { return p.ID != 0 }
func (p *Patient) SetID(id int64)        { p.ID = id }

func (p *Patient) Values() map[string]interface{} {
	return map[string]interface{}{
		"first_name":      p.FirstName,
		"last_name":       p.LastName,
		"national_id":     p.NationalID,
		"gender":          p.Gender,
		"birth_date":      p.BirthDate,
		"phone":           optValue(p.Phone),
		"hometown":        optValue(p.Hometown),
		"address":         optValue(p.Address),
		"email":           optValue(p.Email),
		"notes":           optValue(p.Notes),
		"blood_type":      optValue(p.BloodType),
		"height":          optValue(p.Height),
		"weight":          optValue(p.Weight),
		"medical_history": optValue(p.MedicalHistory),
		"allergies":       optValue(p.Allergies),
	}
}

func (p *Patient) Columns() []string {
	return withTimestamps("id", "first_name", "last_name", "national_id", "gender", "birth_date",
		"phone", "hometown", "address", "email", "notes", "blood_type", "height", "weight",
		"medical_history", "allergies")
}
