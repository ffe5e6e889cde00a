package entities

import "fmt"

// MedicalRecord is the outcome of a visit
type MedicalRecord struct {
	ID            int64   `json:"id" db:"id"`
	PatientID     int64   `json:"patient_id" db:"patient_id"`
	DoctorID      int64   `json:"doctor_id" db:"doctor_id"`
	VisitDate     string  `json:"visit_date" db:"visit_date"`
	Diagnosis     string  `json:"diagnosis" db:"diagnosis"`
	Symptoms      *string `json:"symptoms,omitempty" db:"symptoms"`
	TreatmentPlan *string `json:"treatment_plan,omitempty" db:"treatment_plan"`
	Prescription  *string `json:"prescription,omitempty" db:"prescription"`
	Conclusion    *string `json:"conclusion,omitempty" db:"conclusion"`
	Notes         *string `json:"notes,omitempty" db:"notes"`
	CreatedAt     *string `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt     *string `json:"updated_at,omitempty" db:"updated_at"`
}

// MedicalRecordDetail is a medical record joined with display names
type MedicalRecordDetail struct {
	MedicalRecord
	PatientName string `json:"patient_name" db:"patient_name"`
	DoctorName  string `json:"doctor_name" db:"doctor_name"`
	Specialty   string `json:"specialty" db:"specialty"`
}

// NewMedicalRecordFromFields builds a medical record from a form field map
func NewMedicalRecordFromFields(f Fields) (*MedicalRecord, error) {
	r := &MedicalRecord{}
	if err := r.Apply(f); err != nil {
		return nil, err
	}
	return r, nil
}

// NewMedicalRecordFromAppointment copies patient, doctor and date from a and
// notes where the record came from.
func NewMedicalRecordFromAppointment(a *Appointment, diagnosis string) *MedicalRecord {
	note := fmt.Sprintf("Created from appointment #%d", a.ID)
	return &MedicalRecord{
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		VisitDate: a.Date,
		Diagnosis: diagnosis,
		Notes:     &note,
	}
}

// Apply overwrites the provided fields only
func (r *MedicalRecord) Apply(f Fields) error {
	return fieldSetters{
		"id":             setInt64(&r.ID),
		"patient_id":     setInt64(&r.PatientID),
		"doctor_id":      setInt64(&r.DoctorID),
		"visit_date":     setString(&r.VisitDate),
		"diagnosis":      setString(&r.Diagnosis),
		"symptoms":       setOptString(&r.Symptoms),
		"treatment_plan": setOptString(&r.TreatmentPlan),
		"prescription":   setOptString(&r.Prescription),
		"conclusion":     setOptString(&r.Conclusion),
		"notes":          setOptString(&r.Notes),
	}.apply(f)
}

// ToFields renders the stored values as a form field map
func (r *MedicalRecord) ToFields() Fields {
	return Fields{
		"patient_id":     formatID(r.PatientID),
		"doctor_id":      formatID(r.DoctorID),
		"visit_date":     r.VisitDate,
		"diagnosis":      r.Diagnosis,
		"symptoms":       optString(r.Symptoms),
		"treatment_plan": optString(r.TreatmentPlan),
		"prescription":   optString(r.Prescription),
		"conclusion":     optString(r.Conclusion),
		"notes":          optString(r.Notes),
	}
}

func (r *MedicalRecord) TableName() string     { return "medical_records" }
func (r *MedicalRecord) PrimaryKey() string    { return "id" }
func (r *MedicalRecord) KeyValue() interface{} { return r.ID }
func (r *MedicalRecord) HasKey() bool          { return r.ID != 0 }
func (r *MedicalRecord) SetID(id int64)        { r.ID = id }

func (r *MedicalRecord) Values() map[string]interface{} {
	return map[string]interface{}{
		"patient_id":     r.PatientID,
		"doctor_id":      r.DoctorID,
		"visit_date":     r.VisitDate,
		"diagnosis":      r.Diagnosis,
		"symptoms":       optValue(r.Symptoms),
		"treatment_plan": optValue(r.TreatmentPlan),
		"prescription":   optValue(r.Prescription),
		"conclusion":     optValue(r.Conclusion),
		"notes":          optValue(r.Notes),
	}
}

func (r *MedicalRecord) Columns() []string {
	return withTimestamps("id", "patient_id", "doctor_id", "visit_date", "diagnosis", "symptoms",
		"treatment_plan", "prescription", "conclusion", "notes")
}
