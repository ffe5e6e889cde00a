package entities

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusWaiting    AppointmentStatus = "waiting"
	AppointmentStatusInProgress AppointmentStatus = "in-progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// Appointment books a patient with a doctor at a date and time of day.
// No two appointments share the same doctor, date and time.
type Appointment struct {
	ID        int64             `json:"id" db:"id"`
	PatientID int64             `json:"patient_id" db:"patient_id"`
	DoctorID  int64             `json:"doctor_id" db:"doctor_id"`
	Date      string            `json:"date" db:"date"`
	Time      string            `json:"time" db:"time"`
	Reason    *string           `json:"reason,omitempty" db:"reason"`
	Status    AppointmentStatus `json:"status" db:"status"`
	CreatedAt *string           `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt *string           `json:"updated_at,omitempty" db:"updated_at"`
}

// AppointmentDetail is an appointment joined with display names
type AppointmentDetail struct {
	Appointment
	PatientName string `json:"patient_name" db:"patient_name"`
	DoctorName  string `json:"doctor_name" db:"doctor_name"`
	Specialty   string `json:"specialty" db:"specialty"`
}

// NewAppointmentFromFields builds an appointment; status defaults to waiting
func NewAppointmentFromFields(f Fields) (*Appointment, error) {
	a := &Appointment{}
	if err := a.Apply(f); err != nil {
		return nil, err
	}
	if a.Status == "" {
		a.Status = AppointmentStatusWaiting
	}
	return a, nil
}

// Apply overwrites the provided fields only
func (a *Appointment) Apply(f Fields) error {
	return fieldSetters{
		"id":         setInt64(&a.ID),
		"patient_id": setInt64(&a.PatientID),
		"doctor_id":  setInt64(&a.DoctorID),
		"date":       setString(&a.Date),
		"time":       setString(&a.Time),
		"reason":     setOptString(&a.Reason),
		"status": func(v string) error {
			return setString((*string)(&a.Status))(v)
		},
	}.apply(f)
}

// ToFields renders the stored values as a form field map
func (a *Appointment) ToFields() Fields {
	return Fields{
		"patient_id": formatID(a.PatientID),
		"doctor_id":  formatID(a.DoctorID),
		"date":       a.Date,
		"time":       a.Time,
		"reason":     optString(a.Reason),
		"status":     string(a.Status),
	}
}

// SameSlot reports whether b occupies the same doctor, date and time
func (a *Appointment) SameSlot(b *Appointment) bool {
	return a.DoctorID == b.DoctorID && a.Date == b.Date && a.Time == b.Time
}

func (a *Appointment) TableName() string     { return "appointments" }
func (a *Appointment) PrimaryKey() string    { return "id" }
func (a *Appointment) KeyValue() interface{} { return a.ID }
func (a *Appointment) HasKey() bool          { return a.ID != 0 }
func (a *Appointment) SetID(id int64)        { a.ID = id }

func (a *Appointment) Values() map[string]interface{} {
	return map[string]interface{}{
		"patient_id": a.PatientID,
		"doctor_id":  a.DoctorID,
		"date":       a.Date,
		"time":       a.Time,
		"reason":     optValue(a.Reason),
		"status":     string(a.Status),
	}
}

func (a *Appointment) Columns() []string {
	return withTimestamps("id", "patient_id", "doctor_id", "date", "time", "reason", "status")
}
