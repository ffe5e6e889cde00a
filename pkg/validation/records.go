package validation

const (
	reasonRequired = "is required"
)

type fieldCheck struct {
	field  string
	check  func(string) bool
	reason string
}

var personChecks = []fieldCheck{
	{field: "national_id", check: NationalID, reason: "must be 9 or 12 digits"},
	{field: "phone", check: Phone, reason: "must start with 0 or +84 followed by 9-10 digits"},
	{field: "gender", check: Gender, reason: "must be male or female"},
	{field: "birth_date", check: Date, reason: "must be a date in YYYY-MM-DD format"},
	{field: "first_name", check: Name, reason: "must be 2-50 characters without digits or punctuation"},
	{field: "last_name", check: Name, reason: "must be 2-50 characters without digits or punctuation"},
	{field: "email", check: Email, reason: "is not a valid email address"},
}

// Patient validates a patient field map
func Patient(data map[string]string) map[string]string {
	errs := requireFields(data, "first_name", "last_name", "national_id", "gender", "birth_date")
	apply(errs, data, personChecks)
	apply(errs, data, []fieldCheck{
		{field: "height", check: Height, reason: "must be between 50 and 250 cm"},
		{field: "weight", check: Weight, reason: "must be between 1 and 500 kg"},
		{field: "blood_type", check: BloodType, reason: "must be one of A+, A-, B+, B-, AB+, AB-, O+, O-"},
	})
	return errs
}

// Doctor validates a doctor field map
func Doctor(data map[string]string) map[string]string {
	errs := requireFields(data, "first_name", "last_name", "national_id", "gender", "birth_date", "specialty")
	apply(errs, data, personChecks)
	apply(errs, data, []fieldCheck{
		{field: "username", check: Username, reason: "must be 4-20 letters, digits or underscores"},
	})
	return errs
}

// Appointment validates an appointment field map
func Appointment(data map[string]string) map[string]string {
	errs := requireFields(data, "patient_id", "doctor_id", "date", "time")
	apply(errs, data, []fieldCheck{
		{field: "date", check: Date, reason: "must be a date in YYYY-MM-DD format"},
		{field: "time", check: Time, reason: "must be a time in HH:MM format"},
		{field: "status", check: AppointmentStatus, reason: "must be one of waiting, in-progress, completed, cancelled"},
	})
	return errs
}

// Account validates an account field map; "password" carries the plaintext
func Account(data map[string]string) map[string]string {
	errs := requireFields(data, "username", "password", "full_name", "gender", "role")
	apply(errs, data, []fieldCheck{
		{field: "username", check: Username, reason: "must be 4-20 letters, digits or underscores"},
		{field: "password", check: Password, reason: "must be at least 6 characters"},
		{field: "full_name", check: Name, reason: "must be 2-50 characters without digits or punctuation"},
		{field: "gender", check: Gender, reason: "must be male or female"},
		{field: "role", check: Role, reason: "must be admin, doctor or staff"},
		{field: "phone", check: Phone, reason: "must start with 0 or +84 followed by 9-10 digits"},
		{field: "email", check: Email, reason: "is not a valid email address"},
	})
	return errs
}

// MedicalRecord validates a medical record field map
func MedicalRecord(data map[string]string) map[string]string {
	errs := requireFields(data, "patient_id", "doctor_id", "visit_date", "diagnosis")
	apply(errs, data, []fieldCheck{
		{field: "visit_date", check: Date, reason: "must be a date in YYYY-MM-DD format"},
	})
	return errs
}

// ForUpdate overlays update on the stored field map so a partial update is
// validated as the record it will become.
func ForUpdate(stored, update map[string]string) map[string]string {
	merged := make(map[string]string, len(stored)+len(update))
	for k, v := range stored {
		merged[k] = v
	}
	for k, v := range update {
		merged[k] = v
	}
	return merged
}

func requireFields(data map[string]string, fields ...string) map[string]string {
	errs := map[string]string{}
	for _, f := range fields {
		if !Required(data[f]) {
			errs[f] = reasonRequired
		}
	}
	return errs
}

func apply(errs, data map[string]string, checks []fieldCheck) {
	for _, c := range checks {
		value, ok := data[c.field]
		if !ok || !Required(value) {
			// blanks on required fields were reported by requireFields
			continue
		}
		if !c.check(value) {
			errs[c.field] = c.reason
		}
	}
}
