package entities

// Doctor represents a practitioner who can be booked
type Doctor struct {
	ID             int64   `json:"id" db:"id"`
	FirstName      string  `json:"first_name" db:"first_name"`
	LastName       string  `json:"last_name" db:"last_name"`
	NationalID     string  `json:"national_id" db:"national_id"`
	Gender         string  `json:"gender" db:"gender"`
	BirthDate      string  `json:"birth_date" db:"birth_date"`
	Phone          *string `json:"phone,omitempty" db:"phone"`
	Specialty      string  `json:"specialty" db:"specialty"`
	Email          *string `json:"email,omitempty" db:"email"`
	Address        *string `json:"address,omitempty" db:"address"`
	Qualifications *string `json:"qualifications,omitempty" db:"qualifications"`
	Notes          *string `json:"notes,omitempty" db:"notes"`
	Username       *string `json:"username,omitempty" db:"username"`
	CreatedAt      *string `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt      *string `json:"updated_at,omitempty" db:"updated_at"`
}

// NewDoctorFromFields builds a doctor from a form field map
func NewDoctorFromFields(f Fields) (*Doctor, error) {
	d := &Doctor{}
	if err := d.Apply(f); err != nil {
		return nil, err
	}
	return d, nil
}

// Apply overwrites the provided fields only
func (d *Doctor) Apply(f Fields) error {
	return fieldSetters{
		"id":             setInt64(&d.ID),
		"first_name":     setString(&d.FirstName),
		"last_name":      setString(&d.LastName),
		"national_id":    setString(&d.NationalID),
		"gender":         setString(&d.Gender),
		"birth_date":     setString(&d.BirthDate),
		"phone":          setOptString(&d.Phone),
		"specialty":      setString(&d.Specialty),
		"email":          setOptString(&d.Email),
		"address":        setOptString(&d.Address),
		"qualifications": setOptString(&d.Qualifications),
		"notes":          setOptString(&d.Notes),
		"username":       setOptString(&d.Username),
	}.apply(f)
}

// ToFields renders the stored values as a form field map
func (d *Doctor) ToFields() Fields {
	return Fields{
		"first_name":     d.FirstName,
		"last_name":      d.LastName,
		"national_id":    d.NationalID,
		"gender":         d.Gender,
		"birth_date":     d.BirthDate,
		"phone":          optString(d.Phone),
		"specialty":      d.Specialty,
		"email":          optString(d.Email),
		"address":        optString(d.Address),
		"qualifications": optString(d.Qualifications),
		"notes":          optString(d.Notes),
		"username":       optString(d.Username),
	}
}

// FullName joins the name parts
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

func (d *Doctor) TableName() string     { return "doctors" }
func (d *Doctor) PrimaryKey() string    { return "id" }
func (d *Doctor) KeyValue() interface{} { return d.ID }
func (d *Doctor) HasKey() bool          { return d.ID != 0 }
func (d *Doctor) SetID(id int64)        { d.ID = id }

func (d *Doctor) Values() map[string]interface{} {
	return map[string]interface{}{
		"first_name":     d.FirstName,
		"last_name":      d.LastName,
		"national_id":    d.NationalID,
		"gender":         d.Gender,
		"birth_date":     d.BirthDate,
		"phone":          optValue(d.Phone),
		"specialty":      d.Specialty,
		"email":          optValue(d.Email),
		"address":        optValue(d.Address),
		"qualifications": optValue(d.Qualifications),
		"notes":          optValue(d.Notes),
		"username":       optValue(d.Username),
	}
}

func (d *Doctor) Columns() []string {
	return withTimestamps("id", "first_name", "last_name", "national_id", "gender", "birth_date",
		"phone", "specialty", "email", "address", "qualifications", "notes", "username")
}
