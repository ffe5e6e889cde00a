package entities

import "github.com/CoderFake/healthcare-system/pkg/utils"

// Role is the permission level of an account
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
	RoleStaff  Role = "staff"
)

// Account is a login identity keyed by username
type Account struct {
	Username     string  `json:"username" db:"username"`
	PasswordHash string  `json:"-" db:"password_hash"`
	FullName     string  `json:"full_name" db:"full_name"`
	Gender       string  `json:"gender" db:"gender"`
	Role         Role    `json:"role" db:"role"`
	Phone        *string `json:"phone,omitempty" db:"phone"`
	Email        *string `json:"email,omitempty" db:"email"`
	CreatedAt    *string `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt    *string `json:"updated_at,omitempty" db:"updated_at"`
}

// NewAccountFromFields builds an account; the "password" key holds the plaintext
func NewAccountFromFields(f Fields) (*Account, error) {
	a := &Account{}
	if err := a.Apply(f); err != nil {
		return nil, err
	}
	return a, nil
}

// Apply overwrites the provided fields only
func (a *Account) Apply(f Fields) error {
	return fieldSetters{
		"username":  setString(&a.Username),
		"full_name": setString(&a.FullName),
		"gender":    setString(&a.Gender),
		"role": func(v string) error {
			return setString((*string)(&a.Role))(v)
		},
		"phone": setOptString(&a.Phone),
		"email": setOptString(&a.Email),
		"password": func(v string) error {
			a.SetPassword(v)
			return nil
		},
	}.apply(f)
}

// SetPassword stores a fresh salted hash of plain
func (a *Account) SetPassword(plain string) {
	a.PasswordHash = utils.HashPassword(plain)
}

// CheckPassword reports whether plain matches the stored hash
func (a *Account) CheckPassword(plain string) bool {
	return utils.CheckPassword(plain, a.PasswordHash)
}

func (a *Account) IsAdmin() bool  { return a.Role == RoleAdmin }
func (a *Account) IsDoctor() bool { return a.Role == RoleDoctor }
func (a *Account) IsStaff() bool  { return a.Role == RoleStaff }

func (a *Account) TableName() string     { return "accounts" }
func (a *Account) PrimaryKey() string    { return "username" }
func (a *Account) KeyValue() interface{} { return a.Username }
func (a *Account) HasKey() bool          { return a.Username != "" }

func (a *Account) Values() map[string]interface{} {
	return map[string]interface{}{
		"password_hash": a.PasswordHash,
		"full_name":     a.FullName,
		"gender":        a.Gender,
		"role":          string(a.Role),
		"phone":         optValue(a.Phone),
		"email":         optValue(a.Email),
	}
}

func (a *Account) Columns() []string {
	return withTimestamps("username", "full_name", "gender", "role", "phone", "email")
}
