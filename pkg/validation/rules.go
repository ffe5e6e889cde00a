// Package validation holds the field and record rules applied before any write.
// Every function is pure; record validators return field -> reason, empty when valid.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	nationalIDPattern = regexp.MustCompile(`^\d{9}(\d{3})?$`)
	phonePattern      = regexp.MustCompile(`^(\+84|0)\d{9,10}$`)
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern   = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	nameForbidden     = regexp.MustCompile("[0-9!@#$%^&*()_+={}\\[\\]:;\"'<>,.?/\\\\|~`]")
)

// Genders accepted by Gender
var Genders = []string{"male", "female"}

// BloodTypes accepted by BloodType
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// AppointmentStatuses accepted by AppointmentStatus
var AppointmentStatuses = []string{"waiting", "in-progress", "completed", "cancelled"}

// Roles accepted by Role
var Roles = []string{"admin", "doctor", "staff"}

// Required reports whether value has non-blank content
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// NationalID accepts 9 or 12 digits
func NationalID(value string) bool {
	return nationalIDPattern.MatchString(strings.TrimSpace(value))
}

// Phone accepts an empty value or a local/international mobile number
func Phone(value string) bool {
	if !Required(value) {
		return true
	}
	return phonePattern.MatchString(strings.TrimSpace(value))
}

// Date accepts YYYY-MM-DD
func Date(value string) bool {
	return canonical("2006-01-02", value)
}

// Time accepts zero-padded HH:MM. "9:00" is rejected so that equal times
// always compare equal as stored strings.
func Time(value string) bool {
	return canonical("15:04", value)
}

// canonical reports whether value parses with layout and formats back unchanged
func canonical(layout, value string) bool {
	if !Required(value) {
		return false
	}
	t, err := time.Parse(layout, value)
	return err == nil && t.Format(layout) == value
}

// Gender accepts one of Genders
func Gender(value string) bool {
	return oneOf(strings.TrimSpace(value), Genders)
}

// Name accepts 2 to 50 characters without digits or punctuation
func Name(value string) bool {
	v := strings.TrimSpace(value)
	n := utf8.RuneCountInString(v)
	if n < 2 || n > 50 {
		return false
	}
	return !nameForbidden.MatchString(v)
}

// Email accepts an empty value or a standard address
func Email(value string) bool {
	if !Required(value) {
		return true
	}
	return emailPattern.MatchString(strings.TrimSpace(value))
}

// Password requires at least 6 characters
func Password(value string) bool {
	return utf8.RuneCountInString(value) >= 6
}

// Username accepts 4 to 20 letters, digits or underscores
func Username(value string) bool {
	v := strings.TrimSpace(value)
	if len(v) < 4 || len(v) > 20 {
		return false
	}
	return usernamePattern.MatchString(v)
}

// Height accepts an empty value or 50..250 cm
func Height(value string) bool {
	return inRange(value, 50, 250)
}

// Weight accepts an empty value or 1..500 kg
func Weight(value string) bool {
	return inRange(value, 1, 500)
}

// BloodType accepts an empty value or one of BloodTypes
func BloodType(value string) bool {
	if !Required(value) {
		return true
	}
	return oneOf(strings.TrimSpace(value), BloodTypes)
}

// AppointmentStatus accepts one of AppointmentStatuses
func AppointmentStatus(value string) bool {
	return oneOf(value, AppointmentStatuses)
}

// Role accepts one of Roles
func Role(value string) bool {
	return oneOf(value, Roles)
}

func inRange(value string, min, max float64) bool {
	if !Required(value) {
		return true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false
	}
	return f >= min && f <= max
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
