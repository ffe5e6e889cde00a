package utils

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the storage format of calendar dates
	DateLayout = "2006-01-02"
	// TimeLayout is the storage format of appointment times
	TimeLayout = "15:04"
	// TimestampLayout is the storage format of created_at/updated_at
	TimestampLayout = "2006-01-02 15:04:05"
)

// Now returns the current local time formatted as a storage timestamp
func Now() string {
	return time.Now().Format(TimestampLayout)
}

// Today returns the current local date formatted for storage
func Today() string {
	return time.Now().Format(DateLayout)
}

// CalculateAge returns the number of whole years between birthDate and asOf.
// The age only increments once the birthday has been reached in asOf's year.
func CalculateAge(birthDate, asOf time.Time) int {
	age := asOf.Year() - birthDate.Year()
	if asOf.Month() < birthDate.Month() ||
		(asOf.Month() == birthDate.Month() && asOf.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// AgeFromString parses a stored birth date and returns the age at asOf
func AgeFromString(birthDate string, asOf time.Time) (int, error) {
	born, err := time.Parse(DateLayout, birthDate)
	if err != nil {
		return 0, fmt.Errorf("parse birth date %q: %w", birthDate, err)
	}
	return CalculateAge(born, asOf), nil
}

// GenerateTimeSlots lists "HH:MM" slots from startHour:00 up to and including
// the last slot of endHour, stepping by intervalMinutes.
func GenerateTimeSlots(startHour, endHour, intervalMinutes int) []string {
	if intervalMinutes <= 0 || endHour < startHour {
		return nil
	}

	var slots []string
	for minutes := startHour * 60; minutes < (endHour+1)*60; minutes += intervalMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
	}
	return slots
}
