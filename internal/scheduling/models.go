package scheduling

import (
	"hospital-management/internal/apierrors"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used on the wire and in slot keys.
const DateLayout = "2006-01-02"

// ClockLayout is the canonical wall-clock format of availability and appointment times.
const ClockLayout = "15:04:05"

var dayNames = map[string]bool{
	"Monday":    true,
	"Tuesday":   true,
	"Wednesday": true,
	"Thursday":  true,
	"Friday":    true,
	"Saturday":  true,
	"Sunday":    true,
}

type Doctor struct {
	ID            int64     `json:"-" dbfield:"id"`
	UUID          uuid.UUID `json:"uuid" dbfield:"uuid"`
	UserID        int64     `json:"-" dbfield:"user_id"`
	DepartmentID  *int64    `json:"-" dbfield:"department_id"`
	FullName      string    `json:"full_name" dbfield:"full_name"`
	Qualification *string   `json:"qualification,omitempty" dbfield:"qualification"`
}

type Patient struct {
	ID       int64     `json:"-" dbfield:"id"`
	UUID     uuid.UUID `json:"uuid" dbfield:"uuid"`
	UserID   int64     `json:"-" dbfield:"user_id"`
	FullName string    `json:"full_name" dbfield:"full_name"`
}

// WeeklyAvailability is a recurring weekly time window during which a doctor
// accepts appointments.
type WeeklyAvailability struct {
	ID        int64     `json:"-" dbfield:"id"`
	UUID      uuid.UUID `json:"uuid" dbfield:"uuid"`
	DoctorID  int64     `json:"-" dbfield:"doctor_id"`
	DayOfWeek string    `json:"day_of_week" dbfield:"day_of_week"`
	StartTime string    `json:"start_time" dbfield:"start_time"`
	EndTime   string    `json:"end_time" dbfield:"end_time"`
}

type Appointment struct {
	ID          int64     `json:"-" dbfield:"id"`
	UUID        uuid.UUID `json:"uuid" dbfield:"uuid"`
	DoctorID    int64     `json:"-" dbfield:"doctor_id"`
	PatientID   int64     `json:"-" dbfield:"patient_id"`
	DoctorName  string    `json:"doctor_name,omitempty" dbfield:"doctor_name"`
	PatientName string    `json:"patient_name,omitempty" dbfield:"patient_name"`
	Date        time.Time `json:"date" dbfield:"date"`
	Time        string    `json:"time" dbfield:"time"`
	Status      Status    `json:"status" dbfield:"status"`
}

// AvailabilityRequest holds the data needed to create a weekly availability entry.
type AvailabilityRequest struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Validate checks if the given request is valid. Overlaps with existing entries
// are not checked.
func (a AvailabilityRequest) Validate() error {
	if !dayNames[a.DayOfWeek] {
		return apierrors.NewValidationError("day_of_week", "must be a weekday name - e.g. Monday")
	}
	start, err := ParseClock(a.StartTime)
	if err != nil {
		return apierrors.NewValidationError("start_time", "invalid time - e.g. 09:00:00")
	}
	end, err := ParseClock(a.EndTime)
	if err != nil {
		return apierrors.NewValidationError("end_time", "invalid time - e.g. 09:30:00")
	}
	if end <= start {
		return apierrors.NewValidationError("end_time", "must be after start_time")
	}
	return nil
}

// BookingRequest holds the slot selection sent by a patient.
type BookingRequest struct {
	DoctorUUID uuid.UUID `json:"doctor_uuid"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
}

// RescheduleRequest holds the new slot selection for an existing appointment.
type RescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// ParseClock parses a wall-clock value and returns it in the canonical HH:MM:SS form.
func ParseClock(value string) (string, error) {
	for _, layout := range []string{ClockLayout, "15:04"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format(ClockLayout), nil
		}
	}
	return "", apierrors.NewValidationError("time", "invalid time - e.g. 09:00:00")
}

// parseSlot parses a date and time pair into a calendar date and a canonical clock value.
func parseSlot(dateValue string, timeValue string) (time.Time, string, error) {
	var zeroTime time.Time
	date, err := time.Parse(DateLayout, dateValue)
	if err != nil {
		return zeroTime, "", apierrors.NewValidationError("date", "invalid date - e.g. 2021-08-10")
	}
	clock, err := ParseClock(timeValue)
	if err != nil {
		return zeroTime, "", err
	}
	return date, clock, nil
}
