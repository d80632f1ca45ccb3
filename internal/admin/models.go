package admin

import (
	"hospital-management/internal/apierrors"
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID          int64     `json:"-" dbfield:"id"`
	UUID        uuid.UUID `json:"uuid" dbfield:"uuid"`
	Name        string    `json:"name" dbfield:"name"`
	Description *string   `json:"description" dbfield:"description"`
}

// DepartmentRequest holds the data needed to create or update a department.
type DepartmentRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Validate checks if the given request is valid.
func (d DepartmentRequest) Validate() error {
	if d.Name == "" {
		return apierrors.NewValidationError("name", "required")
	}
	return nil
}

// DepartmentView is a department together with its assigned doctors.
type DepartmentView struct {
	Department
	Doctors []*Doctor `json:"doctors"`
}

type Doctor struct {
	ID             int64     `json:"-" dbfield:"id"`
	UUID           uuid.UUID `json:"uuid" dbfield:"uuid"`
	FullName       string    `json:"full_name" dbfield:"full_name"`
	Qualification  *string   `json:"qualification,omitempty" dbfield:"qualification"`
	DepartmentName *string   `json:"department,omitempty" dbfield:"department_name"`
}

type Patient struct {
	ID       int64     `json:"-" dbfield:"id"`
	UUID     uuid.UUID `json:"uuid" dbfield:"uuid"`
	UserID   int64     `json:"-" dbfield:"user_id"`
	FullName string    `json:"full_name" dbfield:"full_name"`
	Phone    *string   `json:"phone,omitempty" dbfield:"phone"`
	Address  *string   `json:"address,omitempty" dbfield:"address"`
	Age      *int32    `json:"age,omitempty" dbfield:"age"`
}

// DoctorRegistration holds the data needed by an admin to register a doctor.
type DoctorRegistration struct {
	Username       string     `json:"username"`
	Password       string     `json:"password"`
	FullName       string     `json:"full_name"`
	Qualification  *string    `json:"qualification,omitempty"`
	DepartmentUUID *uuid.UUID `json:"department_uuid,omitempty"`
}

// Validate checks if the given registration is valid.
func (d DoctorRegistration) Validate() error {
	if d.Username == "" {
		return apierrors.NewValidationError("username", "required")
	}
	if d.Password == "" {
		return apierrors.NewValidationError("password", "required")
	}
	if d.FullName == "" {
		return apierrors.NewValidationError("full_name", "required")
	}
	return nil
}

// DoctorUpdate holds the doctor fields an admin may change.
type DoctorUpdate struct {
	FullName       string     `json:"full_name"`
	Qualification  *string    `json:"qualification,omitempty"`
	DepartmentUUID *uuid.UUID `json:"department_uuid,omitempty"`
}

// Validate checks if the given update is valid.
func (d DoctorUpdate) Validate() error {
	if d.FullName == "" {
		return apierrors.NewValidationError("full_name", "required")
	}
	return nil
}

// PatientUpdate holds the patient fields an admin may change.
type PatientUpdate struct {
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	Age      *int32  `json:"age,omitempty"`
}

// Validate checks if the given update is valid.
func (p PatientUpdate) Validate() error {
	if p.FullName == "" {
		return apierrors.NewValidationError("full_name", "required")
	}
	if p.Age != nil && *p.Age < 0 {
		return apierrors.NewValidationError("age", "invalid")
	}
	return nil
}

// AppointmentRecord is an appointment as listed on the admin dashboard.
type AppointmentRecord struct {
	UUID        uuid.UUID `json:"uuid" dbfield:"uuid"`
	DoctorName  string    `json:"doctor_name" dbfield:"doctor_name"`
	PatientName string    `json:"patient_name" dbfield:"patient_name"`
	Date        time.Time `json:"date" dbfield:"date"`
	Time        string    `json:"time" dbfield:"time"`
	Status      string    `json:"status" dbfield:"status"`
}

// DepartmentStat counts the appointments booked against a department's doctors.
type DepartmentStat struct {
	Name         string `json:"name" dbfield:"name"`
	Appointments int64  `json:"appointments" dbfield:"appointments"`
}

// Dashboard aggregates the figures shown on the admin landing page.
type Dashboard struct {
	Doctors         int64                `json:"doctors"`
	Patients        int64                `json:"patients"`
	Appointments    int64                `json:"appointments"`
	DepartmentStats []*DepartmentStat    `json:"department_stats"`
	Recent          []*AppointmentRecord `json:"recent_appointments"`
}
