package clinical

import (
	"hospital-management/internal/apierrors"
	"time"

	"github.com/google/uuid"
)

type Treatment struct {
	ID            int64     `json:"-" dbfield:"id"`
	UUID          uuid.UUID `json:"uuid" dbfield:"uuid"`
	AppointmentID int64     `json:"-" dbfield:"appointment_id"`
	Diagnosis     string    `json:"diagnosis" dbfield:"diagnosis"`
	Prescription  string    `json:"prescription" dbfield:"prescription"`
	Notes         *string   `json:"notes,omitempty" dbfield:"notes"`
	VisitType     *string   `json:"visit_type,omitempty" dbfield:"visit_type"`
	TestsDone     *string   `json:"tests_done,omitempty" dbfield:"tests_done"`
	CreatedAt     time.Time `json:"created_at" dbfield:"created_at"`
}

// TreatmentRequest holds the data recorded by a doctor after a visit.
type TreatmentRequest struct {
	Diagnosis    string  `json:"diagnosis"`
	Prescription string  `json:"prescription"`
	Notes        *string `json:"notes,omitempty"`
	VisitType    *string `json:"visit_type,omitempty"`
	TestsDone    *string `json:"tests_done,omitempty"`
}

// Validate checks if the given request is valid.
func (t TreatmentRequest) Validate() error {
	if t.Diagnosis == "" {
		return apierrors.NewValidationError("diagnosis", "required")
	}
	if t.Prescription == "" {
		return apierrors.NewValidationError("prescription", "required")
	}
	return nil
}

// Visit is a completed appointment joined with its recorded treatment, as shown
// in a patient's history.
type Visit struct {
	AppointmentUUID uuid.UUID `json:"appointment_uuid" dbfield:"appointment_uuid"`
	DoctorName      string    `json:"doctor_name" dbfield:"doctor_name"`
	Date            time.Time `json:"date" dbfield:"date"`
	Time            string    `json:"time" dbfield:"time"`
	Diagnosis       *string   `json:"diagnosis,omitempty" dbfield:"diagnosis"`
	Prescription    *string   `json:"prescription,omitempty" dbfield:"prescription"`
	Notes           *string   `json:"notes,omitempty" dbfield:"notes"`
	VisitType       *string   `json:"visit_type,omitempty" dbfield:"visit_type"`
	TestsDone       *string   `json:"tests_done,omitempty" dbfield:"tests_done"`
}
