// Package clinical contains handlers, services and structures used to record
// treatments and browse patient visit history.
package clinical

import (
	"context"
	"fmt"
	"hospital-management/internal/apierrors"
	"hospital-management/internal/auth"
	"hospital-management/internal/configs"
	"hospital-management/internal/database"
	"hospital-management/internal/scheduling"
	"net/http"

	"github.com/google/uuid"
)

// Recorder determines the methods used by doctors to record visit outcomes.
type Recorder interface {

	// RecordTreatment records the outcome of a scheduled appointment and
	// completes it.
	RecordTreatment(ctx context.Context, user auth.User, appointmentUUID uuid.UUID, request TreatmentRequest) (*Treatment, error)
}

// HistoryReader determines the methods used to browse patient history.
type HistoryReader interface {

	// GetPatientHistory returns the patient's completed visits.
	GetPatientHistory(ctx context.Context, user auth.User, patientUUID uuid.UUID) ([]*Visit, error)
}

// Service determines the methods used to manage clinical records.
type Service interface {
	Recorder
	HistoryReader
}

type defaultService struct {
	repository Repository
	config     configs.Config
}

// NewService creates a new clinical service.
func NewService(config configs.Config, dbConn database.Connection) Service {
	return &defaultService{
		config:     config,
		repository: newRepository(dbConn),
	}
}

func (d defaultService) RecordTreatment(ctx context.Context, user auth.User, appointmentUUID uuid.UUID, request TreatmentRequest) (*Treatment, error) {
	doctor, err := d.repository.FindDoctorByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if doctor == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrOnlyDoctorCanRecordVisit), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	if err = request.Validate(); err != nil {
		return nil, err
	}
	appointment, err := d.repository.FindAppointmentByUUID(ctx, appointmentUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if appointment == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrAppointmentNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	if appointment.DoctorID != doctor.ID {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrNotAppointmentDoctor), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	if !appointment.Status.CanTransitionTo(scheduling.StatusCompleted) {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrOnlyScheduledCanBeCompleted), apierrors.WithHTTPStatusCode(http.StatusConflict))
	}
	treatment := Treatment{
		UUID:          uuid.New(),
		AppointmentID: appointment.ID,
		Diagnosis:     request.Diagnosis,
		Prescription:  request.Prescription,
		Notes:         request.Notes,
		VisitType:     request.VisitType,
		TestsDone:     request.TestsDone,
	}
	if err = d.repository.InsertTreatment(ctx, treatment); err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return &treatment, nil
}

func (d defaultService) GetPatientHistory(ctx context.Context, user auth.User, patientUUID uuid.UUID) ([]*Visit, error) {
	if user.Role != auth.AdminRole {
		doctor, err := d.repository.FindDoctorByUserID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("an unexpected error occurred: %w", err)
		}
		if doctor == nil {
			return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrHistoryNotAllowed), apierrors.WithHTTPStatusCode(http.StatusForbidden))
		}
	}
	patient, err := d.repository.FindPatientByUUID(ctx, patientUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if patient == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrPatientNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	return d.repository.ListPatientHistory(ctx, patient.ID)
}
