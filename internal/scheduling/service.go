// Package scheduling contains handlers, services and structures used to manage
// doctor availability, slot projection and appointment booking.
package scheduling

import (
	"context"
	"fmt"
	"hospital-management/internal/apierrors"
	"hospital-management/internal/auth"
	"hospital-management/internal/configs"
	"hospital-management/internal/database"
	"hospital-management/internal/metrics"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SlotReader determines the methods available to read projected slots.
type SlotReader interface {

	// GetDoctorSlots returns the doctor's bookable slots over the booking horizon.
	GetDoctorSlots(ctx context.Context, user auth.User, doctorUUID uuid.UUID) ([]ProjectedSlot, error)

	// GetRescheduleSlots returns the slots available to move the given
	// appointment to, with the appointment's own slot offered back as free.
	GetRescheduleSlots(ctx context.Context, user auth.User, appointmentUUID uuid.UUID) ([]ProjectedSlot, error)
}

// Booker determines the methods used to book and move appointments.
type Booker interface {

	// Book books the given slot for the authenticated patient.
	Book(ctx context.Context, user auth.User, request BookingRequest) (*Appointment, error)

	// Reschedule moves the given appointment to a new slot and revives it to SCHEDULED.
	Reschedule(ctx context.Context, user auth.User, appointmentUUID uuid.UUID, request RescheduleRequest) (*Appointment, error)
}

// Canceller determines the methods used to cancel appointments.
type Canceller interface {

	// CancelByPatient cancels a scheduled appointment owned by the authenticated patient.
	CancelByPatient(ctx context.Context, user auth.User, appointmentUUID uuid.UUID) error

	// CancelByDoctor cancels any appointment assigned to the authenticated doctor.
	CancelByDoctor(ctx context.Context, user auth.User, appointmentUUID uuid.UUID) error
}

// AvailabilityManager determines the methods used by doctors to manage their
// recurring weekly availability.
type AvailabilityManager interface {

	// AddAvailability adds a weekly availability entry to the authenticated doctor.
	AddAvailability(ctx context.Context, user auth.User, request AvailabilityRequest) (*WeeklyAvailability, error)

	// ListAvailability lists the authenticated doctor's weekly availability.
	ListAvailability(ctx context.Context, user auth.User) ([]*WeeklyAvailability, error)
}

// AppointmentReader determines the methods available to list appointments.
type AppointmentReader interface {

	// ListPatientAppointments lists the authenticated patient's appointments.
	ListPatientAppointments(ctx context.Context, user auth.User) ([]*Appointment, error)

	// ListDoctorAppointments lists the authenticated doctor's appointments.
	ListDoctorAppointments(ctx context.Context, user auth.User) ([]*Appointment, error)
}

// Service determines the methods used to manage scheduling.
type Service interface {
	SlotReader
	Booker
	Canceller
	AvailabilityManager
	AppointmentReader
}

type defaultService struct {
	repository Repository
	config     configs.Config
	now        func() time.Time
}

// NewService creates a new scheduling service.
func NewService(config configs.Config, dbConn database.Connection) Service {
	return &defaultService{
		config:     config,
		repository: newRepository(dbConn),
		now:        time.Now,
	}
}

// requirePatient resolves the patient profile of the given user.
func (d defaultService) requirePatient(ctx context.Context, user auth.User) (*Patient, error) {
	patient, err := d.repository.FindPatientByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if patient == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrOnlyPatientCanBook), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	return patient, nil
}

// requireDoctor resolves the doctor profile of the given user.
func (d defaultService) requireDoctor(ctx context.Context, user auth.User) (*Doctor, error) {
	doctor, err := d.repository.FindDoctorByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if doctor == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrOnlyDoctorCanManageAvailability), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	return doctor, nil
}

// projectDoctorSlots fetches the doctor's availability and appointments and
// projects them onto the booking horizon starting today.
func (d defaultService) projectDoctorSlots(ctx context.Context, doctorID int64, excludeAppointmentID int64) ([]ProjectedSlot, error) {
	availability, err := d.repository.ListAvailability(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	appointments, err := d.repository.ListDoctorAppointments(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return ProjectSlots(availability, appointments, d.now(), excludeAppointmentID), nil
}

func (d defaultService) GetDoctorSlots(ctx context.Context, user auth.User, doctorUUID uuid.UUID) ([]ProjectedSlot, error) {
	doctor, err := d.repository.FindDoctorByUUID(ctx, doctorUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if doctor == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrDoctorNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	return d.projectDoctorSlots(ctx, doctor.ID, 0)
}

func (d defaultService) GetRescheduleSlots(ctx context.Context, user auth.User, appointmentUUID uuid.UUID) ([]ProjectedSlot, error) {
	patient, err := d.requirePatient(ctx, user)
	if err != nil {
		return nil, err
	}
	appointment, err := d.repository.FindAppointmentByUUID(ctx, appointmentUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if appointment == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrAppointmentNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	if appointment.PatientID != patient.ID {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrNotAppointmentOwner), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	return d.projectDoctorSlots(ctx, appointment.DoctorID, appointment.ID)
}

func (d defaultService) Book(ctx context.Context, user auth.User, request BookingRequest) (*Appointment, error) {
	date, clock, err := parseSlot(request.Date, request.Time)
	if err != nil {
		return nil, err
	}
	patient, err := d.requirePatient(ctx, user)
	if err != nil {
		return nil, err
	}
	doctor, err := d.repository.FindDoctorByUUID(ctx, request.DoctorUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if doctor == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrDoctorNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	conflict, err := d.repository.FindConflictingAppointment(ctx, doctor.ID, date, clock, 0)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if conflict != nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrSlotAlreadyBooked), apierrors.WithHTTPStatusCode(http.StatusConflict))
	}
	appointment := Appointment{
		UUID:      uuid.New(),
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
		Date:      date,
		Time:      clock,
		Status:    StatusScheduled,
	}
	if err = d.repository.InsertAppointment(ctx, appointment); err != nil {
		// The unique index on the booking tuple closes the window between the
		// conflict check and the insert.
		if database.IsUniqueViolation(err) {
			return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrSlotAlreadyBooked), apierrors.WithHTTPStatusCode(http.StatusConflict))
		}
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	metrics.CountBookedAppointment()
	return &appointment, nil
}

func (d defaultService) Reschedule(ctx context.Context, user auth.User, appointmentUUID uuid.UUID, request RescheduleRequest) (*Appointment, error) {
	date, clock, err := parseSlot(request.Date, request.Time)
	if err != nil {
		return nil, err
	}
	patient, err := d.requirePatient(ctx, user)
	if err != nil {
		return nil, err
	}
	appointment, err := d.repository.FindAppointmentByUUID(ctx, appointmentUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if appointment == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrAppointmentNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	if appointment.PatientID != patient.ID {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrNotAppointmentOwner), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	conflict, err := d.repository.FindConflictingAppointment(ctx, appointment.DoctorID, date, clock, appointment.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if conflict != nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrSlotAlreadyBooked), apierrors.WithHTTPStatusCode(http.StatusConflict))
	}
	if err = d.repository.UpdateAppointmentSchedule(ctx, appointment.ID, date, clock, StatusScheduled); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrSlotAlreadyBooked), apierrors.WithHTTPStatusCode(http.StatusConflict))
		}
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	appointment.Date = date
	appointment.Time = clock
	appointment.Status = StatusScheduled
	return appointment, nil
}

func (d defaultService) CancelByPatient(ctx context.Context, user auth.User, appointmentUUID uuid.UUID) error {
	patient, err := d.requirePatient(ctx, user)
	if err != nil {
		return err
	}
	appointment, err := d.repository.FindAppointmentByUUID(ctx, appointmentUUID)
	if err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if appointment == nil {
		return apierrors.NewAPIError(apierrors.WithDetail(ErrAppointmentNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	if appointment.PatientID != patient.ID {
		return apierrors.NewAPIError(apierrors.WithDetail(ErrNotAppointmentOwner), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	if !appointment.Status.CanTransitionTo(StatusCancelled) {
		return apierrors.NewAPIError(apierrors.WithDetail(ErrOnlyScheduledCanBeCancelled), apierrors.WithHTTPStatusCode(http.StatusConflict))
	}
	if err = d.repository.UpdateAppointmentStatus(ctx, appointment.ID, StatusCancelled); err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	metrics.CountCancelledAppointment("patient")
	return nil
}

func (d defaultService) CancelByDoctor(ctx context.Context, user auth.User, appointmentUUID uuid.UUID) error {
	doctor, err := d.requireDoctor(ctx, user)
	if err != nil {
		return err
	}
	appointment, err := d.repository.FindAppointmentByUUID(ctx, appointmentUUID)
	if err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if appointment == nil {
		return apierrors.NewAPIError(apierrors.WithDetail(ErrAppointmentNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	if appointment.DoctorID != doctor.ID {
		return apierrors.NewAPIError(apierrors.WithDetail(ErrNotAppointmentDoctor), apierrors.WithHTTPStatusCode(http.StatusForbidden))
	}
	// The doctor path cancels unconditionally, whatever the current status.
	if err = d.repository.UpdateAppointmentStatus(ctx, appointment.ID, StatusCancelled); err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	metrics.CountCancelledAppointment("doctor")
	return nil
}

func (d defaultService) AddAvailability(ctx context.Context, user auth.User, request AvailabilityRequest) (*WeeklyAvailability, error) {
	doctor, err := d.requireDoctor(ctx, user)
	if err != nil {
		return nil, err
	}
	if err = request.Validate(); err != nil {
		return nil, err
	}
	startTime, err := ParseClock(request.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := ParseClock(request.EndTime)
	if err != nil {
		return nil, err
	}
	availability := WeeklyAvailability{
		UUID:      uuid.New(),
		DoctorID:  doctor.ID,
		DayOfWeek: request.DayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
	}
	if err = d.repository.InsertAvailability(ctx, availability); err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return &availability, nil
}

func (d defaultService) ListAvailability(ctx context.Context, user auth.User) ([]*WeeklyAvailability, error) {
	doctor, err := d.requireDoctor(ctx, user)
	if err != nil {
		return nil, err
	}
	return d.repository.ListAvailability(ctx, doctor.ID)
}

func (d defaultService) ListPatientAppointments(ctx context.Context, user auth.User) ([]*Appointment, error) {
	patient, err := d.requirePatient(ctx, user)
	if err != nil {
		return nil, err
	}
	return d.repository.ListPatientAppointments(ctx, patient.ID)
}

func (d defaultService) ListDoctorAppointments(ctx context.Context, user auth.User) ([]*Appointment, error) {
	doctor, err := d.requireDoctor(ctx, user)
	if err != nil {
		return nil, err
	}
	return d.repository.ListDoctorAppointments(ctx, doctor.ID)
}
