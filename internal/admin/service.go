// Package admin contains handlers, services and structures used by
// administrators to manage departments, staff, patients and the dashboard.
package admin

import (
	"context"
	"fmt"
	"hospital-management/internal/apierrors"
	"hospital-management/internal/auth"
	"hospital-management/internal/configs"
	"hospital-management/internal/database"
	"net/http"

	"github.com/google/uuid"
)

// DepartmentManager determines the methods used to manage departments.
type DepartmentManager interface {

	// ListDepartments lists every department.
	ListDepartments(ctx context.Context) ([]*Department, error)

	// GetDepartment returns the given department together with its doctors.
	GetDepartment(ctx context.Context, departmentUUID uuid.UUID) (*DepartmentView, error)

	// CreateDepartment creates a new department.
	CreateDepartment(ctx context.Context, request DepartmentRequest) (*Department, error)

	// UpdateDepartment updates the given department.
	UpdateDepartment(ctx context.Context, departmentUUID uuid.UUID, request DepartmentRequest) (*Department, error)

	// DeleteDepartment deletes the given department, keeping its doctors unassigned.
	DeleteDepartment(ctx context.Context, departmentUUID uuid.UUID) error
}

// StaffManager determines the methods used to manage doctor accounts.
type StaffManager interface {

	// ListDoctors lists every registered doctor.
	ListDoctors(ctx context.Context) ([]*Doctor, error)

	// RegisterDoctor creates a doctor account with its profile.
	RegisterDoctor(ctx context.Context, registration DoctorRegistration) (*Doctor, error)

	// UpdateDoctor updates the given doctor's profile.
	UpdateDoctor(ctx context.Context, doctorUUID uuid.UUID, update DoctorUpdate) (*Doctor, error)

	// DeleteDoctor removes the doctor's account along with every record owned by it.
	DeleteDoctor(ctx context.Context, doctorUUID uuid.UUID) error
}

// PatientManager determines the methods used to manage patient accounts.
type PatientManager interface {

	// ListPatients lists every registered patient.
	ListPatients(ctx context.Context) ([]*Patient, error)

	// UpdatePatient updates the given patient's profile.
	UpdatePatient(ctx context.Context, patientUUID uuid.UUID, update PatientUpdate) (*Patient, error)

	// DeletePatient removes the patient's account along with every record owned by it.
	DeletePatient(ctx context.Context, patientUUID uuid.UUID) error
}

// Reporter determines the methods used to oversee appointments.
type Reporter interface {

	// ListAppointments lists every appointment in the system.
	ListAppointments(ctx context.Context) ([]*AppointmentRecord, error)

	// DeleteAppointment removes the given appointment record entirely.
	DeleteAppointment(ctx context.Context, appointmentUUID uuid.UUID) error

	// GetDashboard aggregates the dashboard figures.
	GetDashboard(ctx context.Context) (*Dashboard, error)
}

// Service determines the methods used to manage administration.
type Service interface {
	DepartmentManager
	StaffManager
	PatientManager
	Reporter
}

type defaultService struct {
	repository Repository
	config     configs.Config
}

// NewService creates a new administration service.
func NewService(config configs.Config, dbConn database.Connection) Service {
	return &defaultService{
		config:     config,
		repository: newRepository(dbConn),
	}
}

func (d defaultService) ListDepartments(ctx context.Context) ([]*Department, error) {
	departments, err := d.repository.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return departments, nil
}

// findDepartment resolves the given department or fails with a not found error.
func (d defaultService) findDepartment(ctx context.Context, departmentUUID uuid.UUID) (*Department, error) {
	department, err := d.repository.FindDepartmentByUUID(ctx, departmentUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if department == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrDepartmentNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	return department, nil
}

func (d defaultService) GetDepartment(ctx context.Context, departmentUUID uuid.UUID) (*DepartmentView, error) {
	department, err := d.findDepartment(ctx, departmentUUID)
	if err != nil {
		return nil, err
	}
	doctors, err := d.repository.ListDoctorsByDepartment(ctx, department.ID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return &DepartmentView{Department: *department, Doctors: doctors}, nil
}

func (d defaultService) CreateDepartment(ctx context.Context, request DepartmentRequest) (*Department, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	department := Department{
		UUID:        uuid.New(),
		Name:        request.Name,
		Description: request.Description,
	}
	if err := d.repository.InsertDepartment(ctx, department); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrDepartmentAlreadyExists), apierrors.WithHTTPStatusCode(http.StatusConflict))
		}
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return &department, nil
}

func (d defaultService) UpdateDepartment(ctx context.Context, departmentUUID uuid.UUID, request DepartmentRequest) (*Department, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	department, err := d.findDepartment(ctx, departmentUUID)
	if err != nil {
		return nil, err
	}
	department.Name = request.Name
	department.Description = request.Description
	if err = d.repository.UpdateDepartment(ctx, *department); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrDepartmentAlreadyExists), apierrors.WithHTTPStatusCode(http.StatusConflict))
		}
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return department, nil
}

func (d defaultService) DeleteDepartment(ctx context.Context, departmentUUID uuid.UUID) error {
	department, err := d.findDepartment(ctx, departmentUUID)
	if err != nil {
		return err
	}
	if err = d.repository.DeleteDepartment(ctx, department.ID); err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return nil
}

func (d defaultService) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	doctors, err := d.repository.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return doctors, nil
}

// resolveDepartmentID resolves an optional department reference to its
// internal id, failing with a not found error when it points nowhere.
func (d defaultService) resolveDepartmentID(ctx context.Context, departmentUUID *uuid.UUID) (*int64, error) {
	if departmentUUID == nil {
		return nil, nil
	}
	department, err := d.findDepartment(ctx, *departmentUUID)
	if err != nil {
		return nil, err
	}
	return &department.ID, nil
}

func (d defaultService) RegisterDoctor(ctx context.Context, registration DoctorRegistration) (*Doctor, error) {
	if err := registration.Validate(); err != nil {
		return nil, err
	}
	departmentID, err := d.resolveDepartmentID(ctx, registration.DepartmentUUID)
	if err != nil {
		return nil, err
	}
	encryptedPassword, err := auth.EncryptPassword(registration.Password)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	user := auth.User{
		UUID:     uuid.New(),
		Username: registration.Username,
		Password: encryptedPassword,
		Role:     auth.DoctorRole,
	}
	doctor := Doctor{
		UUID:          uuid.New(),
		FullName:      registration.FullName,
		Qualification: registration.Qualification,
	}
	if err = d.repository.InsertDoctor(ctx, user, doctor, departmentID); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrUsernameAlreadyExists), apierrors.WithHTTPStatusCode(http.StatusConflict))
		}
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return d.repository.FindDoctorByUUID(ctx, doctor.UUID)
}

// findDoctor resolves the given doctor or fails with a not found error.
func (d defaultService) findDoctor(ctx context.Context, doctorUUID uuid.UUID) (*Doctor, error) {
	doctor, err := d.repository.FindDoctorByUUID(ctx, doctorUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if doctor == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrDoctorNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	return doctor, nil
}

func (d defaultService) UpdateDoctor(ctx context.Context, doctorUUID uuid.UUID, update DoctorUpdate) (*Doctor, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	doctor, err := d.findDoctor(ctx, doctorUUID)
	if err != nil {
		return nil, err
	}
	departmentID, err := d.resolveDepartmentID(ctx, update.DepartmentUUID)
	if err != nil {
		return nil, err
	}
	if err = d.repository.UpdateDoctor(ctx, doctor.ID, update, departmentID); err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return d.repository.FindDoctorByUUID(ctx, doctorUUID)
}

func (d defaultService) DeleteDoctor(ctx context.Context, doctorUUID uuid.UUID) error {
	doctor, err := d.findDoctor(ctx, doctorUUID)
	if err != nil {
		return err
	}
	if err = d.repository.DeleteDoctor(ctx, doctor.ID); err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return nil
}

func (d defaultService) ListPatients(ctx context.Context) ([]*Patient, error) {
	patients, err := d.repository.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return patients, nil
}

// findPatient resolves the given patient or fails with a not found error.
func (d defaultService) findPatient(ctx context.Context, patientUUID uuid.UUID) (*Patient, error) {
	patient, err := d.repository.FindPatientByUUID(ctx, patientUUID)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if patient == nil {
		return nil, apierrors.NewAPIError(apierrors.WithDetail(ErrPatientNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	return patient, nil
}

func (d defaultService) UpdatePatient(ctx context.Context, patientUUID uuid.UUID, update PatientUpdate) (*Patient, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	patient, err := d.findPatient(ctx, patientUUID)
	if err != nil {
		return nil, err
	}
	if err = d.repository.UpdatePatient(ctx, patient.ID, update); err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return d.repository.FindPatientByUUID(ctx, patientUUID)
}

func (d defaultService) DeletePatient(ctx context.Context, patientUUID uuid.UUID) error {
	patient, err := d.findPatient(ctx, patientUUID)
	if err != nil {
		return err
	}
	if err = d.repository.DeletePatient(ctx, patient.UserID); err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return nil
}

func (d defaultService) ListAppointments(ctx context.Context) ([]*AppointmentRecord, error) {
	records, err := d.repository.ListAllAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return records, nil
}

func (d defaultService) DeleteAppointment(ctx context.Context, appointmentUUID uuid.UUID) error {
	appointmentID, err := d.repository.FindAppointmentIDByUUID(ctx, appointmentUUID)
	if err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if appointmentID == 0 {
		return apierrors.NewAPIError(apierrors.WithDetail(ErrAppointmentNotFound), apierrors.WithHTTPStatusCode(http.StatusNotFound))
	}
	if err = d.repository.DeleteAppointment(ctx, appointmentID); err != nil {
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return nil
}

func (d defaultService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	doctors, err := d.repository.CountDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	patients, err := d.repository.CountPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	appointments, err := d.repository.CountAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	stats, err := d.repository.DepartmentStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	recent, err := d.repository.ListAllAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	if len(recent) > recentAppointmentsLimit {
		recent = recent[:recentAppointmentsLimit]
	}
	return &Dashboard{
		Doctors:         doctors,
		Patients:        patients,
		Appointments:    appointments,
		DepartmentStats: stats,
		Recent:          recent,
	}, nil
}

// recentAppointmentsLimit caps the dashboard's recent appointments listing.
const recentAppointmentsLimit = 5
