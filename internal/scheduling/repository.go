package scheduling

import (
	"context"
	"fmt"
	"hospital-management/internal/database"
	"time"

	"github.com/google/uuid"
)

const (
	findDoctorByUUIDQuery   = "SELECT id, uuid, user_id, department_id, full_name, qualification FROM tb_doctor WHERE uuid = $1"
	findDoctorByIDQuery     = "SELECT id, uuid, user_id, department_id, full_name, qualification FROM tb_doctor WHERE id = $1"
	findDoctorByUserIDQuery = "SELECT id, uuid, user_id, department_id, full_name, qualification FROM tb_doctor WHERE user_id = $1"
	findPatientByUserIDQuery = "SELECT id, uuid, user_id, full_name FROM tb_patient WHERE user_id = $1"

	listAvailabilityQuery   = "SELECT id, uuid, doctor_id, day_of_week, start_time, end_time FROM tb_availability WHERE doctor_id = $1 ORDER BY id"
	insertAvailabilityQuery = "INSERT INTO tb_availability (uuid, doctor_id, day_of_week, start_time, end_time) VALUES ($1, $2, $3, $4, $5)"

	listDoctorAppointmentsQuery  = "SELECT a.id, a.uuid, a.doctor_id, a.patient_id, p.full_name AS patient_name, a.date, a.time, a.status FROM tb_appointment a JOIN tb_patient p ON p.id = a.patient_id WHERE a.doctor_id = $1 ORDER BY a.date, a.id"
	listPatientAppointmentsQuery = "SELECT a.id, a.uuid, a.doctor_id, a.patient_id, d.full_name AS doctor_name, a.date, a.time, a.status FROM tb_appointment a JOIN tb_doctor d ON d.id = a.doctor_id WHERE a.patient_id = $1 ORDER BY a.date DESC, a.id"
	findAppointmentByUUIDQuery   = "SELECT id, uuid, doctor_id, patient_id, date, time, status FROM tb_appointment WHERE uuid = $1"
	findConflictingAppointmentQuery = "SELECT id, uuid, doctor_id, patient_id, date, time, status FROM tb_appointment WHERE doctor_id = $1 AND date = $2 AND time = $3 AND status <> 'CANCELLED' AND id <> $4"
	insertAppointmentQuery          = "INSERT INTO tb_appointment (uuid, doctor_id, patient_id, date, time, status) VALUES ($1, $2, $3, $4, $5, $6)"
	updateAppointmentScheduleQuery  = "UPDATE tb_appointment SET date = $1, time = $2, status = $3 WHERE id = $4"
	updateAppointmentStatusQuery    = "UPDATE tb_appointment SET status = $1 WHERE id = $2"
)

// Repository provides access to scheduling data.
type Repository interface {

	// FindDoctorByUUID finds a doctor by its UUID.
	FindDoctorByUUID(ctx context.Context, uuid uuid.UUID) (*Doctor, error)

	// FindDoctorByID finds a doctor by its ID.
	FindDoctorByID(ctx context.Context, id int64) (*Doctor, error)

	// FindDoctorByUserID finds a doctor by its user ID.
	FindDoctorByUserID(ctx context.Context, userID int64) (*Doctor, error)

	// FindPatientByUserID finds a patient by its user ID.
	FindPatientByUserID(ctx context.Context, userID int64) (*Patient, error)

	// ListAvailability lists the doctor's weekly availability entries in insertion order.
	ListAvailability(ctx context.Context, doctorID int64) ([]*WeeklyAvailability, error)

	// InsertAvailability inserts a new weekly availability entry.
	InsertAvailability(ctx context.Context, availability WeeklyAvailability) error

	// ListDoctorAppointments lists every appointment of the given doctor, any status.
	ListDoctorAppointments(ctx context.Context, doctorID int64) ([]*Appointment, error)

	// ListPatientAppointments lists every appointment of the given patient, any status.
	ListPatientAppointments(ctx context.Context, patientID int64) ([]*Appointment, error)

	// FindAppointmentByUUID finds an appointment by its UUID.
	FindAppointmentByUUID(ctx context.Context, uuid uuid.UUID) (*Appointment, error)

	// FindConflictingAppointment finds a non-cancelled appointment occupying the
	// given slot, ignoring the appointment matching excludeID.
	FindConflictingAppointment(ctx context.Context, doctorID int64, date time.Time, clock string, excludeID int64) (*Appointment, error)

	// InsertAppointment inserts a new appointment.
	InsertAppointment(ctx context.Context, appointment Appointment) error

	// UpdateAppointmentSchedule moves an appointment to a new slot and status.
	UpdateAppointmentSchedule(ctx context.Context, appointmentID int64, date time.Time, clock string, status Status) error

	// UpdateAppointmentStatus updates an appointment's status.
	UpdateAppointmentStatus(ctx context.Context, appointmentID int64, status Status) error
}

type defaultRepository struct {
	dbConn database.Connection
}

// NewRepository creates a new Repository.
func newRepository(dbConn database.Connection) Repository {
	return &defaultRepository{dbConn: dbConn}
}

func (d defaultRepository) findDoctor(ctx context.Context, query string, param interface{}) (*Doctor, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, query, param)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	doctor := new(Doctor)
	for rows.Next() {
		if err = database.TransformRow(rows, doctor); err != nil {
			return nil, err
		}
		if doctor.ID > 0 {
			return doctor, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) FindDoctorByUUID(ctx context.Context, uuid uuid.UUID) (*Doctor, error) {
	return d.findDoctor(ctx, findDoctorByUUIDQuery, uuid)
}

func (d defaultRepository) FindDoctorByID(ctx context.Context, id int64) (*Doctor, error) {
	return d.findDoctor(ctx, findDoctorByIDQuery, id)
}

func (d defaultRepository) FindDoctorByUserID(ctx context.Context, userID int64) (*Doctor, error) {
	return d.findDoctor(ctx, findDoctorByUserIDQuery, userID)
}

func (d defaultRepository) FindPatientByUserID(ctx context.Context, userID int64) (*Patient, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, findPatientByUserIDQuery, userID)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	patient := new(Patient)
	for rows.Next() {
		if err = database.TransformRow(rows, patient); err != nil {
			return nil, err
		}
		if patient.ID > 0 {
			return patient, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) ListAvailability(ctx context.Context, doctorID int64) ([]*WeeklyAvailability, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, listAvailabilityQuery, doctorID)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	entries := make([]*WeeklyAvailability, 0)
	for rows.Next() {
		entry := new(WeeklyAvailability)
		if err = database.TransformRow(rows, entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (d defaultRepository) InsertAvailability(ctx context.Context, availability WeeklyAvailability) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	params := make([]interface{}, 5)
	params[0] = availability.UUID
	params[1] = availability.DoctorID
	params[2] = availability.DayOfWeek
	params[3] = availability.StartTime
	params[4] = availability.EndTime
	result, err := d.dbConn.DB().ExecContext(ctx, insertAvailabilityQuery, params...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("availability not inserted")
	}
	return nil
}

func (d defaultRepository) listAppointments(ctx context.Context, query string, param interface{}) ([]*Appointment, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, query, param)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	appointments := make([]*Appointment, 0)
	for rows.Next() {
		appointment := new(Appointment)
		if err = database.TransformRow(rows, appointment); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}

func (d defaultRepository) ListDoctorAppointments(ctx context.Context, doctorID int64) ([]*Appointment, error) {
	return d.listAppointments(ctx, listDoctorAppointmentsQuery, doctorID)
}

func (d defaultRepository) ListPatientAppointments(ctx context.Context, patientID int64) ([]*Appointment, error) {
	return d.listAppointments(ctx, listPatientAppointmentsQuery, patientID)
}

func (d defaultRepository) FindAppointmentByUUID(ctx context.Context, uuid uuid.UUID) (*Appointment, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, findAppointmentByUUIDQuery, uuid)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	appointment := new(Appointment)
	for rows.Next() {
		if err = database.TransformRow(rows, appointment); err != nil {
			return nil, err
		}
		if appointment.ID > 0 {
			return appointment, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) FindConflictingAppointment(ctx context.Context, doctorID int64, date time.Time, clock string, excludeID int64) (*Appointment, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	params := make([]interface{}, 4)
	params[0] = doctorID
	params[1] = date
	params[2] = clock
	params[3] = excludeID
	rows, err := d.dbConn.DB().QueryContext(ctx, findConflictingAppointmentQuery, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	appointment := new(Appointment)
	for rows.Next() {
		if err = database.TransformRow(rows, appointment); err != nil {
			return nil, err
		}
		if appointment.ID > 0 {
			return appointment, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) InsertAppointment(ctx context.Context, appointment Appointment) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	params := make([]interface{}, 6)
	params[0] = appointment.UUID
	params[1] = appointment.DoctorID
	params[2] = appointment.PatientID
	params[3] = appointment.Date
	params[4] = appointment.Time
	params[5] = appointment.Status
	result, err := d.dbConn.DB().ExecContext(ctx, insertAppointmentQuery, params...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("appointment not inserted")
	}
	return nil
}

func (d defaultRepository) UpdateAppointmentSchedule(ctx context.Context, appointmentID int64, date time.Time, clock string, status Status) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	result, err := d.dbConn.DB().ExecContext(ctx, updateAppointmentScheduleQuery, date, clock, status, appointmentID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("appointment not updated")
	}
	return nil
}

func (d defaultRepository) UpdateAppointmentStatus(ctx context.Context, appointmentID int64, status Status) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	result, err := d.dbConn.DB().ExecContext(ctx, updateAppointmentStatusQuery, status, appointmentID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("appointment not updated")
	}
	return nil
}
