package clinical

import (
	"context"
	"database/sql"
	"hospital-management/internal/database"
	"hospital-management/internal/scheduling"

	"github.com/google/uuid"
)

const (
	findDoctorByUserIDQuery    = "SELECT id, uuid, user_id, department_id, full_name, qualification FROM tb_doctor WHERE user_id = $1"
	findPatientByUUIDQuery     = "SELECT id, uuid, user_id, full_name FROM tb_patient WHERE uuid = $1"
	findAppointmentByUUIDQuery = "SELECT id, uuid, doctor_id, patient_id, date, time, status FROM tb_appointment WHERE uuid = $1"
	insertTreatmentQuery       = "INSERT INTO tb_treatment (uuid, appointment_id, diagnosis, prescription, notes, visit_type, tests_done) VALUES ($1, $2, $3, $4, $5, $6, $7)"
	completeAppointmentQuery   = "UPDATE tb_appointment SET status = $1 WHERE id = $2"
	listPatientHistoryQuery    = "SELECT a.uuid AS appointment_uuid, d.full_name AS doctor_name, a.date, a.time, t.diagnosis, t.prescription, t.notes, t.visit_type, t.tests_done FROM tb_appointment a JOIN tb_doctor d ON d.id = a.doctor_id LEFT JOIN tb_treatment t ON t.appointment_id = a.id WHERE a.patient_id = $1 AND a.status = 'COMPLETED' ORDER BY a.date DESC, a.id"
)

// Repository provides access to clinical data.
type Repository interface {

	// FindDoctorByUserID finds a doctor by its user ID.
	FindDoctorByUserID(ctx context.Context, userID int64) (*scheduling.Doctor, error)

	// FindPatientByUUID finds a patient by its UUID.
	FindPatientByUUID(ctx context.Context, uuid uuid.UUID) (*scheduling.Patient, error)

	// FindAppointmentByUUID finds an appointment by its UUID.
	FindAppointmentByUUID(ctx context.Context, uuid uuid.UUID) (*scheduling.Appointment, error)

	// InsertTreatment inserts the given treatment and completes its appointment
	// within a single transaction.
	InsertTreatment(ctx context.Context, treatment Treatment) error

	// ListPatientHistory lists the patient's completed visits, most recent first.
	ListPatientHistory(ctx context.Context, patientID int64) ([]*Visit, error)
}

type defaultRepository struct {
	dbConn database.Connection
}

// NewRepository creates a new Repository.
func newRepository(dbConn database.Connection) Repository {
	return &defaultRepository{dbConn: dbConn}
}

func (d defaultRepository) FindDoctorByUserID(ctx context.Context, userID int64) (*scheduling.Doctor, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, findDoctorByUserIDQuery, userID)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	doctor := new(scheduling.Doctor)
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

func (d defaultRepository) FindPatientByUUID(ctx context.Context, uuid uuid.UUID) (*scheduling.Patient, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, findPatientByUUIDQuery, uuid)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	patient := new(scheduling.Patient)
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

func (d defaultRepository) FindAppointmentByUUID(ctx context.Context, uuid uuid.UUID) (*scheduling.Appointment, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, findAppointmentByUUIDQuery, uuid)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	appointment := new(scheduling.Appointment)
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

func (d defaultRepository) InsertTreatment(ctx context.Context, treatment Treatment) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	return database.Transact(ctx, d.dbConn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertTreatmentQuery, treatment.UUID, treatment.AppointmentID, treatment.Diagnosis, treatment.Prescription, treatment.Notes, treatment.VisitType, treatment.TestsDone); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, completeAppointmentQuery, scheduling.StatusCompleted, treatment.AppointmentID)
		return err
	})
}

func (d defaultRepository) ListPatientHistory(ctx context.Context, patientID int64) ([]*Visit, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, listPatientHistoryQuery, patientID)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	visits := make([]*Visit, 0)
	for rows.Next() {
		visit := new(Visit)
		if err = database.TransformRow(rows, visit); err != nil {
			return nil, err
		}
		visits = append(visits, visit)
	}
	return visits, nil
}
