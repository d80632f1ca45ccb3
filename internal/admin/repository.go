package admin

import (
	"context"
	"database/sql"
	"fmt"
	"hospital-management/internal/auth"
	"hospital-management/internal/database"

	"github.com/google/uuid"
)

const (
	listDepartmentsQuery      = "SELECT id, uuid, name, description FROM tb_department ORDER BY name"
	findDepartmentByUUIDQuery = "SELECT id, uuid, name, description FROM tb_department WHERE uuid = $1"
	insertDepartmentQuery     = "INSERT INTO tb_department (uuid, name, description) VALUES ($1, $2, $3)"
	updateDepartmentQuery     = "UPDATE tb_department SET name = $1, description = $2 WHERE id = $3"
	deleteDepartmentQuery     = "DELETE FROM tb_department WHERE id = $1"

	listDoctorsQuery             = "SELECT d.id, d.uuid, d.full_name, d.qualification, dep.name AS department_name FROM tb_doctor d LEFT JOIN tb_department dep ON dep.id = d.department_id ORDER BY d.full_name"
	listDoctorsByDepartmentQuery = "SELECT d.id, d.uuid, d.full_name, d.qualification, dep.name AS department_name FROM tb_doctor d JOIN tb_department dep ON dep.id = d.department_id WHERE dep.id = $1 ORDER BY d.full_name"
	findDoctorByUUIDQuery        = "SELECT d.id, d.uuid, d.full_name, d.qualification, dep.name AS department_name FROM tb_doctor d LEFT JOIN tb_department dep ON dep.id = d.department_id WHERE d.uuid = $1"
	findDoctorUserIDQuery        = "SELECT user_id FROM tb_doctor WHERE id = $1"
	insertDoctorUserQuery        = "INSERT INTO tb_user (uuid, username, password, role) VALUES ($1, $2, $3, $4) RETURNING id"
	insertDoctorProfileQuery     = "INSERT INTO tb_doctor (uuid, user_id, department_id, full_name, qualification) VALUES ($1, $2, $3, $4, $5)"
	updateDoctorQuery            = "UPDATE tb_doctor SET full_name = $1, qualification = $2, department_id = $3 WHERE id = $4"

	listPatientsQuery      = "SELECT id, uuid, user_id, full_name, phone, address, age FROM tb_patient ORDER BY full_name"
	findPatientByUUIDQuery = "SELECT id, uuid, user_id, full_name, phone, address, age FROM tb_patient WHERE uuid = $1"
	updatePatientQuery     = "UPDATE tb_patient SET full_name = $1, phone = $2, address = $3, age = $4 WHERE id = $5"

	deleteUserQuery = "DELETE FROM tb_user WHERE id = $1"

	findAppointmentIDByUUIDQuery = "SELECT id FROM tb_appointment WHERE uuid = $1"
	deleteAppointmentQuery       = "DELETE FROM tb_appointment WHERE id = $1"
	listAllAppointmentsQuery     = "SELECT a.uuid, d.full_name AS doctor_name, p.full_name AS patient_name, a.date, a.time, a.status FROM tb_appointment a JOIN tb_doctor d ON d.id = a.doctor_id JOIN tb_patient p ON p.id = a.patient_id ORDER BY a.date DESC, a.id"

	countDoctorsQuery      = "SELECT COUNT(id) FROM tb_doctor"
	countPatientsQuery     = "SELECT COUNT(id) FROM tb_patient"
	countAppointmentsQuery = "SELECT COUNT(id) FROM tb_appointment"
	departmentStatsQuery   = "SELECT dep.name, COUNT(a.id) AS appointments FROM tb_department dep LEFT JOIN tb_doctor d ON d.department_id = dep.id LEFT JOIN tb_appointment a ON a.doctor_id = d.id GROUP BY dep.name ORDER BY dep.name"
)

// Repository provides access to administration data.
type Repository interface {
	ListDepartments(ctx context.Context) ([]*Department, error)
	FindDepartmentByUUID(ctx context.Context, uuid uuid.UUID) (*Department, error)
	InsertDepartment(ctx context.Context, department Department) error
	UpdateDepartment(ctx context.Context, department Department) error

	// DeleteDepartment deletes a department. Doctors assigned to it are kept and
	// left unassigned.
	DeleteDepartment(ctx context.Context, departmentID int64) error

	ListDoctors(ctx context.Context) ([]*Doctor, error)
	ListDoctorsByDepartment(ctx context.Context, departmentID int64) ([]*Doctor, error)
	FindDoctorByUUID(ctx context.Context, uuid uuid.UUID) (*Doctor, error)

	// InsertDoctor inserts the doctor's account and profile within a single transaction.
	InsertDoctor(ctx context.Context, user auth.User, doctor Doctor, departmentID *int64) error
	UpdateDoctor(ctx context.Context, doctorID int64, update DoctorUpdate, departmentID *int64) error

	// DeleteDoctor deletes the doctor's account; the profile and every
	// subordinate availability, appointment and treatment go with it through the
	// schema's cascading foreign keys, so the whole removal is one atomic statement.
	DeleteDoctor(ctx context.Context, doctorID int64) error

	ListPatients(ctx context.Context) ([]*Patient, error)
	FindPatientByUUID(ctx context.Context, uuid uuid.UUID) (*Patient, error)
	UpdatePatient(ctx context.Context, patientID int64, update PatientUpdate) error

	// DeletePatient deletes the patient's account, cascading like DeleteDoctor.
	DeletePatient(ctx context.Context, userID int64) error

	FindAppointmentIDByUUID(ctx context.Context, uuid uuid.UUID) (int64, error)
	DeleteAppointment(ctx context.Context, appointmentID int64) error
	ListAllAppointments(ctx context.Context) ([]*AppointmentRecord, error)

	CountDoctors(ctx context.Context) (int64, error)
	CountPatients(ctx context.Context) (int64, error)
	CountAppointments(ctx context.Context) (int64, error)
	DepartmentStats(ctx context.Context) ([]*DepartmentStat, error)
}

type defaultRepository struct {
	dbConn database.Connection
}

// NewRepository creates a new Repository.
func newRepository(dbConn database.Connection) Repository {
	return &defaultRepository{dbConn: dbConn}
}

func (d defaultRepository) ListDepartments(ctx context.Context) ([]*Department, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, listDepartmentsQuery)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	departments := make([]*Department, 0)
	for rows.Next() {
		department := new(Department)
		if err = database.TransformRow(rows, department); err != nil {
			return nil, err
		}
		departments = append(departments, department)
	}
	return departments, nil
}

func (d defaultRepository) FindDepartmentByUUID(ctx context.Context, uuid uuid.UUID) (*Department, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, findDepartmentByUUIDQuery, uuid)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	department := new(Department)
	for rows.Next() {
		if err = database.TransformRow(rows, department); err != nil {
			return nil, err
		}
		if department.ID > 0 {
			return department, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) InsertDepartment(ctx context.Context, department Department) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	result, err := d.dbConn.DB().ExecContext(ctx, insertDepartmentQuery, department.UUID, department.Name, department.Description)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("department not inserted")
	}
	return nil
}

func (d defaultRepository) UpdateDepartment(ctx context.Context, department Department) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	result, err := d.dbConn.DB().ExecContext(ctx, updateDepartmentQuery, department.Name, department.Description, department.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("department not updated")
	}
	return nil
}

func (d defaultRepository) DeleteDepartment(ctx context.Context, departmentID int64) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	_, err := d.dbConn.DB().ExecContext(ctx, deleteDepartmentQuery, departmentID)
	return err
}

func (d defaultRepository) listDoctors(ctx context.Context, query string, params ...interface{}) ([]*Doctor, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	doctors := make([]*Doctor, 0)
	for rows.Next() {
		doctor := new(Doctor)
		if err = database.TransformRow(rows, doctor); err != nil {
			return nil, err
		}
		doctors = append(doctors, doctor)
	}
	return doctors, nil
}

func (d defaultRepository) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	return d.listDoctors(ctx, listDoctorsQuery)
}

func (d defaultRepository) ListDoctorsByDepartment(ctx context.Context, departmentID int64) ([]*Doctor, error) {
	return d.listDoctors(ctx, listDoctorsByDepartmentQuery, departmentID)
}

func (d defaultRepository) FindDoctorByUUID(ctx context.Context, uuid uuid.UUID) (*Doctor, error) {
	doctors, err := d.listDoctors(ctx, findDoctorByUUIDQuery, uuid)
	if err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		return nil, nil
	}
	return doctors[0], nil
}

func (d defaultRepository) InsertDoctor(ctx context.Context, user auth.User, doctor Doctor, departmentID *int64) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	return database.Transact(ctx, d.dbConn, func(tx *sql.Tx) error {
		var userID int64
		if err := tx.QueryRowContext(ctx, insertDoctorUserQuery, user.UUID, user.Username, user.Password, user.Role).Scan(&userID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, insertDoctorProfileQuery, doctor.UUID, userID, departmentID, doctor.FullName, doctor.Qualification)
		return err
	})
}

func (d defaultRepository) UpdateDoctor(ctx context.Context, doctorID int64, update DoctorUpdate, departmentID *int64) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	result, err := d.dbConn.DB().ExecContext(ctx, updateDoctorQuery, update.FullName, update.Qualification, departmentID, doctorID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("doctor not updated")
	}
	return nil
}

func (d defaultRepository) DeleteDoctor(ctx context.Context, doctorID int64) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	row := d.dbConn.DB().QueryRowContext(ctx, findDoctorUserIDQuery, doctorID)
	if row.Err() != nil {
		return row.Err()
	}
	var userID int64
	if err := row.Scan(&userID); err != nil {
		return err
	}
	_, err := d.dbConn.DB().ExecContext(ctx, deleteUserQuery, userID)
	return err
}

func (d defaultRepository) ListPatients(ctx context.Context) ([]*Patient, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, listPatientsQuery)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	patients := make([]*Patient, 0)
	for rows.Next() {
		patient := new(Patient)
		if err = database.TransformRow(rows, patient); err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}
	return patients, nil
}

func (d defaultRepository) FindPatientByUUID(ctx context.Context, uuid uuid.UUID) (*Patient, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, findPatientByUUIDQuery, uuid)
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

func (d defaultRepository) UpdatePatient(ctx context.Context, patientID int64, update PatientUpdate) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	result, err := d.dbConn.DB().ExecContext(ctx, updatePatientQuery, update.FullName, update.Phone, update.Address, update.Age, patientID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("patient not updated")
	}
	return nil
}

func (d defaultRepository) DeletePatient(ctx context.Context, userID int64) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	_, err := d.dbConn.DB().ExecContext(ctx, deleteUserQuery, userID)
	return err
}

func (d defaultRepository) FindAppointmentIDByUUID(ctx context.Context, uuid uuid.UUID) (int64, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	row := d.dbConn.DB().QueryRowContext(ctx, findAppointmentIDByUUIDQuery, uuid)
	if row.Err() != nil {
		return 0, row.Err()
	}
	var id int64
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return id, nil
}

func (d defaultRepository) DeleteAppointment(ctx context.Context, appointmentID int64) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	_, err := d.dbConn.DB().ExecContext(ctx, deleteAppointmentQuery, appointmentID)
	return err
}

func (d defaultRepository) ListAllAppointments(ctx context.Context) ([]*AppointmentRecord, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, listAllAppointmentsQuery)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	records := make([]*AppointmentRecord, 0)
	for rows.Next() {
		record := new(AppointmentRecord)
		if err = database.TransformRow(rows, record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (d defaultRepository) count(ctx context.Context, query string) (int64, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	row := d.dbConn.DB().QueryRowContext(ctx, query)
	if row.Err() != nil {
		return 0, row.Err()
	}
	var total int64
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (d defaultRepository) CountDoctors(ctx context.Context) (int64, error) {
	return d.count(ctx, countDoctorsQuery)
}

func (d defaultRepository) CountPatients(ctx context.Context) (int64, error) {
	return d.count(ctx, countPatientsQuery)
}

func (d defaultRepository) CountAppointments(ctx context.Context) (int64, error) {
	return d.count(ctx, countAppointmentsQuery)
}

func (d defaultRepository) DepartmentStats(ctx context.Context) ([]*DepartmentStat, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	rows, err := d.dbConn.DB().QueryContext(ctx, departmentStatsQuery)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	stats := make([]*DepartmentStat, 0)
	for rows.Next() {
		stat := new(DepartmentStat)
		if err = database.TransformRow(rows, stat); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, nil
}
