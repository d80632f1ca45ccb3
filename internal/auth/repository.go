package auth

import (
	"context"
	"database/sql"
	"fmt"
	"hospital-management/internal/database"

	"github.com/google/uuid"
)

const (
	findUserByUUIDQuery       = "SELECT id, uuid, username, role FROM tb_user WHERE uuid = $1"
	findUserByUsernameQuery   = "SELECT id, uuid, username, role FROM tb_user WHERE username = $1"
	findAnyUserByRoleQuery    = "SELECT id, uuid, username, role FROM tb_user WHERE role = $1 LIMIT 1"
	checkUserPasswordQuery    = "SELECT id, password FROM tb_user WHERE username = $1"
	insertUserQuery           = "INSERT INTO tb_user (uuid, username, password, role) VALUES ($1, $2, $3, $4) RETURNING id"
	insertPatientProfileQuery = "INSERT INTO tb_patient (uuid, user_id, full_name) VALUES ($1, $2, $3)"
	insertAdminProfileQuery   = "INSERT INTO tb_admin (uuid, user_id, full_name) VALUES ($1, $2, $3)"
	findAdminProfileQuery     = "SELECT id, full_name FROM tb_admin WHERE user_id = $1"
	findDoctorProfileQuery    = "SELECT id, full_name, qualification FROM tb_doctor WHERE user_id = $1"
	findPatientProfileQuery   = "SELECT id, full_name, phone, address, age FROM tb_patient WHERE user_id = $1"
	updateAdminProfileQuery   = "UPDATE tb_admin SET full_name = $1 WHERE user_id = $2"
	updateDoctorProfileQuery  = "UPDATE tb_doctor SET full_name = $1, qualification = $2 WHERE user_id = $3"
	updatePatientProfileQuery = "UPDATE tb_patient SET full_name = $1, phone = $2, address = $3, age = $4 WHERE user_id = $5"
)

// Repository provides access to account data.
type Repository interface {

	// FindUserByUUID finds a user by its UUID.
	FindUserByUUID(ctx context.Context, uuid uuid.UUID) (*User, error)

	// FindUserByUsername finds a user by its username.
	FindUserByUsername(ctx context.Context, username string) (*User, error)

	// FindAnyUserByRole finds any user holding the given role.
	FindAnyUserByRole(ctx context.Context, role Role) (*User, error)

	// CheckUserPassword checks if the stored password is equals to the given password.
	CheckUserPassword(ctx context.Context, username string, password string) (bool, error)

	// InsertUser inserts the given user and its role profile within a single transaction.
	InsertUser(ctx context.Context, user User, fullName string) error

	// FindProfile finds the role profile of the given user.
	FindProfile(ctx context.Context, user User) (*Profile, error)

	// UpdateProfile updates the role profile of the given user.
	UpdateProfile(ctx context.Context, user User, update ProfileUpdate) error
}

type defaultRepository struct {
	dbConn database.Connection
}

// NewRepository creates a new Repository.
func newRepository(dbConn database.Connection) Repository {
	return &defaultRepository{dbConn: dbConn}
}

func (d defaultRepository) findUser(ctx context.Context, query string, param interface{}) (*User, error) {
	rows, err := d.dbConn.DB().QueryContext(ctx, query, param)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	user := new(User)
	for rows.Next() {
		if err = database.TransformRow(rows, user); err != nil {
			return nil, err
		}
		if user.ID > 0 {
			return user, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) FindUserByUUID(ctx context.Context, uuid uuid.UUID) (*User, error) {
	return d.findUser(ctx, findUserByUUIDQuery, uuid.String())
}

func (d defaultRepository) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	return d.findUser(ctx, findUserByUsernameQuery, username)
}

func (d defaultRepository) FindAnyUserByRole(ctx context.Context, role Role) (*User, error) {
	return d.findUser(ctx, findAnyUserByRoleQuery, string(role))
}

func (d defaultRepository) CheckUserPassword(ctx context.Context, username string, password string) (bool, error) {
	params := make([]interface{}, 1)
	params[0] = username
	row := d.dbConn.DB().QueryRowContext(ctx, checkUserPasswordQuery, params...)
	if row.Err() != nil {
		return false, row.Err()
	}
	id := new(uint64)
	hashedPass := new(string)
	if err := row.Scan(id, hashedPass); err != nil && err != sql.ErrNoRows {
		return false, err
	}
	return ComparePasswords(*hashedPass, password), nil
}

func (d defaultRepository) InsertUser(ctx context.Context, user User, fullName string) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	return database.Transact(ctx, d.dbConn, func(tx *sql.Tx) error {
		var userID int64
		if err := tx.QueryRowContext(ctx, insertUserQuery, user.UUID, user.Username, user.Password, user.Role).Scan(&userID); err != nil {
			return err
		}
		switch user.Role {
		case PatientRole:
			_, err := tx.ExecContext(ctx, insertPatientProfileQuery, uuid.New(), userID, fullName)
			return err
		case AdminRole:
			_, err := tx.ExecContext(ctx, insertAdminProfileQuery, uuid.New(), userID, fullName)
			return err
		}
		return fmt.Errorf("no profile defined for role %s", user.Role)
	})
}

func (d defaultRepository) FindProfile(ctx context.Context, user User) (*Profile, error) {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	var query string
	switch user.Role {
	case AdminRole:
		query = findAdminProfileQuery
	case DoctorRole:
		query = findDoctorProfileQuery
	case PatientRole:
		query = findPatientProfileQuery
	default:
		return nil, fmt.Errorf("no profile defined for role %s", user.Role)
	}
	rows, err := d.dbConn.DB().QueryContext(ctx, query, user.ID)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	profile := new(Profile)
	for rows.Next() {
		if err = database.TransformRow(rows, profile); err != nil {
			return nil, err
		}
		if profile.ID > 0 {
			return profile, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) UpdateProfile(ctx context.Context, user User, update ProfileUpdate) error {
	ctx, cancel := d.dbConn.CreateContext(ctx)
	defer cancel()
	var result sql.Result
	var err error
	switch user.Role {
	case AdminRole:
		result, err = d.dbConn.DB().ExecContext(ctx, updateAdminProfileQuery, update.FullName, user.ID)
	case DoctorRole:
		result, err = d.dbConn.DB().ExecContext(ctx, updateDoctorProfileQuery, update.FullName, update.Qualification, user.ID)
	case PatientRole:
		result, err = d.dbConn.DB().ExecContext(ctx, updatePatientProfileQuery, update.FullName, update.Phone, update.Address, update.Age, user.ID)
	default:
		return fmt.Errorf("no profile defined for role %s", user.Role)
	}
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("profile not updated")
	}
	return nil
}
