package auth

import (
	"hospital-management/internal/apierrors"

	"github.com/google/uuid"
)

type Role string

const (
	AdminRole   = "ADMIN"
	DoctorRole  = "DOCTOR"
	PatientRole = "PATIENT"
)

type Credentials struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Validate validates if the credentials given are valid.
func (c Credentials) Validate() error {
	if c.Username == "" {
		return apierrors.NewValidationError("username", "required")
	}
	if c.Password == "" {
		return apierrors.NewValidationError("password", "required")
	}
	return nil
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	GrantType    string `json:"grant_type,omitempty"`
}

// Validate validates if the tokens given are valid.
func (c Tokens) Validate() error {
	if c.AccessToken == "" {
		return apierrors.NewValidationError("access_token", "required")
	}
	if c.RefreshToken == "" {
		return apierrors.NewValidationError("refresh_token", "required")
	}
	if c.GrantType == "" {
		return apierrors.NewValidationError("grant_type", "required")
	}
	if c.GrantType != "refresh_token" {
		return apierrors.NewValidationError("grant_type", "invalid")
	}
	return nil
}

type User struct {
	ID       int64     `json:"-" dbfield:"id"`
	UUID     uuid.UUID `json:"uuid" dbfield:"uuid"`
	Username string    `json:"username" dbfield:"username"`
	Password string    `json:"password,omitempty" dbfield:"password"`
	Role     Role      `json:"role" dbfield:"role"`
}

// Registration holds the data needed to create a new account.
//
// Doctors are registered by an administrator, so only patient and admin
// accounts can be self-registered.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	FullName string `json:"full_name"`
}

// Validate validates if the given registration is valid.
func (r Registration) Validate() error {
	if r.Username == "" {
		return apierrors.NewValidationError("username", "required")
	}
	if r.Password == "" {
		return apierrors.NewValidationError("password", "required")
	}
	if r.FullName == "" {
		return apierrors.NewValidationError("full_name", "required")
	}
	if r.Role != PatientRole && r.Role != AdminRole {
		return apierrors.NewValidationError("role", "must be PATIENT or ADMIN")
	}
	return nil
}

// Profile holds the role-specific profile data of an account.
type Profile struct {
	ID            int64   `json:"-" dbfield:"id"`
	FullName      string  `json:"full_name" dbfield:"full_name"`
	Qualification *string `json:"qualification,omitempty" dbfield:"qualification"`
	Phone         *string `json:"phone,omitempty" dbfield:"phone"`
	Address       *string `json:"address,omitempty" dbfield:"address"`
	Age           *int32  `json:"age,omitempty" dbfield:"age"`
}

// ProfileUpdate holds the fields an account may change on its own profile.
// Fields that don't belong to the account's role are ignored.
type ProfileUpdate struct {
	FullName      string  `json:"full_name"`
	Qualification *string `json:"qualification,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	Age           *int32  `json:"age,omitempty"`
}

// Validate validates if the given profile update is valid.
func (p ProfileUpdate) Validate() error {
	if p.FullName == "" {
		return apierrors.NewValidationError("full_name", "required")
	}
	if p.Age != nil && *p.Age < 0 {
		return apierrors.NewValidationError("age", "invalid")
	}
	return nil
}
