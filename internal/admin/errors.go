package admin

const (
	ErrDepartmentNotFound     = "department not found"
	ErrDoctorNotFound         = "doctor not found"
	ErrPatientNotFound        = "patient not found"
	ErrAppointmentNotFound    = "appointment not found"
	ErrInvalidIdentifier      = "invalid identifier"
	ErrDepartmentAlreadyExists = "department already exists"
	ErrUsernameAlreadyExists  = "username already exists"
)
