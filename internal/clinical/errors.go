package clinical

const (
	ErrAppointmentNotFound         = "appointment not found"
	ErrPatientNotFound             = "patient not found"
	ErrInvalidIdentifier           = "invalid identifier"
	ErrOnlyDoctorCanRecordVisit    = "only a doctor can record a treatment"
	ErrNotAppointmentDoctor        = "appointment belongs to another doctor"
	ErrOnlyScheduledCanBeCompleted = "only scheduled appointments can receive a treatment"
	ErrHistoryNotAllowed           = "only a doctor or an admin can check a patient history"
)
