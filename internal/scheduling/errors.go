package scheduling

const (
	ErrDoctorNotFound                  = "doctor not found"
	ErrAppointmentNotFound             = "appointment not found"
	ErrInvalidIdentifier               = "invalid identifier"
	ErrSlotAlreadyBooked               = "slot already booked"
	ErrOnlyPatientCanBook              = "only a patient can book an appointment"
	ErrOnlyDoctorCanManageAvailability = "only a doctor can manage its availability"
	ErrNotAppointmentOwner             = "appointment belongs to another patient"
	ErrNotAppointmentDoctor            = "appointment belongs to another doctor"
	ErrOnlyScheduledCanBeCancelled     = "only scheduled appointments can be cancelled"
)
