package scheduling

// Status represents the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// transitions holds the regular state machine. Two paths bypass it on purpose:
// a doctor may cancel any appointment regardless of its state, and rescheduling
// revives an appointment back to SCHEDULED.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Valid checks if the status is a known one.
func (s Status) Valid() bool {
	_, known := transitions[s]
	return known
}

// CanTransitionTo checks if the regular state machine allows moving from the
// current status to the given one.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
