package scheduling

import "time"

// BookingHorizonDays is the fixed forward window used for slot projection.
const BookingHorizonDays = 7

// ProjectedSlot is a concrete, dated instantiation of a WeeklyAvailability
// entry within the current booking horizon. It is derived data, never persisted.
type ProjectedSlot struct {
	Date      time.Time `json:"date"`
	DayName   string    `json:"day_name"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Taken     bool      `json:"taken"`
}

// slotKey builds the tuple used to match a projected slot against an appointment.
func slotKey(date time.Time, clock string) string {
	return date.Format(DateLayout) + " " + clock
}

// ProjectSlots projects the given weekly availability onto the booking horizon
// starting at today, marking as taken every slot occupied by a non-cancelled
// appointment. An appointment matching excludeAppointmentID does not occupy its
// slot, which lets a reschedule offer the appointment's own slot back.
//
// Slots are emitted by day offset ascending and, within a day, in the order the
// availability entries were stored. A doctor with no availability yields an
// empty sequence.
func ProjectSlots(availability []*WeeklyAvailability, appointments []*Appointment, today time.Time, excludeAppointmentID int64) []ProjectedSlot {
	booked := make(map[string]bool, len(appointments))
	for _, appointment := range appointments {
		if appointment.Status == StatusCancelled {
			continue
		}
		if excludeAppointmentID > 0 && appointment.ID == excludeAppointmentID {
			continue
		}
		booked[slotKey(appointment.Date, appointment.Time)] = true
	}
	byDay := make(map[string][]*WeeklyAvailability, len(availability))
	for _, entry := range availability {
		byDay[entry.DayOfWeek] = append(byDay[entry.DayOfWeek], entry)
	}
	slots := make([]ProjectedSlot, 0)
	for offset := 0; offset < BookingHorizonDays; offset++ {
		day := today.AddDate(0, 0, offset)
		dayName := day.Weekday().String()
		for _, entry := range byDay[dayName] {
			slots = append(slots, ProjectedSlot{
				Date:      day,
				DayName:   dayName,
				StartTime: entry.StartTime,
				EndTime:   entry.EndTime,
				Taken:     booked[slotKey(day, entry.StartTime)],
			})
		}
	}
	return slots
}
