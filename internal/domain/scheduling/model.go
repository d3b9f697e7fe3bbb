package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	StatusBooked    = "booked"
	StatusArrived   = "arrived"
	StatusFulfilled = "fulfilled"
	StatusCancelled = "cancelled"
	StatusNoShow    = "noshow"
)

// Appointment maps to the appointment table.
type Appointment struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      uuid.UUID `db:"patient_id" json:"patient_id"`
	PractitionerID uuid.UUID `db:"practitioner_id" json:"practitioner_id"`
	Start          time.Time `db:"start_time" json:"start"`
	End            time.Time `db:"end_time" json:"end"`
	Status         string    `db:"status" json:"status"`
	Reason         *string   `db:"reason" json:"reason,omitempty"`
	Note           *string   `db:"note" json:"note,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// validTransitions encodes the appointment lifecycle. Fulfilled,
// cancelled, and noshow are terminal.
var validTransitions = map[string][]string{
	StatusBooked:  {StatusArrived, StatusCancelled, StatusNoShow},
	StatusArrived: {StatusFulfilled, StatusCancelled},
}

// CanTransition reports whether an appointment may move from one
// status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
