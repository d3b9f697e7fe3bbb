package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	FirstName       string     `db:"first_name" json:"first_name"`
	LastName        string     `db:"last_name" json:"last_name"`
	BirthDate       *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Sex             *string    `db:"sex" json:"sex,omitempty"`
	Phone           *string    `db:"phone" json:"phone,omitempty"`
	Email           *string    `db:"email" json:"email,omitempty"`
	Address         *string    `db:"address" json:"address,omitempty"`
	Anticoagulants  bool       `db:"anticoagulants" json:"anticoagulants"`
	Bisphosphonates bool       `db:"bisphosphonates" json:"bisphosphonates"`
	Diabetes        bool       `db:"diabetes" json:"diabetes"`
	Smoker          bool       `db:"smoker" json:"smoker"`
	MedicalNote     *string    `db:"medical_note" json:"medical_note,omitempty"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// RiskFlags summarizes the medical-history booleans that gate implant
// surgery planning.
func (p *Patient) RiskFlags() []string {
	var flags []string
	if p.Anticoagulants {
		flags = append(flags, "anticoagulants")
	}
	if p.Bisphosphonates {
		flags = append(flags, "bisphosphonates")
	}
	if p.Diabetes {
		flags = append(flags, "diabetes")
	}
	if p.Smoker {
		flags = append(flags, "smoker")
	}
	return flags
}
