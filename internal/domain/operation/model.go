package operation

import (
	"time"

	"github.com/google/uuid"
)

// Operation maps to the operation table. One row per surgical session;
// the implants placed during it live in implant_pose.
type Operation struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	PractitionerID uuid.UUID  `db:"practitioner_id" json:"practitioner_id"`
	Date           time.Time  `db:"date" json:"date"`
	Type           string     `db:"type" json:"type"`
	Status         string     `db:"status" json:"status"`
	Anesthesia     *string    `db:"anesthesia" json:"anesthesia,omitempty"`
	Note           *string    `db:"note" json:"note,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// ImplantPose maps to the implant_pose table. Tooth positions use FDI
// two-digit notation (11-18, 21-28, 31-38, 41-48).
type ImplantPose struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	OperationID   uuid.UUID  `db:"operation_id" json:"operation_id"`
	ImplantID     *uuid.UUID `db:"implant_id" json:"implant_id,omitempty"`
	ToothPosition int        `db:"tooth_position" json:"tooth_position"`
	TorqueNcm     *float64   `db:"torque_ncm" json:"torque_ncm,omitempty"`
	BoneType      *string    `db:"bone_type" json:"bone_type,omitempty"`
	Status        string     `db:"status" json:"status"`
	ExplantedAt   *time.Time `db:"explanted_at" json:"explanted_at,omitempty"`
	Note          *string    `db:"note" json:"note,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// ISQMeasurement maps to the isq_measurement table. Three readings per
// visit, one per probing direction.
type ISQMeasurement struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PoseID     uuid.UUID `db:"pose_id" json:"pose_id"`
	MeasuredAt time.Time `db:"measured_at" json:"measured_at"`
	Buccal     float64   `db:"buccal" json:"buccal"`
	Lingual    float64   `db:"lingual" json:"lingual"`
	Mesial     float64   `db:"mesial" json:"mesial"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ValidToothPosition reports whether n is a valid FDI tooth number for
// a permanent dentition.
func ValidToothPosition(n int) bool {
	quadrant := n / 10
	tooth := n % 10
	return quadrant >= 1 && quadrant <= 4 && tooth >= 1 && tooth <= 8
}
