package radiograph

import (
	"time"

	"github.com/google/uuid"
)

// Radiograph maps to the radiograph table. The image bytes live in the
// blob store; this row carries the clinical metadata.
type Radiograph struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	OperationID *uuid.UUID `db:"operation_id" json:"operation_id,omitempty"`
	Kind        string     `db:"kind" json:"kind"`
	BlobID      string     `db:"blob_id" json:"blob_id"`
	ContentType string     `db:"content_type" json:"content_type"`
	SizeBytes   int64      `db:"size_bytes" json:"size_bytes"`
	CapturedAt  *time.Time `db:"captured_at" json:"captured_at,omitempty"`
	Note        *string    `db:"note" json:"note,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
