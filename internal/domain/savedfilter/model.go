package savedfilter

import (
	"time"

	"github.com/google/uuid"
)

// SavedFilter maps to the saved_filter table. FilterData holds the
// serialized filter group verbatim; it is validated on save and
// re-validated on load so a corrupt row surfaces as a recoverable
// error instead of a broken list screen.
type SavedFilter struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	PageType   string    `db:"page_type" json:"page_type"`
	FilterData string    `db:"filter_data" json:"filter_data"`
	CreatedBy  *string   `db:"created_by" json:"created_by,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
