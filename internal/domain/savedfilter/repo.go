package savedfilter

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Upsert saves by (name, page_type); concurrent saves of the same
	// name resolve last-write-wins.
	Upsert(ctx context.Context, f *SavedFilter) error
	GetByID(ctx context.Context, id uuid.UUID) (*SavedFilter, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPageType(ctx context.Context, pageType string) ([]*SavedFilter, error)
}
