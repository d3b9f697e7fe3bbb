package radiograph

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Radiograph) error
	GetByID(ctx context.Context, id uuid.UUID) (*Radiograph, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Radiograph, int, error)
}
