package operation

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, o *Operation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Operation, error)
	Update(ctx context.Context, o *Operation) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Operation, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Operation, int, error)
	// Poses
	AddPose(ctx context.Context, p *ImplantPose) error
	GetPose(ctx context.Context, id uuid.UUID) (*ImplantPose, error)
	UpdatePose(ctx context.Context, p *ImplantPose) error
	GetPoses(ctx context.Context, operationID uuid.UUID) ([]*ImplantPose, error)
	RemovePose(ctx context.Context, id uuid.UUID) error
	// ISQ
	AddMeasurement(ctx context.Context, m *ISQMeasurement) error
	GetMeasurements(ctx context.Context, poseID uuid.UUID) ([]*ISQMeasurement, error)
}
