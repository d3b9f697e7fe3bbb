package catalog

import (
	"context"

	"github.com/google/uuid"
)

type ImplantRepository interface {
	Create(ctx context.Context, i *Implant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Implant, error)
	Update(ctx context.Context, i *Implant) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Implant, int, error)
	ListAll(ctx context.Context) ([]*Implant, error)
}

type ProsthesisRepository interface {
	Create(ctx context.Context, p *Prosthesis) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prosthesis, error)
	Update(ctx context.Context, p *Prosthesis) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Prosthesis, int, error)
	ListAll(ctx context.Context) ([]*Prosthesis, error)
}
