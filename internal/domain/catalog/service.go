package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/implantdesk/implantdesk/internal/filter"
)

type Service struct {
	implants   ImplantRepository
	prostheses ProsthesisRepository
}

func NewService(implants ImplantRepository, prostheses ProsthesisRepository) *Service {
	return &Service{implants: implants, prostheses: prostheses}
}

// -- Implants --

func (s *Service) CreateImplant(ctx context.Context, i *Implant) error {
	if i.Brand == "" {
		return fmt.Errorf("brand is required")
	}
	if i.Reference == "" {
		return fmt.Errorf("reference is required")
	}
	if i.Diameter <= 0 {
		return fmt.Errorf("diameter must be positive")
	}
	if i.Length <= 0 {
		return fmt.Errorf("length must be positive")
	}
	if i.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	return s.implants.Create(ctx, i)
}

func (s *Service) GetImplant(ctx context.Context, id uuid.UUID) (*Implant, error) {
	return s.implants.GetByID(ctx, id)
}

func (s *Service) UpdateImplant(ctx context.Context, i *Implant) error {
	if i.Brand == "" {
		return fmt.Errorf("brand is required")
	}
	if i.Reference == "" {
		return fmt.Errorf("reference is required")
	}
	if i.Diameter <= 0 || i.Length <= 0 {
		return fmt.Errorf("diameter and length must be positive")
	}
	return s.implants.Update(ctx, i)
}

func (s *Service) DeleteImplant(ctx context.Context, id uuid.UUID) error {
	return s.implants.Delete(ctx, id)
}

func (s *Service) ListImplants(ctx context.Context, limit, offset int) ([]*Implant, int, error) {
	return s.implants.List(ctx, limit, offset)
}

// FilterImplants applies an advanced-filter group to the full implant
// catalog. The group is normalized first; a group that normalizes away
// means no filter and returns everything.
func (s *Service) FilterImplants(ctx context.Context, g *filter.Group) ([]*Implant, error) {
	items, err := s.implants.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	g = filter.Normalize(g, ImplantFilterSchema)
	return filter.Apply(g, items, (*Implant).FilterFields), nil
}

// -- Prostheses --

var validProsthesisTypes = map[string]bool{
	"crown": true, "bridge": true, "abutment": true,
	"overdenture": true, "bar": true, "healing-cap": true,
}

func (s *Service) CreateProsthesis(ctx context.Context, p *Prosthesis) error {
	if p.Brand == "" {
		return fmt.Errorf("brand is required")
	}
	if p.Reference == "" {
		return fmt.Errorf("reference is required")
	}
	if p.Type == "" {
		return fmt.Errorf("type is required")
	}
	if !validProsthesisTypes[p.Type] {
		return fmt.Errorf("invalid type: %s", p.Type)
	}
	if p.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	return s.prostheses.Create(ctx, p)
}

func (s *Service) GetProsthesis(ctx context.Context, id uuid.UUID) (*Prosthesis, error) {
	return s.prostheses.GetByID(ctx, id)
}

func (s *Service) UpdateProsthesis(ctx context.Context, p *Prosthesis) error {
	if p.Brand == "" {
		return fmt.Errorf("brand is required")
	}
	if p.Reference == "" {
		return fmt.Errorf("reference is required")
	}
	if p.Type != "" && !validProsthesisTypes[p.Type] {
		return fmt.Errorf("invalid type: %s", p.Type)
	}
	return s.prostheses.Update(ctx, p)
}

func (s *Service) DeleteProsthesis(ctx context.Context, id uuid.UUID) error {
	return s.prostheses.Delete(ctx, id)
}

func (s *Service) ListProstheses(ctx context.Context, limit, offset int) ([]*Prosthesis, int, error) {
	return s.prostheses.List(ctx, limit, offset)
}

func (s *Service) FilterProstheses(ctx context.Context, g *filter.Group) ([]*Prosthesis, error) {
	items, err := s.prostheses.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	g = filter.Normalize(g, ProsthesisFilterSchema)
	return filter.Apply(g, items, (*Prosthesis).FilterFields), nil
}
