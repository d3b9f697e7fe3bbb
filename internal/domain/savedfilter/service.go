package savedfilter

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/implantdesk/implantdesk/internal/filter"
)

type Service struct {
	repo Repository
	// schemas maps each page type to the field schema its filters are
	// validated against.
	schemas map[string]filter.Schema
}

func NewService(repo Repository, schemas map[string]filter.Schema) *Service {
	return &Service{repo: repo, schemas: schemas}
}

// Save persists a filter under a user-chosen name. The group is
// normalized and re-encoded so the stored string is always well-formed;
// a group that normalizes to nothing is rejected rather than stored as
// a no-op filter. Saving an existing (name, page_type) overwrites it,
// last write wins.
func (s *Service) Save(ctx context.Context, name, pageType string, g *filter.Group, createdBy string) (*SavedFilter, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	schema, ok := s.schemas[pageType]
	if !ok {
		return nil, fmt.Errorf("invalid page_type: %s", pageType)
	}
	normalized := filter.Normalize(g, schema)
	if normalized == nil {
		return nil, fmt.Errorf("filter has no usable rules")
	}
	data, err := filter.Encode(normalized)
	if err != nil {
		return nil, err
	}

	f := &SavedFilter{Name: name, PageType: pageType, FilterData: data}
	if createdBy != "" {
		f.CreatedBy = &createdBy
	}
	if err := s.repo.Upsert(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Load fetches a saved filter and decodes its group. Corrupt stored
// data reports filter.ErrInvalidFormat; the caller keeps its current
// filter state.
func (s *Service) Load(ctx context.Context, id uuid.UUID) (*SavedFilter, *filter.Group, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	g, err := filter.Decode(f.FilterData)
	if err != nil {
		return nil, nil, err
	}
	return f, g, nil
}

func (s *Service) List(ctx context.Context, pageType string) ([]*SavedFilter, error) {
	if _, ok := s.schemas[pageType]; !ok {
		return nil, fmt.Errorf("invalid page_type: %s", pageType)
	}
	return s.repo.ListByPageType(ctx, pageType)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
