package savedfilter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/implantdesk/implantdesk/internal/filter"
)

type mockRepo struct {
	byID   map[uuid.UUID]*SavedFilter
	byName map[string]uuid.UUID
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		byID:   make(map[uuid.UUID]*SavedFilter),
		byName: make(map[string]uuid.UUID),
	}
}

func nameKey(name, pageType string) string { return pageType + "/" + name }

func (m *mockRepo) Upsert(_ context.Context, f *SavedFilter) error {
	key := nameKey(f.Name, f.PageType)
	if id, ok := m.byName[key]; ok {
		f.ID = id
	} else {
		f.ID = uuid.New()
		m.byName[key] = f.ID
	}
	cp := *f
	m.byID[f.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*SavedFilter, error) {
	f, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("saved filter not found")
	}
	return f, nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	f, ok := m.byID[id]
	if !ok {
		return nil
	}
	delete(m.byName, nameKey(f.Name, f.PageType))
	delete(m.byID, id)
	return nil
}

func (m *mockRepo) ListByPageType(_ context.Context, pageType string) ([]*SavedFilter, error) {
	var items []*SavedFilter
	for _, f := range m.byID {
		if f.PageType == pageType {
			items = append(items, f)
		}
	}
	return items, nil
}

var testSchemas = map[string]filter.Schema{
	"implants": {
		{Name: "brand", Label: "Brand", Type: filter.FieldText},
		{Name: "diameter", Label: "Diameter", Type: filter.FieldNumber},
	},
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, testSchemas), repo
}

func brandGroup(value string) *filter.Group {
	return &filter.Group{
		ID:       "g1",
		Operator: filter.CombineAnd,
		Rules: []filter.Rule{
			{ID: "r1", Field: "brand", Operator: filter.OpContains, Value: value},
		},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	saved, err := svc.Save(ctx, "narrow straumann", "implants", brandGroup("stra"), "user-1")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.CreatedBy == nil || *saved.CreatedBy != "user-1" {
		t.Error("created_by not recorded")
	}

	_, g, err := svc.Load(ctx, saved.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(g.Rules) != 1 || g.Rules[0].Field != "brand" || g.Rules[0].Value != "stra" {
		t.Errorf("loaded group does not match saved group: %+v", g)
	}
}

func TestSaveOverwritesSameName(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	first, err := svc.Save(ctx, "mine", "implants", brandGroup("stra"), "")
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := svc.Save(ctx, "mine", "implants", brandGroup("nobel"), "")
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("same name should keep the same id, got %s and %s", first.ID, second.ID)
	}
	if len(repo.byID) != 1 {
		t.Errorf("expected one stored row, got %d", len(repo.byID))
	}
	_, g, err := svc.Load(ctx, second.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if g.Rules[0].Value != "nobel" {
		t.Errorf("last write should win, got %v", g.Rules[0].Value)
	}
}

func TestSaveRejectsEmptyFilter(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []*filter.Group{
		nil,
		{ID: "g1", Operator: filter.CombineAnd},
		{ID: "g1", Operator: filter.CombineAnd, Rules: []filter.Rule{
			{ID: "r1", Field: "brand", Operator: filter.OpContains, Value: ""},
		}},
	}
	for i, g := range cases {
		if _, err := svc.Save(ctx, "empty", "implants", g, ""); err == nil {
			t.Errorf("case %d: expected error for filter with no usable rules", i)
		}
	}
}

func TestSaveNormalizesIncompleteRules(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	g := brandGroup("stra")
	g.Rules = append(g.Rules, filter.Rule{ID: "r2", Field: "diameter", Operator: filter.OpGreaterThan, Value: nil})
	saved, err := svc.Save(ctx, "partial", "implants", g, "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if strings.Contains(saved.FilterData, "diameter") {
		t.Error("incomplete rule should be dropped before storing")
	}
}

func TestSaveRejectsUnknownPageType(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Save(context.Background(), "x", "patients", brandGroup("a"), ""); err == nil {
		t.Error("expected error for unregistered page type")
	}
}

func TestLoadCorruptDataReportsInvalidFormat(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	id := uuid.New()
	repo.byID[id] = &SavedFilter{ID: id, Name: "bad", PageType: "implants", FilterData: `{"operator":"XOR","rules":[]}`}

	_, _, err := svc.Load(ctx, id)
	if err == nil {
		t.Fatal("expected error for corrupt filter data")
	}
	if !errors.Is(err, filter.ErrInvalidFormat) {
		t.Errorf("expected invalid format error, got %v", err)
	}
}

func TestDeleteThenLoad(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	saved, err := svc.Save(ctx, "doomed", "implants", brandGroup("stra"), "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := svc.Load(ctx, saved.ID); err == nil {
		t.Error("expected error loading a deleted filter")
	}
}
