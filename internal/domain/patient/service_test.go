package patient

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockRepo) SearchByName(_ context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	q := strings.ToLower(query)
	for _, p := range m.patients {
		if strings.Contains(strings.ToLower(p.FirstName), q) || strings.Contains(strings.ToLower(p.LastName), q) {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

func newTestService() *Service {
	return NewService(newMockRepo())
}

func TestCreatePatient(t *testing.T) {
	svc := newTestService()
	p := &Patient{FirstName: "Marie", LastName: "Dupont"}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected ID to be assigned")
	}
	if !p.IsActive {
		t.Error("new patient should be active")
	}
}

func TestCreatePatientRequiresName(t *testing.T) {
	svc := newTestService()
	if err := svc.Create(context.Background(), &Patient{LastName: "Dupont"}); err == nil {
		t.Error("expected error for missing first_name")
	}
	if err := svc.Create(context.Background(), &Patient{FirstName: "Marie"}); err == nil {
		t.Error("expected error for missing last_name")
	}
}

func TestCreatePatientRejectsInvalidSex(t *testing.T) {
	svc := newTestService()
	sex := "banana"
	p := &Patient{FirstName: "Marie", LastName: "Dupont", Sex: &sex}
	if err := svc.Create(context.Background(), p); err == nil {
		t.Error("expected error for invalid sex")
	}
}

func TestSearchFallsBackToList(t *testing.T) {
	svc := newTestService()
	svc.Create(context.Background(), &Patient{FirstName: "Marie", LastName: "Dupont"})
	svc.Create(context.Background(), &Patient{FirstName: "Jean", LastName: "Martin"})

	all, total, err := svc.Search(context.Background(), "", 20, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("empty query should list all, got %d", total)
	}

	some, total, err := svc.Search(context.Background(), "mart", 20, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 1 || some[0].LastName != "Martin" {
		t.Errorf("expected only Martin, got %d results", total)
	}
}

func TestRiskFlags(t *testing.T) {
	p := &Patient{Anticoagulants: true, Smoker: true}
	flags := p.RiskFlags()
	if len(flags) != 2 {
		t.Fatalf("expected 2 flags, got %v", flags)
	}
	if flags[0] != "anticoagulants" || flags[1] != "smoker" {
		t.Errorf("unexpected flags: %v", flags)
	}
	if len((&Patient{}).RiskFlags()) != 0 {
		t.Error("healthy patient should have no flags")
	}
}
