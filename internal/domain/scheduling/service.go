package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var validStatuses = map[string]bool{
	StatusBooked: true, StatusArrived: true, StatusFulfilled: true,
	StatusCancelled: true, StatusNoShow: true,
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.PractitionerID == uuid.Nil {
		return fmt.Errorf("practitioner_id is required")
	}
	if a.Start.IsZero() || a.End.IsZero() {
		return fmt.Errorf("start and end are required")
	}
	if !a.End.After(a.Start) {
		return fmt.Errorf("end must be after start")
	}
	if a.Status == "" {
		a.Status = StatusBooked
	}
	if a.Status != StatusBooked {
		return fmt.Errorf("new appointments must be booked")
	}

	overlapping, err := s.repo.CountOverlapping(ctx, a.PractitionerID, a.Start, a.End, uuid.Nil)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return fmt.Errorf("practitioner already has an appointment in this slot")
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// Reschedule moves an appointment to a new slot. Only booked
// appointments can move.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, start, end time.Time) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusBooked {
		return nil, fmt.Errorf("only booked appointments can be rescheduled")
	}
	if !end.After(start) {
		return nil, fmt.Errorf("end must be after start")
	}
	overlapping, err := s.repo.CountOverlapping(ctx, a.PractitionerID, start, end, a.ID)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, fmt.Errorf("practitioner already has an appointment in this slot")
	}
	a.Start = start
	a.End = end
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateStatus applies a lifecycle transition.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(a.Status, status) {
		return nil, fmt.Errorf("cannot transition from %s to %s", a.Status, status)
	}
	a.Status = status
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// Agenda returns the appointments overlapping a day window, for the
// calendar view.
func (s *Service) Agenda(ctx context.Context, from, to time.Time) ([]*Appointment, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("invalid range")
	}
	return s.repo.ListByRange(ctx, from, to)
}
