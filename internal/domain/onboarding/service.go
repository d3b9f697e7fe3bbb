package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the tenant's onboarding state, starting the wizard at the
// first step if it has not begun.
func (s *Service) Get(ctx context.Context) (*State, error) {
	st, err := s.repo.Get(ctx)
	if errors.Is(err, ErrNotStarted) {
		st = &State{
			CurrentStep: StepPracticeProfile,
			StepData:    map[string]json.RawMessage{},
		}
		if err := s.repo.Create(ctx, st); err != nil {
			return nil, err
		}
		return st, nil
	}
	return st, err
}

// CompleteStep records the payload for the current step and advances
// the wizard. Steps must be completed in order; completing a step other
// than the current one is rejected so a stale tab cannot skip ahead.
func (s *Service) CompleteStep(ctx context.Context, step string, payload json.RawMessage) (*State, error) {
	if !ValidStep(step) {
		return nil, fmt.Errorf("invalid step: %s", step)
	}
	st, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if st.Completed {
		return nil, fmt.Errorf("onboarding already completed")
	}
	if step != st.CurrentStep {
		return nil, fmt.Errorf("expected step %s, got %s", st.CurrentStep, step)
	}

	if st.StepData == nil {
		st.StepData = map[string]json.RawMessage{}
	}
	if len(payload) > 0 {
		st.StepData[step] = payload
	}

	next := NextStep(step)
	if next == "" || next == StepDone {
		st.CurrentStep = StepDone
		st.Completed = true
	} else {
		st.CurrentStep = next
	}
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Reset restarts the wizard. Allowed only while onboarding is still in
// progress; a completed practice keeps its record.
func (s *Service) Reset(ctx context.Context) (*State, error) {
	st, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if st.Completed {
		return nil, fmt.Errorf("onboarding already completed")
	}
	st.CurrentStep = StepPracticeProfile
	st.StepData = map[string]json.RawMessage{}
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}
