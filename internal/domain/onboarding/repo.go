package onboarding

import (
	"context"
	"errors"
)

// ErrNotStarted is returned when the tenant has no onboarding row yet.
var ErrNotStarted = errors.New("onboarding not started")

type Repository interface {
	Get(ctx context.Context) (*State, error)
	Create(ctx context.Context, st *State) error
	Update(ctx context.Context, st *State) error
}
