package onboarding

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/implantdesk/implantdesk/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const stateCols = `id, current_step, completed, step_data, created_at, updated_at`

// Get returns the tenant's single onboarding row. The table lives in
// the tenant schema, so no tenant column is needed.
func (r *repoPG) Get(ctx context.Context) (*State, error) {
	var st State
	err := r.conn(ctx).QueryRow(ctx, `SELECT `+stateCols+` FROM onboarding_state LIMIT 1`).
		Scan(&st.ID, &st.CurrentStep, &st.Completed, &st.StepData, &st.CreatedAt, &st.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotStarted
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repoPG) Create(ctx context.Context, st *State) error {
	st.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO onboarding_state (id, current_step, completed, step_data)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at, updated_at`,
		st.ID, st.CurrentStep, st.Completed, st.StepData).
		Scan(&st.CreatedAt, &st.UpdatedAt)
}

func (r *repoPG) Update(ctx context.Context, st *State) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE onboarding_state
		SET current_step = $2, completed = $3, step_data = $4, updated_at = NOW()
		WHERE id = $1`,
		st.ID, st.CurrentStep, st.Completed, st.StepData)
	return err
}
