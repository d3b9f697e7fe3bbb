package savedfilter

import (
	"context"

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

const savedFilterCols = `id, name, page_type, filter_data, created_by, created_at, updated_at`

func scanSavedFilter(row pgx.Row) (*SavedFilter, error) {
	var f SavedFilter
	err := row.Scan(&f.ID, &f.Name, &f.PageType, &f.FilterData, &f.CreatedBy, &f.CreatedAt, &f.UpdatedAt)
	return &f, err
}

func (r *repoPG) Upsert(ctx context.Context, f *SavedFilter) error {
	f.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO saved_filter (id, name, page_type, filter_data, created_by)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (name, page_type) DO UPDATE
			SET filter_data = EXCLUDED.filter_data,
			    created_by = EXCLUDED.created_by,
			    updated_at = NOW()
		RETURNING id`,
		f.ID, f.Name, f.PageType, f.FilterData, f.CreatedBy).Scan(&f.ID)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*SavedFilter, error) {
	return scanSavedFilter(r.conn(ctx).QueryRow(ctx, `SELECT `+savedFilterCols+` FROM saved_filter WHERE id = $1`, id))
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM saved_filter WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPageType(ctx context.Context, pageType string) ([]*SavedFilter, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+savedFilterCols+` FROM saved_filter WHERE page_type = $1 ORDER BY name`, pageType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*SavedFilter
	for rows.Next() {
		f, err := scanSavedFilter(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, nil
}
