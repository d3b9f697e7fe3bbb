package radiograph

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

const radiographCols = `id, patient_id, operation_id, kind, blob_id, content_type, size_bytes, captured_at, note, created_at`

func scanRadiograph(row pgx.Row) (*Radiograph, error) {
	var rg Radiograph
	err := row.Scan(&rg.ID, &rg.PatientID, &rg.OperationID, &rg.Kind, &rg.BlobID, &rg.ContentType,
		&rg.SizeBytes, &rg.CapturedAt, &rg.Note, &rg.CreatedAt)
	return &rg, err
}

func (r *repoPG) Create(ctx context.Context, rg *Radiograph) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO radiograph (id, patient_id, operation_id, kind, blob_id, content_type, size_bytes, captured_at, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rg.ID, rg.PatientID, rg.OperationID, rg.Kind, rg.BlobID, rg.ContentType, rg.SizeBytes, rg.CapturedAt, rg.Note)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Radiograph, error) {
	return scanRadiograph(r.conn(ctx).QueryRow(ctx, `SELECT `+radiographCols+` FROM radiograph WHERE id = $1`, id))
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM radiograph WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Radiograph, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM radiograph WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+radiographCols+` FROM radiograph
		WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Radiograph
	for rows.Next() {
		rg, err := scanRadiograph(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rg)
	}
	return items, total, nil
}
