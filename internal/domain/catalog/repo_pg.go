package catalog

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

// =========== Implant Repository ===========

type implantRepoPG struct{ pool *pgxpool.Pool }

func NewImplantRepoPG(pool *pgxpool.Pool) ImplantRepository { return &implantRepoPG{pool: pool} }

func (r *implantRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const implantCols = `id, brand, reference, diameter, length, lot, stock, note, created_at, updated_at`

func scanImplant(row pgx.Row) (*Implant, error) {
	var i Implant
	err := row.Scan(&i.ID, &i.Brand, &i.Reference, &i.Diameter, &i.Length, &i.Lot, &i.Stock, &i.Note,
		&i.CreatedAt, &i.UpdatedAt)
	return &i, err
}

func (r *implantRepoPG) Create(ctx context.Context, i *Implant) error {
	i.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO implant_catalog (id, brand, reference, diameter, length, lot, stock, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		i.ID, i.Brand, i.Reference, i.Diameter, i.Length, i.Lot, i.Stock, i.Note)
	return err
}

func (r *implantRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Implant, error) {
	return scanImplant(r.conn(ctx).QueryRow(ctx, `SELECT `+implantCols+` FROM implant_catalog WHERE id = $1`, id))
}

func (r *implantRepoPG) Update(ctx context.Context, i *Implant) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE implant_catalog SET brand=$2, reference=$3, diameter=$4, length=$5, lot=$6, stock=$7, note=$8, updated_at=NOW()
		WHERE id = $1`,
		i.ID, i.Brand, i.Reference, i.Diameter, i.Length, i.Lot, i.Stock, i.Note)
	return err
}

func (r *implantRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM implant_catalog WHERE id = $1`, id)
	return err
}

func (r *implantRepoPG) List(ctx context.Context, limit, offset int) ([]*Implant, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM implant_catalog`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+implantCols+` FROM implant_catalog ORDER BY brand, reference LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Implant
	for rows.Next() {
		i, err := scanImplant(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, i)
	}
	return items, total, nil
}

func (r *implantRepoPG) ListAll(ctx context.Context) ([]*Implant, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+implantCols+` FROM implant_catalog ORDER BY brand, reference`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Implant
	for rows.Next() {
		i, err := scanImplant(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, nil
}

// =========== Prosthesis Repository ===========

type prosthesisRepoPG struct{ pool *pgxpool.Pool }

func NewProsthesisRepoPG(pool *pgxpool.Pool) ProsthesisRepository { return &prosthesisRepoPG{pool: pool} }

func (r *prosthesisRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const prosthesisCols = `id, brand, reference, type, material, shade, lot, stock, note, created_at, updated_at`

func scanProsthesis(row pgx.Row) (*Prosthesis, error) {
	var p Prosthesis
	err := row.Scan(&p.ID, &p.Brand, &p.Reference, &p.Type, &p.Material, &p.Shade, &p.Lot, &p.Stock, &p.Note,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *prosthesisRepoPG) Create(ctx context.Context, p *Prosthesis) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO prosthesis_catalog (id, brand, reference, type, material, shade, lot, stock, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.Brand, p.Reference, p.Type, p.Material, p.Shade, p.Lot, p.Stock, p.Note)
	return err
}

func (r *prosthesisRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prosthesis, error) {
	return scanProsthesis(r.conn(ctx).QueryRow(ctx, `SELECT `+prosthesisCols+` FROM prosthesis_catalog WHERE id = $1`, id))
}

func (r *prosthesisRepoPG) Update(ctx context.Context, p *Prosthesis) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE prosthesis_catalog SET brand=$2, reference=$3, type=$4, material=$5, shade=$6, lot=$7, stock=$8, note=$9, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Brand, p.Reference, p.Type, p.Material, p.Shade, p.Lot, p.Stock, p.Note)
	return err
}

func (r *prosthesisRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM prosthesis_catalog WHERE id = $1`, id)
	return err
}

func (r *prosthesisRepoPG) List(ctx context.Context, limit, offset int) ([]*Prosthesis, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM prosthesis_catalog`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+prosthesisCols+` FROM prosthesis_catalog ORDER BY brand, reference LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Prosthesis
	for rows.Next() {
		p, err := scanProsthesis(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *prosthesisRepoPG) ListAll(ctx context.Context) ([]*Prosthesis, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+prosthesisCols+` FROM prosthesis_catalog ORDER BY brand, reference`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Prosthesis
	for rows.Next() {
		p, err := scanProsthesis(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}
