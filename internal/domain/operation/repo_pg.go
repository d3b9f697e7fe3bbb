package operation

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

const operationCols = `id, patient_id, practitioner_id, date, type, status, anesthesia, note, created_at, updated_at`

func scanOperation(row pgx.Row) (*Operation, error) {
	var o Operation
	err := row.Scan(&o.ID, &o.PatientID, &o.PractitionerID, &o.Date, &o.Type, &o.Status,
		&o.Anesthesia, &o.Note, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

func (r *repoPG) Create(ctx context.Context, o *Operation) error {
	o.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO operation (id, patient_id, practitioner_id, date, type, status, anesthesia, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		o.ID, o.PatientID, o.PractitionerID, o.Date, o.Type, o.Status, o.Anesthesia, o.Note)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Operation, error) {
	return scanOperation(r.conn(ctx).QueryRow(ctx, `SELECT `+operationCols+` FROM operation WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, o *Operation) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE operation SET date=$2, type=$3, status=$4, anesthesia=$5, note=$6, updated_at=NOW()
		WHERE id = $1`,
		o.ID, o.Date, o.Type, o.Status, o.Anesthesia, o.Note)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM operation WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Operation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM operation`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+operationCols+` FROM operation ORDER BY date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectOperations(rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Operation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM operation WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+operationCols+` FROM operation WHERE patient_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectOperations(rows, total)
}

func collectOperations(rows pgx.Rows, total int) ([]*Operation, int, error) {
	var items []*Operation
	for rows.Next() {
		o, err := scanOperation(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, o)
	}
	return items, total, nil
}

// -- Poses --

const poseCols = `id, operation_id, implant_id, tooth_position, torque_ncm, bone_type, status, explanted_at, note, created_at, updated_at`

func scanPose(row pgx.Row) (*ImplantPose, error) {
	var p ImplantPose
	err := row.Scan(&p.ID, &p.OperationID, &p.ImplantID, &p.ToothPosition, &p.TorqueNcm, &p.BoneType,
		&p.Status, &p.ExplantedAt, &p.Note, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) AddPose(ctx context.Context, p *ImplantPose) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO implant_pose (id, operation_id, implant_id, tooth_position, torque_ncm, bone_type, status, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.OperationID, p.ImplantID, p.ToothPosition, p.TorqueNcm, p.BoneType, p.Status, p.Note)
	return err
}

func (r *repoPG) GetPose(ctx context.Context, id uuid.UUID) (*ImplantPose, error) {
	return scanPose(r.conn(ctx).QueryRow(ctx, `SELECT `+poseCols+` FROM implant_pose WHERE id = $1`, id))
}

func (r *repoPG) UpdatePose(ctx context.Context, p *ImplantPose) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE implant_pose SET implant_id=$2, tooth_position=$3, torque_ncm=$4, bone_type=$5,
			status=$6, explanted_at=$7, note=$8, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.ImplantID, p.ToothPosition, p.TorqueNcm, p.BoneType, p.Status, p.ExplantedAt, p.Note)
	return err
}

func (r *repoPG) GetPoses(ctx context.Context, operationID uuid.UUID) ([]*ImplantPose, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+poseCols+` FROM implant_pose WHERE operation_id = $1 ORDER BY tooth_position`, operationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ImplantPose
	for rows.Next() {
		p, err := scanPose(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}

func (r *repoPG) RemovePose(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM implant_pose WHERE id = $1`, id)
	return err
}

// -- ISQ Measurements --

const measurementCols = `id, pose_id, measured_at, buccal, lingual, mesial, created_at`

func (r *repoPG) AddMeasurement(ctx context.Context, m *ISQMeasurement) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO isq_measurement (id, pose_id, measured_at, buccal, lingual, mesial)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		m.ID, m.PoseID, m.MeasuredAt, m.Buccal, m.Lingual, m.Mesial)
	return err
}

func (r *repoPG) GetMeasurements(ctx context.Context, poseID uuid.UUID) ([]*ISQMeasurement, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+measurementCols+` FROM isq_measurement WHERE pose_id = $1 ORDER BY measured_at`, poseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ISQMeasurement
	for rows.Next() {
		var m ISQMeasurement
		if err := rows.Scan(&m.ID, &m.PoseID, &m.MeasuredAt, &m.Buccal, &m.Lingual, &m.Mesial, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, nil
}
