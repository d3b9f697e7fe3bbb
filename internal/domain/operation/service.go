package operation

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

var validOperationTypes = map[string]bool{
	"implant-placement": true, "bone-graft": true, "sinus-lift": true,
	"explantation": true, "second-stage": true, "prosthesis-delivery": true,
}

var validOperationStatuses = map[string]bool{
	"planned": true, "completed": true, "cancelled": true,
}

var validPoseStatuses = map[string]bool{
	StatusPlanned: true, StatusPlaced: true, StatusOsseointegrated: true,
	StatusMonitor: true, StatusAtRisk: true, StatusFailed: true,
}

var validBoneTypes = map[string]bool{
	"D1": true, "D2": true, "D3": true, "D4": true,
}

func (s *Service) Create(ctx context.Context, o *Operation) error {
	if o.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if o.PractitionerID == uuid.Nil {
		return fmt.Errorf("practitioner_id is required")
	}
	if o.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if o.Type == "" {
		return fmt.Errorf("type is required")
	}
	if !validOperationTypes[o.Type] {
		return fmt.Errorf("invalid type: %s", o.Type)
	}
	if o.Status == "" {
		o.Status = "planned"
	}
	if !validOperationStatuses[o.Status] {
		return fmt.Errorf("invalid status: %s", o.Status)
	}
	return s.repo.Create(ctx, o)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Operation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, o *Operation) error {
	if o.Type != "" && !validOperationTypes[o.Type] {
		return fmt.Errorf("invalid type: %s", o.Type)
	}
	if o.Status != "" && !validOperationStatuses[o.Status] {
		return fmt.Errorf("invalid status: %s", o.Status)
	}
	return s.repo.Update(ctx, o)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Operation, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Operation, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// -- Poses --

func (s *Service) AddPose(ctx context.Context, p *ImplantPose) error {
	if p.OperationID == uuid.Nil {
		return fmt.Errorf("operation_id is required")
	}
	if !ValidToothPosition(p.ToothPosition) {
		return fmt.Errorf("invalid tooth_position: %d", p.ToothPosition)
	}
	if p.TorqueNcm != nil && (*p.TorqueNcm < 0 || *p.TorqueNcm > 100) {
		return fmt.Errorf("torque_ncm out of range: %.1f", *p.TorqueNcm)
	}
	if p.BoneType != nil && !validBoneTypes[*p.BoneType] {
		return fmt.Errorf("invalid bone_type: %s", *p.BoneType)
	}
	if p.Status == "" {
		p.Status = StatusPlaced
	}
	if !validPoseStatuses[p.Status] {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	return s.repo.AddPose(ctx, p)
}

func (s *Service) GetPose(ctx context.Context, id uuid.UUID) (*ImplantPose, error) {
	return s.repo.GetPose(ctx, id)
}

func (s *Service) UpdatePose(ctx context.Context, p *ImplantPose) error {
	if !ValidToothPosition(p.ToothPosition) {
		return fmt.Errorf("invalid tooth_position: %d", p.ToothPosition)
	}
	if p.Status != "" && !validPoseStatuses[p.Status] {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	// An explant date forces the terminal status.
	if p.ExplantedAt != nil {
		p.Status = StatusFailed
	}
	return s.repo.UpdatePose(ctx, p)
}

func (s *Service) GetPoses(ctx context.Context, operationID uuid.UUID) ([]*ImplantPose, error) {
	return s.repo.GetPoses(ctx, operationID)
}

func (s *Service) RemovePose(ctx context.Context, id uuid.UUID) error {
	return s.repo.RemovePose(ctx, id)
}

// -- ISQ --

func (s *Service) AddMeasurement(ctx context.Context, m *ISQMeasurement) error {
	if m.PoseID == uuid.Nil {
		return fmt.Errorf("pose_id is required")
	}
	for _, v := range []float64{m.Buccal, m.Lingual, m.Mesial} {
		if v < 1 || v > 100 {
			return fmt.Errorf("ISQ readings must be between 1 and 100")
		}
	}
	if m.MeasuredAt.IsZero() {
		m.MeasuredAt = time.Now()
	}
	return s.repo.AddMeasurement(ctx, m)
}

// GetMeasurements returns the pose's readings with their weighted
// values, oldest first.
func (s *Service) GetMeasurements(ctx context.Context, poseID uuid.UUID) ([]*ISQMeasurement, error) {
	return s.repo.GetMeasurements(ctx, poseID)
}

// SuggestPoseStatus runs the classification rules for one pose.
func (s *Service) SuggestPoseStatus(ctx context.Context, poseID uuid.UUID) (*Suggestion, error) {
	pose, err := s.repo.GetPose(ctx, poseID)
	if err != nil {
		return nil, err
	}
	measurements, err := s.repo.GetMeasurements(ctx, poseID)
	if err != nil {
		return nil, err
	}
	history := make([]ISQMeasurement, len(measurements))
	for i, m := range measurements {
		history[i] = *m
	}
	sug := SuggestStatus(pose, history)
	return &sug, nil
}
