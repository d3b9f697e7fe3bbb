package radiograph

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/implantdesk/implantdesk/internal/platform/blobstore"
)

type Service struct {
	repo   Repository
	store  blobstore.BlobStore
	signer *blobstore.URLSigner
	urlTTL time.Duration
}

func NewService(repo Repository, store blobstore.BlobStore, signer *blobstore.URLSigner, urlTTL time.Duration) *Service {
	return &Service{repo: repo, store: store, signer: signer, urlTTL: urlTTL}
}

var validKinds = map[string]bool{
	"panoramic": true, "periapical": true, "cbct": true, "bitewing": true,
}

// Upload stores the image bytes and records the radiograph metadata.
// The blob is written first; a failed metadata insert rolls the blob
// back so the store never holds orphans.
func (s *Service) Upload(ctx context.Context, rg *Radiograph, contentType string, data []byte) error {
	if rg.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if rg.Kind == "" {
		return fmt.Errorf("kind is required")
	}
	if !validKinds[rg.Kind] {
		return fmt.Errorf("invalid kind: %s", rg.Kind)
	}
	if len(data) == 0 {
		return fmt.Errorf("file is empty")
	}

	rg.ID = uuid.New()
	rg.BlobID = rg.ID.String()

	meta, err := s.store.Put(ctx, rg.BlobID, contentType, data)
	if err != nil {
		return fmt.Errorf("store radiograph: %w", err)
	}
	rg.ContentType = meta.ContentType
	rg.SizeBytes = meta.Size

	if err := s.repo.Create(ctx, rg); err != nil {
		_ = s.store.Delete(ctx, rg.BlobID)
		return err
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Radiograph, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Radiograph, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// Delete removes the metadata row and the stored blob.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	rg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.store.Delete(ctx, rg.BlobID)
	return nil
}

// SignedURL describes an expiring download link for one radiograph.
type SignedURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DownloadURL mints a signed download link so the front end can fetch
// the image without replaying auth on the image request.
func (s *Service) DownloadURL(ctx context.Context, id uuid.UUID) (*SignedURL, error) {
	rg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	expires, sig := s.signer.Sign(rg.BlobID, s.urlTTL)
	return &SignedURL{
		URL:       fmt.Sprintf("/api/v1/radiographs/%s/download?expires=%d&sig=%s", rg.ID, expires, sig),
		ExpiresAt: time.Unix(expires, 0).UTC(),
	}, nil
}

// Download verifies the signature and returns the image bytes.
func (s *Service) Download(ctx context.Context, id uuid.UUID, expiresParam, sig string) ([]byte, *Radiograph, error) {
	rg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.signer.VerifyParams(rg.BlobID, expiresParam, sig); err != nil {
		return nil, nil, err
	}
	data, _, err := s.store.Get(ctx, rg.BlobID)
	if err != nil {
		return nil, nil, err
	}
	return data, rg, nil
}
