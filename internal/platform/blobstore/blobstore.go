// Package blobstore stores radiograph image binaries. The store keeps
// opaque blobs keyed by ID; clinical metadata lives in the radiograph
// domain tables, not here.
package blobstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrNotFound           = errors.New("blob not found")
	ErrBlobTooLarge       = errors.New("blob exceeds maximum size")
	ErrUnsupportedContent = errors.New("unsupported content type")
)

// MaxBlobSize caps a single radiograph upload. CBCT exports can be large
// but anything past this belongs in a PACS, not here.
const MaxBlobSize = 64 << 20

// AllowedContentTypes lists the content types accepted for radiograph
// uploads.
var AllowedContentTypes = map[string]bool{
	"image/png":         true,
	"image/jpeg":        true,
	"image/tiff":        true,
	"application/dicom": true,
	"application/pdf":   true,
}

// BlobMetadata describes a stored blob.
type BlobMetadata struct {
	ID          string    `json:"id"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	SHA256      string    `json:"sha256"`
	CreatedAt   time.Time `json:"created_at"`
}

// BlobStore persists radiograph binaries.
type BlobStore interface {
	Put(ctx context.Context, id, contentType string, data []byte) (*BlobMetadata, error)
	Get(ctx context.Context, id string) ([]byte, *BlobMetadata, error)
	Delete(ctx context.Context, id string) error
	Stat(ctx context.Context, id string) (*BlobMetadata, error)
}

type memBlob struct {
	meta BlobMetadata
	data []byte
}

// MemoryStore is an in-memory BlobStore. Used in development and tests;
// production deployments mount a disk-backed store behind the same
// interface.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]memBlob
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]memBlob)}
}

func (s *MemoryStore) Put(ctx context.Context, id, contentType string, data []byte) (*BlobMetadata, error) {
	if !AllowedContentTypes[contentType] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContent, contentType)
	}
	if int64(len(data)) > MaxBlobSize {
		return nil, ErrBlobTooLarge
	}

	sum := sha256.Sum256(data)
	meta := BlobMetadata{
		ID:          id,
		ContentType: contentType,
		Size:        int64(len(data)),
		SHA256:      hex.EncodeToString(sum[:]),
		CreatedAt:   time.Now().UTC(),
	}

	stored := make([]byte, len(data))
	copy(stored, data)

	s.mu.Lock()
	s.blobs[id] = memBlob{meta: meta, data: stored}
	s.mu.Unlock()

	return &meta, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) ([]byte, *BlobMetadata, error) {
	s.mu.RLock()
	b, ok := s.blobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, ErrNotFound
	}
	data := make([]byte, len(b.data))
	copy(data, b.data)
	meta := b.meta
	return data, &meta, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[id]; !ok {
		return ErrNotFound
	}
	delete(s.blobs, id)
	return nil
}

func (s *MemoryStore) Stat(ctx context.Context, id string) (*BlobMetadata, error) {
	s.mu.RLock()
	b, ok := s.blobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	meta := b.meta
	return &meta, nil
}
