package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bizops/ledger/internal/application/attachment"
)

var _ attachment.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage keeps uploads in memory. Used in development and tests
// when no S3 endpoint is configured.
type StubObjectStorage struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubObjectStorage creates a new StubObjectStorage. An empty baseURL
// selects https://storage.example.com.
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = "https://storage.example.com"
	}
	return &StubObjectStorage{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string][]byte),
	}
}

// Upload reads body fully and keeps it under storageKey
func (s *StubObjectStorage) Upload(_ context.Context, storageKey string, body io.Reader, size int64, _ string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, body)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	if n != size {
		return fmt.Errorf("upload size mismatch: declared %d, read %d", size, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = buf.Bytes()
	return nil
}

// ObjectURL returns BaseURL/storageKey
func (s *StubObjectStorage) ObjectURL(storageKey string) string {
	return s.BaseURL + "/" + strings.TrimLeft(storageKey, "/")
}

// Object returns the stored bytes of storageKey
func (s *StubObjectStorage) Object(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.objects[storageKey]
	return b, ok
}
