// Package attachment stores supporting documents (invoices, receipts, bills)
// referenced by ledger transactions through their attachment URL.
package attachment

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/infrastructure/logger"
	"github.com/bizops/ledger/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AllowedContentTypes is the upload whitelist. SVG is excluded since it can
// carry script.
var AllowedContentTypes = map[string]string{
	"application/pdf":          ".pdf",
	"image/jpeg":               ".jpg",
	"image/png":                ".png",
	"image/webp":               ".webp",
	"text/csv":                 ".csv",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
}

// DefaultMaxSize caps an upload when no limit is configured
const DefaultMaxSize int64 = 10 << 20

// ObjectStorage persists uploaded bytes and returns durable URLs
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, body io.Reader, size int64, contentType string) error
	ObjectURL(storageKey string) string
}

// UploadRequest is one file to store
type UploadRequest struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Attachment is a stored document
type Attachment struct {
	StorageKey  string    `json:"storage_key"`
	URL         string    `json:"url"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedBy  string    `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Service uploads attachments
type Service struct {
	storage ObjectStorage
	maxSize int64
	now     func() time.Time
}

// NewService creates a Service. maxSize <= 0 selects DefaultMaxSize.
func NewService(storage ObjectStorage, maxSize int64) *Service {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Service{storage: storage, maxSize: maxSize, now: time.Now}
}

// Upload validates and stores req, returning the URL to put on a transaction
func (s *Service) Upload(ctx context.Context, req UploadRequest, uploadedBy string) (*Attachment, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "attachment", "Upload")
	defer span.End()

	contentType := normalizeContentType(req.ContentType)
	ext, ok := AllowedContentTypes[contentType]
	if !ok {
		return nil, shared.NewValidationError(fmt.Sprintf("Content type '%s' is not allowed", req.ContentType))
	}
	if req.Size <= 0 {
		return nil, shared.NewValidationError("File is empty")
	}
	if req.Size > s.maxSize {
		return nil, shared.NewValidationError(fmt.Sprintf("File exceeds the %d byte limit", s.maxSize))
	}
	if req.Body == nil {
		return nil, shared.NewValidationError("File body is required")
	}

	now := s.now().UTC()
	key := storageKey(now, ext)
	telemetry.SetAttributes(span, "attachment.key", key, "attachment.size", req.Size)

	if err := s.storage.Upload(ctx, key, req.Body, req.Size, contentType); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	logger.L(ctx).Info("attachment uploaded",
		zap.String("storage_key", key),
		zap.String("content_type", contentType),
		zap.Int64("size", req.Size),
	)

	return &Attachment{
		StorageKey:  key,
		URL:         s.storage.ObjectURL(key),
		FileName:    filepath.Base(req.FileName),
		ContentType: contentType,
		Size:        req.Size,
		UploadedBy:  uploadedBy,
		UploadedAt:  now,
	}, nil
}

// keys never contain the client file name
func storageKey(now time.Time, ext string) string {
	return fmt.Sprintf("attachments/%04d/%02d/%s%s", now.Year(), int(now.Month()), uuid.NewString(), ext)
}

func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
