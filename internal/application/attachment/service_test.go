package attachment

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, storageKey string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, storageKey, body, size, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectURL(storageKey string) string {
	return "https://files.example.com/" + storageKey
}

func newTestService(storage ObjectStorage) *Service {
	svc := NewService(storage, 1024)
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_Upload(t *testing.T) {
	storage := new(MockObjectStorage)
	storage.On("Upload", mock.Anything,
		mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "attachments/2024/03/") && strings.HasSuffix(key, ".pdf")
		}),
		mock.Anything, int64(12), "application/pdf").Return(nil)

	svc := newTestService(storage)
	got, err := svc.Upload(context.Background(), UploadRequest{
		FileName:    "../../invoice-0042.pdf",
		ContentType: "application/PDF; charset=binary",
		Size:        12,
		Body:        strings.NewReader("%PDF-1.4 ..."),
	}, "priya")
	require.NoError(t, err)

	assert.Equal(t, "invoice-0042.pdf", got.FileName)
	assert.Equal(t, "application/pdf", got.ContentType)
	assert.Equal(t, "https://files.example.com/"+got.StorageKey, got.URL)
	assert.Equal(t, "priya", got.UploadedBy)
	assert.NotContains(t, got.StorageKey, "invoice")
	storage.AssertExpectations(t)
}

func TestService_Upload_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  UploadRequest
	}{
		{"svg rejected", UploadRequest{ContentType: "image/svg+xml", Size: 10, Body: strings.NewReader("x")}},
		{"empty file", UploadRequest{ContentType: "image/png", Size: 0, Body: strings.NewReader("")}},
		{"too large", UploadRequest{ContentType: "image/png", Size: 4096, Body: strings.NewReader("x")}},
		{"missing body", UploadRequest{ContentType: "image/png", Size: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := new(MockObjectStorage)
			_, err := newTestService(storage).Upload(context.Background(), tt.req, "priya")
			require.Error(t, err)
			assert.Equal(t, shared.KindValidation, shared.KindOf(err))
			storage.AssertNotCalled(t, "Upload")
		})
	}
}

func TestService_Upload_StorageFailure(t *testing.T) {
	storage := new(MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection reset"))

	_, err := newTestService(storage).Upload(context.Background(), UploadRequest{
		ContentType: "text/csv",
		Size:        5,
		Body:        strings.NewReader("a,b\n"),
	}, "priya")
	require.Error(t, err)
	assert.Equal(t, shared.KindInternal, shared.KindOf(err))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestNewService_DefaultMaxSize(t *testing.T) {
	assert.Equal(t, DefaultMaxSize, NewService(nil, 0).maxSize)
}
