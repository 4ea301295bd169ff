package storage

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/bizops/ledger/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func validConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:       "ledger-attachments",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		Endpoint:     "http://localhost:9000",
		UsePathStyle: true,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	tests := []struct {
		name    string
		mutate  func(*config.StorageConfig)
		wantErr string
	}{
		{"missing bucket", func(c *config.StorageConfig) { c.Bucket = "" }, "bucket is required"},
		{"missing access key", func(c *config.StorageConfig) { c.AccessKey = "" }, "access key is required"},
		{"missing secret key", func(c *config.StorageConfig) { c.SecretKey = "" }, "secret key is required"},
		{"bad endpoint", func(c *config.StorageConfig) { c.Endpoint = "http://" }, "invalid storage endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			_, err := NewS3ObjectStorage(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("valid config creates storage", func(t *testing.T) {
		s, err := NewS3ObjectStorage(validConfig(), WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "ledger-attachments", s.GetBucket())
	})
}

func TestS3ObjectStorage_ObjectURL(t *testing.T) {
	t.Run("path style", func(t *testing.T) {
		s, err := NewS3ObjectStorage(validConfig())
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/ledger-attachments/attachments/2024/03/a.pdf",
			s.ObjectURL("attachments/2024/03/a.pdf"))
	})

	t.Run("virtual hosted style", func(t *testing.T) {
		cfg := validConfig()
		cfg.Endpoint = "s3.ap-south-1.amazonaws.com"
		cfg.UseSSL = true
		cfg.UsePathStyle = false
		s, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://ledger-attachments.s3.ap-south-1.amazonaws.com/attachments/a.pdf",
			s.ObjectURL("attachments/a.pdf"))
	})

	t.Run("public url wins", func(t *testing.T) {
		cfg := validConfig()
		cfg.PublicURL = "https://files.example.com/"
		s, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://files.example.com/attachments/a.pdf", s.ObjectURL("/attachments/a.pdf"))
	})
}

func TestS3ObjectStorage_EmptyKey(t *testing.T) {
	s, err := NewS3ObjectStorage(validConfig())
	require.NoError(t, err)
	ctx := context.Background()

	assert.Error(t, s.Upload(ctx, "", bytes.NewReader(nil), 0, "text/plain"))
	assert.Error(t, s.DeleteObject(ctx, ""))
	_, err = s.ObjectExists(ctx, "")
	assert.Error(t, err)
}

// Runs against a local MinIO/RustFS when LEDGER_S3_TEST_ENDPOINT is set.
func TestIntegration_UploadRoundTrip(t *testing.T) {
	endpoint := os.Getenv("LEDGER_S3_TEST_ENDPOINT")
	if endpoint == "" {
		t.Skip("set LEDGER_S3_TEST_ENDPOINT to run against a real S3-compatible store")
	}

	cfg := validConfig()
	cfg.Endpoint = endpoint
	cfg.AccessKey = os.Getenv("LEDGER_S3_TEST_ACCESS_KEY")
	cfg.SecretKey = os.Getenv("LEDGER_S3_TEST_SECRET_KEY")
	cfg.Bucket = "ledger-integration"

	s, err := NewS3ObjectStorage(cfg)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.EnsureBucket(ctx))
	require.NoError(t, s.EnsureBucket(ctx))

	data := []byte("invoice body")
	key := "integration/invoice.txt"
	require.NoError(t, s.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), "text/plain"))

	exists, err := s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.DeleteObject(ctx, key))
	exists, err = s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}
