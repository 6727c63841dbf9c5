package filestorage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celebnet/backend/internal/shared/infrastructure/config"
)

func TestNewModule_Local(t *testing.T) {
	dir := t.TempDir()
	m, err := NewModule(context.Background(), config.FileStorageConfig{LocalPath: dir, LocalBaseURL: "/uploads"})
	require.NoError(t, err)
	assert.NotNil(t, m.Service())
	assert.Equal(t, dir, m.LocalDir())
}

func TestNewModule_S3RequiresBucket(t *testing.T) {
	_, err := NewModule(context.Background(), config.FileStorageConfig{UseS3: true})
	assert.Error(t, err)
}

func TestNewModule_S3(t *testing.T) {
	m, err := NewModule(context.Background(), config.FileStorageConfig{
		UseS3:        true,
		S3BucketName: "bucket",
		S3Region:     "us-east-1",
		S3Endpoint:   "localhost:9000",
		S3AccessKey:  "x",
		S3SecretKey:  "y",
	})
	require.NoError(t, err)
	assert.Empty(t, m.LocalDir())
}
