package objectstore_test

import (
	"context"
	"testing"

	"bucketeer/core/objectstore"
	"bucketeer/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	ctx := context.Background()
	base := storage.Config{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Region:    "us-east-1",
	}

	t.Run("Minio", func(t *testing.T) {
		cfg := base
		cfg.Driver = storage.DriverMinio
		store, err := objectstore.New(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &objectstore.Minio{}, store)
	})

	t.Run("EmptyDriverDefaultsToMinio", func(t *testing.T) {
		store, err := objectstore.New(ctx, base, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &objectstore.Minio{}, store)
	})

	t.Run("S3", func(t *testing.T) {
		cfg := base
		cfg.Driver = storage.DriverS3
		store, err := objectstore.New(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &objectstore.S3{}, store)
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		cfg := base
		cfg.Driver = "gcs"
		_, err := objectstore.New(ctx, cfg, zap.NewNop())
		assert.ErrorContains(t, err, `unknown storage driver "gcs"`)
	})
}
