package objects

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bucketeer/core/objectstore"

	"go.uber.org/zap"
)

// Service exposes object operations of the store.
type Service struct {
	store  objectstore.Store
	logger *zap.Logger
}

// NewService creates a new objects service.
func NewService(store objectstore.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Upload stores r under bucket/key.
func (s *Service) Upload(ctx context.Context, bucket, key string, r io.Reader, opts objectstore.UploadOptions) (objectstore.ObjectInfo, error) {
	info, err := s.store.UploadObject(ctx, bucket, key, r, opts)
	if err != nil {
		return objectstore.ObjectInfo{}, err
	}
	s.logger.Info("Object uploaded",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.Int64("size", info.Size),
		zap.String("content_type", info.ContentType))
	return info, nil
}

// Download returns the object metadata and an open reader on its content.
// The caller must close the reader.
func (s *Service) Download(ctx context.Context, bucket, key string) (objectstore.ObjectInfo, io.ReadCloser, error) {
	info, err := s.store.StatObject(ctx, bucket, key)
	if err != nil {
		return objectstore.ObjectInfo{}, nil, err
	}
	rc, err := s.store.GetObject(ctx, bucket, key)
	if err != nil {
		return objectstore.ObjectInfo{}, nil, err
	}
	return info, rc, nil
}

// Stat returns the object metadata.
func (s *Service) Stat(ctx context.Context, bucket, key string) (objectstore.ObjectInfo, error) {
	return s.store.StatObject(ctx, bucket, key)
}

// Delete deletes the object.
func (s *Service) Delete(ctx context.Context, bucket, key string) error {
	return s.store.DeleteObject(ctx, bucket, key)
}

// Copy copies from to to inside bucket.
func (s *Service) Copy(ctx context.Context, bucket, from, to string) error {
	return s.store.CopyObject(ctx, bucket, from, to)
}

// Presign signs a GET, PUT or DELETE for the object.
func (s *Service) Presign(ctx context.Context, method, bucket, key string, expiry time.Duration) (*objectstore.PresignedRequest, error) {
	switch strings.ToUpper(method) {
	case "", http.MethodGet:
		return s.store.GetObjectPresigned(ctx, bucket, key, expiry)
	case http.MethodPut:
		return s.store.PutObjectPresigned(ctx, bucket, key, expiry)
	case http.MethodDelete:
		return s.store.DeleteObjectPresigned(ctx, bucket, key, expiry)
	default:
		return nil, &objectstore.Error{
			Kind:   objectstore.KindConfig,
			Op:     "presign",
			Bucket: bucket,
			Key:    key,
			Err:    fmt.Errorf("unsupported method %q", method),
		}
	}
}
