package buckets

import (
	"context"

	"bucketeer/core/objectstore"

	"go.uber.org/zap"
)

// Service exposes bucket operations of the store.
type Service struct {
	store  objectstore.Store
	logger *zap.Logger
}

// NewService creates a new buckets service.
func NewService(store objectstore.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// List returns every bucket.
func (s *Service) List(ctx context.Context) ([]objectstore.BucketInfo, error) {
	return s.store.ListBuckets(ctx)
}

// Exists reports whether the bucket exists.
func (s *Service) Exists(ctx context.Context, bucket string) (bool, error) {
	return s.store.BucketExists(ctx, bucket)
}

// Create creates the bucket.
func (s *Service) Create(ctx context.Context, bucket string) error {
	return s.store.CreateBucket(ctx, bucket)
}

// Delete deletes the bucket, emptying it first when force is set.
func (s *Service) Delete(ctx context.Context, bucket string, force bool) error {
	if force {
		s.logger.Warn("Force deleting bucket", zap.String("bucket", bucket))
	}
	return s.store.DeleteBucket(ctx, bucket, force)
}

// ListObjects walks every page of the bucket listing.
func (s *Service) ListObjects(ctx context.Context, bucket string, pageSize int) ([]objectstore.ObjectInfo, error) {
	pager := s.store.ListObjects(bucket, pageSize)

	objects := []objectstore.ObjectInfo{}
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		objects = append(objects, page...)
	}
	return objects, nil
}
