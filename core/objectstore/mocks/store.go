package mocks

import (
	"context"
	"io"
	"time"

	"bucketeer/core/objectstore"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of objectstore.Store
type Store struct {
	mock.Mock
}

func (m *Store) ListBuckets(ctx context.Context) ([]objectstore.BucketInfo, error) {
	args := m.Called(ctx)
	if buckets, ok := args.Get(0).([]objectstore.BucketInfo); ok {
		return buckets, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) BucketExists(ctx context.Context, bucket string) (bool, error) {
	args := m.Called(ctx, bucket)
	return args.Bool(0), args.Error(1)
}

func (m *Store) CreateBucket(ctx context.Context, bucket string) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

func (m *Store) DeleteBucket(ctx context.Context, bucket string, force bool) error {
	args := m.Called(ctx, bucket, force)
	return args.Error(0)
}

func (m *Store) UploadObject(ctx context.Context, bucket, key string, r io.Reader, opts objectstore.UploadOptions) (objectstore.ObjectInfo, error) {
	args := m.Called(ctx, bucket, key, r, opts)
	return args.Get(0).(objectstore.ObjectInfo), args.Error(1)
}

func (m *Store) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, bucket, key)
	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		return rc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) StatObject(ctx context.Context, bucket, key string) (objectstore.ObjectInfo, error) {
	args := m.Called(ctx, bucket, key)
	return args.Get(0).(objectstore.ObjectInfo), args.Error(1)
}

func (m *Store) CopyObject(ctx context.Context, bucket, srcKey, dstKey string) error {
	args := m.Called(ctx, bucket, srcKey, dstKey)
	return args.Error(0)
}

func (m *Store) DeleteObject(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *Store) ListObjects(bucket string, pageSize int) objectstore.ObjectPager {
	args := m.Called(bucket, pageSize)
	return args.Get(0).(objectstore.ObjectPager)
}

func (m *Store) GetObjectPresigned(ctx context.Context, bucket, key string, expiry time.Duration) (*objectstore.PresignedRequest, error) {
	args := m.Called(ctx, bucket, key, expiry)
	return presigned(args), args.Error(1)
}

func (m *Store) PutObjectPresigned(ctx context.Context, bucket, key string, expiry time.Duration) (*objectstore.PresignedRequest, error) {
	args := m.Called(ctx, bucket, key, expiry)
	return presigned(args), args.Error(1)
}

func (m *Store) DeleteObjectPresigned(ctx context.Context, bucket, key string, expiry time.Duration) (*objectstore.PresignedRequest, error) {
	args := m.Called(ctx, bucket, key, expiry)
	return presigned(args), args.Error(1)
}

func (m *Store) UploadObjectPresigned(ctx context.Context, bucket, key string, opts objectstore.UploadOptions) (*objectstore.PresignedUpload, error) {
	args := m.Called(ctx, bucket, key, opts)
	if up, ok := args.Get(0).(*objectstore.PresignedUpload); ok {
		return up, args.Error(1)
	}
	return nil, args.Error(1)
}

func presigned(args mock.Arguments) *objectstore.PresignedRequest {
	if req, ok := args.Get(0).(*objectstore.PresignedRequest); ok {
		return req
	}
	return nil
}

// Pager is a fixed-page objectstore.ObjectPager.
type Pager struct {
	Pages [][]objectstore.ObjectInfo
	Err   error
}

func (p *Pager) HasMorePages() bool {
	return len(p.Pages) > 0 || p.Err != nil
}

func (p *Pager) NextPage(context.Context) ([]objectstore.ObjectInfo, error) {
	if p.Err != nil {
		err := p.Err
		p.Err = nil
		return nil, err
	}
	if len(p.Pages) == 0 {
		return nil, nil
	}
	page := p.Pages[0]
	p.Pages = p.Pages[1:]
	return page, nil
}
