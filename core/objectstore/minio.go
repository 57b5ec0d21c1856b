package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"bucketeer/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Minio implements Store on top of the minio-go client.
type Minio struct {
	client   storage.Client
	region   string
	partSize int64
	logger   *zap.Logger
}

var _ Store = (*Minio)(nil)

// NewMinio creates a Store backed by client.
func NewMinio(client storage.Client, cfg storage.Config, logger *zap.Logger) *Minio {
	return &Minio{
		client:   client,
		region:   cfg.RegionOrDefault(),
		partSize: effectivePartSize(0, cfg.PartSize),
		logger:   logger,
	}
}

func minioError(op, bucket, key string, err error) error {
	resp := minio.ToErrorResponse(err)
	return remoteError(op, bucket, key, resp.Code, resp.StatusCode, err)
}

func fromMinioObject(bucket string, obj minio.ObjectInfo) ObjectInfo {
	info := ObjectInfo{
		Bucket:       bucket,
		Key:          obj.Key,
		Size:         obj.Size,
		ETag:         obj.ETag,
		ContentType:  obj.ContentType,
		LastModified: obj.LastModified,
	}
	if len(obj.UserMetadata) > 0 {
		info.Metadata = map[string]string(obj.UserMetadata)
	}
	return info
}

// ListBuckets lists every bucket visible to the credentials.
func (m *Minio) ListBuckets(ctx context.Context) ([]BucketInfo, error) {
	buckets, err := m.client.ListBuckets(ctx)
	if err != nil {
		return nil, minioError("list_buckets", "", "", err)
	}

	out := make([]BucketInfo, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, BucketInfo{Name: b.Name, CreatedAt: b.CreationDate})
	}
	return out, nil
}

// BucketExists reports whether the bucket exists.
func (m *Minio) BucketExists(ctx context.Context, bucket string) (bool, error) {
	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return false, minioError("bucket_exists", bucket, "", err)
	}
	return exists, nil
}

// CreateBucket creates a bucket in the configured region.
func (m *Minio) CreateBucket(ctx context.Context, bucket string) error {
	if err := m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: m.region}); err != nil {
		return minioError("create_bucket", bucket, "", err)
	}
	m.logger.Info("Created bucket", zap.String("bucket", bucket))
	return nil
}

// DeleteBucket deletes a bucket. With force, every object is removed first;
// the first failure aborts and leaves the bucket partially emptied.
func (m *Minio) DeleteBucket(ctx context.Context, bucket string, force bool) error {
	if force {
		if err := m.emptyBucket(ctx, bucket); err != nil {
			return err
		}
	}

	if err := m.client.RemoveBucket(ctx, bucket); err != nil {
		return minioError("delete_bucket", bucket, "", err)
	}
	m.logger.Info("Deleted bucket", zap.String("bucket", bucket), zap.Bool("force", force))
	return nil
}

// emptyBucket streams the recursive listing into RemoveObjects.
func (m *Minio) emptyBucket(ctx context.Context, bucket string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	objectsCh := make(chan minio.ObjectInfo)

	g.Go(func() error {
		defer close(objectsCh)
		for obj := range m.client.ListObjects(gctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				return minioError("delete_bucket", bucket, "", fmt.Errorf("listing objects: %w", obj.Err))
			}
			select {
			case objectsCh <- obj:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	var removeErr error
	for rErr := range m.client.RemoveObjects(gctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if removeErr == nil {
			removeErr = minioError("delete_bucket", bucket, rErr.ObjectName, rErr.Err)
			m.logger.Warn("Aborting forced bucket deletion",
				zap.String("bucket", bucket),
				zap.String("object", rErr.ObjectName),
				zap.Error(rErr.Err))
			cancel()
		}
	}
	cancel()

	if err := g.Wait(); err != nil {
		return err
	}
	return removeErr
}

// UploadObject streams r to bucket/key. Unknown sizes are sent as multipart
// uploads in PartSize chunks by the SDK.
func (m *Minio) UploadObject(ctx context.Context, bucket, key string, r io.Reader, opts UploadOptions) (ObjectInfo, error) {
	body, contentType, err := newPayload(r, opts.ContentType)
	if err != nil {
		return ObjectInfo{}, ioError("upload_object", bucket, key, err)
	}

	size := opts.Size
	if size <= 0 {
		size = -1
	}

	info, err := m.client.PutObject(ctx, bucket, key, body, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: opts.Metadata,
		PartSize:     uint64(effectivePartSize(opts.PartSize, m.partSize)),
	})
	if err != nil {
		return ObjectInfo{}, body.failure("upload_object", bucket, key, err, minioError)
	}

	m.logger.Debug("Uploaded object",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.Int64("size", info.Size))

	return ObjectInfo{
		Bucket:       bucket,
		Key:          key,
		Size:         info.Size,
		ETag:         info.ETag,
		ContentType:  contentType,
		LastModified: info.LastModified,
		Metadata:     opts.Metadata,
	}, nil
}

// GetObject opens the object for reading.
func (m *Minio) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, minioError("get_object", bucket, key, err)
	}
	return obj, nil
}

// StatObject returns object metadata.
func (m *Minio) StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error) {
	obj, err := m.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, minioError("stat_object", bucket, key, err)
	}
	return fromMinioObject(bucket, obj), nil
}

// CopyObject copies srcKey to dstKey server side.
func (m *Minio) CopyObject(ctx context.Context, bucket, srcKey, dstKey string) error {
	_, err := m.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: bucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: bucket, Object: srcKey},
	)
	if err != nil {
		return minioError("copy_object", bucket, srcKey, err)
	}
	return nil
}

// DeleteObject deletes the object. The store decides whether a missing key
// is an error.
func (m *Minio) DeleteObject(ctx context.Context, bucket, key string) error {
	if err := m.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return minioError("delete_object", bucket, key, err)
	}
	return nil
}

// ListObjects returns a pager over every object in bucket.
func (m *Minio) ListObjects(bucket string, pageSize int) ObjectPager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &minioPager{client: m.client, bucket: bucket, pageSize: pageSize}
}

// GetObjectPresigned signs a GET for the object.
func (m *Minio) GetObjectPresigned(ctx context.Context, bucket, key string, expiry time.Duration) (*PresignedRequest, error) {
	return m.presign(ctx, "get_object_presigned", http.MethodGet, bucket, key, expiry, nil)
}

// PutObjectPresigned signs a single-request PUT for the object.
func (m *Minio) PutObjectPresigned(ctx context.Context, bucket, key string, expiry time.Duration) (*PresignedRequest, error) {
	return m.presign(ctx, "put_object_presigned", http.MethodPut, bucket, key, expiry, nil)
}

// DeleteObjectPresigned signs a DELETE for the object.
func (m *Minio) DeleteObjectPresigned(ctx context.Context, bucket, key string, expiry time.Duration) (*PresignedRequest, error) {
	return m.presign(ctx, "delete_object_presigned", http.MethodDelete, bucket, key, expiry, nil)
}

func (m *Minio) presign(ctx context.Context, op, method, bucket, key string, expiry time.Duration, params url.Values) (*PresignedRequest, error) {
	if err := validateExpiry(op, bucket, key, expiry); err != nil {
		return nil, err
	}

	at := expiresAt(expiry)
	u, err := m.client.Presign(ctx, method, bucket, key, expiry, params)
	if err != nil {
		return nil, minioError(op, bucket, key, err)
	}
	return &PresignedRequest{Method: method, URL: u.String(), ExpiresAt: at}, nil
}

// UploadObjectPresigned starts a multipart upload for presigned part uploads.
func (m *Minio) UploadObjectPresigned(ctx context.Context, bucket, key string, opts UploadOptions) (*PresignedUpload, error) {
	uploadID, err := m.client.NewMultipartUpload(ctx, bucket, key, minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		UserMetadata: opts.Metadata,
	})
	if err != nil {
		return nil, minioError("upload_object_presigned", bucket, key, err)
	}
	return newPresignedUpload(m, bucket, key, uploadID), nil
}

func (m *Minio) presignPart(ctx context.Context, bucket, key, uploadID string, part int32, expiry time.Duration) (*PresignedRequest, error) {
	params := url.Values{}
	params.Set("partNumber", fmt.Sprint(part))
	params.Set("uploadId", uploadID)
	return m.presign(ctx, "upload_part_presigned", http.MethodPut, bucket, key, expiry, params)
}

func (m *Minio) completeMultipart(ctx context.Context, bucket, key, uploadID string, parts []CompletedPart) error {
	completed := make([]minio.CompletePart, 0, len(parts))
	for _, p := range parts {
		completed = append(completed, minio.CompletePart{PartNumber: int(p.PartNumber), ETag: p.ETag})
	}

	if _, err := m.client.CompleteMultipartUpload(ctx, bucket, key, uploadID, completed, minio.PutObjectOptions{}); err != nil {
		return minioError("complete_multipart_upload", bucket, key, err)
	}
	return nil
}

func (m *Minio) abortMultipart(ctx context.Context, bucket, key, uploadID string) error {
	if err := m.client.AbortMultipartUpload(ctx, bucket, key, uploadID); err != nil {
		return minioError("abort_multipart_upload", bucket, key, err)
	}
	return nil
}

// minioPager pages with StartAfter, reading one object past the page to
// learn whether another page exists.
type minioPager struct {
	client   storage.Client
	bucket   string
	pageSize int
	after    string
	done     bool
}

func (p *minioPager) HasMorePages() bool {
	return !p.done
}

func (p *minioPager) NextPage(ctx context.Context) ([]ObjectInfo, error) {
	if p.done {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{
		Recursive:  true,
		StartAfter: p.after,
		MaxKeys:    p.pageSize + 1,
	}

	page := make([]ObjectInfo, 0, p.pageSize)
	more := false
	for obj := range p.client.ListObjects(ctx, p.bucket, opts) {
		if obj.Err != nil {
			return nil, minioError("list_objects", p.bucket, "", obj.Err)
		}
		if len(page) == p.pageSize {
			more = true
			break
		}
		page = append(page, fromMinioObject(p.bucket, obj))
	}

	if more {
		p.after = page[len(page)-1].Key
	} else {
		p.done = true
	}
	return page, nil
}
