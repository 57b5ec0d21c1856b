package objectstore

import (
	"context"
	"io"
	"net/http"
	"time"
)

const (
	// MaxPresignExpiry is the longest validity a SigV4 presigned URL may carry.
	MaxPresignExpiry = 7 * 24 * time.Hour
	// MinPartSize is the smallest part S3 accepts for all but the last part.
	MinPartSize int64 = 5 * 1024 * 1024
	// DefaultPartSize is used when UploadOptions.PartSize is unset.
	DefaultPartSize = MinPartSize
	// MaxParts is the largest part number a multipart upload may use.
	MaxParts = 10000
	// DefaultPageSize is used when ListObjects is called with a non-positive size.
	DefaultPageSize = 1000
)

// Store is the object-store façade. Every method maps onto SDK requests and
// normalises their failures into *Error values.
//
// Implementations are safe for concurrent use.
type Store interface {
	// ListBuckets lists every bucket visible to the credentials.
	ListBuckets(ctx context.Context) ([]BucketInfo, error)
	// BucketExists reports whether the bucket exists.
	BucketExists(ctx context.Context, bucket string) (bool, error)
	// CreateBucket creates a bucket. Collisions are reported by the store.
	CreateBucket(ctx context.Context, bucket string) error
	// DeleteBucket deletes a bucket, first emptying it when force is set.
	DeleteBucket(ctx context.Context, bucket string, force bool) error

	// UploadObject streams r into bucket/key, replacing any existing object.
	UploadObject(ctx context.Context, bucket, key string, r io.Reader, opts UploadOptions) (ObjectInfo, error)
	// GetObject opens the object for reading. The caller must close it.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	// StatObject returns object metadata.
	StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error)
	// CopyObject copies srcKey to dstKey inside bucket.
	CopyObject(ctx context.Context, bucket, srcKey, dstKey string) error
	// DeleteObject deletes the object.
	DeleteObject(ctx context.Context, bucket, key string) error
	// ListObjects returns a pager over every object in bucket.
	ListObjects(bucket string, pageSize int) ObjectPager

	// GetObjectPresigned signs a GET for the object.
	GetObjectPresigned(ctx context.Context, bucket, key string, expiry time.Duration) (*PresignedRequest, error)
	// PutObjectPresigned signs a single-request PUT for the object.
	PutObjectPresigned(ctx context.Context, bucket, key string, expiry time.Duration) (*PresignedRequest, error)
	// DeleteObjectPresigned signs a DELETE for the object.
	DeleteObjectPresigned(ctx context.Context, bucket, key string, expiry time.Duration) (*PresignedRequest, error)
	// UploadObjectPresigned starts a multipart upload whose parts are sent
	// by third parties through presigned URLs.
	UploadObjectPresigned(ctx context.Context, bucket, key string, opts UploadOptions) (*PresignedUpload, error)
}

// ObjectPager pages through the objects of a bucket.
type ObjectPager interface {
	// HasMorePages reports whether NextPage may return more objects.
	HasMorePages() bool
	// NextPage fetches the next page.
	NextPage(ctx context.Context) ([]ObjectInfo, error)
}

// UploadOptions tunes an upload.
type UploadOptions struct {
	// ContentType is sniffed from the payload when empty.
	ContentType string
	// Metadata is stored as user metadata on the object.
	Metadata map[string]string
	// Size is the payload length when known; zero or negative means unknown.
	Size int64
	// PartSize is the multipart part size; raised to MinPartSize when smaller.
	PartSize int64
}

// BucketInfo describes a bucket.
type BucketInfo struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ObjectInfo describes an object.
type ObjectInfo struct {
	Bucket       string            `json:"bucket"`
	Key          string            `json:"key"`
	Size         int64             `json:"size"`
	ETag         string            `json:"etag,omitempty"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified time.Time         `json:"last_modified"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// PresignedRequest is a signed, time-limited request a bearer can replay
// without credentials. The store enforces the expiry, not this package.
type PresignedRequest struct {
	Method    string      `json:"method"`
	URL       string      `json:"url"`
	Header    http.Header `json:"header,omitempty"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// CompletedPart identifies an uploaded part of a multipart upload.
type CompletedPart struct {
	PartNumber int32  `json:"part_number"`
	ETag       string `json:"etag"`
}
