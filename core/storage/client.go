package storage

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client defines the interface for storage operations.
type Client interface {
	// ListBuckets lists all buckets visible to the credentials.
	ListBuckets(ctx context.Context) ([]minio.BucketInfo, error)
	// BucketExists checks if a bucket exists.
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	// MakeBucket creates a new bucket.
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	// RemoveBucket deletes an empty bucket.
	RemoveBucket(ctx context.Context, bucketName string) error
	// PutObject uploads an object.
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	// GetObject downloads an object.
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	// StatObject returns object metadata without its content.
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	// CopyObject copies an object server side.
	CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error)
	// ListObjects lists objects in a bucket.
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	// RemoveObject deletes an object from a bucket.
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	// RemoveObjects deletes multiple objects from a bucket efficiently.
	// objectsCh is a channel of object names to delete.
	RemoveObjects(ctx context.Context, bucketName string, objectsCh <-chan minio.ObjectInfo, opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError
	// Presign signs a request for method against the object.
	Presign(ctx context.Context, method, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
	// NewMultipartUpload starts a multipart upload and returns its id.
	NewMultipartUpload(ctx context.Context, bucketName, objectName string, opts minio.PutObjectOptions) (string, error)
	// CompleteMultipartUpload assembles uploaded parts into the final object.
	CompleteMultipartUpload(ctx context.Context, bucketName, objectName, uploadID string, parts []minio.CompletePart, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	// AbortMultipartUpload discards a multipart upload and its parts.
	AbortMultipartUpload(ctx context.Context, bucketName, objectName, uploadID string) error
}

// NewClient creates a new Minio client based on the configuration.
func NewClient(cfg Config) (Client, error) {
	creds := credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	if cfg.AccessKey == "" {
		// Same lookup order as the AWS SDKs, then MinIO's own variables.
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.EnvMinio{},
		})
	}

	minioClient, err := minio.New(cfg.HostPort(), &minio.Options{
		Creds:     creds,
		Secure:    cfg.UseSSL,
		Region:    cfg.RegionOrDefault(),
		Transport: newTransport(cfg.Timeout()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	// Minio connects lazily; the first operation surfaces connectivity errors.

	return &minioClientWrapper{Client: minioClient}, nil
}

// newTransport creates an http.Transport with strict timeouts.
func newTransport(timeout time.Duration) *http.Transport {
	tr := &http.Transport{}
	tuneTransport(tr, timeout)
	return tr
}

// tuneTransport applies the connection limits and timeouts shared by both drivers.
func tuneTransport(tr *http.Transport, timeout time.Duration) {
	tr.Proxy = http.ProxyFromEnvironment
	tr.DialContext = (&net.Dialer{
		Timeout:   timeout, // Connection setup timeout
		KeepAlive: 30 * time.Second,
	}).DialContext
	tr.ForceAttemptHTTP2 = true
	tr.MaxIdleConns = 100
	tr.IdleConnTimeout = 90 * time.Second
	tr.TLSHandshakeTimeout = timeout
	tr.ExpectContinueTimeout = 1 * time.Second
	tr.ResponseHeaderTimeout = timeout // Wait for first response byte timeout
}

type minioClientWrapper struct {
	*minio.Client
}

// GetObject stats the object before handing it out so that missing keys fail
// here rather than on the first Read.
func (c *minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := c.Client.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, err
	}
	return obj, nil
}

func (c *minioClientWrapper) Presign(ctx context.Context, method, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error) {
	return c.Client.Presign(ctx, method, bucketName, objectName, expires, reqParams)
}

func (c *minioClientWrapper) core() minio.Core {
	return minio.Core{Client: c.Client}
}

func (c *minioClientWrapper) NewMultipartUpload(ctx context.Context, bucketName, objectName string, opts minio.PutObjectOptions) (string, error) {
	return c.core().NewMultipartUpload(ctx, bucketName, objectName, opts)
}

func (c *minioClientWrapper) CompleteMultipartUpload(ctx context.Context, bucketName, objectName, uploadID string, parts []minio.CompletePart, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return c.core().CompleteMultipartUpload(ctx, bucketName, objectName, uploadID, parts, opts)
}

func (c *minioClientWrapper) AbortMultipartUpload(ctx context.Context, bucketName, objectName, uploadID string) error {
	return c.core().AbortMultipartUpload(ctx, bucketName, objectName, uploadID)
}
