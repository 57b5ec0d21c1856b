package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"bucketeer/core/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// defaultUploadConcurrency bounds the parts in flight per multipart upload.
const defaultUploadConcurrency = 4

// S3 implements Store on top of the aws-sdk-go-v2 S3 client.
type S3 struct {
	api         storage.S3API
	presigner   storage.S3PresignAPI
	region      string
	partSize    int64
	concurrency int
	logger      *zap.Logger
}

var _ Store = (*S3)(nil)

// NewS3 creates a Store backed by api and presigner.
func NewS3(api storage.S3API, presigner storage.S3PresignAPI, cfg storage.Config, logger *zap.Logger) *S3 {
	return &S3{
		api:         api,
		presigner:   presigner,
		region:      cfg.RegionOrDefault(),
		partSize:    effectivePartSize(0, cfg.PartSize),
		concurrency: defaultUploadConcurrency,
		logger:      logger,
	}
}

func s3Error(op, bucket, key string, err error) error {
	var code string
	var status int

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code = apiErr.ErrorCode()
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		status = respErr.HTTPStatusCode()
	}
	return remoteError(op, bucket, key, code, status, err)
}

func fromPresigned(req *v4.PresignedHTTPRequest, at time.Time) *PresignedRequest {
	return &PresignedRequest{
		Method:    req.Method,
		URL:       req.URL,
		Header:    req.SignedHeader,
		ExpiresAt: at,
	}
}

// copySource URL-encodes bucket/key as CopyObject requires.
func copySource(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return bucket + "/" + strings.Join(segments, "/")
}

// ListBuckets lists every bucket visible to the credentials.
func (s *S3) ListBuckets(ctx context.Context) ([]BucketInfo, error) {
	out, err := s.api.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, s3Error("list_buckets", "", "", err)
	}

	buckets := make([]BucketInfo, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		buckets = append(buckets, BucketInfo{Name: aws.ToString(b.Name), CreatedAt: aws.ToTime(b.CreationDate)})
	}
	return buckets, nil
}

// BucketExists reports whether the bucket exists, using HeadBucket.
func (s *S3) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err != nil {
		e := s3Error("bucket_exists", bucket, "", err)
		if IsNotFound(e) {
			return false, nil
		}
		return false, e
	}
	return true, nil
}

// CreateBucket creates a bucket. us-east-1 takes no location constraint.
func (s *S3) CreateBucket(ctx context.Context, bucket string) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	if s.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}

	if _, err := s.api.CreateBucket(ctx, input); err != nil {
		return s3Error("create_bucket", bucket, "", err)
	}
	s.logger.Info("Created bucket", zap.String("bucket", bucket))
	return nil
}

// DeleteBucket deletes a bucket. With force, every listed page is removed
// with DeleteObjects first; the first failure aborts the deletion.
func (s *S3) DeleteBucket(ctx context.Context, bucket string, force bool) error {
	if force {
		if err := s.emptyBucket(ctx, bucket); err != nil {
			return err
		}
	}

	if _, err := s.api.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return s3Error("delete_bucket", bucket, "", err)
	}
	s.logger.Info("Deleted bucket", zap.String("bucket", bucket), zap.Bool("force", force))
	return nil
}

func (s *S3) emptyBucket(ctx context.Context, bucket string) error {
	paginator := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{Bucket: aws.String(bucket)})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return s3Error("delete_bucket", bucket, "", fmt.Errorf("listing objects: %w", err))
		}
		if len(page.Contents) == 0 {
			continue
		}

		ids := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			ids = append(ids, types.ObjectIdentifier{Key: obj.Key})
		}

		out, err := s.api.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return s3Error("delete_bucket", bucket, "", err)
		}
		if len(out.Errors) > 0 {
			first := out.Errors[0]
			s.logger.Warn("Aborting forced bucket deletion",
				zap.String("bucket", bucket),
				zap.String("object", aws.ToString(first.Key)),
				zap.Int("failed", len(out.Errors)))
			return remoteError("delete_bucket", bucket, aws.ToString(first.Key), aws.ToString(first.Code), 0,
				errors.New(aws.ToString(first.Message)))
		}
	}
	return nil
}

// GetObject opens the object for reading.
func (s *S3) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return nil, s3Error("get_object", bucket, key, err)
	}
	return out.Body, nil
}

// StatObject returns object metadata, using HeadObject.
func (s *S3) StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error) {
	out, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return ObjectInfo{}, s3Error("stat_object", bucket, key, err)
	}

	return ObjectInfo{
		Bucket:       bucket,
		Key:          key,
		Size:         aws.ToInt64(out.ContentLength),
		ETag:         strings.Trim(aws.ToString(out.ETag), `"`),
		ContentType:  aws.ToString(out.ContentType),
		LastModified: aws.ToTime(out.LastModified),
		Metadata:     out.Metadata,
	}, nil
}

// CopyObject copies srcKey to dstKey server side.
func (s *S3) CopyObject(ctx context.Context, bucket, srcKey, dstKey string) error {
	_, err := s.api.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(bucket),
		Key:        aws.String(dstKey),
		CopySource: aws.String(copySource(bucket, srcKey)),
	})
	if err != nil {
		return s3Error("copy_object", bucket, srcKey, err)
	}
	return nil
}

// DeleteObject deletes the object. S3 answers 204 for missing keys; any
// distinct error the store reports is passed through.
func (s *S3) DeleteObject(ctx context.Context, bucket, key string) error {
	if _, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)}); err != nil {
		return s3Error("delete_object", bucket, key, err)
	}
	return nil
}

// ListObjects returns a pager over every object in bucket.
func (s *S3) ListObjects(bucket string, pageSize int) ObjectPager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	paginator := s3.NewListObjectsV2Paginator(s.api,
		&s3.ListObjectsV2Input{Bucket: aws.String(bucket)},
		func(o *s3.ListObjectsV2PaginatorOptions) { o.Limit = int32(pageSize) },
	)
	return &s3Pager{paginator: paginator, bucket: bucket}
}

// GetObjectPresigned signs a GET for the object.
func (s *S3) GetObjectPresigned(ctx context.Context, bucket, key string, expiry time.Duration) (*PresignedRequest, error) {
	const op = "get_object_presigned"
	if err := validateExpiry(op, bucket, key, expiry); err != nil {
		return nil, err
	}

	at := expiresAt(expiry)
	req, err := s.presigner.PresignGetObject(ctx,
		&s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)},
		s3.WithPresignExpires(expiry))
	if err != nil {
		return nil, s3Error(op, bucket, key, err)
	}
	return fromPresigned(req, at), nil
}

// PutObjectPresigned signs a single-request PUT for the object.
func (s *S3) PutObjectPresigned(ctx context.Context, bucket, key string, expiry time.Duration) (*PresignedRequest, error) {
	const op = "put_object_presigned"
	if err := validateExpiry(op, bucket, key, expiry); err != nil {
		return nil, err
	}

	at := expiresAt(expiry)
	req, err := s.presigner.PresignPutObject(ctx,
		&s3.PutObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)},
		s3.WithPresignExpires(expiry))
	if err != nil {
		return nil, s3Error(op, bucket, key, err)
	}
	return fromPresigned(req, at), nil
}

// DeleteObjectPresigned signs a DELETE for the object.
func (s *S3) DeleteObjectPresigned(ctx context.Context, bucket, key string, expiry time.Duration) (*PresignedRequest, error) {
	const op = "delete_object_presigned"
	if err := validateExpiry(op, bucket, key, expiry); err != nil {
		return nil, err
	}

	at := expiresAt(expiry)
	req, err := s.presigner.PresignDeleteObject(ctx,
		&s3.DeleteObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)},
		s3.WithPresignExpires(expiry))
	if err != nil {
		return nil, s3Error(op, bucket, key, err)
	}
	return fromPresigned(req, at), nil
}

// UploadObjectPresigned starts a multipart upload for presigned part uploads.
func (s *S3) UploadObjectPresigned(ctx context.Context, bucket, key string, opts UploadOptions) (*PresignedUpload, error) {
	uploadID, err := s.createMultipart(ctx, "upload_object_presigned", bucket, key, opts.ContentType, opts.Metadata)
	if err != nil {
		return nil, err
	}
	return newPresignedUpload(s, bucket, key, uploadID), nil
}

func (s *S3) presignPart(ctx context.Context, bucket, key, uploadID string, part int32, expiry time.Duration) (*PresignedRequest, error) {
	const op = "upload_part_presigned"
	if err := validateExpiry(op, bucket, key, expiry); err != nil {
		return nil, err
	}

	at := expiresAt(expiry)
	req, err := s.presigner.PresignUploadPart(ctx, &s3.UploadPartInput{
		Bucket:     aws.String(bucket),
		Key:        aws.String(key),
		UploadId:   aws.String(uploadID),
		PartNumber: aws.Int32(part),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return nil, s3Error(op, bucket, key, err)
	}
	return fromPresigned(req, at), nil
}

func (s *S3) completeMultipart(ctx context.Context, bucket, key, uploadID string, parts []CompletedPart) error {
	completed := make([]types.CompletedPart, 0, len(parts))
	for _, p := range parts {
		completed = append(completed, types.CompletedPart{ETag: aws.String(p.ETag), PartNumber: aws.Int32(p.PartNumber)})
	}
	_, err := s.complete(ctx, bucket, key, uploadID, completed)
	return err
}

func (s *S3) abortMultipart(ctx context.Context, bucket, key, uploadID string) error {
	_, err := s.api.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	})
	if err != nil {
		return s3Error("abort_multipart_upload", bucket, key, err)
	}
	return nil
}

type s3Pager struct {
	paginator *s3.ListObjectsV2Paginator
	bucket    string
}

func (p *s3Pager) HasMorePages() bool {
	return p.paginator.HasMorePages()
}

func (p *s3Pager) NextPage(ctx context.Context) ([]ObjectInfo, error) {
	out, err := p.paginator.NextPage(ctx)
	if err != nil {
		return nil, s3Error("list_objects", p.bucket, "", err)
	}

	page := make([]ObjectInfo, 0, len(out.Contents))
	for _, obj := range out.Contents {
		page = append(page, ObjectInfo{
			Bucket:       p.bucket,
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			ETag:         strings.Trim(aws.ToString(obj.ETag), `"`),
			LastModified: aws.ToTime(obj.LastModified),
		})
	}
	return page, nil
}
