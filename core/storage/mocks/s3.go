package mocks

import (
	"context"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
)

// S3API is a mock implementation of storage.S3API
type S3API struct {
	mock.Mock
}

// output returns the typed first return value, or nil when the expectation
// returned an untyped nil.
func output[T any](args mock.Arguments) *T {
	if out, ok := args.Get(0).(*T); ok {
		return out
	}
	return nil
}

func (m *S3API) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	args := m.Called(ctx, params)
	return output[s3.ListBucketsOutput](args), args.Error(1)
}

func (m *S3API) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, params)
	return output[s3.HeadBucketOutput](args), args.Error(1)
}

func (m *S3API) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	args := m.Called(ctx, params)
	return output[s3.CreateBucketOutput](args), args.Error(1)
}

func (m *S3API) DeleteBucket(ctx context.Context, params *s3.DeleteBucketInput, _ ...func(*s3.Options)) (*s3.DeleteBucketOutput, error) {
	args := m.Called(ctx, params)
	return output[s3.DeleteBucketOutput](args), args.Error(1)
}

func (m *S3API) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	return output[s3.PutObjectOutput](args), args.Error(1)
}

func (m *S3API) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	return output[s3.GetObjectOutput](args), args.Error(1)
}

func (m *S3API) HeadObject(ctx context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	return output[s3.HeadObjectOutput](args), args.Error(1)
}

func (m *S3API) CopyObject(ctx context.Context, params *s3.CopyObjectInput, _ ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	args := m.Called(ctx, params)
	return output[s3.CopyObjectOutput](args), args.Error(1)
}

func (m *S3API) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	return output[s3.DeleteObjectOutput](args), args.Error(1)
}

func (m *S3API) DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	args := m.Called(ctx, params)
	return output[s3.DeleteObjectsOutput](args), args.Error(1)
}

func (m *S3API) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	return output[s3.ListObjectsV2Output](args), args.Error(1)
}

func (m *S3API) CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	args := m.Called(ctx, params)
	return output[s3.CreateMultipartUploadOutput](args), args.Error(1)
}

func (m *S3API) UploadPart(ctx context.Context, params *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	args := m.Called(ctx, params)
	return output[s3.UploadPartOutput](args), args.Error(1)
}

func (m *S3API) CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	args := m.Called(ctx, params)
	return output[s3.CompleteMultipartUploadOutput](args), args.Error(1)
}

func (m *S3API) AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	args := m.Called(ctx, params)
	return output[s3.AbortMultipartUploadOutput](args), args.Error(1)
}

// S3Presigner is a mock implementation of storage.S3PresignAPI
type S3Presigner struct {
	mock.Mock
}

func (m *S3Presigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params, presignExpires(optFns))
	return output[v4.PresignedHTTPRequest](args), args.Error(1)
}

func (m *S3Presigner) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params, presignExpires(optFns))
	return output[v4.PresignedHTTPRequest](args), args.Error(1)
}

func (m *S3Presigner) PresignDeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params, presignExpires(optFns))
	return output[v4.PresignedHTTPRequest](args), args.Error(1)
}

func (m *S3Presigner) PresignUploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params, presignExpires(optFns))
	return output[v4.PresignedHTTPRequest](args), args.Error(1)
}
