package objectstore

import (
	"context"
	"slices"
	"sync/atomic"
	"time"
)

// multipartSigner is implemented by each backend to serve PresignedUpload.
type multipartSigner interface {
	presignPart(ctx context.Context, bucket, key, uploadID string, part int32, expiry time.Duration) (*PresignedRequest, error)
	completeMultipart(ctx context.Context, bucket, key, uploadID string, parts []CompletedPart) error
	abortMultipart(ctx context.Context, bucket, key, uploadID string) error
}

// PresignedUpload is an open multipart upload whose parts are uploaded by
// whoever holds the presigned part URLs. Part numbers start at 1 and are
// handed out in order, also across goroutines.
type PresignedUpload struct {
	Bucket   string
	Key      string
	UploadID string

	signer   multipartSigner
	nextPart atomic.Int32
}

func newPresignedUpload(signer multipartSigner, bucket, key, uploadID string) *PresignedUpload {
	return &PresignedUpload{
		Bucket:   bucket,
		Key:      key,
		UploadID: uploadID,
		signer:   signer,
	}
}

// NextPart reserves the next part number and signs a PUT for it.
// Invalid expiries and exhausted uploads are rejected without reserving a
// number; a signing failure after the reservation leaves a gap.
func (u *PresignedUpload) NextPart(ctx context.Context, expiry time.Duration) (*PresignedRequest, int32, error) {
	const op = "upload_object_presigned"

	if err := validateExpiry(op, u.Bucket, u.Key, expiry); err != nil {
		return nil, 0, err
	}

	var part int32
	for {
		cur := u.nextPart.Load()
		if cur >= MaxParts {
			return nil, 0, configError(op, u.Bucket, u.Key, "upload %s already has %d parts", u.UploadID, MaxParts)
		}
		if u.nextPart.CompareAndSwap(cur, cur+1) {
			part = cur + 1
			break
		}
	}

	req, err := u.signer.presignPart(ctx, u.Bucket, u.Key, u.UploadID, part, expiry)
	if err != nil {
		return nil, 0, err
	}
	return req, part, nil
}

// Complete assembles the uploaded parts, in part-number order.
func (u *PresignedUpload) Complete(ctx context.Context, parts []CompletedPart) error {
	if len(parts) == 0 {
		return configError("complete_multipart_upload", u.Bucket, u.Key, "no parts to complete upload %s", u.UploadID)
	}

	sorted := slices.Clone(parts)
	slices.SortFunc(sorted, func(a, b CompletedPart) int {
		return int(a.PartNumber) - int(b.PartNumber)
	})
	return u.signer.completeMultipart(ctx, u.Bucket, u.Key, u.UploadID, sorted)
}

// Abort discards the upload and any uploaded parts.
func (u *PresignedUpload) Abort(ctx context.Context) error {
	return u.signer.abortMultipart(ctx, u.Bucket, u.Key, u.UploadID)
}
