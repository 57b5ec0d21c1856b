package objectstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// UploadObject streams r to bucket/key. Payloads shorter than one part go
// out as a single PutObject; longer ones as a multipart upload whose parts
// are sent concurrently and which is aborted on any failure.
func (s *S3) UploadObject(ctx context.Context, bucket, key string, r io.Reader, opts UploadOptions) (ObjectInfo, error) {
	const op = "upload_object"

	body, contentType, err := newPayload(r, opts.ContentType)
	if err != nil {
		return ObjectInfo{}, ioError(op, bucket, key, err)
	}
	partSize := effectivePartSize(opts.PartSize, s.partSize)

	first, last, err := readFirstPart(body, partSize, opts.Size)
	if err != nil {
		return ObjectInfo{}, ioError(op, bucket, key, err)
	}
	if last {
		return s.putSingle(ctx, bucket, key, first, contentType, opts.Metadata)
	}

	return s.putMultipart(ctx, bucket, key, body, first, partSize, contentType, opts.Metadata)
}

func (s *S3) putSingle(ctx context.Context, bucket, key string, data []byte, contentType string, metadata map[string]string) (ObjectInfo, error) {
	out, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		Metadata:      metadata,
	})
	if err != nil {
		return ObjectInfo{}, s3Error("upload_object", bucket, key, err)
	}

	s.logger.Debug("Uploaded object",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.Int("size", len(data)))

	return ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Size:        int64(len(data)),
		ETag:        strings.Trim(aws.ToString(out.ETag), `"`),
		ContentType: contentType,
		Metadata:    metadata,
	}, nil
}

func (s *S3) createMultipart(ctx context.Context, op, bucket, key, contentType string, metadata map[string]string) (string, error) {
	input := &s3.CreateMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		Metadata: metadata,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	out, err := s.api.CreateMultipartUpload(ctx, input)
	if err != nil {
		return "", s3Error(op, bucket, key, err)
	}
	if aws.ToString(out.UploadId) == "" {
		return "", remoteError(op, bucket, key, "", 0, errors.New("store returned no upload id"))
	}
	return aws.ToString(out.UploadId), nil
}

func (s *S3) complete(ctx context.Context, bucket, key, uploadID string, parts []types.CompletedPart) (*s3.CompleteMultipartUploadOutput, error) {
	out, err := s.api.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(bucket),
		Key:             aws.String(key),
		UploadId:        aws.String(uploadID),
		MultipartUpload: &types.CompletedMultipartUpload{Parts: parts},
	})
	if err != nil {
		return nil, s3Error("complete_multipart_upload", bucket, key, err)
	}
	return out, nil
}

// putMultipart uploads first and the rest of body in partSize chunks. Part
// numbers follow read order, so the completed object matches the stream.
func (s *S3) putMultipart(ctx context.Context, bucket, key string, body *payload, first []byte, partSize int64, contentType string, metadata map[string]string) (ObjectInfo, error) {
	const op = "upload_object"

	uploadID, err := s.createMultipart(ctx, op, bucket, key, contentType, metadata)
	if err != nil {
		return ObjectInfo{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	var mu sync.Mutex
	var parts []types.CompletedPart
	var total int64

	send := func(number int32, data []byte) {
		total += int64(len(data))
		g.Go(func() error {
			out, err := s.api.UploadPart(gctx, &s3.UploadPartInput{
				Bucket:        aws.String(bucket),
				Key:           aws.String(key),
				UploadId:      aws.String(uploadID),
				PartNumber:    aws.Int32(number),
				Body:          bytes.NewReader(data),
				ContentLength: aws.Int64(int64(len(data))),
			})
			if err != nil {
				return s3Error("upload_part", bucket, key, err)
			}
			mu.Lock()
			parts = append(parts, types.CompletedPart{ETag: out.ETag, PartNumber: aws.Int32(number)})
			mu.Unlock()
			return nil
		})
	}

	number := int32(1)
	send(number, first)

	var readErr error
	drained := false
	for gctx.Err() == nil {
		buf := make([]byte, partSize)
		n, err := io.ReadFull(body, buf)
		if n > 0 {
			number++
			send(number, buf[:n])
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			drained = true
			break
		}
		if err != nil {
			readErr = ioError(op, bucket, key, err)
			break
		}
	}

	failure := g.Wait()
	switch {
	case readErr != nil:
		failure = readErr
	case failure == nil && !drained:
		failure = remoteError(op, bucket, key, "", 0, ctx.Err())
	}

	if failure == nil {
		slices.SortFunc(parts, func(a, b types.CompletedPart) int {
			return int(aws.ToInt32(a.PartNumber)) - int(aws.ToInt32(b.PartNumber))
		})
		out, err := s.complete(ctx, bucket, key, uploadID, parts)
		if err == nil {
			s.logger.Debug("Uploaded object",
				zap.String("bucket", bucket),
				zap.String("key", key),
				zap.Int64("size", total),
				zap.Int32("parts", number))
			return ObjectInfo{
				Bucket:      bucket,
				Key:         key,
				Size:        total,
				ETag:        strings.Trim(aws.ToString(out.ETag), `"`),
				ContentType: contentType,
				Metadata:    metadata,
			}, nil
		}
		failure = err
	}

	s.logger.Warn("Aborting multipart upload",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.String("upload_id", uploadID),
		zap.Error(failure))
	if err := s.abortMultipart(context.WithoutCancel(ctx), bucket, key, uploadID); err != nil {
		s.logger.Error("Failed to abort multipart upload", zap.String("upload_id", uploadID), zap.Error(err))
	}
	return ObjectInfo{}, failure
}
