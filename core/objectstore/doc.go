// Package objectstore is the façade applications use to manage buckets and
// objects on an S3-compatible store.
//
// Each Store method turns one ergonomic call into the SDK request(s) behind
// it, waits for the answer, and returns either a plain value or an *Error.
// There is no retry, caching or batching policy here: resilience comes from
// the SDK, deadlines and cancellation from the caller's context.
//
// # Backends
//
//   - Minio: minio-go, through storage.Client.
//   - S3: aws-sdk-go-v2, through storage.S3API and storage.S3PresignAPI.
//
// New picks one from storage.Config.Driver.
//
// # Errors
//
// Every failure is an *Error with one of three kinds:
//
//   - KindRemote: the store rejected or failed the request (matches ErrRemote).
//   - KindIO: the upload source could not be read (matches ErrIO).
//   - KindConfig: a parameter was rejected locally, e.g. a presign expiry
//     outside (0, MaxPresignExpiry] (matches ErrConfig).
//
// IsNotFound, IsAlreadyExists, IsBucketNotEmpty and IsAccessDenied inspect
// the store's error code.
//
// # Forced bucket deletion
//
// DeleteBucket(ctx, name, true) lists and deletes every object before the
// bucket itself. The first listing or deletion failure stops the process and
// is returned; objects removed until then stay removed.
//
// # Usage
//
//	store, err := objectstore.New(ctx, cfg.Storage, logger)
//	err = store.CreateBucket(ctx, "shark-images")
//	_, err = store.UploadObject(ctx, "shark-images", "shark.jpg", file, objectstore.UploadOptions{})
//	req, err := store.GetObjectPresigned(ctx, "shark-images", "shark.jpg", time.Hour)
package objectstore
