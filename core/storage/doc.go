// Package storage builds the SDK clients used to reach an S3-compatible store.
//
// Two SDKs are supported and each is hidden behind a small interface so the
// layers above can be unit tested with the mocks in core/storage/mocks:
//
//   - Client wraps the MinIO Go client (driver "minio").
//   - S3API and S3PresignAPI wrap the aws-sdk-go-v2 S3 client (driver "s3").
//
// Both share one http.Transport shape with connection, TLS and first-byte
// timeouts taken from Config.TimeoutSeconds. Credentials come from Config when
// AccessKey is set and from the environment otherwise.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	exists, err := client.BucketExists(ctx, "assets")
//
//	api, presigner, err := storage.NewS3Client(ctx, cfg)
package storage
