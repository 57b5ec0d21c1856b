package storage

import (
	"strings"
	"time"
)

const (
	// DriverMinio selects the minio-go backed client.
	DriverMinio = "minio"
	// DriverS3 selects the aws-sdk-go-v2 backed client.
	DriverS3 = "s3"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Driver selects the SDK used to talk to the store (minio, s3).
	Driver string `mapstructure:"driver" default:"minio" validate:"oneof=minio s3"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000" validate:"required"`
	// AccessKey is the access key ID for authentication.
	// When empty, credentials are resolved from the environment.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"" validate:"required_with=AccessKey"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the default bucket used by the CLI when none is given.
	Bucket string `mapstructure:"bucket" default:""`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:"us-east-1"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30" validate:"gte=0"`
	// PartSize is the multipart upload part size in bytes.
	PartSize int64 `mapstructure:"part_size" default:"5242880" validate:"gte=0"`
}

// Timeout returns the transport timeout, falling back to 30 seconds.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HostPort returns the endpoint without its scheme, as minio-go expects it.
func (c Config) HostPort() string {
	endpoint := strings.TrimPrefix(c.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")
	return strings.TrimSuffix(endpoint, "/")
}

// URL returns the endpoint as an absolute URL, as aws-sdk-go-v2 expects it.
func (c Config) URL() string {
	if strings.HasPrefix(c.Endpoint, "http://") || strings.HasPrefix(c.Endpoint, "https://") {
		return strings.TrimSuffix(c.Endpoint, "/")
	}
	scheme := "http://"
	if c.UseSSL {
		scheme = "https://"
	}
	return scheme + c.HostPort()
}

// RegionOrDefault returns the configured region or us-east-1.
func (c Config) RegionOrDefault() string {
	if c.Region == "" {
		return "us-east-1"
	}
	return c.Region
}
