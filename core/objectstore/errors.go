package objectstore

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a façade error.
type Kind int

const (
	// KindRemote means the store rejected or failed the request.
	KindRemote Kind = iota + 1
	// KindIO means the local payload could not be read.
	KindIO
	// KindConfig means a parameter was rejected before any request was made.
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindRemote:
		return "remote"
	case KindIO:
		return "io"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against any *Error of the same Kind.
var (
	ErrRemote = errors.New("objectstore: remote error")
	ErrIO     = errors.New("objectstore: io error")
	ErrConfig = errors.New("objectstore: invalid parameter")
)

// Error is returned by every Store method.
type Error struct {
	Kind   Kind
	Op     string
	Bucket string
	Key    string
	// Code is the store's error code (e.g. NoSuchKey), when it reported one.
	Code string
	// StatusCode is the HTTP status of the store's response, when known.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("objectstore.")
	sb.WriteString(e.Op)
	switch {
	case e.Bucket != "" && e.Key != "":
		fmt.Fprintf(&sb, " %s/%s", e.Bucket, e.Key)
	case e.Bucket != "":
		fmt.Fprintf(&sb, " bucket %s", e.Bucket)
	}
	fmt.Fprintf(&sb, ": %s", e.Kind)
	if e.Code != "" {
		fmt.Fprintf(&sb, " [%s]", e.Code)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the Kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrRemote:
		return e.Kind == KindRemote
	case ErrIO:
		return e.Kind == KindIO
	case ErrConfig:
		return e.Kind == KindConfig
	}
	return false
}

func configError(op, bucket, key string, format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Op: op, Bucket: bucket, Key: key, Err: fmt.Errorf(format, args...)}
}

func ioError(op, bucket, key string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Bucket: bucket, Key: key, Err: err}
}

// remoteError wraps an SDK failure; code and status are filled by the
// backend-specific extractor.
func remoteError(op, bucket, key, code string, status int, err error) *Error {
	return &Error{Kind: KindRemote, Op: op, Bucket: bucket, Key: key, Code: code, StatusCode: status, Err: err}
}

func asError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsNotFound reports whether the store said the bucket or object is absent.
func IsNotFound(err error) bool {
	e, ok := asError(err)
	if !ok || e.Kind != KindRemote {
		return false
	}
	switch e.Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound", "NoSuchUpload":
		return true
	}
	return e.Code == "" && e.StatusCode == http.StatusNotFound
}

// IsAlreadyExists reports whether a bucket creation collided with an existing bucket.
func IsAlreadyExists(err error) bool {
	e, ok := asError(err)
	if !ok || e.Kind != KindRemote {
		return false
	}
	return e.Code == "BucketAlreadyExists" || e.Code == "BucketAlreadyOwnedByYou"
}

// IsBucketNotEmpty reports whether a bucket deletion was refused because of remaining objects.
func IsBucketNotEmpty(err error) bool {
	e, ok := asError(err)
	return ok && e.Kind == KindRemote && e.Code == "BucketNotEmpty"
}

// IsAccessDenied reports whether the store refused the credentials.
func IsAccessDenied(err error) bool {
	e, ok := asError(err)
	if !ok || e.Kind != KindRemote {
		return false
	}
	switch e.Code {
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return true
	}
	return e.Code == "" && e.StatusCode == http.StatusForbidden
}
