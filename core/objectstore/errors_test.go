package objectstore

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	remote := remoteError("create_bucket", "b", "", "BucketAlreadyOwnedByYou", http.StatusConflict, errors.New("boom"))
	local := ioError("upload_object", "b", "k", io.ErrClosedPipe)
	cfg := configError("get_object_presigned", "b", "k", "expiry must be positive")

	assert.ErrorIs(t, remote, ErrRemote)
	assert.NotErrorIs(t, remote, ErrIO)
	assert.ErrorIs(t, local, ErrIO)
	assert.NotErrorIs(t, local, ErrConfig)
	assert.ErrorIs(t, cfg, ErrConfig)
	assert.NotErrorIs(t, cfg, ErrRemote)

	// Wrapping keeps both the kind and the cause reachable.
	wrapped := fmt.Errorf("handler: %w", local)
	assert.ErrorIs(t, wrapped, ErrIO)
	assert.ErrorIs(t, wrapped, io.ErrClosedPipe)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "object",
			err:  remoteError("delete_object", "photos", "a.png", "NoSuchBucket", 404, errors.New("missing")),
			want: "objectstore.delete_object photos/a.png: remote [NoSuchBucket]: missing",
		},
		{
			name: "bucket",
			err:  remoteError("create_bucket", "photos", "", "", 0, errors.New("denied")),
			want: "objectstore.create_bucket bucket photos: remote: denied",
		},
		{
			name: "no target",
			err:  remoteError("list_buckets", "", "", "", 0, errors.New("offline")),
			want: "objectstore.list_buckets: remote: offline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorClassifiers(t *testing.T) {
	notFoundCode := remoteError("get_object", "b", "k", "NoSuchKey", 404, errors.New("x"))
	notFoundStatus := remoteError("stat_object", "b", "k", "", 404, errors.New("x"))
	exists := remoteError("create_bucket", "b", "", "BucketAlreadyExists", 409, errors.New("x"))
	notEmpty := remoteError("delete_bucket", "b", "", "BucketNotEmpty", 409, errors.New("x"))
	denied := remoteError("list_buckets", "", "", "AccessDenied", 403, errors.New("x"))
	local := ioError("upload_object", "b", "k", errors.New("disk"))

	assert.True(t, IsNotFound(notFoundCode))
	assert.True(t, IsNotFound(notFoundStatus))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", notFoundCode)))
	assert.False(t, IsNotFound(exists))
	assert.False(t, IsNotFound(local))
	assert.False(t, IsNotFound(errors.New("plain")))

	assert.True(t, IsAlreadyExists(exists))
	assert.False(t, IsAlreadyExists(notEmpty))

	assert.True(t, IsBucketNotEmpty(notEmpty))
	assert.False(t, IsBucketNotEmpty(exists))

	assert.True(t, IsAccessDenied(denied))
	assert.False(t, IsAccessDenied(notFoundCode))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "remote", KindRemote.String())
	assert.Equal(t, "io", KindIO.String())
	assert.Equal(t, "config", KindConfig.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
