package objectstore_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"testing/iotest"
	"time"

	"bucketeer/core/objectstore"
	"bucketeer/core/storage"
	"bucketeer/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMinioStore(t *testing.T) (*objectstore.Minio, *mocks.Client) {
	t.Helper()
	client := new(mocks.Client)
	cfg := storage.Config{Driver: storage.DriverMinio, Region: "us-east-1"}
	return objectstore.NewMinio(client, cfg, zap.NewNop()), client
}

func objectsChan(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k, Size: int64(len(k))}
	}
	close(ch)
	return ch
}

// drainRemovals makes the RemoveObjects mock consume objectsCh like the real
// client and records what it was asked to delete.
func drainRemovals(removed *[]string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
			*removed = append(*removed, obj.Key)
		}
	}
}

func TestMinioCreateBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store, client := newMinioStore(t)
		client.On("MakeBucket", ctx, "photos", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil).Once()

		require.NoError(t, store.CreateBucket(ctx, "photos"))
		client.AssertExpectations(t)
	})

	t.Run("Collision", func(t *testing.T) {
		store, client := newMinioStore(t)
		client.On("MakeBucket", ctx, "photos", mock.Anything).Return(minio.ErrorResponse{
			Code:       "BucketAlreadyOwnedByYou",
			StatusCode: http.StatusConflict,
		})

		err := store.CreateBucket(ctx, "photos")
		assert.ErrorIs(t, err, objectstore.ErrRemote)
		assert.True(t, objectstore.IsAlreadyExists(err))
	})
}

func TestMinioDeleteBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("WithoutForce", func(t *testing.T) {
		store, client := newMinioStore(t)
		client.On("RemoveBucket", ctx, "photos").Return(nil).Once()

		require.NoError(t, store.DeleteBucket(ctx, "photos", false))
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
		client.AssertExpectations(t)
	})

	t.Run("NotEmptyWithoutForce", func(t *testing.T) {
		store, client := newMinioStore(t)
		client.On("RemoveBucket", ctx, "photos").Return(minio.ErrorResponse{
			Code:       "BucketNotEmpty",
			StatusCode: http.StatusConflict,
		})

		err := store.DeleteBucket(ctx, "photos", false)
		assert.True(t, objectstore.IsBucketNotEmpty(err))
	})

	t.Run("ForceEmptyBucket", func(t *testing.T) {
		store, client := newMinioStore(t)
		var removed []string
		client.On("ListObjects", mock.Anything, "photos", minio.ListObjectsOptions{Recursive: true}).Return(objectsChan())
		client.On("RemoveObjects", mock.Anything, "photos", mock.Anything, mock.Anything).
			Run(drainRemovals(&removed)).
			Return(nil)
		client.On("RemoveBucket", ctx, "photos").Return(nil).Once()

		require.NoError(t, store.DeleteBucket(ctx, "photos", true))
		assert.Empty(t, removed)
		client.AssertExpectations(t)
	})

	t.Run("ForceRemovesEveryObject", func(t *testing.T) {
		store, client := newMinioStore(t)
		var removed []string
		client.On("ListObjects", mock.Anything, "photos", mock.Anything).Return(objectsChan("a.png", "b/c.png", "d.txt"))
		client.On("RemoveObjects", mock.Anything, "photos", mock.Anything, mock.Anything).
			Run(drainRemovals(&removed)).
			Return(nil)
		client.On("RemoveBucket", ctx, "photos").Return(nil).Once()

		require.NoError(t, store.DeleteBucket(ctx, "photos", true))
		assert.Equal(t, []string{"a.png", "b/c.png", "d.txt"}, removed)
		client.AssertExpectations(t)
	})

	t.Run("ForceAbortsOnRemovalFailure", func(t *testing.T) {
		store, client := newMinioStore(t)
		var removed []string
		errs := make(chan minio.RemoveObjectError, 1)
		errs <- minio.RemoveObjectError{
			ObjectName: "b.png",
			Err:        minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden},
		}
		close(errs)

		client.On("ListObjects", mock.Anything, "photos", mock.Anything).Return(objectsChan("a.png", "b.png"))
		client.On("RemoveObjects", mock.Anything, "photos", mock.Anything, mock.Anything).
			Run(drainRemovals(&removed)).
			Return((<-chan minio.RemoveObjectError)(errs))

		err := store.DeleteBucket(ctx, "photos", true)
		require.Error(t, err)
		assert.True(t, objectstore.IsAccessDenied(err))

		var storeErr *objectstore.Error
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "b.png", storeErr.Key)
		client.AssertNotCalled(t, "RemoveBucket", mock.Anything, mock.Anything)
	})

	t.Run("ForceAbortsOnListingFailure", func(t *testing.T) {
		store, client := newMinioStore(t)
		ch := make(chan minio.ObjectInfo, 2)
		ch <- minio.ObjectInfo{Key: "a.png"}
		ch <- minio.ObjectInfo{Err: minio.ErrorResponse{Code: "InternalError", StatusCode: http.StatusInternalServerError}}
		close(ch)

		var removed []string
		client.On("ListObjects", mock.Anything, "photos", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))
		client.On("RemoveObjects", mock.Anything, "photos", mock.Anything, mock.Anything).
			Run(drainRemovals(&removed)).
			Return(nil)

		err := store.DeleteBucket(ctx, "photos", true)
		assert.ErrorIs(t, err, objectstore.ErrRemote)
		assert.Equal(t, []string{"a.png"}, removed)
		client.AssertNotCalled(t, "RemoveBucket", mock.Anything, mock.Anything)
	})
}

func TestMinioUploadObject(t *testing.T) {
	ctx := context.Background()

	t.Run("SniffsContentType", func(t *testing.T) {
		store, client := newMinioStore(t)
		var stored string
		client.On("PutObject", ctx, "photos", "note.txt", mock.Anything, int64(-1),
			mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
				return strings.HasPrefix(opts.ContentType, "text/plain") && opts.PartSize == uint64(objectstore.MinPartSize)
			})).
			Run(func(args mock.Arguments) {
				data, _ := io.ReadAll(args.Get(3).(io.Reader))
				stored = string(data)
			}).
			Return(minio.UploadInfo{Bucket: "photos", Key: "note.txt", Size: 11, ETag: "abc"}, nil)

		info, err := store.UploadObject(ctx, "photos", "note.txt", strings.NewReader("hello world"), objectstore.UploadOptions{})
		require.NoError(t, err)
		assert.Equal(t, "hello world", stored)
		assert.Equal(t, int64(11), info.Size)
		assert.Equal(t, "abc", info.ETag)
		client.AssertExpectations(t)
	})

	t.Run("PassesOptions", func(t *testing.T) {
		store, client := newMinioStore(t)
		meta := map[string]string{"owner": "shark"}
		client.On("PutObject", ctx, "photos", "shark.jpg", mock.Anything, int64(4),
			minio.PutObjectOptions{ContentType: "image/jpeg", UserMetadata: meta, PartSize: uint64(16 << 20)}).
			Return(minio.UploadInfo{Size: 4}, nil)

		_, err := store.UploadObject(ctx, "photos", "shark.jpg", strings.NewReader("jpeg"), objectstore.UploadOptions{
			ContentType: "image/jpeg",
			Metadata:    meta,
			Size:        4,
			PartSize:    16 << 20,
		})
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("SourceReadFailure", func(t *testing.T) {
		store, client := newMinioStore(t)
		readErr := errors.New("disk gone")
		client.On("PutObject", ctx, "photos", "broken", mock.Anything, int64(-1), mock.Anything).
			Run(func(args mock.Arguments) {
				_, _ = io.ReadAll(args.Get(3).(io.Reader))
			}).
			Return(minio.UploadInfo{}, readErr)

		_, err := store.UploadObject(ctx, "photos", "broken", iotest.ErrReader(readErr), objectstore.UploadOptions{ContentType: "text/plain"})
		assert.ErrorIs(t, err, objectstore.ErrIO)
		assert.ErrorIs(t, err, readErr)
	})

	t.Run("RemoteFailure", func(t *testing.T) {
		store, client := newMinioStore(t)
		client.On("PutObject", ctx, "missing", "k", mock.Anything, int64(-1), mock.Anything).
			Return(minio.UploadInfo{}, minio.ErrorResponse{Code: "NoSuchBucket", StatusCode: http.StatusNotFound})

		_, err := store.UploadObject(ctx, "missing", "k", strings.NewReader("x"), objectstore.UploadOptions{ContentType: "text/plain"})
		assert.ErrorIs(t, err, objectstore.ErrRemote)
		assert.True(t, objectstore.IsNotFound(err))
	})
}

func TestMinioPresign(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsInvalidExpiryWithoutSDKCall", func(t *testing.T) {
		store, client := newMinioStore(t)

		for _, expiry := range []time.Duration{0, -time.Second, objectstore.MaxPresignExpiry + time.Second} {
			_, err := store.GetObjectPresigned(ctx, "photos", "a.png", expiry)
			assert.ErrorIs(t, err, objectstore.ErrConfig)
		}
		client.AssertNotCalled(t, "Presign", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("GetObject", func(t *testing.T) {
		store, client := newMinioStore(t)
		u, _ := url.Parse("http://localhost:9000/photos/a.png?X-Amz-Expires=1337")
		client.On("Presign", ctx, http.MethodGet, "photos", "a.png", 1337*time.Second, url.Values(nil)).Return(u, nil)

		before := time.Now()
		req, err := store.GetObjectPresigned(ctx, "photos", "a.png", 1337*time.Second)
		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, u.String(), req.URL)
		assert.WithinDuration(t, before.Add(1337*time.Second), req.ExpiresAt, 2*time.Second)
	})

	t.Run("PutAndDelete", func(t *testing.T) {
		store, client := newMinioStore(t)
		u, _ := url.Parse("http://localhost:9000/photos/a.png")
		client.On("Presign", ctx, http.MethodPut, "photos", "a.png", time.Minute, url.Values(nil)).Return(u, nil)
		client.On("Presign", ctx, http.MethodDelete, "photos", "a.png", time.Minute, url.Values(nil)).Return(u, nil)

		put, err := store.PutObjectPresigned(ctx, "photos", "a.png", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, put.Method)

		del, err := store.DeleteObjectPresigned(ctx, "photos", "a.png", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, del.Method)
		client.AssertExpectations(t)
	})
}

func TestMinioDeleteObject(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingKeySucceeds", func(t *testing.T) {
		store, client := newMinioStore(t)
		client.On("RemoveObject", ctx, "photos", "gone.png", minio.RemoveObjectOptions{}).Return(nil)

		assert.NoError(t, store.DeleteObject(ctx, "photos", "gone.png"))
	})

	t.Run("DistinctStoreErrorSurfaces", func(t *testing.T) {
		store, client := newMinioStore(t)
		client.On("RemoveObject", ctx, "nope", "a.png", mock.Anything).
			Return(minio.ErrorResponse{Code: "NoSuchBucket", StatusCode: http.StatusNotFound})

		err := store.DeleteObject(ctx, "nope", "a.png")
		assert.ErrorIs(t, err, objectstore.ErrRemote)
		assert.True(t, objectstore.IsNotFound(err))
	})
}

func TestMinioReadOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("ListBuckets", func(t *testing.T) {
		store, client := newMinioStore(t)
		created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		client.On("ListBuckets", ctx).Return([]minio.BucketInfo{{Name: "photos", CreationDate: created}}, nil)

		buckets, err := store.ListBuckets(ctx)
		require.NoError(t, err)
		assert.Equal(t, []objectstore.BucketInfo{{Name: "photos", CreatedAt: created}}, buckets)
	})

	t.Run("BucketExists", func(t *testing.T) {
		store, client := newMinioStore(t)
		client.On("BucketExists", ctx, "photos").Return(true, nil)
		client.On("BucketExists", ctx, "other").Return(false, nil)

		ok, err := store.BucketExists(ctx, "photos")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.BucketExists(ctx, "other")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("GetObject", func(t *testing.T) {
		store, client := newMinioStore(t)
		client.On("GetObject", ctx, "photos", "a.txt", minio.GetObjectOptions{}).
			Return(io.NopCloser(strings.NewReader("content")), nil)
		client.On("GetObject", ctx, "photos", "missing", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound})

		rc, err := store.GetObject(ctx, "photos", "a.txt")
		require.NoError(t, err)
		data, _ := io.ReadAll(rc)
		assert.Equal(t, "content", string(data))

		_, err = store.GetObject(ctx, "photos", "missing")
		assert.True(t, objectstore.IsNotFound(err))
	})

	t.Run("StatObject", func(t *testing.T) {
		store, client := newMinioStore(t)
		client.On("StatObject", ctx, "photos", "a.txt", minio.StatObjectOptions{}).Return(minio.ObjectInfo{
			Key:          "a.txt",
			Size:         7,
			ETag:         "etag",
			ContentType:  "text/plain",
			UserMetadata: minio.StringMap{"Owner": "shark"},
		}, nil)

		info, err := store.StatObject(ctx, "photos", "a.txt")
		require.NoError(t, err)
		assert.Equal(t, "photos", info.Bucket)
		assert.Equal(t, int64(7), info.Size)
		assert.Equal(t, "shark", info.Metadata["Owner"])
	})

	t.Run("CopyObject", func(t *testing.T) {
		store, client := newMinioStore(t)
		client.On("CopyObject", ctx,
			minio.CopyDestOptions{Bucket: "photos", Object: "b.txt"},
			minio.CopySrcOptions{Bucket: "photos", Object: "a.txt"}).
			Return(minio.UploadInfo{}, nil)

		require.NoError(t, store.CopyObject(ctx, "photos", "a.txt", "b.txt"))
		client.AssertExpectations(t)
	})
}

func TestMinioPager(t *testing.T) {
	ctx := context.Background()
	store, client := newMinioStore(t)

	client.On("ListObjects", mock.Anything, "photos", minio.ListObjectsOptions{Recursive: true, MaxKeys: 3}).
		Return(objectsChan("a", "b", "c")).Once()
	client.On("ListObjects", mock.Anything, "photos", minio.ListObjectsOptions{Recursive: true, MaxKeys: 3, StartAfter: "b"}).
		Return(objectsChan("c")).Once()

	pager := store.ListObjects("photos", 2)

	require.True(t, pager.HasMorePages())
	page, err := pager.NextPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys(page))

	require.True(t, pager.HasMorePages())
	page, err = pager.NextPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, keys(page))

	assert.False(t, pager.HasMorePages())
	client.AssertExpectations(t)
}

func TestMinioPresignedUpload(t *testing.T) {
	ctx := context.Background()
	store, client := newMinioStore(t)
	u, _ := url.Parse("http://localhost:9000/photos/big.bin")

	client.On("NewMultipartUpload", ctx, "photos", "big.bin", minio.PutObjectOptions{ContentType: "application/octet-stream"}).
		Return("upload-1", nil)
	client.On("Presign", mock.Anything, http.MethodPut, "photos", "big.bin", time.Hour, mock.MatchedBy(func(v url.Values) bool {
		return v.Get("uploadId") == "upload-1" && v.Get("partNumber") != ""
	})).Return(u, nil)
	client.On("CompleteMultipartUpload", ctx, "photos", "big.bin", "upload-1",
		[]minio.CompletePart{{PartNumber: 1, ETag: "e1"}, {PartNumber: 2, ETag: "e2"}, {PartNumber: 3, ETag: "e3"}},
		minio.PutObjectOptions{}).
		Return(minio.UploadInfo{}, nil)

	upload, err := store.UploadObjectPresigned(ctx, "photos", "big.bin", objectstore.UploadOptions{ContentType: "application/octet-stream"})
	require.NoError(t, err)
	assert.Equal(t, "upload-1", upload.UploadID)

	var wg sync.WaitGroup
	numbers := make(chan int32, 3)
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, n, err := upload.NextPart(ctx, time.Hour)
			assert.NoError(t, err)
			numbers <- n
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[int32]bool{}
	for n := range numbers {
		seen[n] = true
	}
	assert.Equal(t, map[int32]bool{1: true, 2: true, 3: true}, seen)

	err = upload.Complete(ctx, []objectstore.CompletedPart{
		{PartNumber: 3, ETag: "e3"},
		{PartNumber: 1, ETag: "e1"},
		{PartNumber: 2, ETag: "e2"},
	})
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestMinioPresignedUploadAbort(t *testing.T) {
	ctx := context.Background()
	store, client := newMinioStore(t)

	client.On("NewMultipartUpload", ctx, "photos", "big.bin", mock.Anything).Return("upload-2", nil)
	client.On("AbortMultipartUpload", ctx, "photos", "big.bin", "upload-2").Return(nil).Once()

	upload, err := store.UploadObjectPresigned(ctx, "photos", "big.bin", objectstore.UploadOptions{})
	require.NoError(t, err)

	assert.ErrorIs(t, upload.Complete(ctx, nil), objectstore.ErrConfig)
	require.NoError(t, upload.Abort(ctx))
	client.AssertExpectations(t)
}

func keys(objects []objectstore.ObjectInfo) []string {
	out := make([]string, 0, len(objects))
	for _, o := range objects {
		out = append(out, o.Key)
	}
	return out
}
