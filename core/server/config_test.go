package server_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bucketeer/core/objectstore"
	"bucketeer/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Addr())
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Config", &objectstore.Error{Kind: objectstore.KindConfig, Err: errors.New("bad expiry")}, http.StatusBadRequest},
		{"IO", &objectstore.Error{Kind: objectstore.KindIO, Err: io.ErrUnexpectedEOF}, http.StatusInternalServerError},
		{"NoSuchKey", &objectstore.Error{Kind: objectstore.KindRemote, Code: "NoSuchKey"}, http.StatusNotFound},
		{"Bare404", &objectstore.Error{Kind: objectstore.KindRemote, StatusCode: 404}, http.StatusNotFound},
		{"Exists", &objectstore.Error{Kind: objectstore.KindRemote, Code: "BucketAlreadyOwnedByYou"}, http.StatusConflict},
		{"NotEmpty", &objectstore.Error{Kind: objectstore.KindRemote, Code: "BucketNotEmpty"}, http.StatusConflict},
		{"Denied", &objectstore.Error{Kind: objectstore.KindRemote, Code: "AccessDenied"}, http.StatusForbidden},
		{"OtherRemote", &objectstore.Error{Kind: objectstore.KindRemote, Code: "InternalError"}, http.StatusBadGateway},
		{"Wrapped", fmt.Errorf("handler: %w", &objectstore.Error{Kind: objectstore.KindRemote, Code: "NoSuchBucket"}), http.StatusNotFound},
		{"Fiber", fiber.NewError(fiber.StatusUnauthorized, "nope"), http.StatusUnauthorized},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, server.StatusFor(tt.err))
		})
	}
}

func TestSendError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return server.SendError(c, &objectstore.Error{
			Kind:   objectstore.KindRemote,
			Op:     "get_object",
			Bucket: "photos",
			Key:    "a.png",
			Code:   "NoSuchKey",
			Err:    errors.New("missing"),
		})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"kind":"remote"`)
	assert.Contains(t, string(body), `"code":"NoSuchKey"`)
	assert.Contains(t, string(body), "photos/a.png")
}
