package server

import (
	"errors"

	"bucketeer/core/objectstore"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Code  string `json:"code,omitempty"`
}

// StatusFor maps a store error to the HTTP status reported to clients.
func StatusFor(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}

	switch {
	case errors.Is(err, objectstore.ErrConfig):
		return fiber.StatusBadRequest
	case errors.Is(err, objectstore.ErrIO):
		return fiber.StatusInternalServerError
	case objectstore.IsNotFound(err):
		return fiber.StatusNotFound
	case objectstore.IsAlreadyExists(err), objectstore.IsBucketNotEmpty(err):
		return fiber.StatusConflict
	case objectstore.IsAccessDenied(err):
		return fiber.StatusForbidden
	case errors.Is(err, objectstore.ErrRemote):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// NewErrorResponse builds the response body for err.
func NewErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}

	var storeErr *objectstore.Error
	if errors.As(err, &storeErr) {
		resp.Kind = storeErr.Kind.String()
		resp.Code = storeErr.Code
	}
	return resp
}

// SendError writes err as JSON with the status StatusFor picks.
func SendError(c *fiber.Ctx, err error) error {
	return c.Status(StatusFor(err)).JSON(NewErrorResponse(err))
}
