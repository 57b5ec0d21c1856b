package uploads

import (
	"time"

	"bucketeer/core/logger"
	"bucketeer/core/objectstore"
	"bucketeer/core/server"
	"bucketeer/core/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StartRequest opens a presigned multipart upload.
type StartRequest struct {
	Bucket      string            `json:"bucket" validate:"required"`
	Key         string            `json:"key" validate:"required"`
	ContentType string            `json:"content_type"`
	Metadata    map[string]string `json:"metadata"`
}

// CompleteRequest lists the uploaded parts.
type CompleteRequest struct {
	Parts []objectstore.CompletedPart `json:"parts" validate:"required,min=1,dive"`
}

// SessionResponse describes an open upload session.
type SessionResponse struct {
	ID        string    `json:"id"`
	Bucket    string    `json:"bucket"`
	Key       string    `json:"key"`
	UploadID  string    `json:"upload_id"`
	StartedAt time.Time `json:"started_at"`
}

// PartResponse is a signed part upload.
type PartResponse struct {
	PartNumber int32                         `json:"part_number"`
	Request    *objectstore.PresignedRequest `json:"request"`
}

func toResponse(s *Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		Bucket:    s.Upload.Bucket,
		Key:       s.Upload.Key,
		UploadID:  s.Upload.UploadID,
		StartedAt: s.StartedAt,
	}
}

// Handler handles HTTP requests for presigned multipart uploads.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

// RegisterRoutes registers the upload routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/uploads")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleStart)
	group.Post("/:id/parts", h.HandleNextPart)
	group.Post("/:id/complete", h.HandleComplete)
	group.Delete("/:id", h.HandleAbort)
}

func (h *Handler) parse(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := h.validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// HandleList lists open upload sessions.
// @Summary List Upload Sessions
// @Description List presigned multipart uploads started through this server and not yet completed or aborted.
// @Tags uploads
// @Produce json
// @Success 200 {array} SessionResponse "Sessions"
// @Router /uploads [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	sessions := h.service.List()
	out := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toResponse(s))
	}
	return c.JSON(out)
}

// HandleStart opens a presigned multipart upload.
// @Summary Start Upload
// @Description Start a multipart upload whose parts are sent directly to the store through presigned URLs.
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body StartRequest true "Target object"
// @Success 201 {object} SessionResponse "Session"
// @Failure 400 {object} server.ErrorResponse "Invalid Request"
// @Failure 404 {object} server.ErrorResponse "Bucket Not Found"
// @Router /uploads [post]
func (h *Handler) HandleStart(c *fiber.Ctx) error {
	var req StartRequest
	if err := h.parse(c, &req); err != nil {
		return server.SendError(c, err)
	}

	session, err := h.service.Start(c.Context(), req.Bucket, req.Key, objectstore.UploadOptions{
		ContentType: req.ContentType,
		Metadata:    req.Metadata,
	})
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Starting upload failed",
			zap.String("bucket", req.Bucket),
			zap.String("key", req.Key),
			zap.Error(err))
		return server.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toResponse(session))
}

// HandleNextPart signs the next part of an upload.
// @Summary Sign Next Part
// @Description Reserve the next part number and sign a PUT for it.
// @Tags uploads
// @Produce json
// @Param id path string true "Session id"
// @Param expiry query int false "Validity in seconds" default(3600)
// @Success 200 {object} PartResponse "Signed Part"
// @Failure 400 {object} server.ErrorResponse "Invalid Expiry"
// @Failure 404 {object} server.ErrorResponse "Unknown Session"
// @Router /uploads/{id}/parts [post]
func (h *Handler) HandleNextPart(c *fiber.Ctx) error {
	expiry := utils.ToSeconds(c.Query("expiry", "3600"))
	req, part, err := h.service.NextPart(c.Context(), c.Params("id"), expiry)
	if err != nil {
		return server.SendError(c, err)
	}
	return c.JSON(PartResponse{PartNumber: part, Request: req})
}

// HandleComplete completes an upload.
// @Summary Complete Upload
// @Description Assemble the uploaded parts into the object and close the session.
// @Tags uploads
// @Accept json
// @Param id path string true "Session id"
// @Param request body CompleteRequest true "Uploaded parts"
// @Success 204 "Completed"
// @Failure 400 {object} server.ErrorResponse "Invalid Request"
// @Failure 404 {object} server.ErrorResponse "Unknown Session"
// @Router /uploads/{id}/complete [post]
func (h *Handler) HandleComplete(c *fiber.Ctx) error {
	var req CompleteRequest
	if err := h.parse(c, &req); err != nil {
		return server.SendError(c, err)
	}

	if err := h.service.Complete(c.Context(), c.Params("id"), req.Parts); err != nil {
		logger.WithRayID(h.service.logger, c).Error("Completing upload failed", zap.String("session", c.Params("id")), zap.Error(err))
		return server.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAbort aborts an upload.
// @Summary Abort Upload
// @Description Discard the upload and its parts, and close the session.
// @Tags uploads
// @Param id path string true "Session id"
// @Success 204 "Aborted"
// @Failure 404 {object} server.ErrorResponse "Unknown Session"
// @Router /uploads/{id} [delete]
func (h *Handler) HandleAbort(c *fiber.Ctx) error {
	if err := h.service.Abort(c.Context(), c.Params("id")); err != nil {
		return server.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
