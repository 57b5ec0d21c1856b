package buckets

import (
	"bucketeer/core/logger"
	"bucketeer/core/server"
	"bucketeer/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for buckets.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the bucket routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/buckets")
	group.Get("/", h.HandleList)
	group.Get("/:bucket", h.HandleExists)
	group.Put("/:bucket", h.HandleCreate)
	group.Delete("/:bucket", h.HandleDelete)
	group.Get("/:bucket/objects", h.HandleListObjects)
}

// HandleList lists every bucket.
// @Summary List Buckets
// @Description List every bucket visible to the configured credentials.
// @Tags buckets
// @Produce json
// @Success 200 {array} objectstore.BucketInfo "Buckets"
// @Failure 502 {object} server.ErrorResponse "Store Error"
// @Router /buckets [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	buckets, err := h.service.List(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Listing buckets failed", zap.Error(err))
		return server.SendError(c, err)
	}
	return c.JSON(buckets)
}

// HandleExists reports whether a bucket exists.
// @Summary Bucket Exists
// @Description Check whether a bucket exists.
// @Tags buckets
// @Produce json
// @Param bucket path string true "Bucket name"
// @Success 200 {object} map[string]bool "Existence"
// @Failure 502 {object} server.ErrorResponse "Store Error"
// @Router /buckets/{bucket} [get]
func (h *Handler) HandleExists(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	exists, err := h.service.Exists(c.Context(), bucket)
	if err != nil {
		return server.SendError(c, err)
	}
	return c.JSON(fiber.Map{"bucket": bucket, "exists": exists})
}

// HandleCreate creates a bucket.
// @Summary Create Bucket
// @Description Create a bucket. Fails with 409 when it already exists.
// @Tags buckets
// @Param bucket path string true "Bucket name"
// @Success 201 "Created"
// @Failure 409 {object} server.ErrorResponse "Already Exists"
// @Failure 502 {object} server.ErrorResponse "Store Error"
// @Router /buckets/{bucket} [put]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	if err := h.service.Create(c.Context(), bucket); err != nil {
		logger.WithRayID(h.service.logger, c).Warn("Bucket creation failed", zap.String("bucket", bucket), zap.Error(err))
		return server.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// HandleDelete deletes a bucket.
// @Summary Delete Bucket
// @Description Delete a bucket. With force=true every object is removed first; the first failure aborts and leaves the bucket partially emptied.
// @Tags buckets
// @Param bucket path string true "Bucket name"
// @Param force query bool false "Empty the bucket first"
// @Success 204 "Deleted"
// @Failure 404 {object} server.ErrorResponse "Not Found"
// @Failure 409 {object} server.ErrorResponse "Bucket Not Empty"
// @Router /buckets/{bucket} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	force := utils.ToBool(c.Query("force"))

	if err := h.service.Delete(c.Context(), bucket, force); err != nil {
		logger.WithRayID(h.service.logger, c).Error("Bucket deletion failed",
			zap.String("bucket", bucket),
			zap.Bool("force", force),
			zap.Error(err))
		return server.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListObjects lists every object of a bucket.
// @Summary List Objects
// @Description List every object of a bucket, fetched page by page.
// @Tags buckets
// @Produce json
// @Param bucket path string true "Bucket name"
// @Param page_size query int false "Objects fetched per store request"
// @Success 200 {array} objectstore.ObjectInfo "Objects"
// @Failure 404 {object} server.ErrorResponse "Not Found"
// @Router /buckets/{bucket}/objects [get]
func (h *Handler) HandleListObjects(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	objects, err := h.service.ListObjects(c.Context(), bucket, utils.ToInt(c.Query("page_size")))
	if err != nil {
		return server.SendError(c, err)
	}
	return c.JSON(objects)
}
