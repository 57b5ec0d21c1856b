package objects

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bucketeer/core/logger"
	"bucketeer/core/objectstore"
	"bucketeer/core/server"
	"bucketeer/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MetaHeaderPrefix marks request and response headers carrying user metadata.
const MetaHeaderPrefix = "X-Meta-"

// DefaultPresignExpiry is used when the expiry query parameter is absent.
const DefaultPresignExpiry = "3600"

// Handler handles HTTP requests for objects.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the object routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/objects")
	group.Post("/:bucket/copy", h.HandleCopy)
	group.Put("/:bucket/*", h.HandleUpload)
	// Head first: Get also answers HEAD requests.
	group.Head("/:bucket/*", h.HandleStat)
	group.Get("/:bucket/*", h.HandleDownload)
	group.Delete("/:bucket/*", h.HandleDelete)

	app.Get("/presign/:bucket/*", h.HandlePresign)
}

// objectKey returns the unescaped wildcard key, or a 400 error when empty.
func objectKey(c *fiber.Ctx) (string, error) {
	key, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid object key")
	}
	if key == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "object key is required")
	}
	return key, nil
}

// metadataFromHeaders collects X-Meta-* request headers.
func metadataFromHeaders(c *fiber.Ctx) map[string]string {
	var meta map[string]string
	c.Request().Header.VisitAll(func(k, v []byte) {
		name := string(k)
		if len(name) <= len(MetaHeaderPrefix) || !strings.EqualFold(name[:len(MetaHeaderPrefix)], MetaHeaderPrefix) {
			return
		}
		if meta == nil {
			meta = make(map[string]string)
		}
		meta[strings.ToLower(name[len(MetaHeaderPrefix):])] = string(v)
	})
	return meta
}

func setObjectHeaders(c *fiber.Ctx, info objectstore.ObjectInfo) {
	if info.ContentType != "" {
		c.Set(fiber.HeaderContentType, info.ContentType)
	}
	if info.ETag != "" {
		c.Set(fiber.HeaderETag, strconv.Quote(info.ETag))
	}
	if !info.LastModified.IsZero() {
		c.Set(fiber.HeaderLastModified, info.LastModified.UTC().Format(http.TimeFormat))
	}
	for k, v := range info.Metadata {
		c.Set(MetaHeaderPrefix+k, v)
	}
}

// HandleUpload stores the request body as an object.
// @Summary Upload Object
// @Description Store the request body under the key. The Content-Type header is kept, otherwise it is sniffed. X-Meta-* headers become user metadata.
// @Tags objects
// @Accept octet-stream
// @Produce json
// @Param bucket path string true "Bucket name"
// @Param key path string true "Object key"
// @Success 201 {object} objectstore.ObjectInfo "Stored Object"
// @Failure 404 {object} server.ErrorResponse "Bucket Not Found"
// @Failure 500 {object} server.ErrorResponse "Body Read Error"
// @Router /objects/{bucket}/{key} [put]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	key, err := objectKey(c)
	if err != nil {
		return server.SendError(c, err)
	}

	opts := objectstore.UploadOptions{
		ContentType: c.Get(fiber.HeaderContentType),
		Metadata:    metadataFromHeaders(c),
	}

	var body io.Reader
	if stream := c.Context().RequestBodyStream(); stream != nil {
		body = stream
		opts.Size = int64(c.Request().Header.ContentLength())
	} else {
		raw := c.Body()
		body = bytes.NewReader(raw)
		opts.Size = int64(len(raw))
	}

	info, err := h.service.Upload(c.Context(), bucket, key, body, opts)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Upload failed",
			zap.String("bucket", bucket),
			zap.String("key", key),
			zap.Error(err))
		return server.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(info)
}

// HandleDownload streams an object.
// @Summary Download Object
// @Description Stream the object content with its stored content type and metadata headers.
// @Tags objects
// @Produce octet-stream
// @Param bucket path string true "Bucket name"
// @Param key path string true "Object key"
// @Success 200 {file} binary "Object Content"
// @Failure 404 {object} server.ErrorResponse "Not Found"
// @Router /objects/{bucket}/{key} [get]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	key, err := objectKey(c)
	if err != nil {
		return server.SendError(c, err)
	}

	info, rc, err := h.service.Download(c.Context(), bucket, key)
	if err != nil {
		return server.SendError(c, err)
	}

	setObjectHeaders(c, info)
	return c.SendStream(rc, int(info.Size))
}

// HandleStat returns object metadata as headers.
// @Summary Stat Object
// @Description Return the object metadata as response headers, without content.
// @Tags objects
// @Param bucket path string true "Bucket name"
// @Param key path string true "Object key"
// @Success 200 "Object Metadata"
// @Failure 404 "Not Found"
// @Router /objects/{bucket}/{key} [head]
func (h *Handler) HandleStat(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	key, err := objectKey(c)
	if err != nil {
		return c.SendStatus(server.StatusFor(err))
	}

	info, err := h.service.Stat(c.Context(), bucket, key)
	if err != nil {
		return c.SendStatus(server.StatusFor(err))
	}

	setObjectHeaders(c, info)
	c.Response().Header.SetContentLength(int(info.Size))
	return nil
}

// HandleDelete deletes an object.
// @Summary Delete Object
// @Description Delete the object. Whether a missing key is an error is up to the store.
// @Tags objects
// @Param bucket path string true "Bucket name"
// @Param key path string true "Object key"
// @Success 204 "Deleted"
// @Failure 404 {object} server.ErrorResponse "Bucket Not Found"
// @Router /objects/{bucket}/{key} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	key, err := objectKey(c)
	if err != nil {
		return server.SendError(c, err)
	}

	if err := h.service.Delete(c.Context(), bucket, key); err != nil {
		return server.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCopy copies an object inside its bucket.
// @Summary Copy Object
// @Description Copy the object at "from" to "to" inside the bucket, server side.
// @Tags objects
// @Param bucket path string true "Bucket name"
// @Param from query string true "Source key"
// @Param to query string true "Destination key"
// @Success 204 "Copied"
// @Failure 400 {object} server.ErrorResponse "Missing Parameter"
// @Failure 404 {object} server.ErrorResponse "Source Not Found"
// @Router /objects/{bucket}/copy [post]
func (h *Handler) HandleCopy(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		return server.SendError(c, fiber.NewError(fiber.StatusBadRequest, "from and to are required"))
	}

	if err := h.service.Copy(c.Context(), bucket, from, to); err != nil {
		logger.WithRayID(h.service.logger, c).Error("Copy failed",
			zap.String("bucket", bucket),
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err))
		return server.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandlePresign signs a request for an object.
// @Summary Presign Object Request
// @Description Sign a GET, PUT or DELETE for the object, valid for expiry seconds (at most 7 days).
// @Tags objects
// @Produce json
// @Param bucket path string true "Bucket name"
// @Param key path string true "Object key"
// @Param method query string false "get, put or delete" default(get)
// @Param expiry query int false "Validity in seconds" default(3600)
// @Success 200 {object} objectstore.PresignedRequest "Presigned Request"
// @Failure 400 {object} server.ErrorResponse "Invalid Expiry Or Method"
// @Router /presign/{bucket}/{key} [get]
func (h *Handler) HandlePresign(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	key, err := objectKey(c)
	if err != nil {
		return server.SendError(c, err)
	}

	expiry := utils.ToSeconds(c.Query("expiry", DefaultPresignExpiry))
	req, err := h.service.Presign(c.Context(), c.Query("method"), bucket, key, expiry)
	if err != nil {
		return server.SendError(c, err)
	}
	return c.JSON(req)
}
