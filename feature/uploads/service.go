package uploads

import (
	"context"
	"strings"
	"time"

	"bucketeer/core/objectstore"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service starts presigned multipart uploads and drives them to completion.
type Service struct {
	store    objectstore.Store
	registry *Registry
	logger   *zap.Logger
}

// NewService creates a new uploads service.
func NewService(store objectstore.Store, registry *Registry, logger *zap.Logger) *Service {
	return &Service{store: store, registry: registry, logger: logger}
}

// Start opens a multipart upload and registers it under a new session id.
func (s *Service) Start(ctx context.Context, bucket, key string, opts objectstore.UploadOptions) (*Session, error) {
	upload, err := s.store.UploadObjectPresigned(ctx, strings.Clone(bucket), strings.Clone(key), opts)
	if err != nil {
		return nil, err
	}

	session := &Session{ID: uuid.NewString(), StartedAt: time.Now().UTC(), Upload: upload}
	s.registry.Add(session)

	s.logger.Info("Presigned upload started",
		zap.String("session", session.ID),
		zap.String("bucket", upload.Bucket),
		zap.String("key", upload.Key),
		zap.String("upload_id", upload.UploadID))
	return session, nil
}

// NextPart signs the next part of the session.
func (s *Service) NextPart(ctx context.Context, id string, expiry time.Duration) (*objectstore.PresignedRequest, int32, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, 0, err
	}
	return session.Upload.NextPart(ctx, expiry)
}

// Complete assembles the parts and closes the session.
func (s *Service) Complete(ctx context.Context, id string, parts []objectstore.CompletedPart) error {
	session, err := s.session(id)
	if err != nil {
		return err
	}
	if err := session.Upload.Complete(ctx, parts); err != nil {
		return err
	}

	s.registry.Remove(id)
	s.logger.Info("Presigned upload completed", zap.String("session", id), zap.Int("parts", len(parts)))
	return nil
}

// Abort discards the upload and closes the session.
func (s *Service) Abort(ctx context.Context, id string) error {
	session, err := s.session(id)
	if err != nil {
		return err
	}
	if err := session.Upload.Abort(ctx); err != nil {
		return err
	}

	s.registry.Remove(id)
	s.logger.Info("Presigned upload aborted", zap.String("session", id))
	return nil
}

// List returns the open sessions.
func (s *Service) List() []*Session {
	return s.registry.List()
}

func (s *Service) session(id string) (*Session, error) {
	session, ok := s.registry.Get(id)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "unknown upload session "+id)
	}
	return session, nil
}
