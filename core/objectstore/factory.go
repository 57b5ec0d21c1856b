package objectstore

import (
	"context"
	"fmt"

	"bucketeer/core/storage"

	"go.uber.org/zap"
)

// New builds the Store selected by cfg.Driver.
func New(ctx context.Context, cfg storage.Config, logger *zap.Logger) (Store, error) {
	logger = logger.With(zap.String("driver", cfg.Driver), zap.String("endpoint", cfg.Endpoint))

	switch cfg.Driver {
	case storage.DriverMinio, "":
		client, err := storage.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewMinio(client, cfg, logger), nil
	case storage.DriverS3:
		api, presigner, err := storage.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3(api, presigner, cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
