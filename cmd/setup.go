package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"bucketeer/core/config"
	"bucketeer/core/logger"
	"bucketeer/core/objectstore"
	"bucketeer/core/storage"

	"go.uber.org/zap"
)

// configPath is the directory searched for a .env file.
var configPath = "."

// newStore builds the store for a command. Tests replace it.
var newStore = func(ctx context.Context, cfg storage.Config, log *zap.Logger) (objectstore.Store, error) {
	return objectstore.New(ctx, cfg, log)
}

// newLogger builds the command logger. Tests replace it.
var newLogger = logger.New

// env is what every storage command needs.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  objectstore.Store
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := newLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := newStore(ctx, cfg.Storage, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &env{cfg: cfg, logger: logg, store: store}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
