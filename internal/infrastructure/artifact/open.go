package artifact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carebox/diabetes-risk/pkg/postgres"
)

// Source kinds accepted by Open.
const (
	SourceFile     = "file"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

// ReadWriter is a Source that can also store artifacts.
type ReadWriter interface {
	Source
	Sink
}

// SourceConfig selects and configures an artifact source.
type SourceConfig struct {
	Kind string
	Dir  string
	S3   S3Config

	DatabaseURL   string
	Bundle        string
	MaxConns      int32
	RunMigrations bool
	MigrationsDir string
}

// Open builds the configured source. The returned close func releases any
// connection the source holds and is never nil.
func Open(ctx context.Context, cfg SourceConfig, logger *slog.Logger) (ReadWriter, func(), error) {
	noop := func() {}

	switch cfg.Kind {
	case SourceFile:
		return NewFileSource(cfg.Dir), noop, nil

	case SourceS3:
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, noop, err
		}
		return NewS3Source(client, cfg.S3.Bucket, cfg.S3.Prefix), noop, nil

	case SourcePostgres:
		if cfg.RunMigrations {
			if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
				return nil, noop, err
			}
			logger.Info("artifact registry migrations applied", "dir", cfg.MigrationsDir)
		}
		pool, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.DatabaseURL, MaxConns: cfg.MaxConns})
		if err != nil {
			return nil, noop, err
		}
		return NewPostgresSource(pool, cfg.Bundle), pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown artifact source %q", cfg.Kind)
	}
}
