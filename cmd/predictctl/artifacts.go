package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/carebox/diabetes-risk/internal/application/dto"
	"github.com/carebox/diabetes-risk/internal/infrastructure/artifact"
	"github.com/carebox/diabetes-risk/internal/infrastructure/config"
	"github.com/carebox/diabetes-risk/pkg/postgres"
)

func artifactsCommand() *cli.Command {
	return &cli.Command{
		Name:  "artifacts",
		Usage: "Inspect and publish model artifact bundles",
		Subcommands: []*cli.Command{
			{
				Name:   "verify",
				Usage:  "Load a bundle, run its self checks and print its metadata",
				Flags:  sourceFlags(),
				Action: runVerify,
			},
			{
				Name:  "publish",
				Usage: "Copy a bundle from a directory into the Postgres registry or an S3 bucket",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "from",
						Usage:    "Directory holding the bundle to publish",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "to",
						Value: config.SourcePostgres,
						Usage: "Destination (postgres, s3)",
					},
					&cli.BoolFlag{
						Name:  "skip-migrations",
						Usage: "Do not apply registry migrations before publishing",
					},
				}, sourceFlags()...),
				Action: runPublish,
			},
		},
	}
}

type verifyReport struct {
	Source         string                `json:"source"`
	Model          dto.ModelInfoResponse `json:"model"`
	GenderClasses  []string              `json:"gender_classes"`
	SmokingClasses []string              `json:"smoking_classes"`
	LoadedAt       time.Time             `json:"loaded_at"`
}

func runVerify(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := cliLogger(c)

	ctx, cancel := contextWithTimeout(c, cfg.Artifacts.LoadTimeout)
	defer cancel()

	source, closeSource, err := artifact.Open(ctx, cfg.ArtifactSource(), logger)
	if err != nil {
		return err
	}
	defer closeSource()

	store, err := artifact.Load(ctx, source, logger)
	if err != nil {
		return err
	}

	return printJSON(c.App.Writer, verifyReport{
		Source:         source.String(),
		Model:          dto.FromMetadata(store.Metadata()),
		GenderClasses:  store.GenderClasses(),
		SmokingClasses: store.SmokingClasses(),
		LoadedAt:       store.LoadedAt(),
	})
}

func runPublish(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := cliLogger(c)

	ctx, cancel := contextWithTimeout(c, cfg.Artifacts.LoadTimeout)
	defer cancel()

	// Never publish a bundle that would not load.
	from := artifact.NewFileSource(c.String("from"))
	if _, err := artifact.Load(ctx, from, logger); err != nil {
		return fmt.Errorf("bundle in %s does not load: %w", c.String("from"), err)
	}

	files := make(map[string][]byte, len(artifact.BundleFiles))
	for _, name := range artifact.BundleFiles {
		data, err := from.Fetch(ctx, name)
		if errors.Is(err, artifact.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		files[name] = data
	}

	switch c.String("to") {
	case config.SourcePostgres:
		if cfg.Database.URL == "" {
			return errors.New("DATABASE_URL is required to publish to postgres")
		}
		if !c.Bool("skip-migrations") {
			if err := postgres.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsDir); err != nil {
				return err
			}
		}
		pool, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.Database.URL, MaxConns: int32(cfg.Database.MaxConns)})
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := artifact.PublishBundle(ctx, pool, cfg.Artifacts.Bundle, files); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "published %d artifacts to postgres bundle %q\n", len(files), cfg.Artifacts.Bundle)

	case config.SourceS3:
		if cfg.Artifacts.S3Bucket == "" {
			return errors.New("--bucket or ARTIFACT_S3_BUCKET is required to publish to s3")
		}
		s3cfg := cfg.ArtifactSource().S3
		client, err := artifact.NewS3Client(ctx, s3cfg)
		if err != nil {
			return err
		}
		dst := artifact.NewS3Source(client, s3cfg.Bucket, s3cfg.Prefix)
		for _, name := range artifact.BundleFiles {
			data, ok := files[name]
			if !ok {
				continue
			}
			if err := dst.Put(ctx, name, data); err != nil {
				return err
			}
		}
		fmt.Fprintf(c.App.Writer, "published %d artifacts to %s\n", len(files), dst)

	default:
		return fmt.Errorf("unknown publish destination %q", c.String("to"))
	}
	return nil
}
