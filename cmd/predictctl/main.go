// predictctl is the command line client for the diabetes risk prediction
// service.
//
// Usage:
//
//	predictctl predict --input request.json [--addr localhost:9090]
//	predictctl artifacts verify --source file --dir ./artifacts
//	predictctl artifacts publish --from ./artifacts --bundle 2024-11
//	predictctl events tail --brokers localhost:9092
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/carebox/diabetes-risk/internal/infrastructure/config"
	"github.com/carebox/diabetes-risk/pkg/observability"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "predictctl",
		Usage:   "Diabetes risk prediction client and artifact tooling",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},

		Commands: []*cli.Command{
			predictCommand(),
			artifactsCommand(),
			eventsCommand(),
		},
	}
}

// sourceFlags select the artifact source. Unset flags fall back to the
// service's environment configuration.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "source",
			Usage: "Artifact source (file, s3, postgres)",
		},
		&cli.StringFlag{
			Name:  "dir",
			Usage: "Artifact directory for the file source",
		},
		&cli.StringFlag{
			Name:  "bundle",
			Usage: "Bundle name for the postgres source",
		},
		&cli.StringFlag{
			Name:  "bucket",
			Usage: "Bucket for the s3 source",
		},
		&cli.StringFlag{
			Name:  "prefix",
			Usage: "Key prefix for the s3 source",
		},
	}
}

// loadConfig reads the environment configuration and applies any source
// flags given on the command line.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if c.IsSet("dir") && !c.IsSet("source") {
		cfg.Artifacts.Source = config.SourceFile
	}
	if v := c.String("source"); v != "" {
		cfg.Artifacts.Source = v
	}
	if v := c.String("dir"); v != "" {
		cfg.Artifacts.Dir = v
	}
	if v := c.String("bundle"); v != "" {
		cfg.Artifacts.Bundle = v
	}
	if v := c.String("bucket"); v != "" {
		cfg.Artifacts.S3Bucket = v
	}
	if v := c.String("prefix"); v != "" {
		cfg.Artifacts.S3Prefix = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func cliLogger(c *cli.Context) *slog.Logger {
	return observability.InitLogger(observability.LogConfig{
		Level:  c.String("log-level"),
		Format: "text",
		Output: c.App.ErrWriter,
	})
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func contextWithTimeout(c *cli.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context, d)
}
