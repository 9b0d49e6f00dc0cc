package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"google.golang.org/grpc/credentials"

	"github.com/carebox/diabetes-risk/internal/application/dto"
	"github.com/carebox/diabetes-risk/internal/application/usecase"
	"github.com/carebox/diabetes-risk/internal/domain/service"
	"github.com/carebox/diabetes-risk/internal/infrastructure/artifact"
	"github.com/carebox/diabetes-risk/internal/infrastructure/messaging"
	"github.com/carebox/diabetes-risk/internal/infrastructure/telemetry"
	grpcpresentation "github.com/carebox/diabetes-risk/internal/presentation/grpc"
	"github.com/carebox/diabetes-risk/pkg/tlsutil"
)

func predictCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "Request JSON file, or - for stdin",
		},
		&cli.StringFlag{Name: "gender", Usage: "Female, Male or Other"},
		&cli.Float64Flag{Name: "age", Usage: "Age in years"},
		&cli.Float64Flag{Name: "hypertension", Usage: "0 or 1"},
		&cli.Float64Flag{Name: "heart-disease", Usage: "0 or 1"},
		&cli.StringFlag{Name: "smoking-history", Usage: "never, former, current, not current, ever, or No Info"},
		&cli.Float64Flag{Name: "bmi", Usage: "Body mass index"},
		&cli.Float64Flag{Name: "hba1c", Usage: "HbA1c level (%)"},
		&cli.Float64Flag{Name: "glucose", Usage: "Blood glucose level (mg/dL)"},
		&cli.StringFlag{
			Name:    "addr",
			Usage:   "Call a running service over gRPC instead of predicting locally",
			EnvVars: []string{"PREDICTION_ADDR"},
		},
		&cli.StringFlag{
			Name:  "tls-ca",
			Usage: "CA certificate for a TLS gRPC server",
		},
		&cli.StringFlag{
			Name:  "server-name",
			Usage: "Expected server name for TLS verification",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: 10 * time.Second,
			Usage: "Overall timeout",
		},
	}

	return &cli.Command{
		Name:   "predict",
		Usage:  "Score one patient record",
		Flags:  append(flags, sourceFlags()...),
		Action: runPredict,
	}
}

func runPredict(c *cli.Context) error {
	req, err := buildRequest(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	if addr := c.String("addr"); addr != "" {
		return predictRemote(ctx, c, addr, req)
	}
	return predictLocal(ctx, c, req)
}

// buildRequest reads --input, if any, and applies per-field flags on top.
func buildRequest(c *cli.Context) (dto.PredictRequest, error) {
	var req dto.PredictRequest

	if input := c.String("input"); input != "" {
		var r io.Reader = c.App.Reader
		if input != "-" {
			f, err := os.Open(input)
			if err != nil {
				return req, fmt.Errorf("open input: %w", err)
			}
			defer f.Close()
			r = f
		}
		if err := json.NewDecoder(r).Decode(&req); err != nil {
			return req, fmt.Errorf("decode input: %w", err)
		}
	}

	setString := func(name string, dst **string) {
		if c.IsSet(name) {
			v := c.String(name)
			*dst = &v
		}
	}
	setFloat := func(name string, dst **float64) {
		if c.IsSet(name) {
			v := c.Float64(name)
			*dst = &v
		}
	}
	setString("gender", &req.Gender)
	setFloat("age", &req.Age)
	setFloat("hypertension", &req.Hypertension)
	setFloat("heart-disease", &req.HeartDisease)
	setString("smoking-history", &req.SmokingHistory)
	setFloat("bmi", &req.BMI)
	setFloat("hba1c", &req.HbA1cLevel)
	setFloat("glucose", &req.BloodGlucoseLevel)

	return req, nil
}

func predictLocal(ctx context.Context, c *cli.Context, req dto.PredictRequest) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := cliLogger(c)

	source, closeSource, err := artifact.Open(ctx, cfg.ArtifactSource(), logger)
	if err != nil {
		return err
	}
	defer closeSource()

	store, err := artifact.Load(ctx, source, logger)
	if err != nil {
		return err
	}

	uc := usecase.NewPredictDiabetes(
		service.NewPredictor(store, cfg.Thresholds),
		messaging.NewLogPublisher(logger),
		telemetry.NopMetrics{},
		logger,
	)
	resp, err := uc.Execute(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, resp)
}

func predictRemote(ctx context.Context, c *cli.Context, addr string, req dto.PredictRequest) error {
	var creds credentials.TransportCredentials
	if ca := c.String("tls-ca"); ca != "" {
		var err error
		creds, err = tlsutil.ClientTLSConfig(ca, c.String("server-name"))
		if err != nil {
			return err
		}
	}

	client, err := grpcpresentation.Dial(addr, creds)
	if err != nil {
		return err
	}
	defer client.Close()

	resp, err := client.Predict(ctx, &grpcpresentation.PredictRequest{
		Gender:            req.Gender,
		Age:               req.Age,
		Hypertension:      req.Hypertension,
		HeartDisease:      req.HeartDisease,
		SmokingHistory:    req.SmokingHistory,
		BMI:               req.BMI,
		HbA1cLevel:        req.HbA1cLevel,
		BloodGlucoseLevel: req.BloodGlucoseLevel,
	})
	if err != nil {
		return fmt.Errorf("predict via %s: %w", addr, err)
	}
	return printJSON(c.App.Writer, resp)
}
