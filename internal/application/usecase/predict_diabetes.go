package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/carebox/diabetes-risk/internal/application/dto"
	"github.com/carebox/diabetes-risk/internal/domain/model"
	"github.com/carebox/diabetes-risk/internal/domain/port"
	"github.com/carebox/diabetes-risk/internal/domain/service"
)

const tracerName = "github.com/carebox/diabetes-risk/internal/application/usecase"

// Failure kinds reported to metrics.
const (
	FailureValidation      = "validation"
	FailureUnknownCategory = "unknown_category"
	FailureModelIntegrity  = "model_integrity"
	FailureNotLoaded       = "not_loaded"
	FailureInternal        = "internal"
)

// PredictDiabetes is the use case behind every prediction transport.
type PredictDiabetes struct {
	predictor *service.Predictor
	publisher port.EventPublisher
	metrics   port.PredictionMetrics
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewPredictDiabetes creates the use case. A nil predictor means the model is
// not loaded and every call fails with model.ErrModelNotLoaded.
func NewPredictDiabetes(
	predictor *service.Predictor,
	publisher port.EventPublisher,
	metrics port.PredictionMetrics,
	logger *slog.Logger,
) *PredictDiabetes {
	return &PredictDiabetes{
		predictor: predictor,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
	}
}

// Execute validates the request, runs the pipeline and publishes the
// resulting events. Publishing failures are logged and never fail the call.
func (uc *PredictDiabetes) Execute(ctx context.Context, req dto.PredictRequest) (dto.PredictResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "PredictDiabetes.Execute")
	defer span.End()

	start := time.Now()

	resp, err := uc.execute(ctx, req)
	if err != nil {
		kind := FailureKind(err)
		uc.metrics.RecordFailure(ctx, kind)
		span.SetAttributes(attribute.String("prediction.failure", kind))
		span.SetStatus(codes.Error, kind)
		if kind == FailureModelIntegrity || kind == FailureInternal {
			uc.logger.ErrorContext(ctx, "prediction failed", "kind", kind, "error", err)
		}
		return dto.PredictResponse{}, err
	}

	uc.metrics.RecordPrediction(ctx, resp.Prediction, resp.RiskLevel, time.Since(start))
	span.SetAttributes(
		attribute.String("prediction.label", resp.Prediction),
		attribute.String("prediction.risk_level", resp.RiskLevel),
	)
	return resp, nil
}

func (uc *PredictDiabetes) execute(ctx context.Context, req dto.PredictRequest) (dto.PredictResponse, error) {
	if uc.predictor == nil {
		return dto.PredictResponse{}, model.ErrModelNotLoaded
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		return dto.PredictResponse{}, err
	}

	prediction, err := uc.predictor.Predict(domainReq)
	if err != nil {
		return dto.PredictResponse{}, fmt.Errorf("failed to predict: %w", err)
	}

	if evts := prediction.ClearEvents(); len(evts) > 0 && uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.logger.WarnContext(ctx, "failed to publish prediction events",
				"prediction_id", prediction.ID(),
				"error", err,
			)
		}
	}

	return dto.FromPrediction(prediction), nil
}

// FailureKind classifies a prediction error for metrics and transports.
func FailureKind(err error) string {
	var (
		verr *model.ValidationError
		uerr *model.UnknownCategoryError
		ierr *model.ModelIntegrityError
	)
	switch {
	case errors.As(err, &verr):
		return FailureValidation
	case errors.As(err, &uerr):
		return FailureUnknownCategory
	case errors.As(err, &ierr):
		return FailureModelIntegrity
	case errors.Is(err, model.ErrModelNotLoaded):
		return FailureNotLoaded
	default:
		return FailureInternal
	}
}
