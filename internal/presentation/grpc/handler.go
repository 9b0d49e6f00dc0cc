package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/carebox/diabetes-risk/internal/application/dto"
	"github.com/carebox/diabetes-risk/internal/application/usecase"
	"github.com/carebox/diabetes-risk/internal/domain/model"
)

// Compile-time assertion that PredictionServiceHandler implements PredictionServiceServer.
var _ PredictionServiceServer = (*PredictionServiceHandler)(nil)

// PredictionServiceHandler implements the gRPC PredictionServiceServer interface.
type PredictionServiceHandler struct {
	UnimplementedPredictionServiceServer
	predict   *usecase.PredictDiabetes
	modelInfo *usecase.GetModelInfo
	logger    *slog.Logger
}

// NewPredictionServiceHandler creates a new gRPC handler.
func NewPredictionServiceHandler(
	predict *usecase.PredictDiabetes,
	modelInfo *usecase.GetModelInfo,
	logger *slog.Logger,
) *PredictionServiceHandler {
	return &PredictionServiceHandler{
		predict:   predict,
		modelInfo: modelInfo,
		logger:    logger,
	}
}

// Predict runs a prediction.
func (h *PredictionServiceHandler) Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.predict.Execute(ctx, dto.PredictRequest{
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
		return nil, h.toStatus(ctx, err)
	}

	return &PredictResponse{
		Prediction:      result.Prediction,
		PredictionValue: int32(result.PredictionValue),
		Probability: &ProbabilityMsg{
			NoDiabetes: result.Probability.NoDiabetes,
			Diabetes:   result.Probability.Diabetes,
		},
		ProbabilityScore: result.ProbabilityScore,
		RiskLevel:        result.RiskLevel,
		RiskColor:        result.RiskColor,
		Recommendations:  result.Recommendations,
	}, nil
}

// GetModelInfo reports metadata for the loaded model.
func (h *PredictionServiceHandler) GetModelInfo(ctx context.Context, _ *GetModelInfoRequest) (*GetModelInfoResponse, error) {
	info, err := h.modelInfo.Execute(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	resp := &GetModelInfoResponse{
		ModelName:    info.ModelName,
		Kind:         info.Kind,
		Version:      info.Version,
		Framework:    info.Framework,
		Accuracy:     info.Accuracy,
		ROCAUC:       info.ROCAUC,
		FeatureNames: info.FeatureNames,
	}
	if info.TrainedAt != nil {
		resp.TrainedAt = info.TrainedAt.Format(time.RFC3339)
	}
	return resp, nil
}

// toStatus maps pipeline errors to gRPC status codes.
func (h *PredictionServiceHandler) toStatus(ctx context.Context, err error) error {
	var (
		verr *model.ValidationError
		uerr *model.UnknownCategoryError
		ierr *model.ModelIntegrityError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &uerr):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &ierr):
		return status.Error(codes.Internal, "prediction failed")
	case errors.Is(err, model.ErrModelNotLoaded):
		return status.Error(codes.Unavailable, "model not loaded")
	default:
		h.logger.ErrorContext(ctx, "unexpected prediction error", slog.String("error", err.Error()))
		return status.Error(codes.Internal, "internal error")
	}
}
