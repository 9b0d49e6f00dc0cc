package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/carebox/diabetes-risk/internal/application/dto"
	"github.com/carebox/diabetes-risk/internal/application/usecase"
	"github.com/carebox/diabetes-risk/internal/domain/model"
)

// APIVersion is reported by the info endpoint.
const APIVersion = "1.0"

// PredictionHandler serves the prediction and model endpoints.
type PredictionHandler struct {
	predict   *usecase.PredictDiabetes
	modelInfo *usecase.GetModelInfo
	logger    *slog.Logger
}

// NewPredictionHandler creates a new prediction handler.
func NewPredictionHandler(predict *usecase.PredictDiabetes, modelInfo *usecase.GetModelInfo, logger *slog.Logger) *PredictionHandler {
	return &PredictionHandler{
		predict:   predict,
		modelInfo: modelInfo,
		logger:    logger,
	}
}

// RegisterRoutes registers prediction endpoints on the provided ServeMux.
func (h *PredictionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /predict", h.Predict)
	mux.HandleFunc("GET /model-info", h.ModelInfo)
	mux.HandleFunc("GET /{$}", h.Info)
}

// Predict handles POST /predict.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req dto.PredictRequest
	if err := readJSON(r, &req); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writePredictionError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON", Message: err.Error()})
		return
	}

	resp, err := h.predict.Execute(r.Context(), req)
	if err != nil {
		writePredictionError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ModelInfo handles GET /model-info.
func (h *PredictionHandler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.modelInfo.Execute(r.Context())
	if err != nil {
		writeError(w, http.StatusNotFound, "Model metadata not available")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

type infoResponse struct {
	Service   string            `json:"service"`
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Model     string            `json:"model"`
	Accuracy  string            `json:"accuracy"`
	Endpoints map[string]string `json:"endpoints"`
	Usage     usageExample      `json:"usage"`
}

type usageExample struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
	Body    map[string]any    `json:"body"`
}

// Info handles GET /.
func (h *PredictionHandler) Info(w http.ResponseWriter, r *http.Request) {
	resp := infoResponse{
		Service:  "Diabetes Risk Prediction API",
		Status:   "active",
		Version:  APIVersion,
		Model:    "Not Loaded",
		Accuracy: dto.NotAvailable,
		Endpoints: map[string]string{
			"/":           "API information",
			"/health":     "Health check",
			"/model-info": "Model details",
			"/predict":    "Make prediction (POST)",
		},
		Usage: usageExample{
			Method:  http.MethodPost,
			URL:     "/predict",
			Headers: map[string]string{"Content-Type": "application/json"},
			Body: map[string]any{
				"gender":              "Female, Male or Other",
				"age":                 45,
				"hypertension":        "0 or 1",
				"heart_disease":       "0 or 1",
				"smoking_history":     "never, former, current, not current, ever, or No Info",
				"bmi":                 28.5,
				"HbA1c_level":         6.5,
				"blood_glucose_level": 140,
			},
		},
	}

	if info, err := h.modelInfo.Execute(r.Context()); err == nil {
		resp.Model = info.ModelName
		resp.Accuracy = info.Accuracy
	}
	writeJSON(w, http.StatusOK, resp)
}
