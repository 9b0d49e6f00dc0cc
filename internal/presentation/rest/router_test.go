package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebox/diabetes-risk/internal/application/dto"
	"github.com/carebox/diabetes-risk/internal/application/usecase"
	"github.com/carebox/diabetes-risk/internal/domain/service"
	"github.com/carebox/diabetes-risk/internal/infrastructure/artifact"
	"github.com/carebox/diabetes-risk/internal/infrastructure/messaging"
	"github.com/carebox/diabetes-risk/internal/infrastructure/telemetry"
	"github.com/carebox/diabetes-risk/internal/presentation/rest"
	"github.com/carebox/diabetes-risk/pkg/observability"
	"github.com/carebox/diabetes-risk/pkg/testutil"
)

const referenceBundle = "../../../artifacts"

func newRouter(t *testing.T, loaded bool) http.Handler {
	t.Helper()
	logger := observability.NopLogger()

	var (
		predictor *service.Predictor
		info      *usecase.GetModelInfo
	)
	if loaded {
		store, err := artifact.Load(context.Background(), artifact.NewFileSource(referenceBundle), logger)
		require.NoError(t, err)
		predictor = service.NewPredictor(store, service.DefaultThresholds())
		info = usecase.NewGetModelInfo(store)
	} else {
		info = usecase.NewGetModelInfo(nil)
	}

	predict := usecase.NewPredictDiabetes(predictor, messaging.NewLogPublisher(logger), telemetry.NopMetrics{}, logger)

	return rest.NewRouter(rest.RouterConfig{
		Prediction:     rest.NewPredictionHandler(predict, info, logger),
		Health:         rest.NewHealthHandler("prediction-service", info),
		Metrics:        http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("# metrics\n")) }),
		AllowedOrigins: []string{"*"},
		Logger:         logger,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestPredict_LowRisk(t *testing.T) {
	h := newRouter(t, true)

	rec := do(t, h, http.MethodPost, "/predict", testutil.LowRiskRequestJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp dto.PredictResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "No Diabetes", resp.Prediction)
	assert.Equal(t, 0, resp.PredictionValue)
	assert.Equal(t, "0.50%", resp.Probability.Diabetes)
	assert.Equal(t, "99.50%", resp.Probability.NoDiabetes)
	assert.Equal(t, "Low", resp.RiskLevel)
	assert.Equal(t, "green", resp.RiskColor)
	assert.Equal(t, []string{service.AdviceLowRisk}, resp.Recommendations)
}

func TestPredict_HighRisk(t *testing.T) {
	h := newRouter(t, true)

	rec := do(t, h, http.MethodPost, "/predict", testutil.HighRiskRequestJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.PredictResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Diabetes", resp.Prediction)
	assert.Equal(t, 1, resp.PredictionValue)
	assert.Equal(t, "99.96%", resp.Probability.Diabetes)
	assert.Equal(t, "0.04%", resp.Probability.NoDiabetes)
	assert.Equal(t, "High", resp.RiskLevel)
	assert.Equal(t, "red", resp.RiskColor)
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, service.AdviceConsultProfessional, resp.Recommendations[0])
}

func TestPredict_Errors(t *testing.T) {
	h := newRouter(t, true)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
		wantField  string
	}{
		{
			name:       "empty body",
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid JSON",
		},
		{
			name:       "malformed json",
			body:       `{"gender":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid JSON",
		},
		{
			name:       "missing fields",
			body:       `{"gender":"Male","age":50}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing fields",
		},
		{
			name:       "wrong type",
			body:       strings.Replace(testutil.LowRiskRequestJSON, `"age": 45`, `"age": "old"`, 1),
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request",
			wantField:  "age",
		},
		{
			name:       "out of range",
			body:       strings.Replace(testutil.LowRiskRequestJSON, `"bmi": 25.5`, `"bmi": -3`, 1),
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request",
			wantField:  "bmi",
		},
		{
			name:       "bad flag",
			body:       strings.Replace(testutil.LowRiskRequestJSON, `"hypertension": 0`, `"hypertension": 2`, 1),
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request",
			wantField:  "hypertension",
		},
		{
			name:       "unknown category",
			body:       strings.Replace(testutil.LowRiskRequestJSON, `"never"`, `"sometimes"`, 1),
			wantStatus: http.StatusBadRequest,
			wantError:  "Unknown category",
			wantField:  "smoking_history",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/predict", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			body := decodeMap(t, rec)
			assert.Equal(t, tt.wantError, body["error"])
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, body["field"])
			}
		})
	}
}

func TestPredict_MissingFieldsListed(t *testing.T) {
	h := newRouter(t, true)

	rec := do(t, h, http.MethodPost, "/predict", `{"gender":"Male","age":50,"bmi":28}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeMap(t, rec)
	assert.Equal(t, []any{"hypertension", "heart_disease", "smoking_history", "HbA1c_level", "blood_glucose_level"}, body["missing"])
}

func TestPredict_UnknownCategoryEchoesValue(t *testing.T) {
	h := newRouter(t, true)

	rec := do(t, h, http.MethodPost, "/predict", strings.Replace(testutil.LowRiskRequestJSON, `"Female"`, `"female"`, 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeMap(t, rec)
	assert.Equal(t, "gender", body["field"])
	assert.Equal(t, "female", body["value"])
}

func TestPredict_NotLoaded(t *testing.T) {
	h := newRouter(t, false)

	rec := do(t, h, http.MethodPost, "/predict", testutil.LowRiskRequestJSON)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestModelInfo(t *testing.T) {
	h := newRouter(t, true)

	rec := do(t, h, http.MethodGet, "/model-info", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var info dto.ModelInfoResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
	assert.Equal(t, "LogisticRegression", info.ModelName)
	assert.Equal(t, "95.87%", info.Accuracy)
	assert.Equal(t, "96.12%", info.ROCAUC)
	assert.Len(t, info.FeatureNames, 8)

	rec = do(t, newRouter(t, false), http.MethodGet, "/model-info", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Model metadata not available", decodeMap(t, rec)["error"])
}

func TestInfo(t *testing.T) {
	rec := do(t, newRouter(t, true), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeMap(t, rec)
	assert.Equal(t, "active", body["status"])
	assert.Equal(t, "LogisticRegression", body["model"])
	assert.Equal(t, "95.87%", body["accuracy"])
	assert.Contains(t, body, "endpoints")
	assert.Contains(t, body, "usage")

	rec = do(t, newRouter(t, false), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeMap(t, rec)
	assert.Equal(t, "Not Loaded", body["model"])
	assert.Equal(t, "N/A", body["accuracy"])
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		loaded     bool
		path       string
		wantStatus int
	}{
		{name: "health loaded", loaded: true, path: "/health", wantStatus: http.StatusOK},
		{name: "health not loaded", loaded: false, path: "/health", wantStatus: http.StatusServiceUnavailable},
		{name: "healthz not loaded", loaded: false, path: "/healthz", wantStatus: http.StatusOK},
		{name: "readyz loaded", loaded: true, path: "/readyz", wantStatus: http.StatusOK},
		{name: "readyz not loaded", loaded: false, path: "/readyz", wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newRouter(t, tt.loaded), http.MethodGet, tt.path, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	rec := do(t, newRouter(t, true), http.MethodGet, "/health", "")
	body := decodeMap(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["model_loaded"])
}

func TestPing(t *testing.T) {
	rec := do(t, newRouter(t, false), http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestMetricsRoute(t *testing.T) {
	rec := do(t, newRouter(t, false), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# metrics")
}

func TestNotFound(t *testing.T) {
	h := newRouter(t, true)

	for _, path := range []string{"/nope", "/predict/extra"} {
		rec := do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "Endpoint not found", decodeMap(t, rec)["error"])
	}
}

func TestCORS(t *testing.T) {
	h := newRouter(t, true)

	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}
