package grpc_test

import (
	"context"
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/carebox/diabetes-risk/internal/application/usecase"
	"github.com/carebox/diabetes-risk/internal/domain/service"
	"github.com/carebox/diabetes-risk/internal/infrastructure/artifact"
	"github.com/carebox/diabetes-risk/internal/infrastructure/messaging"
	"github.com/carebox/diabetes-risk/internal/infrastructure/telemetry"
	predictiongrpc "github.com/carebox/diabetes-risk/internal/presentation/grpc"
	"github.com/carebox/diabetes-risk/pkg/observability"
	"github.com/carebox/diabetes-risk/pkg/testutil"
)

const referenceBundle = "../../../artifacts"

// startServer serves the prediction service over an in-memory listener and
// returns a connected client.
func startServer(t *testing.T, loaded bool) *predictiongrpc.Client {
	t.Helper()
	logger := observability.NopLogger()

	var (
		predictor *service.Predictor
		info      = usecase.NewGetModelInfo(nil)
	)
	if loaded {
		store, err := artifact.Load(context.Background(), artifact.NewFileSource(referenceBundle), logger)
		require.NoError(t, err)
		predictor = service.NewPredictor(store, service.DefaultThresholds())
		info = usecase.NewGetModelInfo(store)
	}

	handler := predictiongrpc.NewPredictionServiceHandler(
		usecase.NewPredictDiabetes(predictor, messaging.NewLogPublisher(logger), telemetry.NopMetrics{}, logger),
		info,
		logger,
	)
	srv, err := predictiongrpc.NewServer(handler, predictiongrpc.ServerConfig{HealthName: "prediction-service"}, logger)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	client, err := predictiongrpc.Dial("passthrough:///bufnet", nil,
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func requestFrom(t *testing.T, body string) *predictiongrpc.PredictRequest {
	t.Helper()
	var req predictiongrpc.PredictRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestPredict(t *testing.T) {
	client := startServer(t, true)

	resp, err := client.Predict(context.Background(), requestFrom(t, testutil.HighRiskRequestJSON))
	require.NoError(t, err)
	assert.Equal(t, "Diabetes", resp.Prediction)
	assert.Equal(t, int32(1), resp.PredictionValue)
	require.NotNil(t, resp.Probability)
	assert.Equal(t, "99.96%", resp.Probability.Diabetes)
	assert.Equal(t, "High", resp.RiskLevel)
	assert.NotEmpty(t, resp.Recommendations)

	resp, err = client.Predict(context.Background(), requestFrom(t, testutil.LowRiskRequestJSON))
	require.NoError(t, err)
	assert.Equal(t, "No Diabetes", resp.Prediction)
	assert.Equal(t, "Low", resp.RiskLevel)
}

func TestPredict_ErrorCodes(t *testing.T) {
	client := startServer(t, true)

	tests := []struct {
		name     string
		req      func() *predictiongrpc.PredictRequest
		wantCode codes.Code
	}{
		{
			name:     "missing fields",
			req:      func() *predictiongrpc.PredictRequest { return &predictiongrpc.PredictRequest{} },
			wantCode: codes.InvalidArgument,
		},
		{
			name: "out of range age",
			req: func() *predictiongrpc.PredictRequest {
				r := requestFrom(t, testutil.LowRiskRequestJSON)
				age := 130.0
				r.Age = &age
				return r
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "unknown category",
			req: func() *predictiongrpc.PredictRequest {
				r := requestFrom(t, testutil.LowRiskRequestJSON)
				gender := "unknown"
				r.Gender = &gender
				return r
			},
			wantCode: codes.InvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Predict(context.Background(), tt.req())
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, status.Code(err))
		})
	}
}

func TestPredict_NotLoaded(t *testing.T) {
	client := startServer(t, false)

	_, err := client.Predict(context.Background(), requestFrom(t, testutil.LowRiskRequestJSON))
	assert.Equal(t, codes.Unavailable, status.Code(err))

	_, err = client.GetModelInfo(context.Background())
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestGetModelInfo(t *testing.T) {
	client := startServer(t, true)

	info, err := client.GetModelInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "LogisticRegression", info.ModelName)
	assert.Equal(t, "95.87%", info.Accuracy)
	assert.Equal(t, "2024-11-18T09:30:00Z", info.TrainedAt)
	assert.Len(t, info.FeatureNames, 8)
}

func TestCheckHealth(t *testing.T) {
	client := startServer(t, true)
	assert.NoError(t, client.CheckHealth(context.Background()))
}

type cannedServer struct {
	predictiongrpc.UnimplementedPredictionServiceServer
	reply *predictiongrpc.PredictResponse
}

func (s *cannedServer) Predict(context.Context, *predictiongrpc.PredictRequest) (*predictiongrpc.PredictResponse, error) {
	return s.reply, nil
}

func dialCanned(t *testing.T, reply *predictiongrpc.PredictResponse) *predictiongrpc.Client {
	t.Helper()
	srv := grpclib.NewServer()
	predictiongrpc.RegisterPredictionServiceServer(srv, &cannedServer{reply: reply})

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	client, err := predictiongrpc.Dial("passthrough:///bufnet", nil,
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClientPredict_RejectsInconsistentReply(t *testing.T) {
	valid := predictiongrpc.PredictResponse{
		Prediction:      "Diabetes",
		PredictionValue: 1,
		RiskLevel:       "High",
		RiskColor:       "red",
	}

	tests := []struct {
		name    string
		mutate  func(*predictiongrpc.PredictResponse)
		wantErr string
	}{
		{name: "consistent", mutate: func(*predictiongrpc.PredictResponse) {}},
		{name: "unknown class", mutate: func(r *predictiongrpc.PredictResponse) { r.PredictionValue = 2 }, wantErr: "invalid prediction label"},
		{name: "label mismatch", mutate: func(r *predictiongrpc.PredictResponse) { r.Prediction = "No Diabetes" }, wantErr: "does not match prediction_value"},
		{name: "unknown tier", mutate: func(r *predictiongrpc.PredictResponse) { r.RiskLevel = "Severe" }, wantErr: "invalid risk tier"},
		{name: "colour mismatch", mutate: func(r *predictiongrpc.PredictResponse) { r.RiskColor = "green" }, wantErr: "risk_color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := valid
			tt.mutate(&reply)
			client := dialCanned(t, &reply)

			resp, err := client.Predict(context.Background(), requestFrom(t, testutil.HighRiskRequestJSON))
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "High", resp.RiskLevel)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
