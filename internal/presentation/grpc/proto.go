package grpc

// proto.go defines the gRPC server interface for
// diabetes.prediction.v1.PredictionService. Messages travel as JSON through
// the codec in codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "diabetes.prediction.v1.PredictionService"

// Full method names.
const (
	MethodPredict      = "/" + ServiceName + "/Predict"
	MethodGetModelInfo = "/" + ServiceName + "/GetModelInfo"
)

// PredictionServiceServer is the server API for PredictionService.
type PredictionServiceServer interface {
	Predict(context.Context, *PredictRequest) (*PredictResponse, error)
	GetModelInfo(context.Context, *GetModelInfoRequest) (*GetModelInfoResponse, error)
	mustEmbedUnimplementedPredictionServiceServer()
}

// UnimplementedPredictionServiceServer provides forward-compatible default implementations.
type UnimplementedPredictionServiceServer struct{}

func (UnimplementedPredictionServiceServer) Predict(context.Context, *PredictRequest) (*PredictResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Predict not implemented")
}
func (UnimplementedPredictionServiceServer) GetModelInfo(context.Context, *GetModelInfoRequest) (*GetModelInfoResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetModelInfo not implemented")
}
func (UnimplementedPredictionServiceServer) mustEmbedUnimplementedPredictionServiceServer() {}

// RegisterPredictionServiceServer registers the PredictionServiceServer with the gRPC server.
func RegisterPredictionServiceServer(s grpclib.ServiceRegistrar, srv PredictionServiceServer) {
	s.RegisterService(&_PredictionService_serviceDesc, srv)
}

var _PredictionService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PredictionServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Predict", Handler: _PredictionService_Predict_Handler},
		{MethodName: "GetModelInfo", Handler: _PredictionService_GetModelInfo_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _PredictionService_Predict_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(PredictRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PredictionServiceServer).Predict(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodPredict}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PredictionServiceServer).Predict(ctx, req.(*PredictRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _PredictionService_GetModelInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetModelInfoRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PredictionServiceServer).GetModelInfo(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodGetModelInfo}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PredictionServiceServer).GetModelInfo(ctx, req.(*GetModelInfoRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// Proto-aligned request/response message types.

// PredictRequest represents the proto PredictRequest message. Numeric fields
// are optional so an absent field can be reported.
type PredictRequest struct {
	Gender            *string  `json:"gender"`
	Age               *float64 `json:"age"`
	Hypertension      *float64 `json:"hypertension"`
	HeartDisease      *float64 `json:"heart_disease"`
	SmokingHistory    *string  `json:"smoking_history"`
	BMI               *float64 `json:"bmi"`
	HbA1cLevel        *float64 `json:"HbA1c_level"`
	BloodGlucoseLevel *float64 `json:"blood_glucose_level"`
}

// ProbabilityMsg represents the proto Probability message.
type ProbabilityMsg struct {
	NoDiabetes string `json:"no_diabetes"`
	Diabetes   string `json:"diabetes"`
}

// PredictResponse represents the proto PredictResponse message.
type PredictResponse struct {
	Prediction       string          `json:"prediction"`
	PredictionValue  int32           `json:"prediction_value"`
	Probability      *ProbabilityMsg `json:"probability"`
	ProbabilityScore float64         `json:"probability_score"`
	RiskLevel        string          `json:"risk_level"`
	RiskColor        string          `json:"risk_color"`
	Recommendations  []string        `json:"recommendations"`
}

// GetModelInfoRequest represents the proto GetModelInfoRequest message.
type GetModelInfoRequest struct{}

// GetModelInfoResponse represents the proto GetModelInfoResponse message.
type GetModelInfoResponse struct {
	ModelName    string   `json:"model_name"`
	Kind         string   `json:"kind"`
	Version      string   `json:"version"`
	Framework    string   `json:"framework"`
	Accuracy     string   `json:"accuracy"`
	ROCAUC       string   `json:"roc_auc"`
	FeatureNames []string `json:"feature_names"`
	TrainedAt    string   `json:"trained_at,omitempty"`
}
