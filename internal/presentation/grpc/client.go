package grpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/carebox/diabetes-risk/internal/domain/valueobject"
)

// Client calls a remote PredictionService.
type Client struct {
	conn   *grpc.ClientConn
	health healthpb.HealthClient
}

// Dial creates a client for addr. Nil creds means plaintext.
func Dial(addr string, creds credentials.TransportCredentials, opts ...grpc.DialOption) (*Client, error) {
	if creds == nil {
		creds = insecure.NewCredentials()
	}
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial prediction service at %s: %w", addr, err)
	}
	return &Client{conn: conn, health: healthpb.NewHealthClient(conn)}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Predict calls PredictionService/Predict. A reply whose label, tier and
// colour disagree is rejected.
func (c *Client) Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error) {
	resp := new(PredictResponse)
	if err := c.conn.Invoke(ctx, MethodPredict, req, resp, CallOption()); err != nil {
		return nil, err
	}
	if err := checkReply(resp); err != nil {
		return nil, fmt.Errorf("malformed predict reply: %w", err)
	}
	return resp, nil
}

func checkReply(resp *PredictResponse) error {
	label, err := valueobject.LabelFromInt(int(resp.PredictionValue))
	if err != nil {
		return err
	}
	if label.String() != resp.Prediction {
		return fmt.Errorf("prediction %q does not match prediction_value %d", resp.Prediction, resp.PredictionValue)
	}
	tier, err := valueobject.RiskTierFromString(resp.RiskLevel)
	if err != nil {
		return err
	}
	if tier.Color() != resp.RiskColor {
		return fmt.Errorf("risk_color %q does not match risk_level %s", resp.RiskColor, tier)
	}
	return nil
}

// GetModelInfo calls PredictionService/GetModelInfo.
func (c *Client) GetModelInfo(ctx context.Context) (*GetModelInfoResponse, error) {
	resp := new(GetModelInfoResponse)
	if err := c.conn.Invoke(ctx, MethodGetModelInfo, &GetModelInfoRequest{}, resp, CallOption()); err != nil {
		return nil, err
	}
	return resp, nil
}

// CheckHealth queries the standard gRPC health service.
func (c *Client) CheckHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	if resp.Status != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("prediction service not serving: %s", resp.Status)
	}
	return nil
}
