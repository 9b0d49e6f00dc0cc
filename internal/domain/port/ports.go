package port

import (
	"context"
	"time"

	"github.com/carebox/diabetes-risk/internal/domain/model"
	"github.com/carebox/diabetes-risk/pkg/events"
)

// ArtifactStore holds the fitted encoders, scaler and model. Implementations
// are loaded once before serving and are read-only afterwards, so every
// method must be safe for concurrent use.
type ArtifactStore interface {
	// EncodeGender maps a gender label to its fitted integer code. Labels
	// outside the vocabulary return *model.UnknownCategoryError.
	EncodeGender(label string) (int, error)
	// EncodeSmoking maps a smoking history label to its fitted integer code.
	EncodeSmoking(label string) (int, error)
	// Scale applies the fitted scaler to a raw vector in canonical order.
	Scale(raw model.FeatureVector) (model.FeatureVector, error)
	// PredictProba returns the class probabilities (no diabetes, diabetes).
	PredictProba(scaled model.FeatureVector) (p0, p1 float64, err error)
	// Metadata describes the loaded model.
	Metadata() model.ModelMetadata
}

// EventPublisher publishes domain events to the outside world.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// PredictionMetrics records prediction outcomes.
type PredictionMetrics interface {
	RecordPrediction(ctx context.Context, label, tier string, elapsed time.Duration)
	RecordFailure(ctx context.Context, kind string)
}
