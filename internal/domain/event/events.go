package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/carebox/diabetes-risk/pkg/events"
)

const aggregateTypePrediction = "Prediction"

// Event types published by the prediction service.
const (
	TypePredictionCompleted = "prediction.completed"
	TypeHighRiskDetected    = "prediction.high_risk.detected"
)

// PredictionCompleted is emitted for every successful prediction.
type PredictionCompleted struct {
	events.BaseEvent
	PredictionValue     int     `json:"prediction_value"`
	ProbabilityDiabetes float64 `json:"probability_diabetes"`
	RiskLevel           string  `json:"risk_level"`
	Recommendations     int     `json:"recommendation_count"`
	ModelName           string  `json:"model_name"`
}

// NewPredictionCompleted builds a PredictionCompleted event.
func NewPredictionCompleted(
	predictionID uuid.UUID,
	predictionValue int,
	probabilityDiabetes float64,
	riskLevel string,
	recommendations int,
	modelName string,
	occurredAt time.Time,
) PredictionCompleted {
	return PredictionCompleted{
		BaseEvent:           events.NewBaseEvent(TypePredictionCompleted, predictionID, aggregateTypePrediction, occurredAt),
		PredictionValue:     predictionValue,
		ProbabilityDiabetes: probabilityDiabetes,
		RiskLevel:           riskLevel,
		Recommendations:     recommendations,
		ModelName:           modelName,
	}
}

// HighRiskDetected is emitted when a prediction lands in the High tier.
type HighRiskDetected struct {
	events.BaseEvent
	ProbabilityDiabetes float64 `json:"probability_diabetes"`
	ModelName           string  `json:"model_name"`
}

// NewHighRiskDetected builds a HighRiskDetected event.
func NewHighRiskDetected(
	predictionID uuid.UUID,
	probabilityDiabetes float64,
	modelName string,
	occurredAt time.Time,
) HighRiskDetected {
	return HighRiskDetected{
		BaseEvent:           events.NewBaseEvent(TypeHighRiskDetected, predictionID, aggregateTypePrediction, occurredAt),
		ProbabilityDiabetes: probabilityDiabetes,
		ModelName:           modelName,
	}
}
