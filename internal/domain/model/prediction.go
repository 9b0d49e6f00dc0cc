package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/carebox/diabetes-risk/internal/domain/event"
	"github.com/carebox/diabetes-risk/internal/domain/valueobject"
	"github.com/carebox/diabetes-risk/pkg/events"
)

// Prediction is the aggregate for a single scored request. It lives only for
// the duration of the request and is never persisted.
type Prediction struct {
	events.EventCollector

	id              uuid.UUID
	result          ClassificationResult
	tier            valueobject.RiskTier
	recommendations []string
	response        PredictionResponse
	modelName       string
	predictedAt     time.Time
}

// NewPrediction assembles the aggregate and records its domain events. Event
// payloads carry outcome data only, never the clinical attributes.
func NewPrediction(
	result ClassificationResult,
	tier valueobject.RiskTier,
	recommendations []string,
	response PredictionResponse,
	modelName string,
	predictedAt time.Time,
) *Prediction {
	p := &Prediction{
		id:              uuid.New(),
		result:          result,
		tier:            tier,
		recommendations: recommendations,
		response:        response,
		modelName:       modelName,
		predictedAt:     predictedAt.UTC(),
	}

	p.Record(event.NewPredictionCompleted(
		p.id, result.Label.Int(), result.ProbabilityDiabetes,
		tier.String(), len(recommendations), modelName, p.predictedAt,
	))

	if tier.Equal(valueobject.RiskTierHigh) {
		p.Record(event.NewHighRiskDetected(
			p.id, result.ProbabilityDiabetes, modelName, p.predictedAt,
		))
	}

	return p
}

func (p *Prediction) ID() uuid.UUID                { return p.id }
func (p *Prediction) Result() ClassificationResult { return p.result }
func (p *Prediction) Tier() valueobject.RiskTier   { return p.tier }
func (p *Prediction) ModelName() string            { return p.modelName }
func (p *Prediction) PredictedAt() time.Time       { return p.predictedAt }

// Recommendations returns a copy of the ordered advisories.
func (p *Prediction) Recommendations() []string {
	out := make([]string, len(p.recommendations))
	copy(out, p.recommendations)
	return out
}

// Response returns the assembled client-facing response.
func (p *Prediction) Response() PredictionResponse {
	r := p.response
	r.Recommendations = p.Recommendations()
	return r
}
