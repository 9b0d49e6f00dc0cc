package service

import (
	"fmt"
	"math"

	"github.com/carebox/diabetes-risk/internal/domain/model"
	"github.com/carebox/diabetes-risk/internal/domain/port"
	"github.com/carebox/diabetes-risk/internal/domain/valueobject"
)

// RiskClassifier invokes the model and interprets its probabilities.
type RiskClassifier struct {
	store      port.ArtifactStore
	thresholds Thresholds
}

// NewRiskClassifier creates a RiskClassifier.
func NewRiskClassifier(store port.ArtifactStore, thresholds Thresholds) *RiskClassifier {
	return &RiskClassifier{store: store, thresholds: thresholds}
}

// Classify scores a scaled vector. The label and tier are both derived from
// probability_diabetes so they can never disagree.
func (c *RiskClassifier) Classify(scaled model.FeatureVector) (model.ClassificationResult, valueobject.RiskTier, error) {
	p0, p1, err := c.store.PredictProba(scaled)
	if err != nil {
		return model.ClassificationResult{}, valueobject.RiskTier{}, fmt.Errorf("failed to invoke model: %w", err)
	}
	if err := CheckProbabilities(p0, p1); err != nil {
		return model.ClassificationResult{}, valueobject.RiskTier{}, err
	}

	result := model.ClassificationResult{
		Label:                 valueobject.LabelFromProbability(p1, c.thresholds.Decision),
		ProbabilityNoDiabetes: p0,
		ProbabilityDiabetes:   p1,
	}
	tier := valueobject.RiskTierFromProbability(p1, c.thresholds.ModerateFrom, c.thresholds.HighFrom)

	return result, tier, nil
}

// CheckProbabilities enforces that both values are finite, lie in [0,1] and
// sum to 1 within ProbabilityTolerance.
func CheckProbabilities(p0, p1 float64) error {
	for _, p := range []float64{p0, p1} {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return &model.ModelIntegrityError{Reason: "probability is not finite"}
		}
		if p < 0 || p > 1 {
			return &model.ModelIntegrityError{Reason: fmt.Sprintf("probability %v outside [0,1]", p)}
		}
	}
	if sum := p0 + p1; math.Abs(sum-1) > ProbabilityTolerance {
		return &model.ModelIntegrityError{Reason: fmt.Sprintf("probabilities sum to %v", sum)}
	}
	return nil
}
