package service

import (
	"github.com/carebox/diabetes-risk/internal/domain/model"
	"github.com/carebox/diabetes-risk/internal/domain/valueobject"
)

// Advisory texts. Order of emission is fixed by Recommend.
const (
	AdviceConsultProfessional = "Consult a healthcare professional for a diagnostic evaluation."
	AdviceHighRisk            = "High risk detected. Seek medical follow-up promptly."
	AdviceModerateRisk        = "Moderate risk. Schedule a diabetes screening with your doctor."
	AdviceLowRisk             = "Low risk. Keep maintaining a healthy lifestyle with regular check-ups."
	AdviceWeightManagement    = "BMI is in the obese range. Consider a weight management plan."
	AdviceGlycemicControl     = "HbA1c level is elevated. Monitor blood sugar and discuss glycemic control."
	AdviceGlucoseMonitoring   = "Blood glucose is high. Limit sugar intake and monitor glucose regularly."
	AdviceSmokingCessation    = "Smoking increases diabetes risk. Consider a smoking cessation program."
)

// RecommendationEngine derives ordered advisories from a request and its
// classification.
type RecommendationEngine struct {
	thresholds Thresholds
}

// NewRecommendationEngine creates a RecommendationEngine.
func NewRecommendationEngine(thresholds Thresholds) *RecommendationEngine {
	return &RecommendationEngine{thresholds: thresholds}
}

// Recommend returns advisories in a deterministic order: the consult advisory
// for a positive label, then the tier advisory, then one per clinical
// threshold crossed, then lifestyle advisories.
func (e *RecommendationEngine) Recommend(
	req model.PredictionRequest,
	result model.ClassificationResult,
	tier valueobject.RiskTier,
) []string {
	recs := make([]string, 0, 6)

	if result.Label.IsPositive() {
		recs = append(recs, AdviceConsultProfessional)
	}

	switch {
	case tier.Equal(valueobject.RiskTierHigh):
		recs = append(recs, AdviceHighRisk)
	case tier.Equal(valueobject.RiskTierModerate):
		recs = append(recs, AdviceModerateRisk)
	default:
		recs = append(recs, AdviceLowRisk)
	}

	if req.BMI >= e.thresholds.BMI {
		recs = append(recs, AdviceWeightManagement)
	}
	if req.HbA1cLevel >= e.thresholds.HbA1c {
		recs = append(recs, AdviceGlycemicControl)
	}
	if req.BloodGlucoseLevel >= e.thresholds.Glucose {
		recs = append(recs, AdviceGlucoseMonitoring)
	}

	switch req.SmokingHistory {
	case "current", "ever":
		recs = append(recs, AdviceSmokingCessation)
	}

	return recs
}
