package service

import (
	"github.com/shopspring/decimal"

	"github.com/carebox/diabetes-risk/internal/domain/model"
	"github.com/carebox/diabetes-risk/internal/domain/valueobject"
)

// PercentPlaces is the number of decimals in probability percentages.
// Rounding is display only: label and tier come from the unrounded
// probability, so 0.499996 reads "50.00%" next to "No Diabetes" and
// 0.699996 reads "70.00%" next to "Moderate".
const PercentPlaces = 2

// ProbabilityScorePlaces is the rounding applied to probability_score.
const ProbabilityScorePlaces = 4

var hundred = decimal.NewFromInt(100)

// ResponseAssembler formats classification output into the response contract.
type ResponseAssembler struct{}

// NewResponseAssembler creates a ResponseAssembler.
func NewResponseAssembler() *ResponseAssembler {
	return &ResponseAssembler{}
}

// Assemble builds the response. The no-diabetes percentage is derived as the
// complement of the rounded diabetes percentage so the pair always reads as
// exactly 100%.
func (a *ResponseAssembler) Assemble(
	result model.ClassificationResult,
	tier valueobject.RiskTier,
	recommendations []string,
) model.PredictionResponse {
	p1 := decimal.NewFromFloat(result.ProbabilityDiabetes)
	diabetesPct := p1.Mul(hundred).Round(PercentPlaces)
	noDiabetesPct := hundred.Sub(diabetesPct)

	recs := make([]string, len(recommendations))
	copy(recs, recommendations)

	return model.PredictionResponse{
		Prediction: result.Label.String(),
		Probability: model.ProbabilityBreakdown{
			NoDiabetes: FormatPercent(noDiabetesPct),
			Diabetes:   FormatPercent(diabetesPct),
		},
		RiskLevel:        tier.String(),
		Recommendations:  recs,
		PredictionValue:  result.Label.Int(),
		ProbabilityScore: p1.Round(ProbabilityScorePlaces).InexactFloat64(),
		RiskColor:        tier.Color(),
	}
}

// FormatPercent renders d with PercentPlaces decimals and a percent sign.
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(PercentPlaces) + "%"
}
