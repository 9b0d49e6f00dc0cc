package model

// ProbabilityBreakdown holds the two class probabilities as percentage text.
type ProbabilityBreakdown struct {
	NoDiabetes string
	Diabetes   string
}

// PredictionResponse is the client-facing result of one prediction.
type PredictionResponse struct {
	Prediction      string
	Probability     ProbabilityBreakdown
	RiskLevel       string
	Recommendations []string

	PredictionValue  int
	ProbabilityScore float64
	RiskColor        string
}
