package model

import "github.com/carebox/diabetes-risk/internal/domain/valueobject"

// ClassificationResult is the model's verdict for one feature vector.
type ClassificationResult struct {
	Label                 valueobject.PredictionLabel
	ProbabilityNoDiabetes float64
	ProbabilityDiabetes   float64
}
