package testutil

import (
	"github.com/google/uuid"
)

// TestPredictionID is a fixed aggregate ID for deterministic tests.
var TestPredictionID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Request bodies shared by transport and integration tests.
const (
	// LowRiskRequestJSON scores well below the moderate tier with the
	// reference artifact bundle.
	LowRiskRequestJSON = `{
		"gender": "Female",
		"age": 45,
		"hypertension": 0,
		"heart_disease": 0,
		"smoking_history": "never",
		"bmi": 25.5,
		"HbA1c_level": 5.7,
		"blood_glucose_level": 120
	}`

	// HighRiskRequestJSON scores in the high tier with the reference bundle.
	HighRiskRequestJSON = `{
		"gender": "Male",
		"age": 68,
		"hypertension": 1,
		"heart_disease": 1,
		"smoking_history": "current",
		"bmi": 34.2,
		"HbA1c_level": 8.1,
		"blood_glucose_level": 240
	}`
)
