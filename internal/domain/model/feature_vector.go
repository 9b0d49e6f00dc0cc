package model

// FeatureCount is the width of the model input.
const FeatureCount = 8

// FeatureNames is the canonical column order the scaler and model were
// fitted on.
var FeatureNames = [FeatureCount]string{
	FieldGender,
	FieldAge,
	FieldHypertension,
	FieldHeartDisease,
	FieldSmokingHistory,
	FieldBMI,
	FieldHbA1cLevel,
	FieldBloodGlucoseLevel,
}

// FeatureVector is the scaled model input in canonical column order.
type FeatureVector [FeatureCount]float64

// Slice returns a copy of the vector as a slice.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}
