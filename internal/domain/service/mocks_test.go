package service_test

import (
	"github.com/carebox/diabetes-risk/internal/domain/model"
)

// mockStore is a hand-rolled ArtifactStore. Unset funcs fall back to an
// identity scaler and the fixed vocabularies below.
type mockStore struct {
	encodeGenderFn  func(string) (int, error)
	encodeSmokingFn func(string) (int, error)
	scaleFn         func(model.FeatureVector) (model.FeatureVector, error)
	predictProbaFn  func(model.FeatureVector) (float64, float64, error)
	metadata        model.ModelMetadata

	scaleCalls   int
	predictCalls int
}

var (
	genderCodes  = map[string]int{"Female": 0, "Male": 1, "Other": 2}
	smokingCodes = map[string]int{"No Info": 0, "current": 1, "ever": 2, "former": 3, "never": 4, "not current": 5}
)

func (m *mockStore) EncodeGender(label string) (int, error) {
	if m.encodeGenderFn != nil {
		return m.encodeGenderFn(label)
	}
	return lookup(model.FieldGender, genderCodes, label)
}

func (m *mockStore) EncodeSmoking(label string) (int, error) {
	if m.encodeSmokingFn != nil {
		return m.encodeSmokingFn(label)
	}
	return lookup(model.FieldSmokingHistory, smokingCodes, label)
}

func (m *mockStore) Scale(raw model.FeatureVector) (model.FeatureVector, error) {
	m.scaleCalls++
	if m.scaleFn != nil {
		return m.scaleFn(raw)
	}
	return raw, nil
}

func (m *mockStore) PredictProba(scaled model.FeatureVector) (float64, float64, error) {
	m.predictCalls++
	if m.predictProbaFn != nil {
		return m.predictProbaFn(scaled)
	}
	return 0.9, 0.1, nil
}

func (m *mockStore) Metadata() model.ModelMetadata {
	return m.metadata
}

func lookup(field string, codes map[string]int, label string) (int, error) {
	code, ok := codes[label]
	if !ok {
		return 0, &model.UnknownCategoryError{Field: field, Value: label}
	}
	return code, nil
}

func fixedProba(p1 float64) func(model.FeatureVector) (float64, float64, error) {
	return func(model.FeatureVector) (float64, float64, error) {
		return 1 - p1, p1, nil
	}
}

func sampleRequest() model.PredictionRequest {
	return model.PredictionRequest{
		Gender:            "Female",
		Age:               45,
		Hypertension:      0,
		HeartDisease:      0,
		SmokingHistory:    "never",
		BMI:               25.5,
		HbA1cLevel:        5.7,
		BloodGlucoseLevel: 120,
	}
}
