package service

import (
	"fmt"
	"math"

	"github.com/carebox/diabetes-risk/internal/domain/model"
	"github.com/carebox/diabetes-risk/internal/domain/port"
)

// FeatureEncoder turns a validated request into the scaled model input.
type FeatureEncoder struct {
	store port.ArtifactStore
}

// NewFeatureEncoder creates a FeatureEncoder backed by store.
func NewFeatureEncoder(store port.ArtifactStore) *FeatureEncoder {
	return &FeatureEncoder{store: store}
}

// Encode validates req, encodes its categorical fields and scales the
// assembled vector. All value checks run before any category lookup.
func (e *FeatureEncoder) Encode(req model.PredictionRequest) (model.FeatureVector, error) {
	if err := req.Validate(); err != nil {
		return model.FeatureVector{}, err
	}

	gender, err := e.store.EncodeGender(req.Gender)
	if err != nil {
		return model.FeatureVector{}, err
	}
	smoking, err := e.store.EncodeSmoking(req.SmokingHistory)
	if err != nil {
		return model.FeatureVector{}, err
	}

	raw := model.FeatureVector{
		float64(gender),
		req.Age,
		float64(req.Hypertension),
		float64(req.HeartDisease),
		float64(smoking),
		req.BMI,
		req.HbA1cLevel,
		req.BloodGlucoseLevel,
	}

	scaled, err := e.store.Scale(raw)
	if err != nil {
		return model.FeatureVector{}, fmt.Errorf("failed to scale features: %w", err)
	}
	for i, v := range scaled {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return model.FeatureVector{}, &model.ModelIntegrityError{
				Reason: fmt.Sprintf("scaled %s is not finite", model.FeatureNames[i]),
			}
		}
	}

	return scaled, nil
}
