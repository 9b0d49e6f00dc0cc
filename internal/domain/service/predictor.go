package service

import (
	"time"

	"github.com/carebox/diabetes-risk/internal/domain/model"
	"github.com/carebox/diabetes-risk/internal/domain/port"
)

// Predictor runs the full pipeline: encode, classify, recommend, assemble.
// It holds no mutable state and is safe for concurrent use.
type Predictor struct {
	store       port.ArtifactStore
	encoder     *FeatureEncoder
	classifier  *RiskClassifier
	recommender *RecommendationEngine
	assembler   *ResponseAssembler
	now         func() time.Time
}

// NewPredictor wires the pipeline stages around store.
func NewPredictor(store port.ArtifactStore, thresholds Thresholds) *Predictor {
	return &Predictor{
		store:       store,
		encoder:     NewFeatureEncoder(store),
		classifier:  NewRiskClassifier(store, thresholds),
		recommender: NewRecommendationEngine(thresholds),
		assembler:   NewResponseAssembler(),
		now:         time.Now,
	}
}

// Predict scores one request. Errors are *model.ValidationError,
// *model.UnknownCategoryError or *model.ModelIntegrityError, possibly
// wrapped.
func (p *Predictor) Predict(req model.PredictionRequest) (*model.Prediction, error) {
	scaled, err := p.encoder.Encode(req)
	if err != nil {
		return nil, err
	}

	result, tier, err := p.classifier.Classify(scaled)
	if err != nil {
		return nil, err
	}

	recs := p.recommender.Recommend(req, result, tier)
	resp := p.assembler.Assemble(result, tier, recs)

	return model.NewPrediction(result, tier, recs, resp, p.store.Metadata().Name, p.now()), nil
}
