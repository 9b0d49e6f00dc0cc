package artifact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carebox/diabetes-risk/internal/domain/model"
	"github.com/carebox/diabetes-risk/internal/domain/port"
	"github.com/carebox/diabetes-risk/internal/domain/service"
)

// warmupVector is a plausible raw request used to exercise the loaded model
// once before serving.
var warmupVector = model.FeatureVector{0, 45, 0, 0, 0, 25, 5.5, 100}

// Store is the loaded, immutable artifact set.
type Store struct {
	gender   *labelEncoder
	smoking  *labelEncoder
	scaler   *standardScaler
	model    classifier
	metadata model.ModelMetadata
	loadedAt time.Time
}

var _ port.ArtifactStore = (*Store)(nil)

// Load fetches and validates every artifact from src, then runs one warm-up
// prediction. Any failure is returned as *model.ArtifactLoadError.
func Load(ctx context.Context, src Source, logger *slog.Logger) (*Store, error) {
	start := time.Now()
	s := &Store{}

	raw := make(map[string][]byte, len(BundleFiles))
	for _, name := range RequiredFiles {
		data, err := src.Fetch(ctx, name)
		if err != nil {
			return nil, &model.ArtifactLoadError{Artifact: name, Err: err}
		}
		raw[name] = data
	}

	var err error
	if s.gender, err = parseLabelEncoder(raw[GenderEncoderFile], model.FieldGender); err != nil {
		return nil, &model.ArtifactLoadError{Artifact: GenderEncoderFile, Err: err}
	}
	if s.smoking, err = parseLabelEncoder(raw[SmokingEncoderFile], model.FieldSmokingHistory); err != nil {
		return nil, &model.ArtifactLoadError{Artifact: SmokingEncoderFile, Err: err}
	}
	if s.scaler, err = parseScaler(raw[ScalerFile]); err != nil {
		return nil, &model.ArtifactLoadError{Artifact: ScalerFile, Err: err}
	}
	if s.model, err = parseClassifier(raw[ModelFile]); err != nil {
		return nil, &model.ArtifactLoadError{Artifact: ModelFile, Err: err}
	}

	metaBytes, err := src.Fetch(ctx, MetadataFile)
	switch {
	case errors.Is(err, ErrNotFound):
		logger.Warn("model metadata missing, scores will be reported as unknown", "source", src.String())
		s.metadata = defaultMetadata(s.model.Kind())
	case err != nil:
		return nil, &model.ArtifactLoadError{Artifact: MetadataFile, Err: err}
	default:
		if s.metadata, err = parseMetadata(metaBytes, s.model.Kind()); err != nil {
			return nil, &model.ArtifactLoadError{Artifact: MetadataFile, Err: err}
		}
	}

	if err := s.warmUp(); err != nil {
		return nil, &model.ArtifactLoadError{Artifact: ModelFile, Err: err}
	}

	s.loadedAt = time.Now().UTC()
	logger.Info("artifacts loaded",
		"source", src.String(),
		"model", s.metadata.Name,
		"kind", s.model.Kind(),
		"version", s.metadata.Version,
		"duration", time.Since(start),
	)
	return s, nil
}

func (s *Store) warmUp() error {
	scaled, err := s.Scale(warmupVector)
	if err != nil {
		return fmt.Errorf("warm-up scale: %w", err)
	}
	p0, p1, err := s.PredictProba(scaled)
	if err != nil {
		return fmt.Errorf("warm-up prediction: %w", err)
	}
	if err := service.CheckProbabilities(p0, p1); err != nil {
		return fmt.Errorf("warm-up prediction: %w", err)
	}
	return nil
}

// EncodeGender implements port.ArtifactStore.
func (s *Store) EncodeGender(label string) (int, error) {
	return s.gender.Encode(label)
}

// EncodeSmoking implements port.ArtifactStore.
func (s *Store) EncodeSmoking(label string) (int, error) {
	return s.smoking.Encode(label)
}

// Scale implements port.ArtifactStore.
func (s *Store) Scale(raw model.FeatureVector) (model.FeatureVector, error) {
	return s.scaler.Transform(raw), nil
}

// PredictProba implements port.ArtifactStore.
func (s *Store) PredictProba(scaled model.FeatureVector) (float64, float64, error) {
	p0, p1 := s.model.PredictProba(scaled.Slice())
	return p0, p1, nil
}

// Metadata implements port.ArtifactStore.
func (s *Store) Metadata() model.ModelMetadata {
	return s.metadata
}

// LoadedAt is when the bundle finished loading.
func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}

// GenderClasses and SmokingClasses expose the fitted vocabularies.
func (s *Store) GenderClasses() []string  { return append([]string(nil), s.gender.classes...) }
func (s *Store) SmokingClasses() []string { return append([]string(nil), s.smoking.classes...) }
