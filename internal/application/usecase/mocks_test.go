package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/carebox/diabetes-risk/internal/domain/model"
	"github.com/carebox/diabetes-risk/pkg/events"
)

type stubStore struct {
	p1       float64
	metadata model.ModelMetadata
}

func (s *stubStore) EncodeGender(label string) (int, error) {
	switch label {
	case "Female":
		return 0, nil
	case "Male":
		return 1, nil
	}
	return 0, &model.UnknownCategoryError{Field: model.FieldGender, Value: label}
}

func (s *stubStore) EncodeSmoking(label string) (int, error) {
	if label == "never" || label == "current" {
		return 4, nil
	}
	return 0, &model.UnknownCategoryError{Field: model.FieldSmokingHistory, Value: label}
}

func (s *stubStore) Scale(raw model.FeatureVector) (model.FeatureVector, error) { return raw, nil }

func (s *stubStore) PredictProba(model.FeatureVector) (float64, float64, error) {
	return 1 - s.p1, s.p1, nil
}

func (s *stubStore) Metadata() model.ModelMetadata { return s.metadata }

type mockPublisher struct {
	mu        sync.Mutex
	published []events.DomainEvent
	publishFn func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishFn != nil {
		return m.publishFn(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

type recordedPrediction struct {
	label, tier string
}

type mockMetrics struct {
	predictions []recordedPrediction
	failures    []string
}

func (m *mockMetrics) RecordPrediction(_ context.Context, label, tier string, _ time.Duration) {
	m.predictions = append(m.predictions, recordedPrediction{label: label, tier: tier})
}

func (m *mockMetrics) RecordFailure(_ context.Context, kind string) {
	m.failures = append(m.failures, kind)
}
