package dto

import (
	"github.com/shopspring/decimal"

	"github.com/carebox/diabetes-risk/internal/domain/model"
	"github.com/carebox/diabetes-risk/internal/domain/service"
)

// NotAvailable marks an unknown score.
const NotAvailable = "N/A"

// FromMetadata maps model metadata to the response DTO.
func FromMetadata(m model.ModelMetadata) ModelInfoResponse {
	resp := ModelInfoResponse{
		ModelName:    m.Name,
		Kind:         m.Kind,
		Version:      m.Version,
		Framework:    m.Framework,
		Accuracy:     scorePercent(m.Accuracy),
		ROCAUC:       scorePercent(m.ROCAUC),
		FeatureNames: append([]string(nil), m.FeatureNames...),
	}
	if !m.TrainedAt.IsZero() {
		t := m.TrainedAt
		resp.TrainedAt = &t
	}
	return resp
}

func scorePercent(score *float64) string {
	if score == nil {
		return NotAvailable
	}
	pct := decimal.NewFromFloat(*score).Mul(decimal.NewFromInt(100)).Round(service.PercentPlaces)
	return service.FormatPercent(pct)
}
