package usecase

import (
	"context"

	"github.com/carebox/diabetes-risk/internal/application/dto"
	"github.com/carebox/diabetes-risk/internal/domain/model"
	"github.com/carebox/diabetes-risk/internal/domain/port"
)

// GetModelInfo reports metadata about the loaded model.
type GetModelInfo struct {
	store port.ArtifactStore
}

// NewGetModelInfo creates the use case. A nil store reports not loaded.
func NewGetModelInfo(store port.ArtifactStore) *GetModelInfo {
	return &GetModelInfo{store: store}
}

// Loaded reports whether the artifacts are available.
func (uc *GetModelInfo) Loaded() bool {
	return uc.store != nil
}

// Execute returns the static model metadata.
func (uc *GetModelInfo) Execute(_ context.Context) (dto.ModelInfoResponse, error) {
	if uc.store == nil {
		return dto.ModelInfoResponse{}, model.ErrModelNotLoaded
	}
	return dto.FromMetadata(uc.store.Metadata()), nil
}
