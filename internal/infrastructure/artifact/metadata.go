package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/carebox/diabetes-risk/internal/domain/model"
)

const defaultFramework = "scikit-learn"

type metadataFile struct {
	ModelName string     `json:"model_name"`
	Version   string     `json:"version"`
	Framework string     `json:"framework"`
	Accuracy  *float64   `json:"accuracy"`
	ROCAUC    *float64   `json:"roc_auc"`
	TrainedAt *time.Time `json:"trained_at"`
}

func parseMetadata(data []byte, kind string) (model.ModelMetadata, error) {
	var f metadataFile
	if err := json.Unmarshal(data, &f); err != nil {
		return model.ModelMetadata{}, fmt.Errorf("decode metadata: %w", err)
	}
	for _, score := range []*float64{f.Accuracy, f.ROCAUC} {
		if score != nil && (*score < 0 || *score > 1) {
			return model.ModelMetadata{}, errors.New("metadata scores must lie in [0,1]")
		}
	}

	meta := defaultMetadata(kind)
	if f.ModelName != "" {
		meta.Name = f.ModelName
	}
	if f.Framework != "" {
		meta.Framework = f.Framework
	}
	meta.Version = f.Version
	meta.Accuracy = f.Accuracy
	meta.ROCAUC = f.ROCAUC
	if f.TrainedAt != nil {
		meta.TrainedAt = f.TrainedAt.UTC()
	}
	return meta, nil
}

// defaultMetadata is used when the bundle ships without metadata. Scores stay
// unknown rather than invented.
func defaultMetadata(kind string) model.ModelMetadata {
	names := model.FeatureNames
	return model.ModelMetadata{
		Name:         kind,
		Kind:         kind,
		Framework:    defaultFramework,
		FeatureNames: names[:],
	}
}
