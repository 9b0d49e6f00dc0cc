package artifact

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/carebox/diabetes-risk/internal/domain/model"
)

type scalerFile struct {
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
}

// standardScaler applies (x - mean) / scale column-wise.
type standardScaler struct {
	mean  []float64
	scale []float64
}

func parseScaler(data []byte) (*standardScaler, error) {
	var f scalerFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode scaler: %w", err)
	}
	if err := checkFeatureNames(f.FeatureNames); err != nil {
		return nil, fmt.Errorf("scaler: %w", err)
	}
	if len(f.Mean) != model.FeatureCount || len(f.Scale) != model.FeatureCount {
		return nil, fmt.Errorf("scaler expects %d features, has mean=%d scale=%d",
			model.FeatureCount, len(f.Mean), len(f.Scale))
	}
	if floats.HasNaN(f.Mean) || floats.HasNaN(f.Scale) {
		return nil, fmt.Errorf("scaler contains NaN")
	}
	for i := range f.Scale {
		if math.IsInf(f.Mean[i], 0) || math.IsInf(f.Scale[i], 0) {
			return nil, fmt.Errorf("scaler entry for %s is infinite", model.FeatureNames[i])
		}
		if f.Scale[i] == 0 {
			return nil, fmt.Errorf("scaler scale for %s is zero", model.FeatureNames[i])
		}
	}

	return &standardScaler{mean: f.Mean, scale: f.Scale}, nil
}

func (s *standardScaler) Transform(raw model.FeatureVector) model.FeatureVector {
	out := make([]float64, model.FeatureCount)
	floats.SubTo(out, raw[:], s.mean)
	floats.Div(out, s.scale)

	var v model.FeatureVector
	copy(v[:], out)
	return v
}

func checkFeatureNames(names []string) error {
	if len(names) != model.FeatureCount {
		return fmt.Errorf("expected %d feature names, got %d", model.FeatureCount, len(names))
	}
	for i, want := range model.FeatureNames {
		if names[i] != want {
			return fmt.Errorf("feature %d is %q, want %q", i, names[i], want)
		}
	}
	return nil
}
