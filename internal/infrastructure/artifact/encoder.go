package artifact

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/carebox/diabetes-risk/internal/domain/model"
)

type encoderFile struct {
	Feature string   `json:"feature"`
	Classes []string `json:"classes"`
}

// labelEncoder mirrors a fitted label encoder: a class's index is its code.
type labelEncoder struct {
	feature string
	classes []string
	codes   map[string]int
}

func parseLabelEncoder(data []byte, feature string) (*labelEncoder, error) {
	var f encoderFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode encoder: %w", err)
	}
	if f.Feature != "" && f.Feature != feature {
		return nil, fmt.Errorf("encoder is fitted on %q, want %q", f.Feature, feature)
	}
	if len(f.Classes) == 0 {
		return nil, errors.New("encoder has no classes")
	}

	codes := make(map[string]int, len(f.Classes))
	for i, c := range f.Classes {
		if c == "" {
			return nil, fmt.Errorf("encoder class %d is empty", i)
		}
		if _, dup := codes[c]; dup {
			return nil, fmt.Errorf("encoder class %q is duplicated", c)
		}
		codes[c] = i
	}

	return &labelEncoder{feature: feature, classes: f.Classes, codes: codes}, nil
}

// Encode returns the code for label. Matching is exact.
func (e *labelEncoder) Encode(label string) (int, error) {
	code, ok := e.codes[label]
	if !ok {
		known := make([]string, len(e.classes))
		copy(known, e.classes)
		return 0, &model.UnknownCategoryError{Field: e.feature, Value: label, Known: known}
	}
	return code, nil
}
