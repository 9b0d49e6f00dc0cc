package model

import "time"

// ModelMetadata describes the loaded model. It is static for the life of the
// process.
type ModelMetadata struct {
	Name      string
	Kind      string
	Version   string
	Framework string
	// Accuracy and ROCAUC are nil when the bundle does not report them.
	Accuracy     *float64
	ROCAUC       *float64
	FeatureNames []string
	TrainedAt    time.Time
}

// HasScores reports whether both evaluation scores are known.
func (m ModelMetadata) HasScores() bool {
	return m.Accuracy != nil && m.ROCAUC != nil
}
