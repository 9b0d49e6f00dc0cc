package artifact

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const featureNamesJSON = `["gender","age","hypertension","heart_disease","smoking_history","bmi","HbA1c_level","blood_glucose_level"]`

func TestParseClassifier_GradientBoosting(t *testing.T) {
	data := []byte(`{
		"kind": "gradient_boosting",
		"feature_names": ` + featureNamesJSON + `,
		"base_score": 0,
		"learning_rate": 0.5,
		"trees": [
			{"nodes": [
				{"feature": 6, "threshold": 0.5, "left": 1, "right": 2},
				{"leaf": true, "value": -2},
				{"leaf": true, "value": 3}
			]},
			{"nodes": [
				{"feature": 7, "threshold": 0, "left": 1, "right": 2},
				{"leaf": true, "value": -1},
				{"leaf": true, "value": 1}
			]}
		]
	}`)

	clf, err := parseClassifier(data)
	require.NoError(t, err)
	assert.Equal(t, KindGradientBoosting, clf.Kind())

	x := make([]float64, 8)
	x[7] = -1
	p0, p1 := clf.PredictProba(x)
	assert.InDelta(t, 1/(1+math.Exp(1.5)), p1, 1e-12)
	assert.InDelta(t, 1, p0+p1, 1e-12)

	x[6], x[7] = 1, 1
	_, p1 = clf.PredictProba(x)
	assert.InDelta(t, 1/(1+math.Exp(-2)), p1, 1e-12)

	// Threshold itself goes right.
	x[6], x[7] = 0.5, 0
	_, p1 = clf.PredictProba(x)
	assert.InDelta(t, 1/(1+math.Exp(-2)), p1, 1e-12)
}

func TestParseClassifier_GradientBoostingRejectsBadTrees(t *testing.T) {
	tests := map[string]string{
		"no trees":           `[]`,
		"empty tree":         `[{"nodes": []}]`,
		"child backwards":    `[{"nodes": [{"feature": 0, "threshold": 1, "left": 0, "right": 1}, {"leaf": true}]}]`,
		"child out of range": `[{"nodes": [{"feature": 0, "threshold": 1, "left": 1, "right": 5}, {"leaf": true}]}]`,
		"bad feature":        `[{"nodes": [{"feature": 8, "threshold": 1, "left": 1, "right": 2}, {"leaf": true}, {"leaf": true}]}]`,
	}

	for name, trees := range tests {
		t.Run(name, func(t *testing.T) {
			data := []byte(`{"kind":"gradient_boosting","feature_names":` + featureNamesJSON + `,"trees":` + trees + `}`)
			_, err := parseClassifier(data)
			assert.Error(t, err)
		})
	}
}

func TestLogisticRegression_ExtremeMargins(t *testing.T) {
	m := &logisticRegression{coef: []float64{1000, 0, 0, 0, 0, 0, 0, 0}}

	p0, p1 := m.PredictProba([]float64{1, 0, 0, 0, 0, 0, 0, 0})
	assert.Equal(t, 1.0, p1)
	assert.Equal(t, 0.0, p0)

	p0, p1 = m.PredictProba([]float64{-1, 0, 0, 0, 0, 0, 0, 0})
	assert.Equal(t, 0.0, p1)
	assert.Equal(t, 1.0, p0)
}

func TestParseClassifier_MissingKind(t *testing.T) {
	_, err := parseClassifier([]byte(`{"feature_names":` + featureNamesJSON + `}`))
	assert.ErrorContains(t, err, "kind")
}
