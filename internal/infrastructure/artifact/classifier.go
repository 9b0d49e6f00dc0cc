package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/carebox/diabetes-risk/internal/domain/model"
)

// Supported model kinds.
const (
	KindLogisticRegression = "logistic_regression"
	KindGradientBoosting   = "gradient_boosting"
)

// classifier is a fitted binary model exposing class probabilities.
type classifier interface {
	PredictProba(x []float64) (p0, p1 float64)
	Kind() string
}

type modelFile struct {
	Kind         string    `json:"kind"`
	FeatureNames []string  `json:"feature_names"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	BaseScore    float64   `json:"base_score"`
	LearningRate *float64  `json:"learning_rate"`
	Trees        []struct {
		Nodes []treeNode `json:"nodes"`
	} `json:"trees"`
}

// treeNode is one node of a regression tree. Samples with
// x[Feature] < Threshold go left.
type treeNode struct {
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value"`
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
}

func parseClassifier(data []byte) (classifier, error) {
	var f modelFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if err := checkFeatureNames(f.FeatureNames); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	switch f.Kind {
	case KindLogisticRegression:
		return newLogisticRegression(f)
	case KindGradientBoosting:
		return newGradientBoosting(f)
	case "":
		return nil, errors.New("model kind is missing")
	default:
		return nil, fmt.Errorf("unsupported model kind %q", f.Kind)
	}
}

type logisticRegression struct {
	coef      []float64
	intercept float64
}

func newLogisticRegression(f modelFile) (*logisticRegression, error) {
	if len(f.Coefficients) != model.FeatureCount {
		return nil, fmt.Errorf("logistic regression expects %d coefficients, got %d", model.FeatureCount, len(f.Coefficients))
	}
	if !allFinite(f.Coefficients) || !allFinite([]float64{f.Intercept}) {
		return nil, errors.New("logistic regression has non-finite parameters")
	}
	return &logisticRegression{coef: f.Coefficients, intercept: f.Intercept}, nil
}

func (m *logisticRegression) Kind() string { return KindLogisticRegression }

func (m *logisticRegression) PredictProba(x []float64) (float64, float64) {
	return fromMargin(floats.Dot(m.coef, x) + m.intercept)
}

type gradientBoosting struct {
	base         float64
	learningRate float64
	trees        [][]treeNode
}

func newGradientBoosting(f modelFile) (*gradientBoosting, error) {
	if len(f.Trees) == 0 {
		return nil, errors.New("gradient boosting model has no trees")
	}
	lr := 1.0
	if f.LearningRate != nil {
		lr = *f.LearningRate
	}
	if !allFinite([]float64{f.BaseScore, lr}) || lr <= 0 {
		return nil, errors.New("gradient boosting has invalid base score or learning rate")
	}

	trees := make([][]treeNode, len(f.Trees))
	for i, t := range f.Trees {
		if err := checkTree(t.Nodes); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		trees[i] = t.Nodes
	}
	return &gradientBoosting{base: f.BaseScore, learningRate: lr, trees: trees}, nil
}

// checkTree requires children to sit after their parent, which rules out
// cycles and guarantees every walk ends on a leaf.
func checkTree(nodes []treeNode) error {
	if len(nodes) == 0 {
		return errors.New("no nodes")
	}
	for i, n := range nodes {
		if n.Leaf {
			if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
				return fmt.Errorf("node %d has non-finite value", i)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= model.FeatureCount {
			return fmt.Errorf("node %d splits on feature %d", i, n.Feature)
		}
		if math.IsNaN(n.Threshold) {
			return fmt.Errorf("node %d has NaN threshold", i)
		}
		for _, child := range []int{n.Left, n.Right} {
			if child <= i || child >= len(nodes) {
				return fmt.Errorf("node %d has child index %d out of range", i, child)
			}
		}
	}
	return nil
}

func (m *gradientBoosting) Kind() string { return KindGradientBoosting }

func (m *gradientBoosting) PredictProba(x []float64) (float64, float64) {
	margin := m.base
	for _, nodes := range m.trees {
		i := 0
		for !nodes[i].Leaf {
			if x[nodes[i].Feature] < nodes[i].Threshold {
				i = nodes[i].Left
			} else {
				i = nodes[i].Right
			}
		}
		margin += m.learningRate * nodes[i].Value
	}
	return fromMargin(margin)
}

// fromMargin converts a log-odds margin to (p0, p1).
func fromMargin(z float64) (float64, float64) {
	p1 := 1 / (1 + math.Exp(-z))
	return 1 - p1, p1
}

func allFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
