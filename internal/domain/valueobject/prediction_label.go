package valueobject

import "fmt"

// PredictionLabel is the binary classification outcome.
type PredictionLabel struct {
	value int
	set   bool
}

var (
	LabelNoDiabetes = PredictionLabel{value: 0, set: true}
	LabelDiabetes   = PredictionLabel{value: 1, set: true}
)

// LabelFromInt reconstructs a label from its numeric class.
func LabelFromInt(v int) (PredictionLabel, error) {
	switch v {
	case 0:
		return LabelNoDiabetes, nil
	case 1:
		return LabelDiabetes, nil
	default:
		return PredictionLabel{}, fmt.Errorf("invalid prediction label: %d", v)
	}
}

// LabelFromProbability returns Diabetes when p is at or above threshold.
func LabelFromProbability(p, threshold float64) PredictionLabel {
	if p >= threshold {
		return LabelDiabetes
	}
	return LabelNoDiabetes
}

// Int returns the numeric class, 0 or 1.
func (l PredictionLabel) Int() int {
	return l.value
}

// String returns the display text used in responses.
func (l PredictionLabel) String() string {
	if !l.set {
		return ""
	}
	if l.value == 1 {
		return "Diabetes"
	}
	return "No Diabetes"
}

// IsPositive reports whether the label is the Diabetes class.
func (l PredictionLabel) IsPositive() bool {
	return l.set && l.value == 1
}

// IsZero returns true if the label has not been set.
func (l PredictionLabel) IsZero() bool {
	return !l.set
}

// Equal checks equality with another PredictionLabel.
func (l PredictionLabel) Equal(other PredictionLabel) bool {
	return l == other
}
