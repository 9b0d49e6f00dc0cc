package service

import (
	"fmt"
	"math"
)

// Default decision and advisory thresholds. Every boundary is inclusive.
const (
	DefaultDecisionThreshold = 0.5
	DefaultModerateRiskFrom  = 0.30
	DefaultHighRiskFrom      = 0.70

	DefaultBMIAdvisory     = 30.0
	DefaultHbA1cAdvisory   = 6.5
	DefaultGlucoseAdvisory = 126.0

	// ProbabilityTolerance bounds how far p0+p1 may drift from 1.
	ProbabilityTolerance = 1e-6
)

// Thresholds holds the tunable cut points used by classification and
// recommendations.
type Thresholds struct {
	Decision     float64
	ModerateFrom float64
	HighFrom     float64

	BMI     float64
	HbA1c   float64
	Glucose float64
}

// DefaultThresholds returns the standard cut points.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Decision:     DefaultDecisionThreshold,
		ModerateFrom: DefaultModerateRiskFrom,
		HighFrom:     DefaultHighRiskFrom,
		BMI:          DefaultBMIAdvisory,
		HbA1c:        DefaultHbA1cAdvisory,
		Glucose:      DefaultGlucoseAdvisory,
	}
}

// Validate checks that probability cut points lie in (0,1), that tiers are
// ordered and that clinical thresholds are positive.
func (t Thresholds) Validate() error {
	for _, c := range []namedValue{
		{"decision threshold", t.Decision},
		{"moderate risk threshold", t.ModerateFrom},
		{"high risk threshold", t.HighFrom},
	} {
		if math.IsNaN(c.value) || c.value <= 0 || c.value >= 1 {
			return fmt.Errorf("%s must be in (0,1), got %v", c.name, c.value)
		}
	}
	if t.ModerateFrom >= t.HighFrom {
		return fmt.Errorf("moderate risk threshold %v must be below high risk threshold %v", t.ModerateFrom, t.HighFrom)
	}
	for _, c := range []namedValue{
		{"BMI advisory threshold", t.BMI},
		{"HbA1c advisory threshold", t.HbA1c},
		{"glucose advisory threshold", t.Glucose},
	} {
		if math.IsNaN(c.value) || c.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", c.name, c.value)
		}
	}
	return nil
}

type namedValue struct {
	name  string
	value float64
}
