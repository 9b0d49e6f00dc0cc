package valueobject

import "fmt"

// RiskTier is an immutable value object for the qualitative risk bucket.
type RiskTier struct {
	value string
}

var (
	RiskTierLow      = RiskTier{value: "Low"}
	RiskTierModerate = RiskTier{value: "Moderate"}
	RiskTierHigh     = RiskTier{value: "High"}
)

// RiskTierFromString reconstructs a RiskTier from its string representation.
func RiskTierFromString(s string) (RiskTier, error) {
	switch s {
	case "Low":
		return RiskTierLow, nil
	case "Moderate":
		return RiskTierModerate, nil
	case "High":
		return RiskTierHigh, nil
	default:
		return RiskTier{}, fmt.Errorf("invalid risk tier: %s", s)
	}
}

// RiskTierFromProbability buckets the diabetes probability. Each lower bound
// is inclusive: p < moderateFrom is Low, p < highFrom is Moderate, anything
// else is High.
func RiskTierFromProbability(p, moderateFrom, highFrom float64) RiskTier {
	switch {
	case p >= highFrom:
		return RiskTierHigh
	case p >= moderateFrom:
		return RiskTierModerate
	default:
		return RiskTierLow
	}
}

// String returns the string representation.
func (r RiskTier) String() string {
	return r.value
}

// Color is the display colour clients use to render the tier.
func (r RiskTier) Color() string {
	switch r.value {
	case "Low":
		return "green"
	case "Moderate":
		return "orange"
	case "High":
		return "red"
	default:
		return ""
	}
}

// IsZero returns true if the RiskTier has not been set.
func (r RiskTier) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskTier.
func (r RiskTier) Equal(other RiskTier) bool {
	return r.value == other.value
}
