package model

import (
	"fmt"
	"math"
)

// Request field names. These are the wire names and the canonical feature
// column order.
const (
	FieldGender            = "gender"
	FieldAge               = "age"
	FieldHypertension      = "hypertension"
	FieldHeartDisease      = "heart_disease"
	FieldSmokingHistory    = "smoking_history"
	FieldBMI               = "bmi"
	FieldHbA1cLevel        = "HbA1c_level"
	FieldBloodGlucoseLevel = "blood_glucose_level"
)

// MaxAge is the inclusive upper bound for age in years.
const MaxAge = 120

// PredictionRequest holds one patient's clinical attributes.
type PredictionRequest struct {
	Gender            string
	Age               float64
	Hypertension      int
	HeartDisease      int
	SmokingHistory    string
	BMI               float64
	HbA1cLevel        float64
	BloodGlucoseLevel float64
}

// Validate checks every field in canonical order and returns the first
// violation as a *ValidationError. Category membership is not checked here;
// that belongs to the fitted encoders.
func (r PredictionRequest) Validate() error {
	if r.Gender == "" {
		return &ValidationError{Field: FieldGender, Reason: "must not be empty"}
	}
	if err := checkPositive(FieldAge, r.Age); err != nil {
		return err
	}
	if r.Age > MaxAge {
		return &ValidationError{Field: FieldAge, Reason: fmt.Sprintf("must be at most %d", MaxAge)}
	}
	if err := checkFlag(FieldHypertension, r.Hypertension); err != nil {
		return err
	}
	if err := checkFlag(FieldHeartDisease, r.HeartDisease); err != nil {
		return err
	}
	if r.SmokingHistory == "" {
		return &ValidationError{Field: FieldSmokingHistory, Reason: "must not be empty"}
	}
	if err := checkPositive(FieldBMI, r.BMI); err != nil {
		return err
	}
	if err := checkPositive(FieldHbA1cLevel, r.HbA1cLevel); err != nil {
		return err
	}
	return checkPositive(FieldBloodGlucoseLevel, r.BloodGlucoseLevel)
}

func checkPositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Reason: "must be a finite number"}
	}
	if v <= 0 {
		return &ValidationError{Field: field, Reason: "must be greater than 0"}
	}
	return nil
}

func checkFlag(field string, v int) error {
	if v != 0 && v != 1 {
		return &ValidationError{Field: field, Reason: "must be 0 or 1"}
	}
	return nil
}
