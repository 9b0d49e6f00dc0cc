package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrModelNotLoaded is returned when a prediction is attempted before the
// artifact store finished loading.
var ErrModelNotLoaded = errors.New("model artifacts not loaded")

// ValidationError reports a request field that is missing, malformed or out
// of range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnknownCategoryError reports a categorical value outside the encoder's
// fitted vocabulary.
type UnknownCategoryError struct {
	Field string
	Value string
	Known []string
}

func (e *UnknownCategoryError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown %s category %q", e.Field, e.Value)
	}
	return fmt.Sprintf("unknown %s category %q (expected one of: %s)", e.Field, e.Value, strings.Join(e.Known, ", "))
}

// ModelIntegrityError reports model output that violates probability
// invariants.
type ModelIntegrityError struct {
	Reason string
}

func (e *ModelIntegrityError) Error() string {
	return "model integrity violation: " + e.Reason
}

// ArtifactLoadError reports an artifact that is missing, corrupt or fails its
// schema checks.
type ArtifactLoadError struct {
	Artifact string
	Err      error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("load artifact %s: %v", e.Artifact, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error {
	return e.Err
}
