// Package artifact loads the fitted encoders, scaler and model that drive the
// prediction pipeline, and implements the domain ArtifactStore over them.
package artifact

import (
	"context"
	"errors"
)

// Artifact file names inside a bundle.
const (
	GenderEncoderFile  = "gender_encoder.json"
	SmokingEncoderFile = "smoking_encoder.json"
	ScalerFile         = "scaler.json"
	ModelFile          = "model.json"
	MetadataFile       = "metadata.json"
)

// RequiredFiles must all be present for a bundle to load.
var RequiredFiles = []string{GenderEncoderFile, SmokingEncoderFile, ScalerFile, ModelFile}

// BundleFiles lists every file a bundle may carry.
var BundleFiles = append(append([]string{}, RequiredFiles...), MetadataFile)

// MaxArtifactSize caps a single artifact.
const MaxArtifactSize = 16 << 20

// ErrNotFound is returned by sources when an artifact does not exist.
var ErrNotFound = errors.New("artifact not found")

// Source fetches raw artifact bytes by file name.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
	// String describes the source for logs.
	String() string
}

// Sink stores raw artifact bytes by file name.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
}
