package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/carebox/diabetes-risk/pkg/postgres"
)

// PostgresSource reads artifacts from the model_artifacts registry table.
type PostgresSource struct {
	db     postgres.Querier
	bundle string
}

// NewPostgresSource creates a PostgresSource for one named bundle.
func NewPostgresSource(db postgres.Querier, bundle string) *PostgresSource {
	return &PostgresSource{db: db, bundle: bundle}
}

func (s *PostgresSource) String() string {
	return "postgres://model_artifacts/" + s.bundle
}

// Fetch returns the payload for name, verifying its stored checksum.
func (s *PostgresSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	const q = `SELECT payload, checksum FROM model_artifacts WHERE bundle = $1 AND name = $2`

	var (
		payload  []byte
		checksum string
	)
	err := s.db.QueryRow(ctx, q, s.bundle, name).Scan(&payload, &checksum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s/%s: %w", s.bundle, name, ErrNotFound)
		}
		return nil, fmt.Errorf("query artifact %s/%s: %w", s.bundle, name, err)
	}
	if got := digest(payload); got != checksum {
		return nil, fmt.Errorf("artifact %s/%s checksum mismatch: stored %s, computed %s", s.bundle, name, checksum, got)
	}
	return payload, nil
}

// Put upserts one artifact.
func (s *PostgresSource) Put(ctx context.Context, name string, data []byte) error {
	return putArtifact(ctx, s.db, s.bundle, name, data)
}

// PublishBundle replaces every artifact of bundle in a single transaction so
// readers never observe a half-written bundle.
func PublishBundle(ctx context.Context, db postgres.TxBeginner, bundle string, files map[string][]byte) error {
	if len(files) == 0 {
		return errors.New("publish: no artifacts given")
	}
	return postgres.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM model_artifacts WHERE bundle = $1`, bundle); err != nil {
			return fmt.Errorf("clear bundle %s: %w", bundle, err)
		}
		for name, data := range files {
			if err := putArtifact(ctx, tx, bundle, name, data); err != nil {
				return err
			}
		}
		return nil
	})
}

func putArtifact(ctx context.Context, db postgres.Querier, bundle, name string, data []byte) error {
	const q = `
		INSERT INTO model_artifacts (bundle, name, payload, checksum, size_bytes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (bundle, name) DO UPDATE SET
			payload = EXCLUDED.payload,
			checksum = EXCLUDED.checksum,
			size_bytes = EXCLUDED.size_bytes,
			updated_at = NOW()`

	if len(data) > MaxArtifactSize {
		return fmt.Errorf("artifact %s is %d bytes, limit is %d", name, len(data), MaxArtifactSize)
	}
	if _, err := db.Exec(ctx, q, bundle, name, data, digest(data), len(data)); err != nil {
		return fmt.Errorf("store artifact %s/%s: %w", bundle, name, err)
	}
	return nil
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
