//go:build integration

package artifact_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebox/diabetes-risk/internal/infrastructure/artifact"
	"github.com/carebox/diabetes-risk/pkg/observability"
	"github.com/carebox/diabetes-risk/pkg/postgres"
	"github.com/carebox/diabetes-risk/pkg/testutil"
)

func TestPostgresSource_PublishAndLoad(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t)
	pg.Migrate(t, "../../../migrations")

	files := map[string][]byte(referenceFiles(t))
	require.NoError(t, artifact.PublishBundle(ctx, pg.Pool, "diabetes-v1", files))

	src := artifact.NewPostgresSource(pg.Pool, "diabetes-v1")
	store, err := artifact.Load(ctx, src, observability.NopLogger())
	require.NoError(t, err)
	assert.Equal(t, "LogisticRegression", store.Metadata().Name)

	// Republishing without metadata drops it from the bundle.
	delete(files, artifact.MetadataFile)
	require.NoError(t, artifact.PublishBundle(ctx, pg.Pool, "diabetes-v1", files))

	_, err = src.Fetch(ctx, artifact.MetadataFile)
	assert.ErrorIs(t, err, artifact.ErrNotFound)
}

func TestPostgresSource_ChecksumMismatch(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t)
	pg.Migrate(t, "../../../migrations")

	src := artifact.NewPostgresSource(pg.Pool, "tampered")
	require.NoError(t, src.Put(ctx, artifact.ModelFile, []byte(`{"kind":"logistic_regression"}`)))

	_, err := pg.Pool.Exec(ctx, `UPDATE model_artifacts SET payload = $1 WHERE bundle = 'tampered'`, []byte(`{}`))
	require.NoError(t, err)

	_, err = src.Fetch(ctx, artifact.ModelFile)
	testutil.AssertErrorContains(t, err, "checksum mismatch")
}

func TestPostgresSource_UnknownBundle(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t)
	pg.Migrate(t, "../../../migrations")

	_, err := artifact.Load(ctx, artifact.NewPostgresSource(pg.Pool, "absent"), observability.NopLogger())
	assert.ErrorIs(t, err, artifact.ErrNotFound)
}

func TestRegistryMigrations_DownAndUp(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t)
	pg.Migrate(t, "../../../migrations")

	require.NoError(t, postgres.RunMigrationsDown(pg.DSN, "../../../migrations"))

	var exists bool
	require.NoError(t, pg.Pool.QueryRow(ctx, `SELECT to_regclass('model_artifacts') IS NOT NULL`).Scan(&exists))
	assert.False(t, exists)

	pg.Migrate(t, "../../../migrations")
	require.NoError(t, pg.Pool.QueryRow(ctx, `SELECT to_regclass('model_artifacts') IS NOT NULL`).Scan(&exists))
	assert.True(t, exists)
}
