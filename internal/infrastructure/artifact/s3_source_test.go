package artifact_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebox/diabetes-risk/internal/infrastructure/artifact"
	"github.com/carebox/diabetes-risk/pkg/observability"
)

// mockS3 is an in-memory S3API keyed by bucket/key.
type mockS3 struct {
	objects map[string][]byte
	getErr  error
}

func newMockS3() *mockS3 {
	return &mockS3{objects: map[string][]byte{}}
}

func (m *mockS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func (m *mockS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3Source_LoadBundle(t *testing.T) {
	client := newMockS3()
	src := artifact.NewS3Source(client, "models", "diabetes/v3")

	for name, data := range referenceFiles(t) {
		require.NoError(t, src.Put(context.Background(), name, data))
	}
	assert.Contains(t, client.objects, "models/diabetes/v3/model.json")

	store, err := artifact.Load(context.Background(), src, observability.NopLogger())
	require.NoError(t, err)
	assert.Equal(t, "LogisticRegression", store.Metadata().Name)
	assert.Equal(t, "s3://models/diabetes/v3", src.String())
}

func TestS3Source_NotFound(t *testing.T) {
	src := artifact.NewS3Source(newMockS3(), "models", "")

	_, err := src.Fetch(context.Background(), artifact.MetadataFile)
	assert.ErrorIs(t, err, artifact.ErrNotFound)
}

func TestS3Source_OtherErrors(t *testing.T) {
	client := newMockS3()
	client.getErr = errors.New("access denied")
	src := artifact.NewS3Source(client, "models", "")

	_, err := src.Fetch(context.Background(), artifact.ModelFile)
	require.Error(t, err)
	assert.NotErrorIs(t, err, artifact.ErrNotFound)
}

func TestS3Source_RejectsOversizedObject(t *testing.T) {
	client := newMockS3()
	client.objects["models/model.json"] = make([]byte, artifact.MaxArtifactSize+1)

	_, err := artifact.NewS3Source(client, "models", "").Fetch(context.Background(), artifact.ModelFile)
	assert.ErrorContains(t, err, "limit")
}

func TestNewS3Client_WithEndpoint(t *testing.T) {
	client, err := artifact.NewS3Client(context.Background(), artifact.S3Config{
		Region:    "us-east-1",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)

	opts := client.Options()
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, "us-east-1", opts.Region)
}
