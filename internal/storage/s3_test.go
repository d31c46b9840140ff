package storage

import (
	"context"
	"errors"
	"io"
	"ironai/workout-app/internal/config"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Archive_PutObject(t *testing.T) {
	fake := &fakeS3{}
	archive := newS3Archive(fake, "drafts-bucket")

	err := archive.PutObject(context.Background(), "drafts/a/b.json", "application/json", []byte(`{"nome":"x"}`))
	require.NoError(t, err)

	assert.Equal(t, "drafts-bucket", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "drafts/a/b.json", aws.ToString(fake.input.Key))
	assert.Equal(t, "application/json", aws.ToString(fake.input.ContentType))
	assert.Equal(t, `{"nome":"x"}`, string(fake.body))
}

func TestS3Archive_PutObjectError(t *testing.T) {
	archive := newS3Archive(&fakeS3{err: errors.New("access denied")}, "b")
	assert.Error(t, archive.PutObject(context.Background(), "k", "application/json", nil))
}

func TestNewS3Archive_NoBucket(t *testing.T) {
	archive, err := NewS3Archive(context.Background(), config.S3Config{})
	require.NoError(t, err)
	assert.IsType(t, noopArchive{}, archive)
	assert.NoError(t, archive.PutObject(context.Background(), "k", "application/json", []byte("x")))
}

func TestDraftKey(t *testing.T) {
	owner := primitive.NewObjectID()
	id := uuid.New()
	assert.Equal(t, "drafts/"+owner.Hex()+"/"+id.String()+".json", DraftKey(owner, id))
}
