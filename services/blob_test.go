package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		check       func(error) bool
	}{
		{"png", "shot.png", "image/png", 10, nil},
		{"uppercase extension", "SHOT.JPG", "image/jpeg", 10, nil},
		{"pdf", "cv.pdf", "application/pdf", DefaultMaxUploadSize, nil},
		{"content type params", "a.webp", "image/webp; charset=binary", 1, nil},
		{"text file", "notes.txt", "text/plain", 1, errs.IsUnsupportedMediaTypeError},
		{"mismatched extension", "evil.exe", "image/png", 1, errs.IsUnsupportedMediaTypeError},
		{"svg", "logo.svg", "image/svg+xml", 1, errs.IsUnsupportedMediaTypeError},
		{"too large", "big.png", "image/png", DefaultMaxUploadSize + 1, errs.IsMaxBodySizeExceededError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.filename, tt.contentType, tt.size, DefaultMaxUploadSize)
			if tt.check == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error %v", err)
		})
	}
}

func TestNewObjectName(t *testing.T) {
	now := time.UnixMilli(1718000000123)
	name := NewObjectName("Photo.PNG", now)
	assert.Regexp(t, regexp.MustCompile(`^1718000000123-[0-9a-f-]{36}\.png$`), name)
	assert.NotEqual(t, name, NewObjectName("Photo.PNG", now))
}

func TestLocalBlobStorePut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalBlobStore(dir, "http://localhost:3000")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "a.png", "image/png", strings.NewReader("data"), 4)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/uploads/a.png", url)

	content, err := os.ReadFile(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	_, err = store.Put(context.Background(), "a.png", "image/png", strings.NewReader("again"), 5)
	assert.True(t, errs.IsBlobUploadError(err))

	_, err = store.Put(context.Background(), "../escape.png", "image/png", strings.NewReader("x"), 1)
	assert.True(t, errs.IsBlobUploadError(err))
}

type fakeS3 struct {
	objects     map[string][]byte
	putInput    *s3.PutObjectInput
	bucketFound bool
	created     *s3.CreateBucketInput
	putErr      error
	headErr     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[aws.ToString(in.Key)] = body
	f.putInput = in
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	if !f.bucketFound {
		return nil, &types.NotFound{}
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(_ context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.created = in
	f.bucketFound = true
	return &s3.CreateBucketOutput{}, nil
}

func TestS3BlobStorePut(t *testing.T) {
	client := &fakeS3{}
	store := NewS3BlobStore(client, "portfolio", "eu-central-1", "")

	url, err := store.Put(context.Background(), "x.pdf", "application/pdf", bytes.NewReader([]byte("pdf")), 3)
	require.NoError(t, err)
	assert.Equal(t, "https://portfolio.s3.eu-central-1.amazonaws.com/x.pdf", url)
	assert.Equal(t, []byte("pdf"), client.objects["x.pdf"])
	assert.Equal(t, "max-age=3600", aws.ToString(client.putInput.CacheControl))
	assert.Equal(t, "application/pdf", aws.ToString(client.putInput.ContentType))
}

func TestS3BlobStorePublicURL(t *testing.T) {
	store := NewS3BlobStore(&fakeS3{}, "portfolio", "us-east-1", "https://cdn.example.com/")

	url, err := store.Put(context.Background(), "x.png", "image/png", strings.NewReader("p"), 1)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/x.png", url)
}

func TestS3BlobStorePutFailure(t *testing.T) {
	store := NewS3BlobStore(&fakeS3{putErr: errors.New("boom")}, "portfolio", "us-east-1", "")

	_, err := store.Put(context.Background(), "x.png", "image/png", strings.NewReader("p"), 1)
	assert.True(t, errs.IsBlobUploadError(err))
}

func TestS3EnsureBucket(t *testing.T) {
	client := &fakeS3{}
	store := NewS3BlobStore(client, "portfolio", "eu-central-1", "")

	require.NoError(t, store.EnsureBucket(context.Background()))
	require.NotNil(t, client.created)
	assert.Equal(t, types.BucketLocationConstraint("eu-central-1"), client.created.CreateBucketConfiguration.LocationConstraint)

	client.created = nil
	require.NoError(t, store.EnsureBucket(context.Background()))
	assert.Nil(t, client.created)

	failing := NewS3BlobStore(&fakeS3{headErr: errors.New("forbidden")}, "portfolio", "us-east-1", "")
	assert.True(t, errs.IsBlobUploadError(failing.EnsureBucket(context.Background())))
}

func TestNewBlobStore(t *testing.T) {
	store, err := NewBlobStore(context.Background(), config.Upload{
		Driver:     config.UploadLocal,
		Dir:        t.TempDir(),
		BackendURL: "http://api.example.com",
	})
	require.NoError(t, err)
	assert.IsType(t, &LocalBlobStore{}, store)

	_, err = NewBlobStore(context.Background(), config.Upload{Driver: "ftp"})
	assert.True(t, errs.IsConfigError(err))
}
