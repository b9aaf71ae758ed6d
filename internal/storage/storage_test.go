package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	"course-platform/internal/config"
)

type fakeS3 struct {
	put     *s3.PutObjectInput
	body    string
	deleted []string
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage_UploadReturnsAWSURL(t *testing.T) {
	client := &fakeS3{}
	s := newS3Storage(client, &config.StorageConfig{Bucket: "images", Region: "eu-central-1"})

	url, err := s.Upload(context.Background(), "courses/abc", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)
	require.Equal(t, "https://images.s3.eu-central-1.amazonaws.com/courses/abc", url)
	require.Equal(t, "images", aws.ToString(client.put.Bucket))
	require.Equal(t, "image/png", aws.ToString(client.put.ContentType))
	require.Equal(t, "png", client.body)
}

func TestS3Storage_CustomEndpointURL(t *testing.T) {
	s := newS3Storage(&fakeS3{}, &config.StorageConfig{Bucket: "images", Endpoint: "http://minio:9000/"})
	require.Equal(t, "http://minio:9000/images/courses/abc", s.URL("courses/abc"))
}

func TestS3Storage_UploadError(t *testing.T) {
	s := newS3Storage(&fakeS3{err: errors.New("boom")}, &config.StorageConfig{Bucket: "images"})
	_, err := s.Upload(context.Background(), "k", strings.NewReader(""), 0, "image/png")
	require.Error(t, err)
}

func TestS3Storage_Delete(t *testing.T) {
	client := &fakeS3{}
	s := newS3Storage(client, &config.StorageConfig{Bucket: "images"})
	require.NoError(t, s.Delete(context.Background(), "courses/abc"))
	require.Equal(t, []string{"courses/abc"}, client.deleted)
}

func TestNewS3Storage_RequiresBucket(t *testing.T) {
	_, err := NewS3Storage(context.Background(), &config.StorageConfig{})
	require.ErrorIs(t, err, ErrNotConfigured)
}
