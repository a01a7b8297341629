package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	data, _ := io.ReadAll(params.Body)
	f.body = string(data)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Storage_Upload(t *testing.T) {
	tests := []struct {
		name       string
		baseURL    string
		filename   string
		size       int64
		putErr     error
		wantPrefix string
		wantErr    bool
	}{
		{name: "direct bucket url", filename: "cover.PNG", size: 4, wantPrefix: "https://media.s3.eu-west-1.amazonaws.com/courses/"},
		{name: "cdn url", baseURL: "https://cdn.example.com/", filename: "cover.jpg", size: 4, wantPrefix: "https://cdn.example.com/courses/"},
		{name: "unsupported type", filename: "cover.exe", size: 4, wantErr: true},
		{name: "too large", filename: "cover.jpg", size: MaxImageSize + 1, wantErr: true},
		{name: "put failure", filename: "cover.jpg", size: 4, putErr: errors.New("access denied"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			putter := &fakePutter{err: tt.putErr}
			s := &S3Storage{client: putter, bucket: "media", region: "eu-west-1", baseURL: strings.TrimRight(tt.baseURL, "/")}

			url, err := s.Upload(context.Background(), "courses", tt.filename, tt.size, strings.NewReader("data"))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(url, tt.wantPrefix), url)
			assert.Equal(t, "media", aws.ToString(putter.input.Bucket))
			assert.True(t, strings.HasPrefix(aws.ToString(putter.input.Key), "courses/"))
			assert.Equal(t, "data", putter.body)
		})
	}
}

func TestImageContentType(t *testing.T) {
	ct, err := ImageContentType("photo.JPEG")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)

	_, err = ImageContentType("notes.txt")
	assert.Error(t, err)
}
