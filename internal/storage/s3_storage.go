package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	appconfig "github.com/learnhub/learnhub-backend/config"
	"github.com/learnhub/learnhub-backend/pkg/logger"
)

// MaxImageSize caps course images at 5MB.
const MaxImageSize = 5 << 20

// ImageContentTypes are the image types accepted for course media.
var ImageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Storage struct {
	client  objectPutter
	bucket  string
	region  string
	baseURL string
}

func NewS3Storage(ctx context.Context, cfg appconfig.S3Config) *S3Storage {
	var awsCfg aws.Config
	var err error

	// If credentials are provided, use them. Otherwise, use default credential chain
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		}
	} else {
		// environment variables, ~/.aws/credentials, IAM role
		awsCfg, err = config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
		if err != nil {
			logger.Warn("Failed to load default AWS config, using region only", map[string]interface{}{
				"error": err.Error(),
			})
			awsCfg = aws.Config{Region: cfg.Region}
		}
	}

	return &S3Storage{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Upload stores body under folder with a generated key and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, folder, filename string, size int64, body io.Reader) (string, error) {
	if err := ValidateFileSize(size, MaxImageSize); err != nil {
		return "", err
	}
	contentType, err := ImageContentType(filename)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.New().String(), strings.ToLower(filepath.Ext(filename)))

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	logger.Debug("Uploaded object", map[string]interface{}{
		"bucket": s.bucket,
		"key":    key,
		"size":   size,
	})
	return s.ObjectURL(key), nil
}

// ObjectURL is the public URL of key: the CDN base when configured, the bucket otherwise.
func (s *S3Storage) ObjectURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// ValidateFileSize validates the file size
func ValidateFileSize(size int64, maxSize int64) error {
	if size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if size > maxSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", maxSize)
	}
	return nil
}

// ImageContentType resolves the content type of an image from its extension.
func ImageContentType(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if contentType, ok := ImageContentTypes[ext]; ok {
		return contentType, nil
	}
	return "", fmt.Errorf("file type %q is not allowed", ext)
}
