package results

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader publishes finished results files to S3 so CI runs can collect
// them for cross-run comparison.
type Uploader struct {
	s3Client *s3.Client
}

// NewUploader creates an uploader using the default AWS configuration.
func NewUploader(ctx context.Context) (*Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("results: load AWS config: %w", err)
	}
	return &Uploader{s3Client: s3.NewFromConfig(cfg)}, nil
}

// NewUploaderWithConfig creates an uploader with a custom AWS config.
func NewUploaderWithConfig(cfg aws.Config) *Uploader {
	return &Uploader{s3Client: s3.NewFromConfig(cfg)}
}

// Upload puts the local file at path to s3://bucket/key.
func (u *Uploader) Upload(ctx context.Context, bucket, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("results: open %s: %w", path, err)
	}
	defer f.Close()

	_, err = u.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("results: put s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// ParseS3URL splits s3://bucket/key into its parts.
func ParseS3URL(url string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(url, "s3://")
	if !ok {
		return "", "", fmt.Errorf("results: %q is not an s3:// URL", url)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("results: %q needs both bucket and key", url)
	}
	return bucket, key, nil
}
