package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/chrisdamba/takeaway/internal/models"
)

const s3Scheme = "s3://"

type getObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 reads the catalog from a single object.
type S3 struct {
	client getObjectAPI
	bucket string
	key    string
	logger *zap.Logger
}

func NewS3(client getObjectAPI, bucket, key string, logger *zap.Logger) *S3 {
	return &S3{client: client, bucket: bucket, key: key, logger: logger}
}

func NewS3FromRegion(ctx context.Context, region, bucket, key string, logger *zap.Logger) (*S3, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return NewS3(s3.NewFromConfig(cfg), bucket, key, logger), nil
}

// ParseS3Location splits "s3://bucket/path/to/key".
func ParseS3Location(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 location: %q", location)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 location needs a bucket and a key: %q", location)
	}
	return bucket, key, nil
}

func (s *S3) Load(ctx context.Context) []models.Restaurant {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		s.logger.Warn("catalog object unavailable", zap.String("bucket", s.bucket), zap.String("key", s.key), zap.Error(err))
		return nil
	}
	defer out.Body.Close()

	restaurants, err := Decode(out.Body)
	if err != nil {
		s.logger.Warn("catalog object is corrupt", zap.String("bucket", s.bucket), zap.String("key", s.key), zap.Error(err))
		return nil
	}
	return restaurants
}
