// internal/common/aws/s3.go
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"enre-reclamos/internal/common/config"
)

// S3Client holds the raw response archive bucket client.
type S3Client struct {
	client *s3.Client
}

func NewS3Client(ctx context.Context, cfg config.AWSConfig) (*S3Client, error) {
	awsCfg, err := LoadConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &S3Client{client: s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = endpoint(cfg)
		// Local emulators do not resolve virtual-hosted bucket names.
		o.UsePathStyle = cfg.Endpoint != ""
	})}, nil
}

func (s *S3Client) PutObject(ctx context.Context, input *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return s.client.PutObject(ctx, input, optFns...)
}
