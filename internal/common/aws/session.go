// internal/common/aws/session.go
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"enre-reclamos/internal/common/config"
)

// LoadConfig resolves credentials and region through the default provider chain.
func LoadConfig(ctx context.Context, cfg config.AWSConfig) (awssdk.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return awssdk.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

// endpoint returns the override pointer used by every service client, nil when unset.
func endpoint(cfg config.AWSConfig) *string {
	if cfg.Endpoint == "" {
		return nil
	}
	return awssdk.String(cfg.Endpoint)
}
