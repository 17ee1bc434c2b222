// internal/common/aws/sns.go
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sns"

	"enre-reclamos/internal/common/config"
)

type SNSClient struct {
	client *sns.Client
}

func NewSNSClient(ctx context.Context, cfg config.AWSConfig) (*SNSClient, error) {
	awsCfg, err := LoadConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &SNSClient{client: sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		o.BaseEndpoint = endpoint(cfg)
	})}, nil
}

func (s *SNSClient) Publish(ctx context.Context, input *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return s.client.Publish(ctx, input, optFns...)
}
