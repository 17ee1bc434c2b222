// internal/common/aws/ses.go
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ses"

	"enre-reclamos/internal/common/config"
)

type SESClient struct {
	client *ses.Client
}

func NewSESClient(ctx context.Context, cfg config.AWSConfig) (*SESClient, error) {
	awsCfg, err := LoadConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &SESClient{client: ses.NewFromConfig(awsCfg, func(o *ses.Options) {
		o.BaseEndpoint = endpoint(cfg)
	})}, nil
}

func (s *SESClient) SendEmail(ctx context.Context, input *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return s.client.SendEmail(ctx, input, optFns...)
}
