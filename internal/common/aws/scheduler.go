// internal/common/aws/scheduler.go
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/scheduler"

	"enre-reclamos/internal/common/config"
)

// SchedulerClient reads and updates the EventBridge schedule that fires the submitter.
type SchedulerClient struct {
	client *scheduler.Client
}

func NewSchedulerClient(ctx context.Context, cfg config.AWSConfig) (*SchedulerClient, error) {
	awsCfg, err := LoadConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &SchedulerClient{client: scheduler.NewFromConfig(awsCfg, func(o *scheduler.Options) {
		o.BaseEndpoint = endpoint(cfg)
	})}, nil
}

func (s *SchedulerClient) GetSchedule(ctx context.Context, input *scheduler.GetScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.GetScheduleOutput, error) {
	return s.client.GetSchedule(ctx, input, optFns...)
}

func (s *SchedulerClient) UpdateSchedule(ctx context.Context, input *scheduler.UpdateScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.UpdateScheduleOutput, error) {
	return s.client.UpdateSchedule(ctx, input, optFns...)
}
