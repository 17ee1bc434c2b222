// Package app wires configuration, AWS clients and workers for the two entrypoints.
package app

import (
	"context"
	"fmt"
	"time"

	awsclients "enre-reclamos/internal/common/aws"
	"enre-reclamos/internal/common/config"
	"enre-reclamos/internal/common/database"
	formhttp "enre-reclamos/internal/common/http"
	"enre-reclamos/internal/common/logger"
	"enre-reclamos/internal/common/observability"
	listclaims "enre-reclamos/internal/workers/claims/list-claims"
	submitclaim "enre-reclamos/internal/workers/claims/submit-claim"
	toggleschedule "enre-reclamos/internal/workers/schedule/toggle-schedule"

	"github.com/spf13/afero"
)

// Clients holds the AWS service clients shared by the workers.
type Clients struct {
	S3        *awsclients.S3Client
	DynamoDB  *awsclients.DynamoDBClient
	Scheduler *awsclients.SchedulerClient
	SNS       *awsclients.SNSClient
	SES       *awsclients.SESClient
}

// NewClients builds every AWS client. No network call happens here.
func NewClients(ctx context.Context, cfg config.AWSConfig) (*Clients, error) {
	s3Client, err := awsclients.NewS3Client(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	dynamoClient, err := awsclients.NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("dynamodb client: %w", err)
	}
	schedulerClient, err := awsclients.NewSchedulerClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("scheduler client: %w", err)
	}
	snsClient, err := awsclients.NewSNSClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sns client: %w", err)
	}
	sesClient, err := awsclients.NewSESClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ses client: %w", err)
	}
	return &Clients{
		S3:        s3Client,
		DynamoDB:  dynamoClient,
		Scheduler: schedulerClient,
		SNS:       snsClient,
		SES:       sesClient,
	}, nil
}

// RetryWithBackoff attempts to execute a function with exponential backoff.
func RetryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err,
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s aborted: %w", operationName, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// ConnectGuard returns a nil client and guard when Redis is not configured.
func ConnectGuard(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*database.RedisClient, *database.SubmissionGuard, error) {
	if !cfg.Enabled() {
		log.Info("Submission guard disabled", nil)
		return nil, nil, nil
	}

	var client *database.RedisClient
	err := RetryWithBackoff(ctx, func() error {
		var err error
		if client == nil {
			client, err = database.NewRedis(cfg)
			if err != nil {
				return err
			}
		}
		return client.Ping(ctx)
	}, 3, 500*time.Millisecond, log, "Redis connection")
	if err != nil {
		if client != nil {
			_ = client.Close()
		}
		return nil, nil, err
	}

	log.Info("Submission guard connected", map[string]interface{}{"address": cfg.Address})
	return client, database.NewSubmissionGuard(client.Client, cfg.GuardTTL), nil
}

// NewSubmitHandler builds the claim submission worker. guard may be nil.
func NewSubmitHandler(cfg *config.Config, clients *Clients, guard *database.SubmissionGuard, obs *observability.Observability, log logger.Logger) (*submitclaim.Handler, error) {
	poster := formhttp.NewClient(cfg.Claim.Timeout, formhttp.Headers{
		Referer:   cfg.Claim.FormReferer,
		Origin:    cfg.Claim.FormOrigin,
		UserAgent: cfg.Claim.UserAgent,
		Cookie:    cfg.Claim.Cookie,
	})

	deps := submitclaim.ServiceDependencies{
		Logger:        log,
		Poster:        poster,
		S3:            clients.S3,
		DynamoDB:      clients.DynamoDB,
		SNS:           clients.SNS,
		SES:           clients.SES,
		Observability: obs,
		Fs:            afero.NewOsFs(),
	}
	if guard != nil {
		deps.Guard = guard
	}
	return submitclaim.NewHandler(submitclaim.ConfigFrom(cfg), deps)
}

func NewListHandler(cfg *config.Config, clients *Clients, log logger.Logger) (*listclaims.Handler, error) {
	return listclaims.NewHandler(listclaims.ConfigFrom(cfg), listclaims.ServiceDependencies{
		Logger:   log,
		DynamoDB: clients.DynamoDB,
	})
}

func NewToggleService(cfg *config.Config, clients *Clients, obs *observability.Observability, log logger.Logger) (*toggleschedule.Service, error) {
	toggleCfg, err := toggleschedule.ConfigFrom(cfg)
	if err != nil {
		return nil, err
	}
	return toggleschedule.NewService(toggleschedule.ServiceDependencies{
		Logger:        log,
		Scheduler:     clients.Scheduler,
		Observability: obs,
	}, toggleCfg)
}
