package submitclaim

import (
	"context"
	"net/url"
	"time"

	formhttp "enre-reclamos/internal/common/http"
	"enre-reclamos/internal/common/logger"
	"enre-reclamos/internal/common/observability"
	"enre-reclamos/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
)

// Input is the invocation payload. Scheduled runs send an empty object.
type Input struct {
	Trigger string `json:"trigger,omitempty"`
}

// Output is returned for every submission, whatever the outcome.
type Output struct {
	Outcome     models.Outcome `json:"outcome"`
	ClaimID     string         `json:"claimId,omitempty"`
	Message     string         `json:"message,omitempty"`
	DryRun      bool           `json:"dryRun"`
	ArchiveKey  string         `json:"archiveKey,omitempty"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

// FormPoster sends the claim form.
type FormPoster interface {
	PostForm(ctx context.Context, target string, fields url.Values) (*formhttp.Response, error)
}

type S3Service interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type DynamoDBService interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Guard serializes overlapping submissions.
type Guard interface {
	Acquire(ctx context.Context) (string, error)
	Release(ctx context.Context, token string) error
}

// ServiceDependencies lists the collaborators of the handler. Poster, S3 and
// DynamoDB are required; the rest are optional.
type ServiceDependencies struct {
	Logger        logger.Logger
	Poster        FormPoster
	S3            S3Service
	DynamoDB      DynamoDBService
	SNS           SNSService
	SES           SESService
	Guard         Guard
	Observability *observability.Observability
	Clock         clockwork.Clock
	Fs            afero.Fs
}
