package submitclaim

import (
	"context"
	"fmt"

	"enre-reclamos/internal/common/errors"
	"enre-reclamos/internal/common/logger"
	"enre-reclamos/internal/common/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Notifier tells the operator about filed claims and unreadable pages.
// Each channel is used only when both its client and its target are set.
type Notifier struct {
	sns      SNSService
	ses      SESService
	topicARN string
	from     string
	to       string
	logger   logger.Logger
}

func NewNotifier(cfg *Config, snsClient SNSService, sesClient SESService, log logger.Logger) *Notifier {
	return &Notifier{
		sns:      snsClient,
		ses:      sesClient,
		topicARN: cfg.SNSTopicARN,
		from:     cfg.EmailFrom,
		to:       cfg.EmailTo,
		logger:   log,
	}
}

func (n *Notifier) smsEnabled() bool {
	return n.sns != nil && n.topicARN != ""
}

func (n *Notifier) emailEnabled() bool {
	return n.ses != nil && n.from != "" && n.to != ""
}

// Notify delivers subject and body on every enabled channel.
func (n *Notifier) Notify(ctx context.Context, subject, body string) {
	if n.smsEnabled() {
		if _, err := n.sns.Publish(ctx, &sns.PublishInput{
			TopicArn: aws.String(n.topicARN),
			Subject:  aws.String(subject),
			Message:  aws.String(body),
		}); err != nil {
			n.fail("sns", err)
		}
	}

	if n.emailEnabled() {
		if _, err := n.ses.SendEmail(ctx, &ses.SendEmailInput{
			Destination: &types.Destination{
				ToAddresses: []string{n.to},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
			Source: aws.String(n.from),
		}); err != nil {
			n.fail("ses", err)
		}
	}
}

func (n *Notifier) fail(channel string, err error) {
	stdErr := errors.NewNotificationFailedError(channel, err)
	metrics.NotificationFailures.WithLabelValues(channel).Inc()
	n.logger.Error("notification failed", map[string]interface{}{
		"channel":   channel,
		"errorCode": string(stdErr.Code),
		"error":     err,
	})
}

func claimFiledMessage(claimID string, dryRun bool) (string, string) {
	subject := fmt.Sprintf("Reclamo ENRE %s", claimID)
	if dryRun {
		subject += " (dry run)"
	}
	return subject, fmt.Sprintf("Se ingresó el reclamo número %s.", claimID)
}

func unrecognizedMessage(who string, reason error) (string, string) {
	return "Reclamo ENRE sin confirmar",
		fmt.Sprintf("No se pudo interpretar la respuesta del formulario para %s: %v", who, reason)
}
