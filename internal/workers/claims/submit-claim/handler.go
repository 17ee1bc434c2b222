// internal/workers/claims/submit-claim/handler.go
package submitclaim

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"

	"enre-reclamos/internal/common/database"
	"enre-reclamos/internal/common/errors"
	"enre-reclamos/internal/common/logger"
	"enre-reclamos/internal/common/metrics"
	"enre-reclamos/internal/common/observability"
	"enre-reclamos/internal/models"

	"github.com/jonboulle/clockwork"
)

const (
	TaskType = "submit-claim"
)

type Handler struct {
	config    *Config
	logger    logger.Logger
	submitter *Submitter
	archiver  *Archiver
	recorder  *Recorder
	notifier  *Notifier
	guard     Guard
	obs       *observability.Observability
	clock     clockwork.Clock
}

func NewHandler(config *Config, deps ServiceDependencies) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.Poster == nil || deps.S3 == nil || deps.DynamoDB == nil {
		return nil, fmt.Errorf("poster, s3 and dynamodb clients are required")
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Handler{
		config:    config,
		logger:    log,
		submitter: NewSubmitter(config, deps.Poster, log),
		archiver:  NewArchiver(config, deps.S3, deps.Fs, log),
		recorder:  NewRecorder(config, deps.DynamoDB),
		notifier:  NewNotifier(config, deps.SNS, deps.SES, log),
		guard:     deps.Guard,
		obs:       deps.Observability,
		clock:     clock,
	}, nil
}

// Execute runs one submit, interpret, record cycle. The returned Output is
// never nil; err is a StandardError for every outcome other than claimed.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := h.clock.Now()
	attempt := models.ClaimAttempt{
		Distributor:    h.config.Distributor,
		CustomerNumber: h.config.CustomerNumber,
		MeterNumber:    h.config.MeterNumber,
		DryRun:         h.config.DryRun,
		StartedAt:      start,
	}

	trigger := "schedule"
	if input != nil && input.Trigger != "" {
		trigger = input.Trigger
	}
	h.logger.Info("processing claim", map[string]interface{}{
		"distributor": attempt.Distributor,
		"dryRun":      attempt.DryRun,
		"trigger":     trigger,
	})

	metrics.SubmissionsActive.Inc()
	defer metrics.SubmissionsActive.Dec()

	output, err := h.execute(ctx, attempt)

	elapsed := h.clock.Since(start)
	metrics.ClaimAttempts.WithLabelValues(string(output.Outcome)).Inc()
	metrics.ClaimAttemptDuration.WithLabelValues(strconv.FormatBool(attempt.DryRun)).Observe(elapsed.Seconds())
	h.obs.RecordClaimProcessed(ctx, string(output.Outcome), attempt.DryRun)
	h.obs.RecordClaimDuration(ctx, elapsed, string(output.Outcome))

	fields := map[string]interface{}{
		"outcome":    string(output.Outcome),
		"claimId":    output.ClaimID,
		"durationMs": elapsed.Milliseconds(),
	}
	if err != nil {
		if stdErr, ok := errors.AsStandardError(err); ok {
			fields["errorCode"] = string(stdErr.Code)
			fields["details"] = stdErr.Details
		}
		h.logger.Warn("claim not filed", fields)
	} else {
		h.logger.Info("claim filed", fields)
	}

	return output, err
}

func (h *Handler) execute(ctx context.Context, attempt models.ClaimAttempt) (*Output, error) {
	output := &Output{
		Outcome:     models.OutcomeUnavailable,
		DryRun:      attempt.DryRun,
		SubmittedAt: attempt.StartedAt.UTC(),
	}

	if h.guard != nil {
		token, err := h.guard.Acquire(ctx)
		switch {
		case stderrors.Is(err, database.ErrGuardHeld):
			output.Outcome = models.OutcomeInProgress
			return output, errors.NewSubmissionInProgressError()
		case err != nil:
			// An unreachable guard must not stop the scheduled run.
			h.logger.Warn("submission guard unavailable, continuing", map[string]interface{}{"error": err})
		default:
			defer func() {
				if err := h.guard.Release(context.WithoutCancel(ctx), token); err != nil {
					h.logger.Warn("failed to release submission guard", map[string]interface{}{"error": err})
				}
			}()
		}
	}

	submitCtx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	body, fromNetwork, err := h.submitter.Submit(submitCtx, attempt)
	if err != nil {
		return output, err
	}

	if fromNetwork {
		output.ArchiveKey = ArchiveKey(attempt.StartedAt)
		h.archiver.Archive(ctx, output.ArchiveKey, body)
	}

	result := Interpret(body)
	switch result.Kind {
	case KindSuccess:
		output.Outcome = models.OutcomeClaimed
		output.ClaimID = result.ClaimID

		if _, err := h.recorder.Record(ctx, result.ClaimID, attempt.DryRun, h.clock.Now()); err != nil {
			stdErr := errors.NewRecordFailedError(result.ClaimID, err)
			metrics.RecordFailures.Inc()
			h.logger.Error("claim record failed", map[string]interface{}{
				"claimId":   result.ClaimID,
				"errorCode": string(stdErr.Code),
				"error":     err,
			})
		}

		subject, msg := claimFiledMessage(result.ClaimID, attempt.DryRun)
		h.notifier.Notify(ctx, subject, msg)
		return output, nil

	case KindKnownFailure:
		output.Outcome = models.OutcomeDuplicate
		output.Message = result.Message
		return output, errors.NewDuplicateClaimError(result.Message)

	default:
		h.logger.Error("claim response not recognized", map[string]interface{}{
			"reason":     result.Reason,
			"archiveKey": output.ArchiveKey,
		})
		subject, msg := unrecognizedMessage(describeAttempt(attempt), result.Reason)
		h.notifier.Notify(ctx, subject, msg)
		return output, errors.NewResponseUnrecognizedError(result.Reason)
	}
}
