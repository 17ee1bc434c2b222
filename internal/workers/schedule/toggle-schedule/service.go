package toggleschedule

import (
	"context"
	"fmt"

	"enre-reclamos/internal/common/errors"
	"enre-reclamos/internal/common/logger"
	"enre-reclamos/internal/common/metrics"
	"enre-reclamos/internal/common/observability"
	"enre-reclamos/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/aws/aws-sdk-go-v2/service/scheduler/types"
	"github.com/jonboulle/clockwork"
)

const (
	TaskType = "toggle-schedule"
)

type Service struct {
	config    *Config
	logger    logger.Logger
	scheduler SchedulerService
	obs       *observability.Observability
	clock     clockwork.Clock
}

func NewService(deps ServiceDependencies, config *Config) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.Scheduler == nil {
		return nil, fmt.Errorf("scheduler client is required")
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType, "schedule": config.Name}),
		scheduler: deps.Scheduler,
		obs:       deps.Observability,
		clock:     clock,
	}, nil
}

// Execute moves the schedule to the requested state. Asking for the current
// state is a SCHEDULE_STATE_CONFLICT and leaves the schedule untouched.
func (s *Service) Execute(ctx context.Context, input *Input) (*models.ToggleResult, error) {
	action := input.action()

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	result, err := s.execute(ctx, input.Enable)

	outcome := "updated"
	switch {
	case errors.HasCode(err, errors.ErrCodeScheduleStateConflict):
		outcome = "conflict"
	case err != nil:
		outcome = "error"
	}
	metrics.ScheduleToggles.WithLabelValues(action, outcome).Inc()
	s.obs.RecordScheduleToggle(ctx, action, outcome)

	if err != nil {
		if outcome == "conflict" {
			s.logger.Info("schedule already in requested state", map[string]interface{}{"action": action})
		} else {
			s.logger.Error("schedule update failed", map[string]interface{}{"action": action, "error": err})
		}
		return nil, err
	}

	s.logger.Info(result.Message, map[string]interface{}{"action": action, "state": string(result.State)})
	return result, nil
}

func (s *Service) execute(ctx context.Context, enable bool) (*models.ToggleResult, error) {
	current, err := s.scheduler.GetSchedule(ctx, &scheduler.GetScheduleInput{
		Name:      aws.String(s.config.Name),
		GroupName: aws.String(s.config.Group),
	})
	if err != nil {
		return nil, errors.NewScheduleUpdateFailedError(fmt.Errorf("get schedule: %w", err))
	}

	if enable && current.State == types.ScheduleStateEnabled {
		return nil, errors.NewScheduleStateConflictError("El schedule ya estaba habilitado")
	}
	if !enable && current.State == types.ScheduleStateDisabled {
		return nil, errors.NewScheduleStateConflictError("El schedule ya estaba deshabilitado")
	}

	update := s.buildUpdate(current, enable)
	if _, err := s.scheduler.UpdateSchedule(ctx, update); err != nil {
		return nil, errors.NewScheduleUpdateFailedError(fmt.Errorf("update schedule: %w", err))
	}

	result := &models.ToggleResult{
		Schedule: models.ScheduleInfo{ARN: s.config.ARN, Name: s.config.Name, Group: s.config.Group},
		State:    models.ScheduleDisabled,
		Message:  fmt.Sprintf("El schedule '%s' fue deshabilitado", s.config.Name),
	}
	if enable {
		next := update.StartDate.UTC()
		result.State = models.ScheduleEnabled
		result.NextRun = &next
		result.Message = fmt.Sprintf("El schedule '%s' fue habilitado, y va a correr a las %s",
			s.config.Name, next.In(models.ArgentinaTime).Format("15:04"))
	}
	return result, nil
}

// buildUpdate copies the definition of current, since UpdateSchedule replaces
// the whole schedule, and sets the new state.
func (s *Service) buildUpdate(current *scheduler.GetScheduleOutput, enable bool) *scheduler.UpdateScheduleInput {
	name, group := current.Name, current.GroupName
	if name == nil {
		name = aws.String(s.config.Name)
	}
	if group == nil {
		group = aws.String(s.config.Group)
	}

	update := &scheduler.UpdateScheduleInput{
		Name:                       name,
		GroupName:                  group,
		FlexibleTimeWindow:         current.FlexibleTimeWindow,
		ScheduleExpression:         current.ScheduleExpression,
		Target:                     current.Target,
		ScheduleExpressionTimezone: current.ScheduleExpressionTimezone,
		Description:                current.Description,
		State:                      types.ScheduleStateDisabled,
	}
	if enable {
		update.State = types.ScheduleStateEnabled
		update.StartDate = aws.Time(s.clock.Now().UTC().Add(s.config.StartDelay))
	}
	return update
}
