package toggleschedule

import (
	"context"

	"enre-reclamos/internal/common/logger"
	"enre-reclamos/internal/common/observability"

	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/jonboulle/clockwork"
)

const (
	ActionEnable  = "enable"
	ActionDisable = "disable"
)

type Input struct {
	Enable bool `json:"enable"`
}

func (i Input) action() string {
	if i.Enable {
		return ActionEnable
	}
	return ActionDisable
}

type SchedulerService interface {
	GetSchedule(ctx context.Context, params *scheduler.GetScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.GetScheduleOutput, error)
	UpdateSchedule(ctx context.Context, params *scheduler.UpdateScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.UpdateScheduleOutput, error)
}

type ServiceDependencies struct {
	Logger        logger.Logger
	Scheduler     SchedulerService
	Observability *observability.Observability
	Clock         clockwork.Clock
}
