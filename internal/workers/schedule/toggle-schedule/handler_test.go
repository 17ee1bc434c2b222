package toggleschedule

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "enre-reclamos/internal/common/errors"
	"enre-reclamos/internal/common/logger"
	"enre-reclamos/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/aws/aws-sdk-go-v2/service/scheduler/types"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSchedulerService struct {
	GetScheduleFunc    func(ctx context.Context, params *scheduler.GetScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.GetScheduleOutput, error)
	UpdateScheduleFunc func(ctx context.Context, params *scheduler.UpdateScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.UpdateScheduleOutput, error)
	updates            []*scheduler.UpdateScheduleInput
}

func (m *MockSchedulerService) GetSchedule(ctx context.Context, params *scheduler.GetScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.GetScheduleOutput, error) {
	return m.GetScheduleFunc(ctx, params, optFns...)
}

func (m *MockSchedulerService) UpdateSchedule(ctx context.Context, params *scheduler.UpdateScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.UpdateScheduleOutput, error) {
	m.updates = append(m.updates, params)
	if m.UpdateScheduleFunc != nil {
		return m.UpdateScheduleFunc(ctx, params, optFns...)
	}
	return &scheduler.UpdateScheduleOutput{}, nil
}

var testNow = time.Date(2024, time.March, 4, 15, 0, 0, 0, time.UTC)

func scheduleIn(state types.ScheduleState) *MockSchedulerService {
	return &MockSchedulerService{
		GetScheduleFunc: func(ctx context.Context, params *scheduler.GetScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.GetScheduleOutput, error) {
			return &scheduler.GetScheduleOutput{
				Name:                       params.Name,
				GroupName:                  params.GroupName,
				State:                      state,
				ScheduleExpression:         aws.String("rate(4 hours)"),
				ScheduleExpressionTimezone: aws.String("America/Argentina/Buenos_Aires"),
				Description:                aws.String("Reclamo ENRE"),
				FlexibleTimeWindow: &types.FlexibleTimeWindow{
					Mode:                   types.FlexibleTimeWindowModeFlexible,
					MaximumWindowInMinutes: aws.Int32(15),
				},
				Target: &types.Target{
					Arn:     aws.String("arn:aws:lambda:us-east-1:123456789012:function:ENREclamos"),
					RoleArn: aws.String("arn:aws:iam::123456789012:role/enre-scheduler"),
				},
			}, nil
		},
	}
}

func newTestService(t *testing.T, mock *MockSchedulerService) *Service {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ARN = "arn:aws:scheduler:us-east-1:123456789012:schedule/enre/enre-reclamo"
	cfg.Name = "enre-reclamo"
	cfg.Group = "enre"

	svc, err := NewService(ServiceDependencies{
		Logger:    logger.NewTestLogger(t),
		Scheduler: mock,
		Clock:     clockwork.NewFakeClockAt(testNow),
	}, cfg)
	require.NoError(t, err)
	return svc
}

func TestService_Execute_Conflicts(t *testing.T) {
	tests := []struct {
		name        string
		state       types.ScheduleState
		enable      bool
		wantMessage string
	}{
		{name: "enable when enabled", state: types.ScheduleStateEnabled, enable: true, wantMessage: "El schedule ya estaba habilitado"},
		{name: "disable when disabled", state: types.ScheduleStateDisabled, enable: false, wantMessage: "El schedule ya estaba deshabilitado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := scheduleIn(tt.state)
			svc := newTestService(t, mock)

			result, err := svc.Execute(context.Background(), &Input{Enable: tt.enable})
			require.Error(t, err)
			assert.Nil(t, result)

			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeScheduleStateConflict, stdErr.Code)
			assert.Equal(t, tt.wantMessage, stdErr.Message)
			assert.Empty(t, mock.updates)
		})
	}
}

func TestService_Execute_Enable(t *testing.T) {
	mock := scheduleIn(types.ScheduleStateDisabled)
	svc := newTestService(t, mock)

	result, err := svc.Execute(context.Background(), &Input{Enable: true})
	require.NoError(t, err)

	require.Len(t, mock.updates, 1)
	update := mock.updates[0]
	assert.Equal(t, types.ScheduleStateEnabled, update.State)
	assert.Equal(t, "enre-reclamo", *update.Name)
	assert.Equal(t, "enre", *update.GroupName)
	assert.Equal(t, "rate(4 hours)", *update.ScheduleExpression)
	assert.Equal(t, "America/Argentina/Buenos_Aires", *update.ScheduleExpressionTimezone)
	assert.Equal(t, "Reclamo ENRE", *update.Description)
	assert.Equal(t, int32(15), *update.FlexibleTimeWindow.MaximumWindowInMinutes)
	assert.Equal(t, "arn:aws:lambda:us-east-1:123456789012:function:ENREclamos", *update.Target.Arn)

	require.NotNil(t, update.StartDate)
	assert.WithinDuration(t, testNow.Add(time.Minute), *update.StartDate, time.Second)

	assert.Equal(t, models.ScheduleEnabled, result.State)
	require.NotNil(t, result.NextRun)
	assert.True(t, result.NextRun.Equal(testNow.Add(time.Minute)))
	assert.Equal(t, "El schedule 'enre-reclamo' fue habilitado, y va a correr a las 12:01", result.Message)
}

func TestService_Execute_Disable(t *testing.T) {
	mock := scheduleIn(types.ScheduleStateEnabled)
	svc := newTestService(t, mock)

	result, err := svc.Execute(context.Background(), &Input{Enable: false})
	require.NoError(t, err)

	require.Len(t, mock.updates, 1)
	assert.Equal(t, types.ScheduleStateDisabled, mock.updates[0].State)
	assert.Nil(t, mock.updates[0].StartDate)
	assert.Equal(t, models.ScheduleDisabled, result.State)
	assert.Nil(t, result.NextRun)
	assert.Equal(t, "El schedule 'enre-reclamo' fue deshabilitado", result.Message)
}

func TestService_Execute_SchedulerErrors(t *testing.T) {
	t.Run("get fails", func(t *testing.T) {
		mock := &MockSchedulerService{
			GetScheduleFunc: func(ctx context.Context, params *scheduler.GetScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.GetScheduleOutput, error) {
				return nil, errors.New("ResourceNotFoundException")
			},
		}
		svc := newTestService(t, mock)

		_, err := svc.Execute(context.Background(), &Input{Enable: true})
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeScheduleUpdateFailed))
		assert.Empty(t, mock.updates)
	})

	t.Run("update fails", func(t *testing.T) {
		mock := scheduleIn(types.ScheduleStateDisabled)
		mock.UpdateScheduleFunc = func(ctx context.Context, params *scheduler.UpdateScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.UpdateScheduleOutput, error) {
			return nil, errors.New("AccessDeniedException")
		}
		svc := newTestService(t, mock)

		_, err := svc.Execute(context.Background(), &Input{Enable: true})
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeScheduleUpdateFailed))
		assert.Len(t, mock.updates, 1)
	})
}

func TestNewService_InvalidConfig(t *testing.T) {
	_, err := NewService(ServiceDependencies{Scheduler: scheduleIn(types.ScheduleStateEnabled)}, DefaultConfig())
	assert.Error(t, err)
}
