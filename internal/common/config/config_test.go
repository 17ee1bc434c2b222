package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISTRIBUIDORA", "EDESUR")
	t.Setenv("NRO_CLIENTE", "00666666")
	t.Setenv("NRO_MEDIDOR", "999999")
	t.Setenv("DRY_RUN", "false")
	t.Setenv("CODIGO_VALIDACION", "3f1c2b7e-9a4d-4c0e-8b1f-2d6e5a7c9b10")
	t.Setenv("TABLA_RECLAMOS", "reclamo-enre")
	t.Setenv("BUCKET_RECLAMOS", "reclamo-enre-html-test")
	t.Setenv("SCHEDULE_ARN", "arn:aws:scheduler:us-east-1:123456789012:schedule/enre/enre-reclamo")
}

func TestLoad_Success(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DRY_RUN", "true")
	t.Setenv("SUBMIT_TIMEOUT", "20s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "EDESUR", cfg.Claim.Distributor)
	assert.Equal(t, "00666666", cfg.Claim.CustomerNumber)
	assert.Equal(t, "999999", cfg.Claim.MeterNumber)
	assert.True(t, cfg.Claim.DryRun)
	assert.Equal(t, 20*time.Second, cfg.Claim.Timeout)
	assert.Equal(t, "reclamo-enre", cfg.Storage.Table)
	assert.Equal(t, "reclamo-enre-html-test", cfg.Storage.Bucket)
	assert.Equal(t, DefaultFormURL, cfg.Claim.FormURL)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.App.Hosted())
}

func TestLoad_TimeoutBounds(t *testing.T) {
	for _, value := range []string{"20s", "30s"} {
		t.Run(value, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("SUBMIT_TIMEOUT", value)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, value, cfg.Claim.Timeout.String())
		})
	}
}

func TestLoad_HostedDetection(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "ENREclamos")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.App.Hosted())
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		wantErr string
	}{
		{name: "distributor", unset: "DISTRIBUIDORA", wantErr: "DISTRIBUIDORA"},
		{name: "customer number", unset: "NRO_CLIENTE", wantErr: "NRO_CLIENTE"},
		{name: "meter number", unset: "NRO_MEDIDOR", wantErr: "NRO_MEDIDOR"},
		{name: "dry run", unset: "DRY_RUN", wantErr: "DRY_RUN"},
		{name: "validation code", unset: "CODIGO_VALIDACION", wantErr: "CODIGO_VALIDACION"},
		{name: "table", unset: "TABLA_RECLAMOS", wantErr: "TABLA_RECLAMOS"},
		{name: "bucket", unset: "BUCKET_RECLAMOS", wantErr: "BUCKET_RECLAMOS"},
		{name: "schedule", unset: "SCHEDULE_ARN", wantErr: "SCHEDULE_ARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		value   string
		wantErr string
	}{
		{name: "short meter", env: "NRO_MEDIDOR", value: "99", wantErr: "at least 3 characters"},
		{name: "validation code not uuid", env: "CODIGO_VALIDACION", value: "not-a-guid", wantErr: "must be a UUID"},
		{name: "schedule arn without group", env: "SCHEDULE_ARN", value: "enre-reclamo", wantErr: "schedule arn"},
		{name: "timeout too long", env: "SUBMIT_TIMEOUT", value: "5m", wantErr: "claim.timeout"},
		{name: "timeout above 30s", env: "SUBMIT_TIMEOUT", value: "31s", wantErr: "claim.timeout"},
		{name: "timeout below 20s", env: "SUBMIT_TIMEOUT", value: "5s", wantErr: "claim.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.env, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ValidationCodeNotEchoed(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CODIGO_VALIDACION", "super-secret-token")

	_, err := Load()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "super-secret-token")
}

func TestScheduleConfig_NameAndGroup(t *testing.T) {
	s := ScheduleConfig{ARN: "arn:aws:scheduler:us-east-1:123456789012:schedule/enre/enre-reclamo"}

	name, group, err := s.NameAndGroup()
	require.NoError(t, err)
	assert.Equal(t, "enre-reclamo", name)
	assert.Equal(t, "enre", group)
}
