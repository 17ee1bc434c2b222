// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultFormURL     = "https://www.enre.gov.ar/reclamosweb.nsf/Reclamo?OpenForm&Seq=1"
	DefaultFormReferer = "https://www.enre.gov.ar/reclamosweb.nsf/Reclamo"
	DefaultFormOrigin  = "https://www.enre.gov.ar"
	DefaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
)

// SUBMIT_TIMEOUT bounds.
const (
	MinSubmitTimeout = 20 * time.Second
	MaxSubmitTimeout = 30 * time.Second
)

// envBindings maps config keys to the environment variables the deployment sets.
var envBindings = map[string]string{
	"app.environment":          "APP_ENVIRONMENT",
	"app.version":              "APP_VERSION",
	"app.lambda_function_name": "AWS_LAMBDA_FUNCTION_NAME",

	"claim.distributor":     "DISTRIBUIDORA",
	"claim.customer_number": "NRO_CLIENTE",
	"claim.meter_number":    "NRO_MEDIDOR",
	"claim.dry_run":         "DRY_RUN",
	"claim.form_url":        "FORM_URL",
	"claim.form_referer":    "FORM_REFERER",
	"claim.form_origin":     "FORM_ORIGIN",
	"claim.cookie":          "FORM_COOKIE",
	"claim.user_agent":      "FORM_USER_AGENT",
	"claim.timeout":         "SUBMIT_TIMEOUT",

	"storage.table":       "TABLA_RECLAMOS",
	"storage.bucket":      "BUCKET_RECLAMOS",
	"storage.archive_dir": "ARCHIVE_DIR",

	"schedule.arn":             "SCHEDULE_ARN",
	"schedule.validation_code": "CODIGO_VALIDACION",

	"aws.region":   "AWS_REGION",
	"aws.endpoint": "AWS_ENDPOINT_URL",

	"redis.address":   "REDIS_ADDRESS",
	"redis.password":  "REDIS_PASSWORD",
	"redis.db":        "REDIS_DB",
	"redis.guard_ttl": "GUARD_TTL",

	"notifications.sns_topic_arn": "NOTIFY_SNS_TOPIC_ARN",
	"notifications.email_from":    "NOTIFY_EMAIL_FROM",
	"notifications.email_to":      "NOTIFY_EMAIL_TO",

	"server.address":          "HTTP_ADDR",
	"server.shutdown_timeout": "SHUTDOWN_TIMEOUT",

	"logging.level":  "LOG_LEVEL",
	"logging.format": "LOG_FORMAT",
	"logging.output": "LOG_OUTPUT",
}

// Load builds the configuration from .env, optional yaml files and the process environment.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	if rootDir := findProjectRoot(); rootDir != "" {
		v.AddConfigPath(filepath.Join(rootDir, "configs"))
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// DRY_RUN must be explicit in every environment.
	if !v.IsSet("claim.dry_run") {
		return nil, fmt.Errorf("invalid configuration: claim.dry_run (DRY_RUN) is required")
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			// godotenv never overrides variables that are already set
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "enre-reclamos"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "0.2.0"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Claim.FormURL == "" {
		cfg.Claim.FormURL = DefaultFormURL
	}
	if cfg.Claim.FormReferer == "" {
		cfg.Claim.FormReferer = DefaultFormReferer
	}
	if cfg.Claim.FormOrigin == "" {
		cfg.Claim.FormOrigin = DefaultFormOrigin
	}
	if cfg.Claim.UserAgent == "" {
		cfg.Claim.UserAgent = DefaultUserAgent
	}
	if cfg.Claim.Timeout == 0 {
		cfg.Claim.Timeout = 25 * time.Second
	}

	if cfg.Storage.ArchiveDir == "" {
		cfg.Storage.ArchiveDir = "."
	}

	if cfg.AWS.Region == "" {
		cfg.AWS.Region = "us-east-1"
	}

	if cfg.Redis.GuardTTL == 0 {
		cfg.Redis.GuardTTL = 60 * time.Second
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	required := []struct {
		key   string
		env   string
		value string
	}{
		{"claim.distributor", "DISTRIBUIDORA", cfg.Claim.Distributor},
		{"claim.customer_number", "NRO_CLIENTE", cfg.Claim.CustomerNumber},
		{"claim.meter_number", "NRO_MEDIDOR", cfg.Claim.MeterNumber},
		{"schedule.validation_code", "CODIGO_VALIDACION", cfg.Schedule.ValidationCode},
		{"storage.table", "TABLA_RECLAMOS", cfg.Storage.Table},
		{"storage.bucket", "BUCKET_RECLAMOS", cfg.Storage.Bucket},
		{"schedule.arn", "SCHEDULE_ARN", cfg.Schedule.ARN},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s (%s) is required", r.key, r.env)
		}
	}

	if len(cfg.Claim.MeterNumber) < 3 {
		return fmt.Errorf("claim.meter_number must have at least 3 characters")
	}

	if _, err := uuid.Parse(cfg.Schedule.ValidationCode); err != nil {
		return fmt.Errorf("schedule.validation_code must be a UUID")
	}

	if _, _, err := cfg.Schedule.NameAndGroup(); err != nil {
		return err
	}

	if cfg.Claim.Timeout < MinSubmitTimeout || cfg.Claim.Timeout > MaxSubmitTimeout {
		return fmt.Errorf("claim.timeout must be between %s and %s, got %s", MinSubmitTimeout, MaxSubmitTimeout, cfg.Claim.Timeout)
	}

	return nil
}
