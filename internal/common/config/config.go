// internal/common/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Claim         ClaimConfig        `mapstructure:"claim"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Schedule      ScheduleConfig     `mapstructure:"schedule"`
	AWS           AWSConfig          `mapstructure:"aws"`
	Redis         RedisConfig        `mapstructure:"redis"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Server        ServerConfig       `mapstructure:"server"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	// LambdaFunctionName is set by the Lambda runtime; non-empty means we run hosted.
	LambdaFunctionName string `mapstructure:"lambda_function_name"`
}

// Hosted reports whether the process runs inside the managed Lambda runtime.
func (a AppConfig) Hosted() bool {
	return a.LambdaFunctionName != ""
}

// ClaimConfig holds the operator identity and the remote form settings.
type ClaimConfig struct {
	Distributor    string        `mapstructure:"distributor"`
	CustomerNumber string        `mapstructure:"customer_number"`
	MeterNumber    string        `mapstructure:"meter_number"`
	DryRun         bool          `mapstructure:"dry_run"`
	FormURL        string        `mapstructure:"form_url"`
	FormReferer    string        `mapstructure:"form_referer"`
	FormOrigin     string        `mapstructure:"form_origin"`
	Cookie         string        `mapstructure:"cookie"`
	UserAgent      string        `mapstructure:"user_agent"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	Table      string `mapstructure:"table"`
	Bucket     string `mapstructure:"bucket"`
	ArchiveDir string `mapstructure:"archive_dir"`
}

type ScheduleConfig struct {
	ARN            string `mapstructure:"arn"`
	ValidationCode string `mapstructure:"validation_code"`
}

// NameAndGroup splits a scheduler ARN of the form arn:aws:scheduler:<region>:<account>:schedule/<group>/<name>.
func (s ScheduleConfig) NameAndGroup() (name, group string, err error) {
	parts := strings.Split(s.ARN, "/")
	if len(parts) < 3 {
		return "", "", fmt.Errorf("schedule arn %q has no group/name segments", s.ARN)
	}
	name = parts[len(parts)-1]
	group = parts[len(parts)-2]
	if name == "" || group == "" {
		return "", "", fmt.Errorf("schedule arn %q has empty group or name", s.ARN)
	}
	return name, group, nil
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
	// Endpoint overrides every service endpoint (localstack and friends).
	Endpoint string `mapstructure:"endpoint"`
}

type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	GuardTTL time.Duration `mapstructure:"guard_ttl"`
}

// Enabled reports whether the submission guard should be wired.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// NotificationConfig holds the optional operator notification targets.
type NotificationConfig struct {
	SNSTopicARN string `mapstructure:"sns_topic_arn"`
	EmailFrom   string `mapstructure:"email_from"`
	EmailTo     string `mapstructure:"email_to"`
}

func (n NotificationConfig) SNSEnabled() bool {
	return n.SNSTopicARN != ""
}

func (n NotificationConfig) EmailEnabled() bool {
	return n.EmailFrom != "" && n.EmailTo != ""
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
