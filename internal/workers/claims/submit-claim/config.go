package submitclaim

import (
	"fmt"
	"time"

	"enre-reclamos/internal/common/config"
)

type Config struct {
	Distributor    string
	CustomerNumber string
	MeterNumber    string
	DryRun         bool
	FormURL        string
	Timeout        time.Duration
	Table          string
	Bucket         string
	ArchiveDir     string
	// Hosted disables the local archive copy.
	Hosted      bool
	SNSTopicARN string
	EmailFrom   string
	EmailTo     string
}

func DefaultConfig() *Config {
	return &Config{
		FormURL:    config.DefaultFormURL,
		Timeout:    25 * time.Second,
		ArchiveDir: ".",
	}
}

// ConfigFrom projects the application configuration onto the worker.
func ConfigFrom(cfg *config.Config) *Config {
	return &Config{
		Distributor:    cfg.Claim.Distributor,
		CustomerNumber: cfg.Claim.CustomerNumber,
		MeterNumber:    cfg.Claim.MeterNumber,
		DryRun:         cfg.Claim.DryRun,
		FormURL:        cfg.Claim.FormURL,
		Timeout:        cfg.Claim.Timeout,
		Table:          cfg.Storage.Table,
		Bucket:         cfg.Storage.Bucket,
		ArchiveDir:     cfg.Storage.ArchiveDir,
		Hosted:         cfg.App.Hosted(),
		SNSTopicARN:    cfg.Notifications.SNSTopicARN,
		EmailFrom:      cfg.Notifications.EmailFrom,
		EmailTo:        cfg.Notifications.EmailTo,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Distributor == "" || c.CustomerNumber == "" {
		return fmt.Errorf("distributor and customer number are required")
	}
	if len(c.MeterNumber) < 3 {
		return fmt.Errorf("meter number must have at least 3 characters")
	}
	if c.FormURL == "" {
		return fmt.Errorf("form url is required")
	}
	if c.Table == "" {
		return fmt.Errorf("table is required")
	}
	if c.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	return nil
}
