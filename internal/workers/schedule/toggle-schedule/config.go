package toggleschedule

import (
	"fmt"
	"time"

	"enre-reclamos/internal/common/config"
)

type Config struct {
	ARN   string
	Name  string
	Group string
	// StartDelay is how far ahead the first run is placed when enabling.
	StartDelay time.Duration
	Timeout    time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		StartDelay: time.Minute,
		Timeout:    10 * time.Second,
	}
}

// ConfigFrom resolves the schedule name and group from the configured ARN.
func ConfigFrom(cfg *config.Config) (*Config, error) {
	name, group, err := cfg.Schedule.NameAndGroup()
	if err != nil {
		return nil, err
	}
	c := DefaultConfig()
	c.ARN = cfg.Schedule.ARN
	c.Name = name
	c.Group = group
	return c, nil
}

func (c *Config) Validate() error {
	if c.Name == "" || c.Group == "" {
		return fmt.Errorf("schedule name and group are required")
	}
	if c.StartDelay <= 0 {
		return fmt.Errorf("start_delay must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
