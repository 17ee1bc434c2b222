package listclaims

import (
	"fmt"
	"time"

	"enre-reclamos/internal/common/config"
)

const (
	// IndexName is the secondary index ordered by FechaUTC under the constant marker.
	IndexName = "FechaOrdenada"
	// MaxRecords caps every listing.
	MaxRecords = 10
)

type Config struct {
	Table   string
	Limit   int
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Limit:   MaxRecords,
		Timeout: 10 * time.Second,
	}
}

func ConfigFrom(cfg *config.Config) *Config {
	c := DefaultConfig()
	c.Table = cfg.Storage.Table
	return c
}

func (c *Config) Validate() error {
	if c.Table == "" {
		return fmt.Errorf("table is required")
	}
	if c.Limit <= 0 || c.Limit > MaxRecords {
		return fmt.Errorf("limit must be between 1 and %d", MaxRecords)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
