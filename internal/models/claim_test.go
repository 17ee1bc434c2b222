package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewClaimRecord(t *testing.T) {
	now := time.Date(2024, time.March, 4, 2, 30, 15, 0, time.UTC)

	rec := NewClaimRecord("W666666", true, now)

	assert.Equal(t, "W666666", rec.ID)
	assert.Equal(t, "2024-03-04T02:30:15", rec.UTCTimestamp)
	// 02:30 UTC is still the previous evening in Buenos Aires.
	assert.Equal(t, "Sunday, March 3, 2024 11:30 PM", rec.LocalTimestamp)
	assert.True(t, rec.DryRun)
	assert.Equal(t, ProcessedMarker, rec.Processed)
}
