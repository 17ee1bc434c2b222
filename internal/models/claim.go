// internal/models/claim.go
package models

import "time"

// ProcessedMarker is the constant partition value of the FechaOrdenada index.
const ProcessedMarker = 1

// ArgentinaTime is the fixed UTC-3 offset used for local timestamps. Argentina has no DST.
var ArgentinaTime = time.FixedZone("GMT-3", -3*60*60)

const (
	// LocalTimestampLayout renders like "Monday, January 2, 2006 3:04 PM".
	LocalTimestampLayout = "Monday, January 2, 2006 3:04 PM"
	// UTCTimestampLayout is a sortable ISO 8601 layout without zone suffix.
	UTCTimestampLayout = "2006-01-02T15:04:05"
)

// ClaimAttempt describes one submission for the lifetime of a single call.
type ClaimAttempt struct {
	Distributor    string    `json:"distributor"`
	CustomerNumber string    `json:"customerNumber"`
	MeterNumber    string    `json:"meterNumber"`
	DryRun         bool      `json:"dryRun"`
	StartedAt      time.Time `json:"startedAt"`
}

// ClaimRecord is the persisted row of a successful claim. It is never mutated.
type ClaimRecord struct {
	ID             string `json:"Id" dynamodbav:"Id"`
	LocalTimestamp string `json:"Fecha" dynamodbav:"Fecha"`
	UTCTimestamp   string `json:"FechaUTC" dynamodbav:"FechaUTC"`
	DryRun         bool   `json:"DryRun" dynamodbav:"DryRun"`
	Processed      int    `json:"-" dynamodbav:"Procesado,omitempty"`
}

// NewClaimRecord stamps a record for claimID at now.
func NewClaimRecord(claimID string, dryRun bool, now time.Time) ClaimRecord {
	return ClaimRecord{
		ID:             claimID,
		LocalTimestamp: now.In(ArgentinaTime).Format(LocalTimestampLayout),
		UTCTimestamp:   now.UTC().Format(UTCTimestampLayout),
		DryRun:         dryRun,
		Processed:      ProcessedMarker,
	}
}

// Outcome classifies a finished submission.
type Outcome string

const (
	OutcomeClaimed     Outcome = "claimed"
	OutcomeDuplicate   Outcome = "duplicate"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeInProgress  Outcome = "in_progress"
)
