// internal/models/schedule.go
package models

import "time"

// ScheduleState mirrors the two states of the external trigger.
type ScheduleState string

const (
	ScheduleEnabled  ScheduleState = "ENABLED"
	ScheduleDisabled ScheduleState = "DISABLED"
)

// ScheduleInfo identifies the trigger resource.
type ScheduleInfo struct {
	ARN   string `json:"arn"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

// ToggleResult is returned by a successful enable or disable.
type ToggleResult struct {
	Schedule ScheduleInfo  `json:"schedule"`
	State    ScheduleState `json:"state"`
	Message  string        `json:"message"`
	NextRun  *time.Time    `json:"nextRun,omitempty"`
}
