package dto

import "time"

// SweepResponse reports the outcome of a manually triggered sweep.
type SweepResponse struct {
	Checked        int `json:"checked"`
	WarningsRaised int `json:"warnings_raised"`
	BreachesRaised int `json:"breaches_raised"`
}

// SchedulerStatusResponse is the diagnostic view of the scheduler.
type SchedulerStatusResponse struct {
	Running        bool           `json:"running"`
	LastRunAt      *time.Time     `json:"last_run_at,omitempty"`
	LastSweep      *SweepResponse `json:"last_sweep,omitempty"`
	SweepsTotal    int64          `json:"sweeps_total"`
	TicksSkipped   int64          `json:"ticks_skipped"`
	WarningsRaised int64          `json:"warnings_raised"`
	BreachesRaised int64          `json:"breaches_raised"`
}
