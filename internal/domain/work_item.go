package domain

import "time"

// LifecycleStatus enumerates workflow lifecycle states.
type LifecycleStatus string

const (
	LifecycleActive    LifecycleStatus = "ACTIVE"
	LifecycleCompleted LifecycleStatus = "COMPLETED"
	LifecycleCancelled LifecycleStatus = "CANCELLED"
	LifecyclePaused    LifecycleStatus = "PAUSED"
)

// SlaStatus enumerates persisted deadline states. WARNING and OVERDUE are only
// meaningful while the item is ACTIVE and has a due date.
type SlaStatus string

const (
	SlaStatusOnTrack SlaStatus = "ON_TRACK"
	SlaStatusWarning SlaStatus = "WARNING"
	SlaStatusOverdue SlaStatus = "OVERDUE"
)

// WorkItem is one trackable unit of compliance work: a case or investigation
// workflow instance carrying a deadline and current stage.
type WorkItem struct {
	ID            string
	TenantID      string
	EntityType    string
	EntityID      string
	Stage         string
	Lifecycle     LifecycleStatus
	DueDate       *time.Time
	SlaStatus     SlaStatus
	SlaBreachedAt *time.Time
	AssigneeID    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SlaConfig holds per-work-type deadline thresholds. Immutable once loaded for
// the duration of a sweep.
type SlaConfig struct {
	WorkType               string
	TotalDays              int
	WarningThresholdPct    float64
	CriticalThresholdHours float64
}

// Default SLA thresholds applied when no per-work-type row exists.
const (
	DefaultSlaTotalDays  = 14
	DefaultWarningPct    = 80.0
	DefaultCriticalHours = 24.0
)

// DefaultSlaConfig returns the fallback thresholds for a work type.
func DefaultSlaConfig(workType string) SlaConfig {
	return SlaConfig{
		WorkType:               workType,
		TotalDays:              DefaultSlaTotalDays,
		WarningThresholdPct:    DefaultWarningPct,
		CriticalThresholdHours: DefaultCriticalHours,
	}
}
