package sla

import (
	"time"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
)

// CalcStatus is the calculated time-decay band for a deadline.
type CalcStatus string

const (
	CalcOnTrack  CalcStatus = "on_track"
	CalcWarning  CalcStatus = "warning"
	CalcBreached CalcStatus = "breached"
	CalcCritical CalcStatus = "critical"
)

// Calculation is the derived deadline state for one item at one instant.
// Recomputed every sweep, never persisted.
type Calculation struct {
	Status         CalcStatus
	DueDate        time.Time
	RemainingHours float64
	PercentUsed    float64
	BreachedAt     *time.Time
}

// Calculate derives the current time-decay status for a deadline. startDate
// may be nil; the start is then reconstructed as dueDate minus the allotted
// duration. The caller supplies now so the function stays deterministic.
func Calculate(now, dueDate time.Time, startDate *time.Time, cfg domain.SlaConfig) Calculation {
	totalDays := cfg.TotalDays
	if totalDays <= 0 {
		totalDays = domain.DefaultSlaTotalDays
	}
	warningPct := cfg.WarningThresholdPct
	if warningPct <= 0 {
		warningPct = domain.DefaultWarningPct
	}
	criticalHours := cfg.CriticalThresholdHours
	if criticalHours <= 0 {
		criticalHours = domain.DefaultCriticalHours
	}

	totalDuration := time.Duration(totalDays) * 24 * time.Hour
	start := dueDate.Add(-totalDuration)
	if startDate != nil {
		start = *startDate
	}

	elapsed := now.Sub(start)
	percentUsed := clamp(0, 200, float64(elapsed)/float64(totalDuration)*100)
	remainingHours := dueDate.Sub(now).Hours()

	calc := Calculation{
		DueDate:        dueDate,
		RemainingHours: remainingHours,
		PercentUsed:    percentUsed,
	}

	switch {
	case remainingHours <= -criticalHours:
		calc.Status = CalcCritical
	case remainingHours <= 0:
		calc.Status = CalcBreached
	case percentUsed >= warningPct:
		calc.Status = CalcWarning
	default:
		calc.Status = CalcOnTrack
	}

	if calc.Status == CalcBreached || calc.Status == CalcCritical {
		breachedAt := dueDate
		calc.BreachedAt = &breachedAt
	}

	return calc
}

// PersistedStatus maps a calculated band to the persisted three-state enum.
// The breached/critical distinction is surfaced through events, not storage.
func (c Calculation) PersistedStatus() domain.SlaStatus {
	switch c.Status {
	case CalcWarning:
		return domain.SlaStatusWarning
	case CalcBreached, CalcCritical:
		return domain.SlaStatusOverdue
	default:
		return domain.SlaStatusOnTrack
	}
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
