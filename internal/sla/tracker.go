package sla

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/events"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/observability"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/repository"
)

// SweepResult aggregates transition counts for one full pass.
type SweepResult struct {
	Checked        int `json:"checked"`
	WarningsRaised int `json:"warnings_raised"`
	BreachesRaised int `json:"breaches_raised"`
}

// TrackerDependencies bundles collaborators.
type TrackerDependencies struct {
	ItemRepo   repository.WorkItemRepository
	ConfigRepo repository.SlaConfigRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// Tracker runs full SLA evaluation passes over active timed work items.
type Tracker struct {
	items        repository.WorkItemRepository
	configs      repository.SlaConfigRepository
	dispatcher   events.Dispatcher
	metrics      *observability.Metrics
	logger       *zap.Logger
	pollInterval time.Duration
	now          func() time.Time
}

// NewTracker creates the tracker. pollInterval is the sweep cadence; it bounds
// the window used to detect the sweep where an overdue item just crossed into
// critical.
func NewTracker(deps TrackerDependencies, pollInterval time.Duration) *Tracker {
	return &Tracker{
		items:        deps.ItemRepo,
		configs:      deps.ConfigRepo,
		dispatcher:   deps.Dispatcher,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
		pollInterval: pollInterval,
		now:          time.Now,
	}
}

// Sweep evaluates every ACTIVE item with a due date, persists status
// transitions and emits events on transition boundaries. Per-item failures are
// logged and skipped; they never abort the pass. Persistence always happens
// before event emission, so a publish failure can lose a notification but
// never a status update.
func (t *Tracker) Sweep(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	items, err := t.items.ListActiveTimed(ctx)
	if err != nil {
		return result, err
	}

	now := t.now()
	for i := range items {
		item := &items[i]
		if item.DueDate == nil {
			continue
		}
		result.Checked++

		cfg, err := t.configs.GetByWorkType(ctx, item.EntityType)
		if err != nil {
			t.logger.Warn("sla config lookup failed, skipping item",
				zap.String("item_id", item.ID), zap.Error(err))
			continue
		}

		calc := Calculate(now, *item.DueDate, &item.CreatedAt, cfg)
		newStatus := calc.PersistedStatus()
		prevStatus := item.SlaStatus

		if newStatus == prevStatus {
			if t.justWentCritical(prevStatus, calc, cfg) {
				t.emitBreach(ctx, item, calc, events.BreachLevelCritical)
				result.BreachesRaised++
			}
			continue
		}

		var breachedAt *time.Time
		if newStatus == domain.SlaStatusOverdue && prevStatus != domain.SlaStatusOverdue {
			breachedAt = calc.BreachedAt
		}
		if err := t.items.UpdateSlaStatus(ctx, item.ID, newStatus, breachedAt); err != nil {
			t.logger.Warn("sla status update failed, skipping item",
				zap.String("item_id", item.ID),
				zap.String("new_status", string(newStatus)),
				zap.Error(err))
			continue
		}

		t.logger.Info("sla status transition",
			zap.String("item_id", item.ID),
			zap.String("from", string(prevStatus)),
			zap.String("to", string(newStatus)))

		switch {
		case prevStatus == domain.SlaStatusOnTrack && newStatus == domain.SlaStatusWarning:
			t.emitWarning(ctx, item, calc)
			result.WarningsRaised++
		case newStatus == domain.SlaStatusOverdue:
			level := events.BreachLevelBreached
			if calc.Status == CalcCritical {
				level = events.BreachLevelCritical
			}
			t.emitBreach(ctx, item, calc, level)
			result.BreachesRaised++
		}
	}

	t.metrics.RecordSweep(result.Checked, result.WarningsRaised, result.BreachesRaised)
	return result, nil
}

// justWentCritical reports whether an already-OVERDUE item crossed the
// critical threshold since the previous sweep. The breached-to-critical
// escalation has no persisted state of its own, so it is detected by checking
// that the observed overshoot is within one poll interval of the threshold.
func (t *Tracker) justWentCritical(prevStatus domain.SlaStatus, calc Calculation, cfg domain.SlaConfig) bool {
	if prevStatus != domain.SlaStatusOverdue || calc.Status != CalcCritical {
		return false
	}
	criticalHours := cfg.CriticalThresholdHours
	if criticalHours <= 0 {
		criticalHours = domain.DefaultCriticalHours
	}
	hoursOverdue := -calc.RemainingHours
	return hoursOverdue-criticalHours <= t.pollInterval.Hours()
}

func (t *Tracker) emitWarning(ctx context.Context, item *domain.WorkItem, calc Calculation) {
	t.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSlaWarningRaised,
		TenantID:  item.TenantID,
		ItemID:    item.ID,
		Timestamp: t.now(),
		Payload: events.SlaWarningPayload{
			Stage:       item.Stage,
			DueDate:     calc.DueDate,
			PercentUsed: calc.PercentUsed,
		},
	})
}

func (t *Tracker) emitBreach(ctx context.Context, item *domain.WorkItem, calc Calculation, level events.BreachLevel) {
	t.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSlaBreachRaised,
		TenantID:  item.TenantID,
		ItemID:    item.ID,
		Timestamp: t.now(),
		Payload: events.SlaBreachPayload{
			Stage:        item.Stage,
			Level:        level,
			HoursOverdue: -calc.RemainingHours,
		},
	})
}

// publish swallows emission failures. The status update preceding it must
// never be rolled back or retried because a notification channel misbehaved.
func (t *Tracker) publish(ctx context.Context, event events.Event) {
	if t.dispatcher == nil {
		return
	}
	if err := t.dispatcher.Publish(ctx, event); err != nil {
		t.logger.Warn("event publish failed",
			zap.String("event_type", string(event.Type)),
			zap.String("item_id", event.ItemID),
			zap.Error(err))
	}
}
