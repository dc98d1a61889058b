package sla

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/events"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/observability"
)

type fakeItemRepo struct {
	items      []domain.WorkItem
	listErr    error
	failUpdate map[string]error
	updates    []string
}

func (f *fakeItemRepo) ListActiveTimed(ctx context.Context) ([]domain.WorkItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.WorkItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeItemRepo) UpdateSlaStatus(ctx context.Context, id string, status domain.SlaStatus, breachedAt *time.Time) error {
	if err, ok := f.failUpdate[id]; ok {
		return err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].SlaStatus = status
			if breachedAt != nil {
				f.items[i].SlaBreachedAt = breachedAt
			}
		}
	}
	f.updates = append(f.updates, id)
	return nil
}

func (f *fakeItemRepo) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, errors.New("not found")
}

type fakeConfigRepo struct {
	configs map[string]domain.SlaConfig
	errFor  map[string]error
}

func (f *fakeConfigRepo) GetByWorkType(ctx context.Context, workType string) (domain.SlaConfig, error) {
	if err, ok := f.errFor[workType]; ok {
		return domain.SlaConfig{}, err
	}
	if cfg, ok := f.configs[workType]; ok {
		return cfg, nil
	}
	return domain.DefaultSlaConfig(workType), nil
}

type fakeDispatcher struct {
	published  []events.Event
	publishErr error
}

func (f *fakeDispatcher) Publish(ctx context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return f.publishErr
}

func (f *fakeDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (f *fakeDispatcher) byType(eventType events.EventType) []events.Event {
	var out []events.Event
	for _, e := range f.published {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func newTestTracker(items *fakeItemRepo, configs *fakeConfigRepo, dispatcher *fakeDispatcher) *Tracker {
	tracker := NewTracker(TrackerDependencies{
		ItemRepo:   items,
		ConfigRepo: configs,
		Dispatcher: dispatcher,
		Metrics:    observability.NewMetrics(),
		Logger:     zap.NewNop(),
	}, 5*time.Minute)
	tracker.now = func() time.Time { return testNow }
	return tracker
}

func activeItem(id string, status domain.SlaStatus, due time.Time, created time.Time) domain.WorkItem {
	return domain.WorkItem{
		ID:         id,
		TenantID:   "tenant-1",
		EntityType: "CASE",
		EntityID:   "entity-" + id,
		Stage:      "investigation",
		Lifecycle:  domain.LifecycleActive,
		DueDate:    &due,
		SlaStatus:  status,
		CreatedAt:  created,
	}
}

func TestSweepRaisesWarningOnTransition(t *testing.T) {
	items := &fakeItemRepo{items: []domain.WorkItem{
		activeItem("w1", domain.SlaStatusOnTrack, testNow.Add(40*time.Minute), testNow.Add(-330*time.Hour)),
	}}
	dispatcher := &fakeDispatcher{}
	tracker := newTestTracker(items, &fakeConfigRepo{}, dispatcher)

	result, err := tracker.Sweep(context.Background())

	require.NoError(t, err)
	require.Equal(t, SweepResult{Checked: 1, WarningsRaised: 1}, result)
	require.Equal(t, domain.SlaStatusWarning, items.items[0].SlaStatus)

	warnings := dispatcher.byType(events.EventSlaWarningRaised)
	require.Len(t, warnings, 1)
	payload, ok := warnings[0].Payload.(events.SlaWarningPayload)
	require.True(t, ok)
	require.Equal(t, "investigation", payload.Stage)
	require.InDelta(t, 98.2, payload.PercentUsed, 0.1)
}

func TestSweepRaisesBreachOnOverdue(t *testing.T) {
	items := &fakeItemRepo{items: []domain.WorkItem{
		activeItem("w1", domain.SlaStatusWarning, testNow.Add(-1*time.Hour), testNow.Add(-330*time.Hour)),
	}}
	dispatcher := &fakeDispatcher{}
	tracker := newTestTracker(items, &fakeConfigRepo{}, dispatcher)

	result, err := tracker.Sweep(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, result.BreachesRaised)
	require.Equal(t, domain.SlaStatusOverdue, items.items[0].SlaStatus)
	require.NotNil(t, items.items[0].SlaBreachedAt)

	breaches := dispatcher.byType(events.EventSlaBreachRaised)
	require.Len(t, breaches, 1)
	payload := breaches[0].Payload.(events.SlaBreachPayload)
	require.Equal(t, events.BreachLevelBreached, payload.Level)
	require.InDelta(t, 1.0, payload.HoursOverdue, 0.001)
}

func TestSweepEmitsCriticalWhenEnteringOverdueDeep(t *testing.T) {
	items := &fakeItemRepo{items: []domain.WorkItem{
		activeItem("w1", domain.SlaStatusWarning, testNow.Add(-30*time.Hour), testNow.Add(-400*time.Hour)),
	}}
	dispatcher := &fakeDispatcher{}
	tracker := newTestTracker(items, &fakeConfigRepo{}, dispatcher)

	_, err := tracker.Sweep(context.Background())

	require.NoError(t, err)
	breaches := dispatcher.byType(events.EventSlaBreachRaised)
	require.Len(t, breaches, 1)
	require.Equal(t, events.BreachLevelCritical, breaches[0].Payload.(events.SlaBreachPayload).Level)
}

func TestSweepEscalatesToCriticalJustAfterThreshold(t *testing.T) {
	// Already persisted OVERDUE, crossed the 24h critical line 2 minutes ago.
	items := &fakeItemRepo{items: []domain.WorkItem{
		activeItem("w1", domain.SlaStatusOverdue, testNow.Add(-24*time.Hour-2*time.Minute), testNow.Add(-400*time.Hour)),
	}}
	dispatcher := &fakeDispatcher{}
	tracker := newTestTracker(items, &fakeConfigRepo{}, dispatcher)

	result, err := tracker.Sweep(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, result.BreachesRaised)
	require.Empty(t, items.updates, "no persisted state change for the escalation")

	breaches := dispatcher.byType(events.EventSlaBreachRaised)
	require.Len(t, breaches, 1)
	require.Equal(t, events.BreachLevelCritical, breaches[0].Payload.(events.SlaBreachPayload).Level)
}

func TestSweepDoesNotReEscalateLongCriticalItems(t *testing.T) {
	// Crossed critical two days ago; the escalation sweep already happened.
	items := &fakeItemRepo{items: []domain.WorkItem{
		activeItem("w1", domain.SlaStatusOverdue, testNow.Add(-72*time.Hour), testNow.Add(-500*time.Hour)),
	}}
	dispatcher := &fakeDispatcher{}
	tracker := newTestTracker(items, &fakeConfigRepo{}, dispatcher)

	result, err := tracker.Sweep(context.Background())

	require.NoError(t, err)
	require.Zero(t, result.BreachesRaised)
	require.Empty(t, dispatcher.published)
}

func TestSweepIsIdempotentWithoutDataChange(t *testing.T) {
	items := &fakeItemRepo{items: []domain.WorkItem{
		activeItem("w1", domain.SlaStatusOnTrack, testNow.Add(40*time.Minute), testNow.Add(-330*time.Hour)),
		activeItem("w2", domain.SlaStatusOnTrack, testNow.Add(-1*time.Hour), testNow.Add(-330*time.Hour)),
	}}
	dispatcher := &fakeDispatcher{}
	tracker := newTestTracker(items, &fakeConfigRepo{}, dispatcher)

	first, err := tracker.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.WarningsRaised)
	require.Equal(t, 1, first.BreachesRaised)

	emitted := len(dispatcher.published)
	second, err := tracker.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, second.Checked)
	require.Zero(t, second.WarningsRaised)
	require.Zero(t, second.BreachesRaised)
	require.Len(t, dispatcher.published, emitted, "second sweep must emit nothing")
}

func TestSweepSkipsItemOnPersistenceError(t *testing.T) {
	items := &fakeItemRepo{
		items: []domain.WorkItem{
			activeItem("w1", domain.SlaStatusOnTrack, testNow.Add(-1*time.Hour), testNow.Add(-330*time.Hour)),
			activeItem("w2", domain.SlaStatusOnTrack, testNow.Add(-2*time.Hour), testNow.Add(-330*time.Hour)),
		},
		failUpdate: map[string]error{"w1": errors.New("connection reset")},
	}
	dispatcher := &fakeDispatcher{}
	tracker := newTestTracker(items, &fakeConfigRepo{}, dispatcher)

	result, err := tracker.Sweep(context.Background())

	require.NoError(t, err)
	require.Equal(t, 2, result.Checked)
	require.Equal(t, 1, result.BreachesRaised, "only the persisted item emits")
	require.Equal(t, domain.SlaStatusOnTrack, items.items[0].SlaStatus)
	require.Equal(t, domain.SlaStatusOverdue, items.items[1].SlaStatus)

	breaches := dispatcher.byType(events.EventSlaBreachRaised)
	require.Len(t, breaches, 1)
	require.Equal(t, "w2", breaches[0].ItemID)
}

func TestSweepSkipsItemOnConfigError(t *testing.T) {
	items := &fakeItemRepo{items: []domain.WorkItem{
		activeItem("w1", domain.SlaStatusOnTrack, testNow.Add(-1*time.Hour), testNow.Add(-330*time.Hour)),
	}}
	configs := &fakeConfigRepo{errFor: map[string]error{"CASE": errors.New("boom")}}
	dispatcher := &fakeDispatcher{}
	tracker := newTestTracker(items, configs, dispatcher)

	result, err := tracker.Sweep(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, result.Checked)
	require.Zero(t, result.BreachesRaised)
	require.Empty(t, items.updates)
}

func TestSweepPersistsDespitePublishFailure(t *testing.T) {
	items := &fakeItemRepo{items: []domain.WorkItem{
		activeItem("w1", domain.SlaStatusOnTrack, testNow.Add(-1*time.Hour), testNow.Add(-330*time.Hour)),
	}}
	dispatcher := &fakeDispatcher{publishErr: errors.New("broker down")}
	tracker := newTestTracker(items, &fakeConfigRepo{}, dispatcher)

	result, err := tracker.Sweep(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, result.BreachesRaised)
	require.Equal(t, domain.SlaStatusOverdue, items.items[0].SlaStatus)
}

func TestSweepPropagatesListFailure(t *testing.T) {
	items := &fakeItemRepo{listErr: errors.New("db down")}
	tracker := newTestTracker(items, &fakeConfigRepo{}, &fakeDispatcher{})

	_, err := tracker.Sweep(context.Background())

	require.Error(t, err)
}
