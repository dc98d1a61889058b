package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for the engine and HTTP surface.
type Metrics struct {
	mu              sync.Mutex
	requestCount    map[string]int64
	errorCount      map[string]int64
	resolutionCount map[string]int64
	sweepCount      int64
	sweepSkipped    int64
	warningsRaised  int64
	breachesRaised  int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:    make(map[string]int64),
		errorCount:      make(map[string]int64),
		resolutionCount: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordSweep accumulates one sweep's transition counts.
func (m *Metrics) RecordSweep(checked, warnings, breaches int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepCount++
	m.warningsRaised += int64(warnings)
	m.breachesRaised += int64(breaches)
}

// RecordSweepSkipped counts ticks dropped by the overlap guard.
func (m *Metrics) RecordSweepSkipped() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepSkipped++
}

// RecordResolution counts assignment resolutions by strategy and outcome.
func (m *Metrics) RecordResolution(strategy string, matched bool) {
	if m == nil {
		return
	}
	key := strategy + "|" + strconv.FormatBool(matched)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolutionCount[key]++
}

// SweepCounts returns the accumulated sweep counters.
func (m *Metrics) SweepCounts() (sweeps, skipped, warnings, breaches int64) {
	if m == nil {
		return 0, 0, 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepCount, m.sweepSkipped, m.warningsRaised, m.breachesRaised
}
