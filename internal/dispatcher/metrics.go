package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/selex/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	actions map[string]*ActionMetrics

	totalDispatches uint64
	totalPanics     uint64
	totalDuration   time.Duration
}

// ActionMetrics holds metrics for a specific action.
type ActionMetrics struct {
	Name          string
	DispatchCount uint64
	OKCount       uint64
	NoOpCount     uint64
	ErrorCount    uint64
	CancelCount   uint64
	TotalDuration time.Duration
	LastStatus    handler.ResultStatus
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		actions: make(map[string]*ActionMetrics),
	}
}

// RecordDispatch records a dispatch outcome. Duration includes time spent
// waiting on the prompt.
func (m *Metrics) RecordDispatch(actionName string, duration time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	am := m.actions[actionName]
	if am == nil {
		am = &ActionMetrics{Name: actionName}
		m.actions[actionName] = am
	}

	am.DispatchCount++
	am.TotalDuration += duration
	am.LastStatus = status

	switch status {
	case handler.StatusOK:
		am.OKCount++
	case handler.StatusNoOp:
		am.NoOpCount++
	case handler.StatusError:
		am.ErrorCount++
	case handler.StatusCancelled:
		am.CancelCount++
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(actionName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// AverageDuration returns the average dispatch duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// ActionStats returns a copy of the metrics for one action, or nil.
func (m *Metrics) ActionStats(actionName string) *ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	am := m.actions[actionName]
	if am == nil {
		return nil
	}
	c := *am
	return &c
}

// All returns copies of every action's metrics, most dispatched first.
func (m *Metrics) All() []ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ActionMetrics, 0, len(m.actions))
	for _, am := range m.actions {
		out = append(out, *am)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DispatchCount != out[j].DispatchCount {
			return out[i].DispatchCount > out[j].DispatchCount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions = make(map[string]*ActionMetrics)
	m.totalDispatches = 0
	m.totalPanics = 0
	m.totalDuration = 0
}
