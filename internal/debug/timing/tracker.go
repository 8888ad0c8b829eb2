package timing

import (
	"sort"
	"sync"
	"time"
)

// Tracker records how long named operations take.
type Tracker struct {
	timings map[string][]time.Duration
	mu      sync.RWMutex
	enabled bool
	now     func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		timings: make(map[string][]time.Duration),
		enabled: true,
		now:     time.Now,
	}
}

// Start begins timing operation. The returned function records and returns
// the elapsed time; it is safe to call once.
func (tt *Tracker) Start(operation string) func() time.Duration {
	start := tt.now()
	return func() time.Duration {
		duration := tt.now().Sub(start)
		tt.record(operation, duration)
		return duration
	}
}

func (tt *Tracker) record(operation string, duration time.Duration) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if !tt.enabled {
		return
	}
	tt.timings[operation] = append(tt.timings[operation], duration)
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) GetAverageTime(operation string) time.Duration {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, duration := range timings {
		total += duration
	}

	return total / time.Duration(len(timings))
}

// Operations lists every operation with at least one sample, sorted.
func (tt *Tracker) Operations() []string {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	ops := make([]string, 0, len(tt.timings))
	for op := range tt.timings {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// Summary maps each operation to its average duration, for logging.
func (tt *Tracker) Summary() map[string]interface{} {
	summary := make(map[string]interface{})
	for _, op := range tt.Operations() {
		summary[op] = tt.GetAverageTime(op).String()
	}
	return summary
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}
