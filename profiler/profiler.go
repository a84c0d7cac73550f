// Package profiler records wall time per pipeline stage and custom numeric
// metrics, and prints them as an aligned summary.
package profiler

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"
	"text/tabwriter"
	"time"
)

// Profiler tracks operation timings and custom metrics. It is safe for
// concurrent use.
type Profiler struct {
	mu         sync.RWMutex
	startTime  time.Time
	maxSamples int

	order          []string
	operationTimes map[string]*TimeTracker
	customMetrics  map[string]*MetricTracker
}

// TimeTracker tracks operation timing statistics.
type TimeTracker struct {
	name      string
	durations []time.Duration
	totalTime time.Duration
	minTime   time.Duration
	maxTime   time.Duration
	count     int64
}

// MetricTracker tracks statistics for a custom metric.
type MetricTracker struct {
	name   string
	values []float64
	sum    float64
	min    float64
	max    float64
	count  int64
}

// Options configures the profiler.
type Options struct {
	// MaxSamples bounds the samples kept per operation or metric (default: 600).
	MaxSamples int
}

// OperationStats is a snapshot of one operation's timings.
type OperationStats struct {
	Name  string
	Count int64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	// PerSecond is how many operations fit in a second at the average time.
	PerSecond float64
}

// MetricStats is a snapshot of one custom metric.
type MetricStats struct {
	Name  string
	Count int64
	Min   float64
	Max   float64
	Avg   float64
	Last  float64
}

// MemoryStats is a snapshot of heap usage.
type MemoryStats struct {
	Alloc      uint64
	TotalAlloc uint64
	Sys        uint64
	HeapAlloc  uint64
	NumGC      uint32
	Goroutines int
}

// New creates a profiler.
//
// Arguments:
// - opts: Configuration options for the profiler
//
// Returns:
// - A ready Profiler
func New(opts Options) *Profiler {
	if opts.MaxSamples <= 0 {
		opts.MaxSamples = 600
	}
	return &Profiler{
		startTime:      time.Now(),
		maxSamples:     opts.MaxSamples,
		operationTimes: make(map[string]*TimeTracker),
		customMetrics:  make(map[string]*MetricTracker),
	}
}

// StartOperation begins timing an operation.
//
// Arguments:
// - name: The name of the operation to track
//
// Returns:
// - A function to call when the operation completes
//
// @example
// defer p.StartOperation("fsr")()
func (p *Profiler) StartOperation(name string) func() {
	start := time.Now()
	return func() {
		p.RecordDuration(name, time.Since(start))
	}
}

// RecordDuration adds one completed operation of the given duration.
func (p *Profiler) RecordDuration(name string, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tracker, exists := p.operationTimes[name]
	if !exists {
		tracker = &TimeTracker{
			name:    name,
			minTime: duration,
			maxTime: duration,
		}
		p.operationTimes[name] = tracker
		p.order = append(p.order, name)
	}

	tracker.durations = append(tracker.durations, duration)
	if len(tracker.durations) > p.maxSamples {
		// Remove oldest sample
		tracker.totalTime -= tracker.durations[0]
		tracker.durations = tracker.durations[1:]
	}

	tracker.totalTime += duration
	tracker.count++

	if duration < tracker.minTime {
		tracker.minTime = duration
	}
	if duration > tracker.maxTime {
		tracker.maxTime = duration
	}
}

// RecordMetric records a custom metric value.
//
// Arguments:
// - name: The name of the metric
// - value: The metric value to record
func (p *Profiler) RecordMetric(name string, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tracker, exists := p.customMetrics[name]
	if !exists {
		tracker = &MetricTracker{
			name: name,
			min:  value,
			max:  value,
		}
		p.customMetrics[name] = tracker
	}

	tracker.values = append(tracker.values, value)
	if len(tracker.values) > p.maxSamples {
		tracker.sum -= tracker.values[0]
		tracker.values = tracker.values[1:]
	}

	tracker.sum += value
	tracker.count++

	if value < tracker.min {
		tracker.min = value
	}
	if value > tracker.max {
		tracker.max = value
	}
}

// Stats returns the timing snapshot for an operation and whether it exists.
func (p *Profiler) Stats(name string) (OperationStats, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	tracker, ok := p.operationTimes[name]
	if !ok {
		return OperationStats{}, false
	}
	return tracker.snapshot(), true
}

// Operations returns every operation snapshot in first-recorded order.
func (p *Profiler) Operations() []OperationStats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]OperationStats, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.operationTimes[name].snapshot())
	}
	return out
}

// Metric returns the snapshot for a custom metric and whether it exists.
func (p *Profiler) Metric(name string) (MetricStats, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	tracker, ok := p.customMetrics[name]
	if !ok {
		return MetricStats{}, false
	}
	return tracker.snapshot(), true
}

// Uptime returns the time since the profiler was created.
func (p *Profiler) Uptime() time.Duration {
	return time.Since(p.startTime)
}

func (t *TimeTracker) snapshot() OperationStats {
	s := OperationStats{
		Name:  t.name,
		Count: t.count,
		Total: t.totalTime,
		Min:   t.minTime,
		Max:   t.maxTime,
	}
	if n := len(t.durations); n > 0 {
		s.Avg = t.totalTime / time.Duration(n)
	}
	if s.Avg > 0 {
		s.PerSecond = float64(time.Second) / float64(s.Avg)
	}
	return s
}

func (m *MetricTracker) snapshot() MetricStats {
	s := MetricStats{Name: m.name, Count: m.count, Min: m.min, Max: m.max}
	if n := len(m.values); n > 0 {
		s.Avg = m.sum / float64(n)
		s.Last = m.values[n-1]
	}
	return s
}

// MemorySnapshot reads the current runtime memory statistics.
func MemorySnapshot() MemoryStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return MemoryStats{
		Alloc:      ms.Alloc,
		TotalAlloc: ms.TotalAlloc,
		Sys:        ms.Sys,
		HeapAlloc:  ms.HeapAlloc,
		NumGC:      ms.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}
}

// Report writes operation timings, custom metrics and memory usage to w.
func (p *Profiler) Report(w io.Writer) error {
	ops := p.Operations()

	p.mu.RLock()
	metricNames := make([]string, 0, len(p.customMetrics))
	for name := range p.customMetrics {
		metricNames = append(metricNames, name)
	}
	p.mu.RUnlock()
	sort.Strings(metricNames)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Uptime:\t%v\n", p.Uptime().Truncate(time.Millisecond))

	if len(ops) > 0 {
		fmt.Fprintf(tw, "\nOPERATION TIMINGS:\n")
		for _, s := range ops {
			fmt.Fprintf(tw, "  %s\tavg=%v\tmin=%v\tmax=%v\tcount=%d\n",
				s.Name,
				s.Avg.Truncate(time.Microsecond),
				s.Min.Truncate(time.Microsecond),
				s.Max.Truncate(time.Microsecond),
				s.Count)
		}
	}

	if len(metricNames) > 0 {
		fmt.Fprintf(tw, "\nCUSTOM METRICS:\n")
		for _, name := range metricNames {
			s, _ := p.Metric(name)
			fmt.Fprintf(tw, "  %s\tavg=%.2f\tmin=%.2f\tmax=%.2f\tsamples=%d\n", name, s.Avg, s.Min, s.Max, s.Count)
		}
	}

	mem := MemorySnapshot()
	fmt.Fprintf(tw, "\nMEMORY USAGE:\n")
	fmt.Fprintf(tw, "  Heap Alloc:\t%s\n", formatBytes(mem.HeapAlloc))
	fmt.Fprintf(tw, "  Total Alloc:\t%s\n", formatBytes(mem.TotalAlloc))
	fmt.Fprintf(tw, "  Sys:\t%s\n", formatBytes(mem.Sys))
	fmt.Fprintf(tw, "  GC Cycles:\t%d\n", mem.NumGC)

	return tw.Flush()
}

// formatBytes formats byte counts in human-readable format.
func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
