// Package export writes experiment output: line geometry, flow
// statistics, and the config snapshot.
package export

import "log/slog"

// FlowStats holds aggregated flow animation statistics for a time window.
type FlowStats struct {
	WindowEndTick int     `csv:"window_end"`
	ElapsedSec    float64 `csv:"elapsed"`
	Ticks         int     `csv:"ticks"` // Ticks in this window
	Wraps         int     `csv:"wraps"` // Phase wraps during this window

	// Phase distribution at window end
	PhaseMean float64 `csv:"phase_mean"`
	PhaseMin  float64 `csv:"phase_min"`
	PhaseMax  float64 `csv:"phase_max"`

	// Lines with a nonempty visibility window at window end
	VisibleLines int `csv:"visible_lines"`
}

// Collector accumulates flow activity within time windows and produces FlowStats.
type Collector struct {
	windowTicks int
	dt          float64

	windowStart int
	tick        int
	wraps       int
	prev        []float64
}

// NewCollector creates a new flow stats collector.
// windowSec: how long each stats window lasts in seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowSec, dt float64) *Collector {
	ticksPerWindow := int(windowSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowTicks: ticksPerWindow,
		dt:          dt,
	}
}

// Observe records one tick's phases. A phase moving backwards means
// the flash wrapped around the virtual time.
func (c *Collector) Observe(phases []float64) {
	c.tick++
	if c.prev != nil {
		for i, p := range phases {
			if i < len(c.prev) && p < c.prev[i] {
				c.wraps++
			}
		}
	}
	c.prev = append(c.prev[:0], phases...)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush() bool {
	return c.tick-c.windowStart >= c.windowTicks
}

// Flush produces a FlowStats and resets counters for the next window.
// The caller provides the phases and visible line count at window end.
func (c *Collector) Flush(phases []float64, visibleLines int) FlowStats {
	mean, lo, hi := ComputePhaseStats(phases)

	stats := FlowStats{
		WindowEndTick: c.tick,
		ElapsedSec:    float64(c.tick) * c.dt,
		Ticks:         c.tick - c.windowStart,
		Wraps:         c.wraps,
		PhaseMean:     mean,
		PhaseMin:      lo,
		PhaseMax:      hi,
		VisibleLines:  visibleLines,
	}

	c.windowStart = c.tick
	c.wraps = 0

	return stats
}

// ComputePhaseStats calculates mean, min and max from phase values.
func ComputePhaseStats(values []float64) (mean, lo, hi float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0
	}

	lo, hi = values[0], values[0]
	var sum float64
	for _, v := range values {
		sum += v
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return sum / float64(n), lo, hi
}

// LogValue implements slog.LogValuer for structured logging.
func (s FlowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("elapsed", s.ElapsedSec),
		slog.Int("ticks", s.Ticks),
		slog.Int("wraps", s.Wraps),
		slog.Float64("phase_mean", s.PhaseMean),
		slog.Float64("phase_min", s.PhaseMin),
		slog.Float64("phase_max", s.PhaseMax),
		slog.Int("visible_lines", s.VisibleLines),
	)
}

// LogStats logs the window stats using slog.
func (s FlowStats) LogStats() {
	slog.Info("flow stats",
		"window_end", s.WindowEndTick,
		"elapsed", s.ElapsedSec,
		"ticks", s.Ticks,
		"wraps", s.Wraps,
		"phase_mean", s.PhaseMean,
		"phase_min", s.PhaseMin,
		"phase_max", s.PhaseMax,
		"visible_lines", s.VisibleLines,
	)
}
