// Package scene assembles the demo: a stream line set flowing over a
// Lyapunov stability example until its region of attraction is traced.
package scene

import (
	"log/slog"

	"github.com/pthm-cable/fieldlines/anim"
	"github.com/pthm-cable/fieldlines/camera"
	"github.com/pthm-cable/fieldlines/config"
	"github.com/pthm-cable/fieldlines/flow"
	"github.com/pthm-cable/fieldlines/renderer"
	"github.com/pthm-cable/fieldlines/stage"
	"github.com/pthm-cable/fieldlines/streamline"
)

// Demo phases. The flow runs for the set's virtual time over flow
// speed, winds down without a visible jump, then the region of
// attraction is traced.
const (
	phaseFlowing = iota
	phaseEnding
	phaseRevealed
)

// Seconds to trace the region-of-attraction ellipse.
const roaTraceTime = 1.0

// Scene owns the staged line set, the camera and the demo state
// machine.
type Scene struct {
	cfg   *config.Config
	stage *stage.Stage
	lines *flow.Lines
	set   *streamline.Set
	cam   *camera.Camera
	paths *renderer.PathRenderer

	phase    int
	paused   bool
	elapsed  float64
	flowTime float64

	roaProgress float64
}

// New builds the line set, stages it and starts the warm-up flow.
func New(cfg *config.Config) (*Scene, error) {
	set, err := BuildSet(cfg)
	if err != nil {
		return nil, err
	}
	style, err := Style(cfg)
	if err != nil {
		return nil, err
	}

	st := stage.New()
	s := &Scene{
		cfg:   cfg,
		stage: st,
		set:   set,
		lines: flow.NewLines(st, set, cfg.Derived.Stroke32, cfg.Style.Opacity, cfg.Lines.Seed),
		cam:   camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32),
		paths: renderer.NewPathRenderer(style),
	}
	if err := s.startFlow(); err != nil {
		return nil, err
	}

	slog.Info("scene ready",
		"field", cfg.Scene.Field,
		"lines", len(set.Lines),
		"flow_time", s.flowTime)
	return s, nil
}

// startFlow arms the continuous flow and resets the demo clock.
func (s *Scene) startFlow() error {
	err := s.lines.StartAnimation(flow.Options{
		WarmUp:    s.cfg.Flow.WarmUp,
		Speed:     s.cfg.Flow.Speed,
		TimeWidth: s.cfg.Flow.TimeWidth,
	})
	if err != nil {
		return err
	}
	s.phase = phaseFlowing
	s.elapsed = 0
	s.flowTime = s.set.VirtualTime / s.cfg.Flow.Speed
	s.roaProgress = 0
	return nil
}

// Update advances one frame of the windowed demo.
func (s *Scene) Update() {
	s.handleInput()
	if s.paused {
		return
	}
	s.step(s.cfg.Derived.FrameDT)
}

// UpdateHeadless advances one frame without touching input state.
func (s *Scene) UpdateHeadless() {
	s.step(s.cfg.Derived.FrameDT)
}

// step runs one fixed tick plus the phase transitions hanging off it.
// A fixed delta keeps runs reproducible across frame hitches.
func (s *Scene) step(dt float64) {
	s.stage.Tick(dt)
	s.elapsed += dt

	if s.phase == phaseFlowing && s.elapsed >= s.flowTime {
		s.endFlow()
	}
	if s.phase == phaseEnding && !s.stage.Animating() {
		s.reveal()
	}
}

// endFlow plays the wind-down: every flash finishes its current sweep,
// then each line is redrawn to full visibility.
func (s *Scene) endFlow() {
	windDown, err := s.lines.EndAnimation()
	if err != nil {
		slog.Warn("end flow", "error", err)
		return
	}
	s.stage.Play(windDown)
	s.phase = phaseEnding
}

// reveal traces the region-of-attraction ellipse.
func (s *Scene) reveal() {
	s.phase = phaseRevealed
	s.stage.Play(anim.FromAlphaFunc(func(alpha float64) {
		s.roaProgress = alpha
	}, roaTraceTime))
}

// Lines returns the flow container, e.g. for stats collection.
func (s *Scene) Lines() *flow.Lines {
	return s.lines
}

// Set returns the built stream line set.
func (s *Scene) Set() *streamline.Set {
	return s.set
}

// Elapsed returns seconds of demo time advanced so far.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// Done reports whether the demo reached its final still frame: flow
// wound down and the region of attraction fully traced.
func (s *Scene) Done() bool {
	return s.phase == phaseRevealed && !s.stage.Animating()
}

// Unload releases staged entities and any running playback.
func (s *Scene) Unload() {
	s.stage.Clear()
}
