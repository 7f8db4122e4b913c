// Package anim provides the partial-reveal animation primitives that
// drive stream line playback.
package anim

// Animation is a time-boxed effect positioned by an alpha in [0, 1].
// The driver calls Start once, then Apply with the raw (pre-easing)
// alpha, then Finish when the animation completes. Each animation owns
// its easing.
type Animation interface {
	RunTime() float64
	Start()
	Apply(alpha float64)
	Finish()
}

// View is the visual handle an animation mutates: a path whose visible
// portion is the fractional window [lo, hi] of its arc length.
type View interface {
	SetWindow(lo, hi float64)
}

// PassingFlash sweeps a window of width timeWidth along the path, from
// before the start to past the end, so the flash fully enters and
// fully leaves. Stateless: Apply may be called with any alpha order,
// which lets a wrapped phase re-position it every frame.
type PassingFlash struct {
	view      View
	runTime   float64
	timeWidth float64
	ease      Ease
}

// NewPassingFlash builds a flash over the given view. A nil ease means
// Linear.
func NewPassingFlash(view View, runTime, timeWidth float64, ease Ease) *PassingFlash {
	if ease == nil {
		ease = Linear
	}
	return &PassingFlash{view: view, runTime: runTime, timeWidth: timeWidth, ease: ease}
}

func (a *PassingFlash) RunTime() float64 { return a.runTime }

func (a *PassingFlash) Start() { a.Apply(0) }

// Apply positions the window. The upper edge runs over [0, 1+timeWidth]
// so the lower edge reaches 1 exactly at alpha 1; both edges clamp to
// the path.
func (a *PassingFlash) Apply(alpha float64) {
	upper := a.ease(alpha) * (1 + a.timeWidth)
	lower := upper - a.timeWidth
	a.view.SetWindow(max(lower, 0), min(upper, 1))
}

func (a *PassingFlash) Finish() { a.Apply(1) }

// Create reveals the path from its start: the visible window grows
// from [0, 0] to the whole path.
type Create struct {
	view    View
	runTime float64
	ease    Ease
}

// NewCreate builds a reveal over the given view. A nil ease means
// Linear.
func NewCreate(view View, runTime float64, ease Ease) *Create {
	if ease == nil {
		ease = Linear
	}
	return &Create{view: view, runTime: runTime, ease: ease}
}

func (a *Create) RunTime() float64 { return a.runTime }

func (a *Create) Start() { a.Apply(0) }

func (a *Create) Apply(alpha float64) {
	a.view.SetWindow(0, a.ease(alpha))
}

func (a *Create) Finish() { a.Apply(1) }

// AlphaFunc adapts a bare callback into an animation. The callback
// receives the raw alpha; Start passes 0 and Finish passes 1, so a
// callback keying on the endpoints always sees both.
type AlphaFunc struct {
	fn      func(alpha float64)
	runTime float64
}

// FromAlphaFunc wraps fn as an animation of the given run time.
func FromAlphaFunc(fn func(alpha float64), runTime float64) *AlphaFunc {
	return &AlphaFunc{fn: fn, runTime: runTime}
}

func (a *AlphaFunc) RunTime() float64 { return a.runTime }

func (a *AlphaFunc) Start() { a.fn(0) }

func (a *AlphaFunc) Apply(alpha float64) { a.fn(alpha) }

func (a *AlphaFunc) Finish() { a.fn(1) }
