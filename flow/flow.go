// Package flow drives the continuous flowing animation of a stream
// line set: randomized per-line flashes over a shared clock, with
// discontinuity-free start and end transitions.
package flow

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fieldlines/anim"
	"github.com/pthm-cable/fieldlines/stage"
	"github.com/pthm-cable/fieldlines/streamline"
)

// Options configure a continuous flow.
type Options struct {
	// WarmUp starts every phase negative, so lines fade in one by one
	// instead of flashing on in lockstep.
	WarmUp bool

	// Speed scales virtual time against real time. At 1, the flow
	// moves at the field's own magnitude along each path.
	Speed float64

	// TimeWidth is the fraction of a line lit while the flash passes.
	TimeWidth float64

	// Ease shapes each flash sweep. Nil means Linear.
	Ease anim.Ease
}

// DefaultOptions returns the standard continuous flow: warmed up,
// unit speed, a 0.3 flash width and linear sweeps.
func DefaultOptions() Options {
	return Options{WarmUp: true, Speed: 1, TimeWidth: 0.3}
}

// Lines owns the staged entities for one stream line set and animates
// them. The container moves between two states, idle and flowing;
// StartAnimation and EndAnimation are the only transitions.
type Lines struct {
	stage    *stage.Stage
	set      *streamline.Set
	entities []ecs.Entity
	rng      *rand.Rand

	updaterID int
	flowing   bool
	speed     float64
	timeWidth float64
}

// NewLines stages the set and returns its animation container. The
// seed feeds phase randomization and creation shuffling.
func NewLines(st *stage.Stage, set *streamline.Set, strokeWidth float32, opacity float64, seed int64) *Lines {
	return &Lines{
		stage:    st,
		set:      set,
		entities: st.Spawn(set, strokeWidth, opacity),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Entities returns the staged entities in line order. Callers must not
// mutate the slice.
func (l *Lines) Entities() []ecs.Entity {
	return l.entities
}

// Set returns the stream line set the container animates.
func (l *Lines) Set() *streamline.Set {
	return l.set
}

// Flowing reports whether a continuous flow is running.
func (l *Lines) Flowing() bool {
	return l.flowing
}

// Phases returns the current phase of every line in spawn order.
// Warm-up lines report negative phases.
func (l *Lines) Phases() []float64 {
	phases := make([]float64, len(l.entities))
	for i, e := range l.entities {
		phases[i] = l.stage.Flow(e).Phase
	}
	return phases
}

// VisibleCount returns how many lines currently show a nonempty
// window.
func (l *Lines) VisibleCount() int {
	n := 0
	for _, e := range l.entities {
		v := l.stage.Visual(e)
		if v.WindowHi > v.WindowLo && v.Opacity > 0 {
			n++
		}
	}
	return n
}

// visualView resolves an entity's visual component per call, so no
// component pointer is held across frames.
type visualView struct {
	stage  *stage.Stage
	entity ecs.Entity
}

func (v visualView) SetWindow(lo, hi float64) {
	v.stage.Visual(v.entity).SetWindow(lo, hi)
}

// StartAnimation attaches a flash to every line, assigns each a random
// phase in [0, virtualTime) and registers the shared per-frame
// updater. With warm-up the phases are negated, so each line stays
// hidden until its phase climbs past zero.
func (l *Lines) StartAnimation(opts Options) error {
	if l.flowing {
		return ErrAlreadyFlowing
	}
	if opts.Speed <= 0 {
		return fmt.Errorf("flow: speed must be positive, got %v", opts.Speed)
	}
	ease := opts.Ease
	if ease == nil {
		ease = anim.Linear
	}

	for _, e := range l.entities {
		fs := l.stage.Flow(e)
		fs.RunTime = l.stage.Path(e).Line.Duration / opts.Speed
		fs.Anim = anim.NewPassingFlash(visualView{stage: l.stage, entity: e}, fs.RunTime, opts.TimeWidth, ease)
		fs.Phase = l.rng.Float64() * l.set.VirtualTime
		if opts.WarmUp {
			fs.Phase *= -1
		}
		fs.Active = true
		fs.Anim.Apply(clamp01(fs.Phase / fs.RunTime))
	}

	l.speed = opts.Speed
	l.timeWidth = opts.TimeWidth
	l.updaterID = l.stage.AddUpdater(l.tick)
	l.flowing = true
	return nil
}

// tick advances every phase by the shared frame delta and repositions
// its flash. A phase wraps once per frame when it reaches virtual
// time; bounded frame deltas keep a single wrap sufficient.
func (l *Lines) tick(dt float64) {
	for _, e := range l.entities {
		fs := l.stage.Flow(e)
		fs.Phase += dt * l.speed
		if fs.Phase >= l.set.VirtualTime {
			fs.Phase -= l.set.VirtualTime
		}
		fs.Anim.Apply(clamp01(fs.Phase / fs.RunTime))
	}
}

// EndAnimation winds the flow down without a visible jump and returns
// the composite to play out. Lines still pre-rolling hold invisible
// for the rest of their warm-up and then reveal; flowing lines finish
// their current sweep at flow speed and then reveal. The reveal's run
// time is chosen so its initial speed matches the steady flow. The
// per-frame updater is unregistered before returning, leaving the
// container idle.
func (l *Lines) EndAnimation() (anim.Animation, error) {
	if !l.flowing {
		return nil, ErrNotFlowing
	}

	maxRunTime := l.set.VirtualTime / l.speed
	creationRunTime := maxRunTime / (1 + l.timeWidth) * anim.StartSpeed(anim.OutSine)

	l.stage.RemoveUpdater(l.updaterID)
	l.flowing = false

	animations := make([]anim.Animation, 0, len(l.entities))
	for _, e := range l.entities {
		fs := l.stage.Flow(e)
		create := anim.NewCreate(visualView{stage: l.stage, entity: e}, creationRunTime, anim.OutSine)

		if fs.Phase <= 0 {
			hold := l.holdInvisible(e, -fs.Phase/l.speed)
			animations = append(animations, anim.NewSuccession(hold, create))
			fs.Anim.Finish()
			fs.Anim = nil
			fs.Active = false
		} else {
			sweep := l.finishSweep(e)
			animations = append(animations, anim.NewSuccession(sweep, create))
		}
	}
	return anim.NewGroup(0, animations...), nil
}

// holdInvisible keeps a pre-rolling line hidden for the remainder of
// its warm-up, then restores its opacity for the reveal that follows.
func (l *Lines) holdInvisible(e ecs.Entity, runTime float64) anim.Animation {
	saved := -1.0
	return anim.FromAlphaFunc(func(alpha float64) {
		v := l.stage.Visual(e)
		switch alpha {
		case 0:
			if saved < 0 {
				saved = v.Opacity
			}
			v.Opacity = 0
		case 1:
			v.Opacity = saved
		}
	}, runTime)
}

// finishSweep continues the steady flow law in alpha form: over the
// remaining real time the phase runs linearly to virtual time, by
// which point the flash has swept past the line's end.
func (l *Lines) finishSweep(e ecs.Entity) anim.Animation {
	fs := l.stage.Flow(e)
	phase0 := fs.Phase
	remaining := (l.set.VirtualTime - phase0) / l.speed
	return anim.FromAlphaFunc(func(alpha float64) {
		fs := l.stage.Flow(e)
		if fs.Anim == nil {
			return
		}
		fs.Phase = phase0 + alpha*(l.set.VirtualTime-phase0)
		fs.Anim.Apply(min(fs.Phase/fs.RunTime, 1))
		if alpha == 1 {
			fs.Anim.Finish()
			fs.Anim = nil
			fs.Active = false
		}
	}, remaining)
}

// Create returns a one-shot reveal of every line in random order.
// A zero runTime defaults to the set's virtual time; a zero lagRatio
// defaults to runTime/(2*lineCount), staggering the reveals instead of
// starting them in lockstep.
func (l *Lines) Create(runTime, lagRatio float64) anim.Animation {
	if runTime <= 0 {
		runTime = l.set.VirtualTime
	}
	if lagRatio <= 0 && len(l.entities) > 0 {
		lagRatio = runTime / (2 * float64(len(l.entities)))
	}

	children := make([]anim.Animation, len(l.entities))
	for i, e := range l.entities {
		children[i] = anim.NewCreate(visualView{stage: l.stage, entity: e}, runTime, anim.Smooth)
	}
	l.rng.Shuffle(len(children), func(i, j int) {
		children[i], children[j] = children[j], children[i]
	})
	return anim.NewGroup(lagRatio, children...)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
