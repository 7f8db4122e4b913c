// Package stage hosts stream line entities and the frame-driven loop
// that animates them.
package stage

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fieldlines/anim"
	"github.com/pthm-cable/fieldlines/streamline"
)

// Path ties an entity to its stream line.
type Path struct {
	Line  *streamline.Line
	Index int
}

// Visual is the renderable state of one line: the visible fraction of
// its arc as a [lo, hi] window, plus stroke styling.
type Visual struct {
	WindowLo    float64
	WindowHi    float64
	Opacity     float64
	StrokeWidth float32
}

// SetWindow implements anim.View.
func (v *Visual) SetWindow(lo, hi float64) {
	v.WindowLo, v.WindowHi = lo, hi
}

// FlowState is the per-line animation state during continuous flow. It
// stays attached for the entity's lifetime and is reset on each start
// rather than structurally added and removed.
type FlowState struct {
	Phase   float64
	RunTime float64
	Anim    *anim.PassingFlash
	Active  bool
}

type updaterEntry struct {
	id int
	fn func(dt float64)
}

// playback drives one played animation to completion.
type playback struct {
	anim    anim.Animation
	elapsed float64
}

// Stage owns the line entities, the per-frame updater registry and the
// set of running animations. Single-threaded: Tick is the only
// mutation point during playback.
type Stage struct {
	world  *ecs.World
	mapper *ecs.Map3[Path, Visual, FlowState]
	filter *ecs.Filter3[Path, Visual, FlowState]

	pathMap   *ecs.Map1[Path]
	visualMap *ecs.Map1[Visual]
	flowMap   *ecs.Map1[FlowState]

	updaters []updaterEntry
	nextID   int
	playing  []*playback
}

// New creates an empty stage.
func New() *Stage {
	world := ecs.NewWorld()
	return &Stage{
		world:     world,
		mapper:    ecs.NewMap3[Path, Visual, FlowState](world),
		filter:    ecs.NewFilter3[Path, Visual, FlowState](world),
		pathMap:   ecs.NewMap1[Path](world),
		visualMap: ecs.NewMap1[Visual](world),
		flowMap:   ecs.NewMap1[FlowState](world),
	}
}

// World exposes the ECS world so renderers can build their own filters.
func (s *Stage) World() *ecs.World {
	return s.world
}

// Spawn creates one fully visible entity per stream line, in line
// order.
func (s *Stage) Spawn(set *streamline.Set, strokeWidth float32, opacity float64) []ecs.Entity {
	entities := make([]ecs.Entity, 0, len(set.Lines))
	for i, ln := range set.Lines {
		path := Path{Line: ln, Index: i}
		visual := Visual{WindowHi: 1, Opacity: opacity, StrokeWidth: strokeWidth}
		state := FlowState{}
		entities = append(entities, s.mapper.NewEntity(&path, &visual, &state))
	}
	return entities
}

// Path returns the path component of an entity.
func (s *Stage) Path(e ecs.Entity) *Path {
	return s.pathMap.Get(e)
}

// Visual returns the visual component of an entity.
func (s *Stage) Visual(e ecs.Entity) *Visual {
	return s.visualMap.Get(e)
}

// Flow returns the flow state component of an entity.
func (s *Stage) Flow(e ecs.Entity) *FlowState {
	return s.flowMap.Get(e)
}

// Each calls fn for every spawned line. Do not spawn or clear from
// inside fn.
func (s *Stage) Each(fn func(p *Path, v *Visual)) {
	query := s.filter.Query()
	for query.Next() {
		p, v, _ := query.Get()
		fn(p, v)
	}
}

// AddUpdater registers fn to run on every Tick. Updaters run in
// registration order. The returned id is the handle for RemoveUpdater.
func (s *Stage) AddUpdater(fn func(dt float64)) int {
	id := s.nextID
	s.nextID++
	s.updaters = append(s.updaters, updaterEntry{id: id, fn: fn})
	return id
}

// RemoveUpdater drops the updater with the given id. Unknown ids are
// ignored. Safe to call from within an updater; the current Tick still
// runs the removed updater to completion.
func (s *Stage) RemoveUpdater(id int) {
	kept := make([]updaterEntry, 0, len(s.updaters))
	for _, u := range s.updaters {
		if u.id != id {
			kept = append(kept, u)
		}
	}
	s.updaters = kept
}

// Play starts a and drives it to completion over subsequent Ticks.
func (s *Stage) Play(a anim.Animation) {
	a.Start()
	s.playing = append(s.playing, &playback{anim: a})
}

// Animating reports whether any played animation is still running.
func (s *Stage) Animating() bool {
	return len(s.playing) > 0
}

// Tick advances one frame: updaters first, then every running
// animation, so all phase mutation lands before the frame is read.
func (s *Stage) Tick(dt float64) {
	for _, u := range s.updaters {
		u.fn(dt)
	}

	n := 0
	for _, p := range s.playing {
		p.elapsed += dt
		rt := p.anim.RunTime()
		if rt <= 0 || p.elapsed >= rt {
			p.anim.Apply(1)
			p.anim.Finish()
			continue
		}
		p.anim.Apply(p.elapsed / rt)
		s.playing[n] = p
		n++
	}
	s.playing = s.playing[:n]
}

// Clear removes every line entity together with all updaters and
// running animations, so teardown cannot leave a dangling callback.
func (s *Stage) Clear() {
	var doomed []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		doomed = append(doomed, query.Entity())
	}
	for _, e := range doomed {
		s.mapper.Remove(e)
	}
	s.updaters = nil
	s.playing = nil
}
