package anim

// Succession plays children back to back; each child starts when the
// previous one finishes and the total run time is the sum. Children
// with zero run time still receive their full Start/Apply(1)/Finish
// cycle the moment they are reached. Apply must be called with
// non-decreasing alphas.
type Succession struct {
	children []Animation
	total    float64

	cursor  int     // first child not yet finished
	offset  float64 // summed run time of finished children
	started bool    // cursor child received Start
}

// NewSuccession builds a serial composition of the given animations.
func NewSuccession(children ...Animation) *Succession {
	s := &Succession{children: children}
	for _, c := range children {
		s.total += c.RunTime()
	}
	return s
}

func (s *Succession) RunTime() float64 { return s.total }

func (s *Succession) Start() { s.Apply(0) }

func (s *Succession) Apply(alpha float64) {
	g := alpha * s.total

	// Complete every child whose slot has fully elapsed.
	for s.cursor < len(s.children) {
		c := s.children[s.cursor]
		end := s.offset + c.RunTime()
		if g < end {
			break
		}
		if !s.started {
			c.Start()
		}
		c.Apply(1)
		c.Finish()
		s.offset = end
		s.cursor++
		s.started = false
	}

	if s.cursor >= len(s.children) {
		return
	}
	c := s.children[s.cursor]
	if !s.started {
		c.Start()
		s.started = true
	}
	if rt := c.RunTime(); rt > 0 {
		c.Apply((g - s.offset) / rt)
	}
}

func (s *Succession) Finish() { s.Apply(1) }

// Group plays children in parallel. With a zero lagRatio all children
// run simultaneously; otherwise child i is delayed by lagRatio times
// the run time of everything scheduled before it, producing a stagger.
// Apply must be called with non-decreasing alphas.
type Group struct {
	children []groupChild
	total    float64
}

type groupChild struct {
	anim       Animation
	start, end float64
	started    bool
	finished   bool
}

// NewGroup builds a parallel composition with the given lag ratio.
func NewGroup(lagRatio float64, children ...Animation) *Group {
	g := &Group{children: make([]groupChild, 0, len(children))}
	cursor := 0.0
	for _, c := range children {
		start := cursor
		end := start + c.RunTime()
		g.children = append(g.children, groupChild{anim: c, start: start, end: end})
		cursor = start + lagRatio*(end-start)
		g.total = max(g.total, end)
	}
	return g
}

func (g *Group) RunTime() float64 { return g.total }

func (g *Group) Start() { g.Apply(0) }

func (g *Group) Apply(alpha float64) {
	t := alpha * g.total
	for i := range g.children {
		c := &g.children[i]
		if c.finished || t < c.start {
			continue
		}
		if !c.started {
			c.anim.Start()
			c.started = true
		}
		if t >= c.end {
			c.anim.Apply(1)
			c.anim.Finish()
			c.finished = true
			continue
		}
		c.anim.Apply((t - c.start) / (c.end - c.start))
	}
}

func (g *Group) Finish() { g.Apply(1) }
