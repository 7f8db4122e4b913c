package streamline

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fieldlines/field"
)

// Build integrates the field forward from a jittered spawn grid and
// returns the surviving stream lines in seed order. Trajectories are
// truncated the moment a point leaves the padded spawn box; a seed
// whose very first step already exits produces no line.
func Build(f field.Field, opts Options) (*Set, error) {
	if f == nil {
		return nil, fmt.Errorf("build stream lines: nil field")
	}
	if opts.DT <= 0 {
		return nil, fmt.Errorf("build stream lines: dt must be positive, got %v", opts.DT)
	}
	if opts.VirtualTime <= 0 {
		return nil, fmt.Errorf("build stream lines: virtual time must be positive, got %v", opts.VirtualTime)
	}
	if opts.MaxAnchors < 1 {
		return nil, fmt.Errorf("build stream lines: max anchors must be at least 1, got %d", opts.MaxAnchors)
	}
	if opts.Repeats < 1 {
		return nil, fmt.Errorf("build stream lines: repeats must be at least 1, got %d", opts.Repeats)
	}

	it := &integrator{
		f:          f,
		x:          opts.XRange.normalize(),
		y:          opts.YRange.normalize(),
		z:          opts.ZRange.normalize(),
		dt:         opts.DT,
		padding:    opts.Padding,
		maxSteps:   int(math.Ceil(opts.VirtualTime/opts.DT)) + 1,
		maxAnchors: opts.MaxAnchors,
		proj:       opts.Projection,
		scheme:     opts.Scheme,
	}

	noise := opts.NoiseFactor
	if noise < 0 {
		noise = it.y.Step / 2
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	seeds := spawnSeeds(it.x, it.y, it.z, noise, opts.Repeats, rng)

	results := integrateAll(it, seeds, opts.Workers)

	set := &Set{
		Lines:       make([]*Line, 0, len(results)),
		XRange:      it.x,
		YRange:      it.y,
		ZRange:      it.z,
		DT:          opts.DT,
		VirtualTime: opts.VirtualTime,
	}
	for _, ln := range results {
		if ln != nil {
			set.Lines = append(set.Lines, ln)
		}
	}
	return set, nil
}

// spawnSeeds lays out one jittered seed per (repeat, x, y, z) grid
// cell. Jitter draws are consumed in x, y, z order per seed so the
// layout is reproducible for a given RNG state.
func spawnSeeds(x, y, z Range, noise float64, repeats int, rng *rand.Rand) []r3.Vec {
	xs := x.values()
	ys := y.values()
	zs := z.values()
	half := noise / 2

	seeds := make([]r3.Vec, 0, repeats*len(xs)*len(ys)*len(zs))
	for n := 0; n < repeats; n++ {
		for _, sx := range xs {
			for _, sy := range ys {
				for _, sz := range zs {
					seeds = append(seeds, r3.Vec{
						X: sx - half + noise*rng.Float64(),
						Y: sy - half + noise*rng.Float64(),
						Z: sz - half + noise*rng.Float64(),
					})
				}
			}
		}
	}
	return seeds
}

// integrator carries the per-build parameters shared by every seed.
// Reads only; safe to use from multiple workers.
type integrator struct {
	f          field.Field
	x, y, z    Range
	dt         float64
	padding    float64
	maxSteps   int
	maxAnchors int
	proj       func(r3.Vec) r3.Vec
	scheme     field.Scalar
}

func (it *integrator) outside(p r3.Vec) bool {
	return !it.x.inside(p.X, it.padding) ||
		!it.y.inside(p.Y, it.padding) ||
		!it.z.inside(p.Z, it.padding)
}

// trace Euler-integrates one seed and downsamples the result. Returns
// nil when the trajectory is a single point.
func (it *integrator) trace(seed r3.Vec) *Line {
	points := make([]r3.Vec, 1, it.maxSteps+1)
	points[0] = seed
	for s := 0; s < it.maxSteps; s++ {
		last := points[len(points)-1]
		next := r3.Add(last, r3.Scale(it.dt, it.f(last)))
		if it.outside(next) {
			break
		}
		points = append(points, next)
	}
	if len(points) < 2 {
		return nil
	}

	ln := &Line{Duration: float64(len(points)-1) * it.dt}

	// Uniform stride downsample. The floor stride can leave up to
	// 2*maxAnchors-1 points for lengths just above maxAnchors; one
	// bump is always enough to restore the anchor bound.
	stride := max(1, len(points)/it.maxAnchors)
	if (len(points)+stride-1)/stride > it.maxAnchors+1 {
		stride++
	}
	n := (len(points) + stride - 1) / stride
	ln.Points = make([]r3.Vec, 0, n)
	if it.scheme != nil {
		ln.Values = make([]float64, 0, n)
	}
	for i := 0; i < len(points); i += stride {
		p := points[i]
		if it.scheme != nil {
			ln.Values = append(ln.Values, it.scheme(it.f(p)))
		}
		if it.proj != nil {
			p = it.proj(p)
		}
		ln.Points = append(ln.Points, p)
	}
	return ln
}
