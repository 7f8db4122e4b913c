package field

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r3"
)

// Offset between the angle and magnitude noise channels, in noise
// space. Keeps the two samples decorrelated without a second generator.
const channelOffset = 100.0

// Turbulence returns a coherent-noise field. One simplex channel picks
// the flow angle, a second offset channel scales its strength, so
// nearby positions flow in nearby directions. The field has no time
// dependence; lines built from it are reproducible per seed.
func Turbulence(seed int64, scale, strength float64) Field {
	noise := opensimplex.New(seed)
	return func(p r3.Vec) r3.Vec {
		angle := noise.Eval3(p.X*scale, p.Y*scale, p.Z*scale) * 2 * math.Pi
		mag := (noise.Eval3(p.X*scale+channelOffset, p.Y*scale+channelOffset, p.Z*scale) + 1) * 0.5 * strength
		return r3.Vec{X: math.Cos(angle) * mag, Y: math.Sin(angle) * mag}
	}
}
