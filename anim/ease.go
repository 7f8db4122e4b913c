package anim

import "math"

// Ease shapes an animation's progress: it maps a raw alpha in [0, 1]
// to an eased alpha with ease(0) = 0 and ease(1) = 1.
type Ease func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// OutSine starts fast and decelerates to a stop.
func OutSine(t float64) float64 {
	return math.Sin(t * math.Pi / 2)
}

// Smooth is an s-curve easing: flat at both endpoints, steepest in the
// middle.
func Smooth(t float64) float64 {
	const inflection = 10.0
	offset := sigmoid(-inflection / 2)
	v := (sigmoid(inflection*(t-0.5)) - offset) / (1 - 2*offset)
	return min(max(v, 0), 1)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// StartSpeed estimates an easing's initial rate of change by forward
// difference. Matching start speeds across a handoff between two
// animations keeps the motion free of visible jumps.
func StartSpeed(e Ease) float64 {
	return e(0.001) * 1000
}
