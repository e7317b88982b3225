package mach

import (
	"math"
	"time"
)

// Undefined marks a value that cannot be plotted: a function outside its
// domain, or a coordinate derived from one. It propagates through the
// coordinate conversions instead of raising an error.
var Undefined = math.NaN()

// HoldsValue reports whether v is a finite number.
func HoldsValue(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InvLerp returns where v lies between a and b, as a fraction.
func InvLerp(a, b, v float64) float64 {
	return (v - a) / (b - a)
}

// HalfLifeLerp moves a toward b so that the remaining distance halves every
// halfLife. Unlike Lerp with a fixed factor it is independent of frame rate.
func HalfLifeLerp(a, b float64, dt, halfLife time.Duration) float64 {
	if halfLife <= 0 {
		return b
	}
	return b + (a-b)*math.Exp(-dt.Seconds()/halfLife.Seconds()*math.Ln2)
}

// Map maps x from the range [inMin, inMax] to [outMin, outMax].
func Map(x, inMin, inMax, outMin, outMax float64) float64 {
	return (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// Clamp restricts x to [min, max].
func Clamp(x, min, max float64) float64 {
	return math.Min(math.Max(x, min), max)
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// Distance returns the euclidean distance between two points.
func Distance(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
