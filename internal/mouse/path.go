// Package mouse moves the cursor to random on-screen targets with a short
// eased animation, one movement at a time.
package mouse

import (
	"math"
	"math/rand"
	"time"
)

// Animation parameters.
const (
	DefaultSteps    = 20
	DefaultDuration = 500 * time.Millisecond
	DefaultPadding  = 50.0
)

// Point is a cursor position in screen coordinates.
type Point struct {
	X float64
	Y float64
}

// Distance returns the straight-line distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// EaseInOut maps linear progress t in [0,1] to eased progress: velocity ramps
// up over the first half and down over the second.
func EaseInOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return 2 * t * t
	default:
		u := 1 - t
		return 1 - 2*u*u
	}
}

// Path returns steps+1 points from start to end inclusive, spaced along the
// straight line by EaseInOut.
func Path(start, end Point, steps int) []Point {
	if steps < 1 {
		steps = 1
	}

	points := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		progress := EaseInOut(float64(i) / float64(steps))
		points = append(points, Point{
			X: start.X + (end.X-start.X)*progress,
			Y: start.Y + (end.Y-start.Y)*progress,
		})
	}
	return points
}

// RandomTarget picks a point inside a width x height screen, inset by padding
// on every edge. If the screen is too small for the padding, the inset
// collapses to the screen center on that axis.
func RandomTarget(rnd *rand.Rand, width, height, padding float64) Point {
	return Point{
		X: randomIn(rnd, padding, width-padding, width/2),
		Y: randomIn(rnd, padding, height-padding, height/2),
	}
}

func randomIn(rnd *rand.Rand, lo, hi, fallback float64) float64 {
	if hi < lo {
		return fallback
	}
	return lo + rnd.Float64()*(hi-lo)
}

// StepDelay is the pause between animation steps.
func StepDelay(duration time.Duration, steps int) time.Duration {
	if steps < 1 {
		return duration
	}
	return duration / time.Duration(steps)
}
