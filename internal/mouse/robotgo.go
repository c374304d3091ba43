package mouse

import (
	"fmt"
	"math"

	"github.com/go-vgo/robotgo"
)

// RobotgoBackend drives the real cursor through robotgo.
type RobotgoBackend struct{}

// NewRobotgoBackend returns the production backend.
func NewRobotgoBackend() *RobotgoBackend {
	return &RobotgoBackend{}
}

func (RobotgoBackend) Location() (Point, error) {
	x, y := robotgo.Location()
	return Point{X: float64(x), Y: float64(y)}, nil
}

func (RobotgoBackend) ScreenSize() (float64, float64, error) {
	w, h := robotgo.GetScreenSize()
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("screen size unavailable (got %dx%d)", w, h)
	}
	return float64(w), float64(h), nil
}

func (RobotgoBackend) MoveTo(p Point) error {
	robotgo.Move(int(math.Round(p.X)), int(math.Round(p.Y)))
	return nil
}
