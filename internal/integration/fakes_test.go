package integration

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/stigoleg/jiggler/internal/mouse"
)

// idleClock is an idle querier whose reading the test controls.
type idleClock struct {
	ns atomic.Int64
}

func (c *idleClock) set(d time.Duration) {
	c.ns.Store(int64(d))
}

func (c *idleClock) IdleTime() (time.Duration, error) {
	return time.Duration(c.ns.Load()), nil
}

type screen struct {
	mu        sync.Mutex
	pos       mouse.Point
	moves     []mouse.Point
	wandering bool
}

func (s *screen) Location() (mouse.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wandering {
		s.pos.X = float64((int(s.pos.X) + 40) % 1280)
	}
	return s.pos, nil
}

func (s *screen) ScreenSize() (float64, float64, error) {
	return 1280, 800, nil
}

func (s *screen) MoveTo(p mouse.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos = p
	s.moves = append(s.moves, p)
	return nil
}

func (s *screen) moveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.moves)
}

// userMoves makes every later read see the cursor somewhere new, the way a
// person dragging the mouse around would.
func (s *screen) userMoves() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wandering = true
}
