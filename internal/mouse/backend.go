package mouse

// Backend is the OS cursor API the actuator drives.
type Backend interface {
	// Location returns the current cursor position.
	Location() (Point, error)
	// ScreenSize returns the primary screen's width and height.
	ScreenSize() (width, height float64, err error)
	// MoveTo warps the cursor to p.
	MoveTo(p Point) error
}
