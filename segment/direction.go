package segment

// Direction is the per-pixel gene of a segmentation genome: the cardinal
// neighbor a pixel is linked to, or None for a segment root.
type Direction uint8

const (
	// None marks a pixel as the terminal root of its segment.
	None Direction = iota
	// Up links a pixel to its neighbor at (x, y-1).
	Up
	// Down links a pixel to its neighbor at (x, y+1).
	Down
	// Left links a pixel to its neighbor at (x-1, y).
	Left
	// Right links a pixel to its neighbor at (x+1, y).
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Inverse returns the opposite cardinal direction. None is its own inverse.
func (d Direction) Inverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

// Offset returns the (dx, dy) grid step taken by the direction.
// None steps nowhere.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}
