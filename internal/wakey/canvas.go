package wakey

// PixelClass is what a canvas pixel means to the tracker. Classes are
// ordered by query precedence: when drawn rectangles overlap, the
// highest class wins. Wall is the default for pixels nothing covers.
type PixelClass int

const (
	ClassWall PixelClass = iota
	ClassCorridor
	ClassStart
	ClassGoal
)

func (c PixelClass) String() string {
	switch c {
	case ClassWall:
		return "wall"
	case ClassCorridor:
		return "corridor"
	case ClassStart:
		return "start"
	case ClassGoal:
		return "goal"
	}
	return "unknown"
}

// RectID identifies one rectangle drawn on a Canvas.
type RectID int

// Canvas is the drawing capability the challenge runs against: filled
// class-tagged rectangles, point-overlap queries, delete-and-redraw,
// and the current pixel dimensions. Any backend satisfying this is
// sufficient; the real one is GLCanvas, tests use in-memory fakes.
type Canvas interface {
	// Size reports the canvas pixel dimensions.
	Size() (width, height int)
	// FillRect draws a filled rectangle and returns its handle.
	FillRect(r Rect, class PixelClass) RectID
	// Delete removes a previously drawn rectangle.
	Delete(id RectID)
	// ClassesAt returns the classes of every drawn rectangle covering p.
	ClassesAt(p Point) []PixelClass
	// Refresh pumps the backend's events and repaints.
	Refresh()
}

// Pointer reads and repositions the system pointer. Clicks and keys
// are never consumed.
type Pointer interface {
	Position() (x, y int)
	MoveTo(x, y int)
}
