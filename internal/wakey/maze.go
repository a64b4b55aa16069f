package wakey

import "math/rand"

// Point is an integer pixel position in canvas space.
type Point struct {
	X, Y int
}

// Direction is an axis-aligned unit vector. No diagonals exist.
type Direction struct {
	Dx, Dy int
}

var (
	East  = Direction{1, 0}
	West  = Direction{-1, 0}
	South = Direction{0, 1}
	North = Direction{0, -1}
)

func (d Direction) Opposite() Direction { return Direction{-d.Dx, -d.Dy} }

// Rotated swaps the components, turning the direction 90 degrees onto
// the other axis.
func (d Direction) Rotated() Direction { return Direction{d.Dy, d.Dx} }

func (d Direction) Horizontal() bool { return d.Dx != 0 }

func (d Direction) String() string {
	switch d {
	case East:
		return "east"
	case West:
		return "west"
	case South:
		return "south"
	case North:
		return "north"
	}
	return "none"
}

// Rect is an axis-aligned rectangle with inclusive corners,
// normalized so (X0,Y0) is the top-left.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// RectFrom builds the normalized rectangle spanning two corner points.
func RectFrom(a, b Point) Rect {
	r := Rect{a.X, a.Y, b.X, b.Y}
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X <= r.X1 && p.Y >= r.Y0 && p.Y <= r.Y1
}

func (r Rect) Overlaps(s Rect) bool {
	return r.X0 <= s.X1 && s.X0 <= r.X1 && r.Y0 <= s.Y1 && s.Y0 <= r.Y1
}

// Extended grows the bottom-right corner by n on both axes. This is the
// thickening rule: thin centerline rectangles widen into walkable
// corridor strokes.
func (r Rect) Extended(n int) Rect {
	r.X1 += n
	r.Y1 += n
	return r
}

// Segment is one straight axis-aligned stroke of the corridor.
// Start and end differ only along the direction's axis.
type Segment struct {
	Start Point
	End   Point
	Dir   Direction
}

// Rect returns the segment's thin (pre-thickening) rectangle.
func (s Segment) Rect() Rect { return RectFrom(s.Start, s.End) }

// CorridorModel is the immutable output of one generation run: the
// ordered connected segment sequence plus the start and goal markers.
type CorridorModel struct {
	Segments  []Segment
	Start     Point
	StartRect Rect
	Goal      Rect
}

// Generator builds a corridor from a random point on the left or top
// canvas edge to a random point on the opposite edge.
type Generator struct {
	width  int
	height int
	margin int
	rng    *rand.Rand
}

func NewGenerator(width, height, margin int, rng *rand.Rand) *Generator {
	return &Generator{width: width, height: height, margin: margin, rng: rng}
}

// Generate emits connected segments until one overlaps the goal
// rectangle. Termination is guaranteed for any canvas of at least
// MinCanvasSize per axis with margin below half of each dimension.
func (g *Generator) Generate() *CorridorModel {
	usable := Point{g.width - g.margin, g.height - g.margin}

	var start, goal Point
	var goalRect Rect
	if g.rng.Intn(2) == 0 {
		// Left edge to right edge. The goal marker extends inward so it
		// stays on the canvas.
		start = Point{g.margin, g.randBetween(g.margin, usable.Y)}
		goal = Point{usable.X, g.randBetween(g.margin, usable.Y)}
		goalRect = RectFrom(goal, Point{goal.X - MarkerSize, goal.Y + MarkerSize})
	} else {
		// Top edge to bottom edge.
		start = Point{g.randBetween(g.margin, usable.X), g.margin}
		goal = Point{g.randBetween(g.margin, usable.X), usable.Y}
		goalRect = RectFrom(goal, Point{goal.X + MarkerSize, goal.Y - MarkerSize})
	}
	startRect := RectFrom(start, Point{start.X + MarkerSize, start.Y + MarkerSize})

	var segments []Segment
	head := start
	var prev Direction // zero value: the first segment has no predecessor
	for {
		dir := chooseDirection(head, goal, prev)
		length := g.randBetween(MinLineLength, g.axisSpan(dir, usable))

		end := Point{head.X + dir.Dx*length, head.Y + dir.Dy*length}
		// Snap an out-of-bounds endpoint to the far edge of its axis.
		// The random length may overshoot; this is how the corridor gets
		// to terminate at the canvas edge.
		if end.X > usable.X || end.X < g.margin {
			end.X = usable.X
		}
		if end.Y > usable.Y || end.Y < g.margin {
			end.Y = usable.Y
		}

		seg := Segment{Start: head, End: end, Dir: dir}
		segments = append(segments, seg)
		if seg.Rect().Overlaps(goalRect) {
			break
		}
		head = end
		prev = dir
	}

	return &CorridorModel{
		Segments:  segments,
		Start:     start,
		StartRect: startRect,
		Goal:      goalRect,
	}
}

// chooseDirection picks the dominant cardinal direction from `from`
// toward `to` (ties favor the horizontal axis). A segment may never
// continue straight on or double back along the previous segment's
// axis; such picks rotate 90 degrees instead, which is what produces
// the zig-zag.
func chooseDirection(from, to Point, prev Direction) Direction {
	dx := to.X - from.X
	dy := to.Y - from.Y

	var dir Direction
	if abs(dx) >= abs(dy) {
		if dx >= 0 {
			dir = East
		} else {
			dir = West
		}
	} else {
		if dy >= 0 {
			dir = South
		} else {
			dir = North
		}
	}

	if dir == prev || dir == prev.Opposite() {
		dir = dir.Rotated()
	}
	return dir
}

// axisSpan is the upper bound for a random segment length: the usable
// extent of the axis the direction moves along.
func (g *Generator) axisSpan(dir Direction, usable Point) int {
	if dir.Horizontal() {
		return usable.X
	}
	return usable.Y
}

// randBetween returns a uniform int in [lo, hi], both ends inclusive.
func (g *Generator) randBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
