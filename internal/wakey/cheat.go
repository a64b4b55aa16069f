package wakey

// PointerSample is the pointer position recorded at one tracker tick.
// Only the immediately previous sample is ever retained.
type PointerSample struct {
	Pos  Point
	Tick int
}

// Corrector walks back single-tick pointer jumps that exceed the
// precision threshold on the dominant axis of movement. It bounds how
// far one tick's jump can register as intentional movement; it is a
// heuristic, not a guarantee, and can be beaten by staying below the
// threshold every tick.
type Corrector struct {
	pointer   Pointer
	threshold int
}

func NewCorrector(p Pointer, threshold int) *Corrector {
	return &Corrector{pointer: p, threshold: threshold}
}

// Apply compares the current pointer position against prev. If the
// dominant-axis displacement exceeds the threshold, the pointer is
// repositioned with that axis pulled back by the full displacement,
// leaving the perpendicular axis where the current sample put it.
// A displacement exactly at the threshold passes uncorrected.
// Returns the sample to carry into the next tick.
func (c *Corrector) Apply(prev PointerSample, tick int) PointerSample {
	curX, curY := c.pointer.Position()
	mx := curX - prev.Pos.X
	my := curY - prev.Pos.Y

	next := PointerSample{Pos: Point{curX, curY}, Tick: tick}
	if abs(mx) > abs(my) {
		if abs(mx) > c.threshold {
			c.pointer.MoveTo(prev.Pos.X-mx, curY)
			next.Pos.X = prev.Pos.X - mx
		}
	} else {
		if abs(my) > c.threshold {
			c.pointer.MoveTo(curX, prev.Pos.Y-my)
			next.Pos.Y = prev.Pos.Y - my
		}
	}
	return next
}
