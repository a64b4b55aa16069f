package wakey

// Renderer materializes a CorridorModel onto a Canvas and answers
// pixel classification queries against what it drew.
type Renderer struct {
	canvas Canvas
	thin   []RectID // thin segment rectangles, replaced by Thicken
}

func NewRenderer(c Canvas) *Renderer {
	return &Renderer{canvas: c}
}

// Draw rasterizes the model: start and goal markers first, then each
// segment as a thin centerline rectangle, refreshing as it goes so the
// path reveals itself segment by segment.
func (r *Renderer) Draw(m *CorridorModel) {
	r.canvas.FillRect(m.StartRect, ClassStart)
	r.canvas.FillRect(m.Goal, ClassGoal)
	r.thin = r.thin[:0]
	for _, seg := range m.Segments {
		r.thin = append(r.thin, r.canvas.FillRect(seg.Rect(), ClassCorridor))
		r.canvas.Refresh()
	}
}

// Thicken replaces every thin segment rectangle with one extended by
// the line thickness, widening the centerline into a walkable
// corridor. Runs once, after the full path is known; segments are
// regrouped by direction and each group redrawn as a batch.
func (r *Renderer) Thicken(m *CorridorModel) {
	for _, dir := range []Direction{East, West, South, North} {
		for i, seg := range m.Segments {
			if seg.Dir != dir {
				continue
			}
			r.canvas.Delete(r.thin[i])
			r.thin[i] = r.canvas.FillRect(seg.Rect().Extended(LineThickness), ClassCorridor)
		}
	}
	r.canvas.Refresh()
}

// Classify returns the class of the pixel at p. The goal check has to
// win first: goal and corridor rectangles overlap near the end of the
// path. Precedence is Goal > Start > Corridor > Wall.
func (r *Renderer) Classify(p Point) PixelClass {
	best := ClassWall
	for _, c := range r.canvas.ClassesAt(p) {
		if c > best {
			best = c
		}
	}
	return best
}

// Refresh forwards to the canvas; the tracker calls this every tick.
func (r *Renderer) Refresh() { r.canvas.Refresh() }
