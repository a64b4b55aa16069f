package wakey

import (
	"math/rand"
	"strings"
	"testing"
	"time"
)

// fakePointer replays a script of positions and records every MoveTo.
// The script is consumed one entry per Position call; the last entry
// repeats once exhausted.
type fakePointer struct {
	script []Point
	i      int
	moves  []Point
}

func (p *fakePointer) Position() (int, int) {
	if p.i < len(p.script) {
		v := p.script[p.i]
		p.i++
		return v.X, v.Y
	}
	last := p.script[len(p.script)-1]
	return last.X, last.Y
}

func (p *fakePointer) MoveTo(x, y int) {
	p.moves = append(p.moves, Point{x, y})
}

func newTestTracker(r *Renderer, p Pointer, cfg TrackerConfig) *Tracker {
	tr := NewTracker(r, p, NewCorrector(p, PrecisionThreshold), cfg)
	tr.sleep = func(time.Duration) {}
	tr.notify = func(string, ...any) {}
	return tr
}

// startPoint is where the tracker parks the pointer: half a line
// thickness into the start marker.
func startPoint(m *CorridorModel) Point {
	return Point{m.Start.X + LineThickness/2, m.Start.Y + LineThickness/2}
}

// corridorWalk builds a pointer script tracing the segment sequence in
// sub-threshold steps, ending at the first point the renderer
// classifies as goal. Each path point appears twice: the corrector and
// the tracker both sample once per tick.
func corridorWalk(t *testing.T, r *Renderer, m *CorridorModel) []Point {
	t.Helper()
	script := []Point{startPoint(m)}
	push := func(p Point) bool {
		script = append(script, p, p)
		return r.Classify(p) == ClassGoal
	}
	const step = PrecisionThreshold - 2
	for _, seg := range m.Segments {
		cur := seg.Start
		for cur != seg.End {
			if push(cur) {
				return script
			}
			dx := clampStep(seg.End.X-cur.X, step)
			dy := clampStep(seg.End.Y-cur.Y, step)
			cur = Point{cur.X + dx, cur.Y + dy}
		}
		if push(cur) {
			return script
		}
	}
	t.Fatal("corridor walk never reached the goal")
	return nil
}

func clampStep(delta, step int) int {
	if delta > step {
		return step
	}
	if delta < -step {
		return -step
	}
	return delta
}

func TestTrackerSucceedsAlongCorridor(t *testing.T) {
	canvas := newFakeCanvas(400, 300)
	m := generate(t, 7)
	r := NewRenderer(canvas)
	r.Draw(m)
	r.Thicken(m)

	pointer := &fakePointer{}
	tracker := newTestTracker(r, pointer, TrackerConfig{})
	pointer.script = corridorWalk(t, r, m)

	tracker.Run(m)

	if tracker.State() != StateSucceeded {
		t.Fatalf("state = %v, want succeeded", tracker.State())
	}
	// The loop must end on exactly the sample that entered the goal.
	if pointer.i != len(pointer.script) {
		t.Errorf("consumed %d of %d scripted samples", pointer.i, len(pointer.script))
	}
	if len(pointer.moves) == 0 || pointer.moves[0] != startPoint(m) {
		t.Errorf("initial teleport = %v, want %v", pointer.moves, startPoint(m))
	}
}

func TestTrackerWallTouchResetsToStart(t *testing.T) {
	canvas := newFakeCanvas(400, 300)
	m := twoSegmentModel()
	r := NewRenderer(canvas)
	r.Draw(m)
	r.Thicken(m)

	sp := startPoint(m)
	wall := Point{sp.X - 5, sp.Y - 4} // off every rectangle, below the jump threshold
	if r.Classify(wall) != ClassWall {
		t.Fatalf("precondition: %v must classify as wall", wall)
	}
	goal := Point{200, 150}

	pointer := &fakePointer{script: []Point{
		sp,         // initial sample after the first teleport
		wall, wall, // tick 1: corrector + classification read
		sp,         // re-sample after the reset teleport
		goal, goal, // tick 2: straight to the goal
	}}
	var messages []string
	tracker := newTestTracker(r, pointer, TrackerConfig{})
	tracker.notify = func(format string, args ...any) {
		messages = append(messages, format)
	}

	tracker.Run(m)

	if tracker.State() != StateSucceeded {
		t.Fatalf("state = %v, want succeeded", tracker.State())
	}
	if len(messages) < 2 || !strings.Contains(messages[0], "touched the wall") {
		t.Errorf("wall notification missing, got %q", messages)
	}
	// moves[0] is the initial park; moves[1] must be the reset, aimed
	// exactly at the start marker again.
	if len(pointer.moves) < 2 || pointer.moves[1] != sp {
		t.Errorf("reset teleport = %v, want %v", pointer.moves, sp)
	}
}

func TestTrackerWallResetIdempotent(t *testing.T) {
	canvas := newFakeCanvas(400, 300)
	m := twoSegmentModel()
	r := NewRenderer(canvas)
	r.Draw(m)
	r.Thicken(m)

	sp := startPoint(m)
	wall := Point{sp.X - 5, sp.Y - 4}
	goal := Point{200, 150}

	const hits = 10
	script := []Point{sp}
	for i := 0; i < hits; i++ {
		script = append(script, wall, wall, sp)
	}
	script = append(script, goal, goal)

	pointer := &fakePointer{script: script}
	tracker := newTestTracker(r, pointer, TrackerConfig{})
	tracker.notify = func(string, ...any) {}

	tracker.Run(m)

	if tracker.State() != StateSucceeded {
		t.Fatalf("state = %v, want succeeded", tracker.State())
	}
	// One park plus one reset per wall touch, all aimed at the start.
	for i := 0; i <= hits; i++ {
		if pointer.moves[i] != sp {
			t.Errorf("teleport %d = %v, want %v", i, pointer.moves[i], sp)
		}
	}
}

func TestTrackerTitleMarginOffsetsTeleport(t *testing.T) {
	canvas := newFakeCanvas(400, 300)
	m := twoSegmentModel()
	r := NewRenderer(canvas)
	r.Draw(m)
	r.Thicken(m)

	pointer := &fakePointer{script: []Point{{0, 0}}}
	tracker := newTestTracker(r, pointer, TrackerConfig{TitleMargin: 30})
	tracker.moveToStart(m)

	want := Point{m.Start.X + LineThickness/2, m.Start.Y + 30 + LineThickness/2}
	if pointer.moves[0] != want {
		t.Errorf("teleport = %v, want %v", pointer.moves[0], want)
	}
}

func TestTrackerAppliesPointerOffsets(t *testing.T) {
	canvas := newFakeCanvas(400, 300)
	m := twoSegmentModel()
	r := NewRenderer(canvas)
	r.Draw(m)
	r.Thicken(m)

	// Raw pointer positions sit 20 px left and 10 px above the canvas;
	// the offsets translate them back onto the corridor.
	offset := func(p Point) Point { return Point{p.X - 20, p.Y - 10} }
	sp := startPoint(m)
	goal := Point{200, 150}
	pointer := &fakePointer{script: []Point{
		offset(sp),
		offset(goal), offset(goal),
	}}
	tracker := newTestTracker(r, pointer, TrackerConfig{XOffset: 20, YOffset: 10})

	// A single jump this large would be walked back; neutralize the
	// corrector by using a generous threshold.
	tracker.corrector = NewCorrector(pointer, 1000)
	tracker.Run(m)

	if tracker.State() != StateSucceeded {
		t.Errorf("state = %v, want succeeded", tracker.State())
	}
}

func TestRandomSeedsEndToEnd(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		canvas := newFakeCanvas(400, 300)
		g := NewGenerator(400, 300, BorderMargin, rand.New(rand.NewSource(seed)))
		m := g.Generate()
		r := NewRenderer(canvas)
		r.Draw(m)
		r.Thicken(m)

		pointer := &fakePointer{}
		tracker := newTestTracker(r, pointer, TrackerConfig{})
		pointer.script = corridorWalk(t, r, m)

		tracker.Run(m)
		if tracker.State() != StateSucceeded {
			t.Errorf("seed %d: state = %v, want succeeded", seed, tracker.State())
		}
	}
}
