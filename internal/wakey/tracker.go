package wakey

import (
	"fmt"
	"time"
)

// ChallengeState is the tracker's state machine. StateTouchedWall is
// instantaneous: the corrective teleport runs and the state returns to
// StateInProgress. StateSucceeded is terminal.
type ChallengeState int

const (
	StateInProgress ChallengeState = iota
	StateTouchedWall
	StateSucceeded
)

func (s ChallengeState) String() string {
	switch s {
	case StateInProgress:
		return "in progress"
	case StateTouchedWall:
		return "touched wall"
	case StateSucceeded:
		return "succeeded"
	}
	return "unknown"
}

// TrackerConfig carries the screen-to-canvas corrections for the host
// window's chrome. These are configuration, not derived.
type TrackerConfig struct {
	TitleMargin int // window title bar height, added on teleports
	XOffset     int // pointer x correction into canvas space
	YOffset     int // pointer y correction into canvas space
	Interval    time.Duration
}

// Tracker polls the pointer each tick, classifies the pixel under it
// and drives the challenge state machine. Going off-path is not a
// failure: the pointer teleports back to start and polling continues.
type Tracker struct {
	renderer  *Renderer
	pointer   Pointer
	corrector *Corrector
	cfg       TrackerConfig
	state     ChallengeState

	// OnWall and OnSuccess fire on the matching transitions; nil is fine.
	OnWall    func()
	OnSuccess func()

	notify func(format string, args ...any)
	sleep  func(time.Duration)
}

func NewTracker(r *Renderer, p Pointer, c *Corrector, cfg TrackerConfig) *Tracker {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultTickInterval
	}
	return &Tracker{
		renderer:  r,
		pointer:   p,
		corrector: c,
		cfg:       cfg,
		state:     StateInProgress,
		notify: func(format string, args ...any) {
			fmt.Printf(format+"\n", args...)
		},
		sleep: time.Sleep,
	}
}

func (t *Tracker) State() ChallengeState { return t.state }

// Run teleports the pointer to the start marker and polls until the
// goal is reached. Succeeding is the loop's only exit.
func (t *Tracker) Run(m *CorridorModel) {
	t.moveToStart(m)
	x, y := t.pointer.Position()
	prev := PointerSample{Pos: Point{x, y}}
	for t.state != StateSucceeded {
		prev = t.tick(m, prev)
	}
}

// tick runs one poll cycle and returns the sample to carry forward.
func (t *Tracker) tick(m *CorridorModel, prev PointerSample) PointerSample {
	t.renderer.Refresh()

	next := t.corrector.Apply(prev, prev.Tick+1)

	x, y := t.pointer.Position()
	p := Point{x + t.cfg.XOffset, y + t.cfg.YOffset}

	switch t.renderer.Classify(p) {
	case ClassWall:
		t.state = StateTouchedWall
		t.notify("You have touched the wall! Moving you back to start.")
		if t.OnWall != nil {
			t.OnWall()
		}
		t.moveToStart(m)
		sx, sy := t.pointer.Position()
		next = PointerSample{Pos: Point{sx, sy}, Tick: next.Tick}
		t.state = StateInProgress
		t.sleep(t.cfg.Interval)
	case ClassGoal:
		t.notify("You have reached the goal!")
		t.state = StateSucceeded
		if t.OnSuccess != nil {
			t.OnSuccess()
		}
	default:
		// Corridor or start marker: keep polling, bounded by the tick
		// interval so the loop doesn't spin the CPU.
		t.sleep(t.cfg.Interval)
	}
	return next
}

// moveToStart parks the pointer on the start marker, offset by half a
// line thickness into it and compensated for the title bar.
func (t *Tracker) moveToStart(m *CorridorModel) {
	t.pointer.MoveTo(
		m.Start.X+LineThickness/2,
		m.Start.Y+t.cfg.TitleMargin+LineThickness/2,
	)
}
