package wakey

import "time"

// Corridor geometry (in canvas pixels).
const (
	MinLineLength = 5
	LineThickness = 8
	BorderMargin  = 10
)

// Canvas minimum on each axis; smaller configured sizes are coerced up.
const MinCanvasSize = 36

// Start/goal markers are drawn double the line thickness.
const MarkerSize = LineThickness * 2

// Anti-cheat: largest per-tick pointer displacement (on the dominant
// axis) that still counts as intentional movement.
const PrecisionThreshold = 7

// Poll pacing for the tracker loop.
const DefaultTickInterval = 100 * time.Millisecond
