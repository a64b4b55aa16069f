package wakey

import (
	"math/rand"
	"reflect"
	"testing"
)

func generate(t *testing.T, seed int64) *CorridorModel {
	t.Helper()
	g := NewGenerator(400, 300, BorderMargin, rand.New(rand.NewSource(seed)))
	return g.Generate()
}

func TestGenerateConnectivity(t *testing.T) {
	for seed := int64(1); seed <= 100; seed++ {
		m := generate(t, seed)
		if len(m.Segments) < 1 {
			t.Fatalf("seed %d: no segments generated", seed)
		}
		if m.Segments[0].Start != m.Start {
			t.Errorf("seed %d: first segment starts at %v, want %v", seed, m.Segments[0].Start, m.Start)
		}
		for i := 1; i < len(m.Segments); i++ {
			if m.Segments[i].Start != m.Segments[i-1].End {
				t.Errorf("seed %d: segment %d starts at %v, previous ended at %v",
					seed, i, m.Segments[i].Start, m.Segments[i-1].End)
			}
		}
		last := m.Segments[len(m.Segments)-1]
		if !last.Rect().Overlaps(m.Goal) {
			t.Errorf("seed %d: last segment %v does not reach goal %v", seed, last.Rect(), m.Goal)
		}
	}
}

func TestGenerateNoBacktrack(t *testing.T) {
	for seed := int64(1); seed <= 100; seed++ {
		m := generate(t, seed)
		for i := 1; i < len(m.Segments); i++ {
			prev := m.Segments[i-1].Dir
			cur := m.Segments[i].Dir
			if cur == prev {
				t.Errorf("seed %d: segment %d continues straight in %v", seed, i, cur)
			}
			if cur == prev.Opposite() {
				t.Errorf("seed %d: segment %d reverses %v into %v", seed, i, prev, cur)
			}
		}
	}
}

func TestGenerateBounds(t *testing.T) {
	const width, height = 400, 300
	for seed := int64(1); seed <= 100; seed++ {
		m := generate(t, seed)
		for i, seg := range m.Segments {
			for _, p := range []Point{seg.Start, seg.End} {
				if p.X < BorderMargin || p.X > width-BorderMargin ||
					p.Y < BorderMargin || p.Y > height-BorderMargin {
					t.Errorf("seed %d: segment %d endpoint %v outside margins", seed, i, p)
				}
			}
		}
	}
}

func TestGenerateAxisAligned(t *testing.T) {
	for seed := int64(1); seed <= 100; seed++ {
		m := generate(t, seed)
		for i, seg := range m.Segments {
			if seg.Dir.Horizontal() && seg.Start.Y != seg.End.Y {
				t.Errorf("seed %d: horizontal segment %d changes y: %v -> %v", seed, i, seg.Start, seg.End)
			}
			if !seg.Dir.Horizontal() && seg.Start.X != seg.End.X {
				t.Errorf("seed %d: vertical segment %d changes x: %v -> %v", seed, i, seg.Start, seg.End)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := generate(t, 42)
	b := generate(t, 42)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different models:\n%v\n%v", a, b)
	}
}

func TestGenerateMinimumCanvas(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g := NewGenerator(MinCanvasSize, MinCanvasSize, BorderMargin, rand.New(rand.NewSource(seed)))
		m := g.Generate()
		if len(m.Segments) == 0 {
			t.Fatalf("seed %d: no segments on minimum canvas", seed)
		}
	}
}

func TestChooseDirection(t *testing.T) {
	tests := []struct {
		name string
		from Point
		to   Point
		prev Direction
		want Direction
	}{
		{"east dominant", Point{0, 0}, Point{10, 3}, Direction{}, East},
		{"west dominant", Point{10, 0}, Point{0, 3}, Direction{}, West},
		{"south dominant", Point{0, 0}, Point{3, 10}, Direction{}, South},
		{"north dominant", Point{0, 10}, Point{3, 0}, Direction{}, North},
		{"tie favors horizontal", Point{0, 0}, Point{10, 10}, Direction{}, East},
		{"repeat rotates", Point{0, 0}, Point{10, 3}, East, South},
		{"reversal rotates", Point{10, 0}, Point{0, 3}, East, North},
		{"vertical repeat rotates", Point{0, 0}, Point{3, 10}, South, East},
		{"vertical reversal rotates", Point{0, 10}, Point{3, 0}, South, West},
		{"perpendicular keeps pick", Point{0, 0}, Point{10, 3}, South, East},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chooseDirection(tt.from, tt.to, tt.prev)
			if got != tt.want {
				t.Errorf("chooseDirection(%v, %v, prev %v) = %v, want %v",
					tt.from, tt.to, tt.prev, got, tt.want)
			}
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	base := Rect{10, 10, 20, 20}
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"identical", Rect{10, 10, 20, 20}, true},
		{"touching corner", Rect{20, 20, 30, 30}, true},
		{"disjoint right", Rect{21, 10, 30, 20}, false},
		{"disjoint below", Rect{10, 21, 20, 30}, false},
		{"contained", Rect{12, 12, 18, 18}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.r); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", base, tt.r, got, tt.want)
			}
		})
	}
}
