package engine

import "testing"

func TestGuillotineFindPositionRejectsOversizedRequests(t *testing.T) {
	g := newGuillotine2D(100, 100)
	if _, ok := g.findPosition(150, 50); ok {
		t.Errorf("expected no fit for a rectangle wider than the floor")
	}
}

func TestGuillotineSplitProducesDisjointChildren(t *testing.T) {
	g := newGuillotine2D(100, 100)
	fit, ok := g.findPosition(40, 30)
	if !ok {
		t.Fatalf("expected a fit on an empty floor")
	}
	g.split(fit.index, 40, 30)

	if len(g.free) != 2 {
		t.Fatalf("expected exactly two children after splitting a single free rect, got %d", len(g.free))
	}
	for _, r := range g.free {
		if r.x == 0 && r.y == 0 {
			t.Errorf("child rectangle should not reoccupy the consumed origin corner: %+v", r)
		}
	}
}

func TestGuillotinePrefersBestAreaFit(t *testing.T) {
	g := &guillotine2D{free: []rect2D{
		{x: 0, y: 0, w: 100, l: 100},
		{x: 200, y: 0, w: 20, l: 20},
	}}

	fit, ok := g.findPosition(15, 15)
	if !ok {
		t.Fatalf("expected a fit")
	}
	if fit.x != 200 {
		t.Errorf("expected best-area-fit to choose the tighter rectangle at x=200, got x=%v", fit.x)
	}
}
