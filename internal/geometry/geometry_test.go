package geometry

import (
	"testing"

	"github.com/cargostow/loadengine/internal/model"
)

func TestAABBIntersectDetectsOverlap(t *testing.T) {
	p1 := model.Vector3{X: 0, Y: 0, Z: 0}
	d1 := model.Dimensions{Width: 10, Length: 10, Height: 10}
	p2 := model.Vector3{X: 5, Y: 5, Z: 5}
	d2 := model.Dimensions{Width: 10, Length: 10, Height: 10}

	if !AABBIntersect(p1, d1, p2, d2, 0) {
		t.Errorf("expected overlapping boxes to intersect")
	}
}

func TestAABBIntersectRespectsGap(t *testing.T) {
	p1 := model.Vector3{X: 0, Y: 0, Z: 0}
	d1 := model.Dimensions{Width: 10, Length: 10, Height: 10}
	p2 := model.Vector3{X: 9.95, Y: 0, Z: 0}
	d2 := model.Dimensions{Width: 10, Length: 10, Height: 10}

	if AABBIntersect(p1, d1, p2, d2, 0.1) {
		t.Errorf("expected boxes overlapping by less than the gap not to intersect")
	}
	if !AABBIntersect(p1, d1, p2, d2, 0) {
		t.Errorf("expected the same overlap to register as intersecting with zero gap")
	}
}

func TestInsideContainer(t *testing.T) {
	c := model.Container{Dimensions: model.Dimensions{Width: 100, Length: 100, Height: 100}}
	if !InsideContainer(model.Vector3{X: 0, Y: 0, Z: 0}, model.Dimensions{Width: 100, Length: 100, Height: 100}, c) {
		t.Errorf("expected exact-fit box to be inside container")
	}
	if InsideContainer(model.Vector3{X: 1, Y: 0, Z: 0}, model.Dimensions{Width: 100, Length: 100, Height: 100}, c) {
		t.Errorf("expected box exceeding container width to be rejected")
	}
}

func TestFootprintOverlapArea(t *testing.T) {
	p1 := model.Vector3{X: 0, Y: 0}
	d1 := model.Dimensions{Width: 10, Length: 10}
	p2 := model.Vector3{X: 5, Y: 5}
	d2 := model.Dimensions{Width: 10, Length: 10}

	if got := FootprintOverlapArea(p1, d1, p2, d2); got != 25 {
		t.Errorf("expected overlap area 25, got %v", got)
	}

	p3 := model.Vector3{X: 20, Y: 20}
	if got := FootprintOverlapArea(p1, d1, p3, d2); got != 0 {
		t.Errorf("expected no overlap, got %v", got)
	}
}

func TestCylinderAABBOrientations(t *testing.T) {
	center := model.Vector3{X: 10, Y: 10, Z: 10}
	pos, dims := CylinderAABB(center, 5, 20, HorizontalY)
	if dims.Width != 10 || dims.Length != 20 || dims.Height != 10 {
		t.Errorf("expected horizontal-y dims {10,20,10}, got %+v", dims)
	}
	if pos.X != 5 || pos.Y != 0 || pos.Z != 5 {
		t.Errorf("expected horizontal-y min corner {5,0,5}, got %+v", pos)
	}

	_, dims = CylinderAABB(center, 5, 20, Vertical)
	if dims.Width != 10 || dims.Length != 10 || dims.Height != 20 {
		t.Errorf("expected vertical dims {10,10,20}, got %+v", dims)
	}

	_, dims = CylinderAABB(center, 5, 20, HorizontalX)
	if dims.Width != 20 || dims.Length != 10 || dims.Height != 10 {
		t.Errorf("expected horizontal-x dims {20,10,10}, got %+v", dims)
	}
}

func TestValleyPositionRestsAboveTwoCircles(t *testing.T) {
	c1 := Circle2D{X: 0, Z: 0, Radius: 5}
	c2 := Circle2D{X: 10, Z: 0, Radius: 5}

	pos, ok := ValleyPosition(c1, c2, 5)
	if !ok {
		t.Fatalf("expected a valley solution for two tangent circles")
	}
	if pos.X != 5 {
		t.Errorf("expected valley centered at x=5 by symmetry, got %v", pos.X)
	}
	if pos.Z <= 0 {
		t.Errorf("expected valley solution to rest above the baseline, got z=%v", pos.Z)
	}
}

func TestValleyPositionFailsWhenTooFarApart(t *testing.T) {
	c1 := Circle2D{X: 0, Z: 0, Radius: 5}
	c2 := Circle2D{X: 1000, Z: 0, Radius: 5}

	_, ok := ValleyPosition(c1, c2, 5)
	if ok {
		t.Errorf("expected no valley solution for circles far beyond reach")
	}
}
