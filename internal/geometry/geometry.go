// Package geometry holds the pure geometric primitives the placement
// engine builds on: AABB intersection and containment, and cylinder
// bounding boxes in their three canonical orientations.
package geometry

import (
	"math"

	"github.com/cargostow/loadengine/internal/model"
)

// Epsilon is the geometric tolerance for "same coordinate" comparisons,
// per spec: 0.001 cm.
const Epsilon = 0.001

// WallMargin is the default clearance kept from container walls.
const WallMargin = 0.5

// ObjectMargin is the default clearance kept between placed objects.
const ObjectMargin = 0.1

// AABBIntersect reports whether two axis-aligned boxes intersect,
// axis-separated with an additive gap tolerance: the boxes are
// considered disjoint if on any axis min1 >= max2-gap or min2 >= max1-gap.
func AABBIntersect(p1 model.Vector3, d1 model.Dimensions, p2 model.Vector3, d2 model.Dimensions, gap float64) bool {
	return axisOverlap(p1.X, p1.X+d1.Width, p2.X, p2.X+d2.Width, gap) &&
		axisOverlap(p1.Y, p1.Y+d1.Length, p2.Y, p2.Y+d2.Length, gap) &&
		axisOverlap(p1.Z, p1.Z+d1.Height, p2.Z, p2.Z+d2.Height, gap)
}

func axisOverlap(min1, max1, min2, max2, gap float64) bool {
	return min1 < max2-gap && max1 > min2+gap
}

// InsideContainer reports whether a box at p with dimensions d fits
// entirely within the container, within Epsilon.
func InsideContainer(p model.Vector3, d model.Dimensions, c model.Container) bool {
	cd := c.Dimensions
	return p.X >= -Epsilon && p.Y >= -Epsilon && p.Z >= -Epsilon &&
		p.X+d.Width <= cd.Width+Epsilon &&
		p.Y+d.Length <= cd.Length+Epsilon &&
		p.Z+d.Height <= cd.Height+Epsilon
}

// FootprintOverlapArea returns the positive XY overlap area between two
// items' footprints, or 0 if they don't overlap.
func FootprintOverlapArea(p1 model.Vector3, d1 model.Dimensions, p2 model.Vector3, d2 model.Dimensions) float64 {
	ox := overlap1D(p1.X, p1.X+d1.Width, p2.X, p2.X+d2.Width)
	oy := overlap1D(p1.Y, p1.Y+d1.Length, p2.Y, p2.Y+d2.Length)
	if ox <= 0 || oy <= 0 {
		return 0
	}
	return ox * oy
}

func overlap1D(min1, max1, min2, max2 float64) float64 {
	lo := math.Max(min1, min2)
	hi := math.Min(max1, max2)
	return hi - lo
}

// CylinderOrientation names the axis a cylinder's circular
// cross-section is perpendicular to.
type CylinderOrientation int

const (
	// Vertical: axis parallel to Z, circular cross-section in XY.
	Vertical CylinderOrientation = iota
	// HorizontalX: axis parallel to X.
	HorizontalX
	// HorizontalY: axis parallel to Y (the orientation the strip and
	// valley packers lay cylinders in).
	HorizontalY
)

// CylinderAABB returns the minimum corner and dimensions of a
// cylinder's AABB for one of the three canonical orientations.
// center is the geometric center of the cylinder.
func CylinderAABB(center model.Vector3, radius, length float64, orientation CylinderOrientation) (model.Vector3, model.Dimensions) {
	diameter := 2 * radius
	switch orientation {
	case HorizontalX:
		return model.Vector3{X: center.X - length/2, Y: center.Y - radius, Z: center.Z - radius},
			model.Dimensions{Width: length, Length: diameter, Height: diameter}
	case HorizontalY:
		return model.Vector3{X: center.X - radius, Y: center.Y - length/2, Z: center.Z - radius},
			model.Dimensions{Width: diameter, Length: length, Height: diameter}
	default: // Vertical
		return model.Vector3{X: center.X - radius, Y: center.Y - radius, Z: center.Z - length/2},
			model.Dimensions{Width: diameter, Length: diameter, Height: length}
	}
}
