package vmath

import "math"

// RayCircle intersects the ray origin + t*dir (dir unit length, t >= 0)
// with the circle at center with the given radius. It returns the smallest
// non-negative t and true, or 0 and false when the ray misses.
func RayCircle(origin, dir, center Vec2, radius float64) (float64, bool) {
	// Solve |origin + t*dir - center|^2 = r^2 for t.
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.LengthSq() - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sqrtDisc := math.Sqrt(disc)
	t := -b - sqrtDisc
	if t < 0 {
		// Ray starts inside the circle.
		t = -b + sqrtDisc
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
