package nav

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestProjectionMapsBoundToExtent(t *testing.T) {
	bound := orb.Bound{
		Min: orb.Point{0, 0},
		Max: orb.Point{0.01, 0.01},
	}
	proj := NewProjection(bound, 1000)

	x, z := proj.Project(bound.Min)
	if math.Abs(x) > 1e-6 || math.Abs(z) > 1e-6 {
		t.Fatalf("bound min must map to origin, got (%v, %v)", x, z)
	}

	// Near the equator the mercator x/y spans of a square degree
	// bound are almost identical, so both axes land near the extent.
	x, z = proj.Project(bound.Max)
	if math.Abs(x-1000) > 1 || math.Abs(z-1000) > 1 {
		t.Fatalf("bound max should map near (1000, 1000), got (%v, %v)", x, z)
	}

	x, z = proj.Project(orb.Point{0.005, 0.005})
	if math.Abs(x-500) > 1 || math.Abs(z-500) > 1 {
		t.Fatalf("bound center should map near (500, 500), got (%v, %v)", x, z)
	}
}

func TestProjectionMonotonic(t *testing.T) {
	bound := orb.Bound{
		Min: orb.Point{18.0, 59.3},
		Max: orb.Point{18.1, 59.4},
	}
	proj := NewProjection(bound, 2000)

	x1, z1 := proj.Project(orb.Point{18.02, 59.32})
	x2, z2 := proj.Project(orb.Point{18.08, 59.38})
	if x2 <= x1 {
		t.Fatalf("x must grow with longitude: %v then %v", x1, x2)
	}
	if z2 <= z1 {
		t.Fatalf("z must grow with latitude: %v then %v", z1, z2)
	}
}

func TestProjectionDegenerateBound(t *testing.T) {
	bound := orb.Bound{
		Min: orb.Point{18, 59},
		Max: orb.Point{18, 59},
	}
	proj := NewProjection(bound, 1000)
	x, z := proj.Project(bound.Min)
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(z) || math.IsInf(z, 0) {
		t.Fatalf("degenerate bound produced non-finite coordinates (%v, %v)", x, z)
	}
}
