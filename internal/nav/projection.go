package nav

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// Projection maps geographic coordinates onto the local planar world:
// WGS84 -> Web Mercator, then a linear rescale so the bounding region's
// larger span covers the requested world extent. Pure value, no state.
type Projection struct {
	minX, minZ float64
	scale      float64
	extent     float64
}

// NewProjection builds a projection for the given geographic bound and
// target world extent in world units.
func NewProjection(bound orb.Bound, extent float64) Projection {
	min := project.WGS84.ToMercator(bound.Min)
	max := project.WGS84.ToMercator(bound.Max)
	span := math.Max(max[0]-min[0], max[1]-min[1])
	if span < 1e-9 {
		span = 1e-9
	}
	return Projection{
		minX:   min[0],
		minZ:   min[1],
		scale:  extent / span,
		extent: extent,
	}
}

// Project returns the planar world X/Z for a lon/lat point.
func (p Projection) Project(pt orb.Point) (x, z float64) {
	m := project.WGS84.ToMercator(pt)
	return (m[0] - p.minX) * p.scale, (m[1] - p.minZ) * p.scale
}

// Extent returns the world extent the projection was built for.
func (p Projection) Extent() float64 { return p.extent }
