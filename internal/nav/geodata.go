package nav

import (
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Way is one road feature as delivered by the geodata ingestion layer:
// an ordered run of point ids plus its source tags.
type Way struct {
	ID      osm.WayID
	NodeIDs []osm.NodeID
	Tags    osm.Tags
}

// SourcePoint is a geographic point referenced by ways. Point is lon/lat
// (orb convention).
type SourcePoint struct {
	ID    osm.NodeID
	Point orb.Point
}

// HeightFunc samples terrain elevation at a planar world position.
// Supplied by the terrain collaborator; treated as a black box.
type HeightFunc func(x, z float64) float64

// Class returns the highway classification tag, empty when untagged.
func (w Way) Class() string { return w.Tags.Find("highway") }

func (w Way) Name() string { return w.Tags.Find("name") }

// Lanes returns the declared lane count, or DefaultLanes when absent
// or unparseable.
func (w Way) Lanes() int {
	s := w.Tags.Find("lanes")
	if s == "" {
		return DefaultLanes
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return DefaultLanes
	}
	return n
}
