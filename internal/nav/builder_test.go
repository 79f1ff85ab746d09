package nav

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Equatorial test bound: mercator distortion is negligible there, so
// assertions can stay loose without hiding real errors.
func testProjection() Projection {
	return NewProjection(orb.Bound{
		Min: orb.Point{0, 0},
		Max: orb.Point{0.01, 0.01},
	}, 1000)
}

func pt(id osm.NodeID, lon, lat float64) SourcePoint {
	return SourcePoint{ID: id, Point: orb.Point{lon, lat}}
}

func way(id osm.WayID, class string, ids ...osm.NodeID) Way {
	return Way{
		ID:      id,
		NodeIDs: ids,
		Tags:    osm.Tags{{Key: "highway", Value: class}},
	}
}

func flat(x, z float64) float64 { return 0 }

func TestBuildFiltersNonDrivable(t *testing.T) {
	points := map[osm.NodeID]SourcePoint{
		1: pt(1, 0.001, 0.001),
		2: pt(2, 0.002, 0.001),
	}
	ways := []Way{
		way(1, "footway", 1, 2),
		way(2, "cycleway", 1, 2),
	}
	net, report := BuildNetwork(ways, points, testProjection(), flat, nil)
	if !net.Empty() {
		t.Fatalf("expected empty network, got %d segments", net.NumSegments())
	}
	if report.FilteredWays != 2 || report.RetainedWays != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestBuildGraphConsistency(t *testing.T) {
	// Two ways crossing at a shared point: 5 nodes, 4 segments.
	points := map[osm.NodeID]SourcePoint{
		1: pt(1, 0.001, 0.005),
		2: pt(2, 0.005, 0.005),
		3: pt(3, 0.009, 0.005),
		4: pt(4, 0.005, 0.001),
		5: pt(5, 0.005, 0.009),
	}
	ways := []Way{
		way(10, "residential", 1, 2, 3),
		way(11, "secondary", 4, 2, 5),
	}
	net, report := BuildNetwork(ways, points, testProjection(), flat, nil)

	if net.NumNodes() != 5 || net.NumSegments() != 4 {
		t.Fatalf("expected 5 nodes / 4 segments, got %d/%d", net.NumNodes(), net.NumSegments())
	}
	if report.RetainedWays != 2 || len(report.Skipped) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	// Every segment endpoint exists and back-references the segment.
	for i := range net.Segments() {
		s := net.Segment(SegID(i))
		for _, nid := range [2]NodeID{s.StartNode, s.EndNode} {
			if int(nid) < 0 || int(nid) >= net.NumNodes() {
				t.Fatalf("segment %d references missing node %d", s.ID, nid)
			}
			found := false
			for _, back := range net.Node(nid).Segments {
				if back == s.ID {
					found = true
				}
			}
			if !found {
				t.Fatalf("node %d does not back-reference segment %d", nid, s.ID)
			}
		}
	}

	// No orphan nodes; every listed segment really touches the node.
	for i := range net.Nodes() {
		n := net.Node(NodeID(i))
		if len(n.Segments) == 0 {
			t.Fatalf("node %d has no connected segments", n.ID)
		}
		for _, sid := range n.Segments {
			s := net.Segment(sid)
			if s.StartNode != n.ID && s.EndNode != n.ID {
				t.Fatalf("node %d lists segment %d which does not touch it", n.ID, sid)
			}
		}
	}

	// The shared point must have become a single node of degree 4.
	degree4 := 0
	for i := range net.Nodes() {
		if len(net.Node(NodeID(i)).Segments) == 4 {
			degree4++
		}
	}
	if degree4 != 1 {
		t.Fatalf("expected exactly one degree-4 crossing node, got %d", degree4)
	}
}

func TestBuildSegmentGeometry(t *testing.T) {
	points := map[osm.NodeID]SourcePoint{
		1: pt(1, 0.001, 0.001),
		2: pt(2, 0.006, 0.001),
	}
	net, _ := BuildNetwork([]Way{way(1, "residential", 1, 2)}, points, testProjection(), flat, nil)
	if net.NumSegments() != 1 {
		t.Fatalf("expected 1 segment, got %d", net.NumSegments())
	}
	s := net.Segment(0)

	if len(s.Points) != SegmentSubdivisions+2 {
		t.Fatalf("expected %d polyline points, got %d", SegmentSubdivisions+2, len(s.Points))
	}
	start := net.Node(s.StartNode).Pos
	end := net.Node(s.EndNode).Pos
	if s.Points[0] != start {
		t.Fatalf("polyline does not begin at the start node")
	}
	if s.Points[len(s.Points)-1] != end {
		t.Fatalf("polyline does not end at the end node")
	}

	// A straight way: summed interpolated length equals the endpoint
	// distance.
	direct := start.PlanarDist(end)
	if math.Abs(s.Length-direct) > 1e-6 {
		t.Fatalf("length %.6f differs from endpoint distance %.6f", s.Length, direct)
	}
	if s.Length <= 0 {
		t.Fatal("length must be positive")
	}
}

func TestBuildSkipsDegenerateWays(t *testing.T) {
	points := map[osm.NodeID]SourcePoint{
		1: pt(1, 0.001, 0.001),
		2: pt(2, 0.002, 0.001),
	}
	ways := []Way{
		way(1, "residential", 1),     // single point
		way(2, "residential", 1, 1),  // consecutive duplicate
		way(3, "residential", 1, 99), // unknown point
		way(4, "residential", 1, 2),  // fine
	}
	net, report := BuildNetwork(ways, points, testProjection(), flat, nil)

	if len(report.Skipped) != 3 {
		t.Fatalf("expected 3 skipped ways, got %d: %+v", len(report.Skipped), report.Skipped)
	}
	if report.RetainedWays != 1 || net.NumSegments() != 1 {
		t.Fatalf("healthy way not retained: %+v", report)
	}
	// Skipping must never leave orphan nodes behind.
	for i := range net.Nodes() {
		if len(net.Node(NodeID(i)).Segments) == 0 {
			t.Fatalf("orphan node %d after skipped ways", i)
		}
	}
}

func TestBuildWidths(t *testing.T) {
	points := map[osm.NodeID]SourcePoint{
		1: pt(1, 0.001, 0.001),
		2: pt(2, 0.005, 0.001),
	}
	wide := Way{
		ID:      1,
		NodeIDs: []osm.NodeID{1, 2},
		Tags: osm.Tags{
			{Key: "highway", Value: "secondary"},
			{Key: "lanes", Value: "4"},
		},
	}
	narrow := Way{
		ID:      2,
		NodeIDs: []osm.NodeID{1, 2},
		Tags: osm.Tags{
			{Key: "highway", Value: "service"},
			{Key: "lanes", Value: "1"},
		},
	}
	plain := way(3, "residential", 1, 2)

	net, _ := BuildNetwork([]Way{wide, narrow, plain}, points, testProjection(), flat, nil)
	if net.NumSegments() != 3 {
		t.Fatalf("expected 3 segments, got %d", net.NumSegments())
	}
	if w := net.Segment(0).Width; w != 3.5*4 {
		t.Fatalf("secondary 4-lane width: got %v", w)
	}
	if w := net.Segment(1).Width; w != MinRoadWidth {
		t.Fatalf("one-lane service road must clamp to the minimum width, got %v", w)
	}
	if w := net.Segment(2).Width; w != 3.0*DefaultLanes {
		t.Fatalf("default residential width: got %v", w)
	}
}

func TestBuildSamplesTerrainHeight(t *testing.T) {
	points := map[osm.NodeID]SourcePoint{
		1: pt(1, 0.001, 0.001),
		2: pt(2, 0.005, 0.001),
	}
	height := func(x, z float64) float64 { return 7 }
	net, _ := BuildNetwork([]Way{way(1, "residential", 1, 2)}, points, testProjection(), height, nil)

	for i := range net.Nodes() {
		if y := net.Node(NodeID(i)).Pos.Y; math.Abs(y-(7+RoadClearance)) > 1e-9 {
			t.Fatalf("node %d elevation %v, expected %v", i, y, 7+RoadClearance)
		}
	}
	for _, p := range net.Segment(0).Points {
		if math.Abs(p.Y-(7+RoadClearance)) > 1e-9 {
			t.Fatalf("polyline point elevation %v, expected %v", p.Y, 7+RoadClearance)
		}
	}
}

func TestBuildReusesNodesAcrossWays(t *testing.T) {
	points := map[osm.NodeID]SourcePoint{
		1: pt(1, 0.001, 0.001),
		2: pt(2, 0.005, 0.001),
		3: pt(3, 0.009, 0.001),
	}
	ways := []Way{
		way(1, "residential", 1, 2),
		way(2, "residential", 2, 3),
	}
	net, _ := BuildNetwork(ways, points, testProjection(), flat, nil)
	if net.NumNodes() != 3 {
		t.Fatalf("shared point duplicated: %d nodes", net.NumNodes())
	}
	// The shared node connects both segments.
	shared := net.Node(net.Segment(0).EndNode)
	if len(shared.Segments) != 2 {
		t.Fatalf("shared node degree %d, expected 2", len(shared.Segments))
	}
}
