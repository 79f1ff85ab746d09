package nav

import (
	"github.com/paulmach/osm"
	"github.com/sirupsen/logrus"
)

// BuildReport aggregates what the builder filtered or skipped. Skips
// are never fatal; a build that retains nothing yields an empty
// Network the caller must check with Empty().
type BuildReport struct {
	RetainedWays int
	FilteredWays int // non-drivable classification
	Skipped      []SkippedWay
}

// SkippedWay records one way dropped for degenerate geometry.
type SkippedWay struct {
	ID     osm.WayID
	Reason string
}

// BuildNetwork converts parsed way/point records into a connected road
// graph. One node is created per referenced point id the first time it
// is seen; one segment per consecutive point pair, with interpolated
// intermediate geometry for smooth rendering. Inputs are not mutated.
func BuildNetwork(ways []Way, points map[osm.NodeID]SourcePoint, proj Projection, heightAt HeightFunc, log *logrus.Entry) (*Network, *BuildReport) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if heightAt == nil {
		heightAt = func(x, z float64) float64 { return 0 }
	}

	net := newNetwork()
	report := &BuildReport{}
	nodeBySource := make(map[osm.NodeID]NodeID)

	posAt := func(id osm.NodeID) Vec3 {
		x, z := proj.Project(points[id].Point)
		return Vec3{X: x, Y: heightAt(x, z) + RoadClearance, Z: z}
	}

	getNode := func(id osm.NodeID) NodeID {
		if nid, ok := nodeBySource[id]; ok {
			return nid
		}
		nid := NodeID(len(net.nodes))
		net.nodes = append(net.nodes, Node{ID: nid, Source: id, Pos: posAt(id)})
		nodeBySource[id] = nid
		return nid
	}

	for _, way := range ways {
		laneWidth, drivable := laneWidths[way.Class()]
		if !drivable {
			report.FilteredWays++
			continue
		}
		if reason := validateWay(way, points, proj); reason != "" {
			report.Skipped = append(report.Skipped, SkippedWay{ID: way.ID, Reason: reason})
			log.WithFields(logrus.Fields{"way": way.ID, "reason": reason}).Debug("skipping way")
			continue
		}
		report.RetainedWays++

		width := laneWidth * float64(way.Lanes())
		if width < MinRoadWidth {
			width = MinRoadWidth
		}

		for i := 0; i+1 < len(way.NodeIDs); i++ {
			start := getNode(way.NodeIDs[i])
			end := getNode(way.NodeIDs[i+1])

			sid := SegID(len(net.segments))
			pts := interpolate(net.nodes[start].Pos, net.nodes[end].Pos, heightAt)
			length := 0.0
			for j := 0; j+1 < len(pts); j++ {
				length += pts[j].PlanarDist(pts[j+1])
			}
			if length < MinSegmentLength {
				length = MinSegmentLength
			}

			net.segments = append(net.segments, Segment{
				ID:        sid,
				StartNode: start,
				EndNode:   end,
				Points:    pts,
				Length:    length,
				Width:     width,
				Name:      way.Name(),
				Class:     way.Class(),
				WayID:     way.ID,
			})
			net.nodes[start].Segments = append(net.nodes[start].Segments, sid)
			net.nodes[end].Segments = append(net.nodes[end].Segments, sid)
		}
	}

	for i := range net.nodes {
		net.indexNode(NodeID(i))
	}

	log.WithFields(logrus.Fields{
		"nodes":    net.NumNodes(),
		"segments": net.NumSegments(),
		"ways":     report.RetainedWays,
		"filtered": report.FilteredWays,
		"skipped":  len(report.Skipped),
	}).Info("road network built")

	return net, report
}

// validateWay rejects degenerate geometry before any node is created,
// so a skipped way can never leave orphan nodes behind.
func validateWay(way Way, points map[osm.NodeID]SourcePoint, proj Projection) string {
	if len(way.NodeIDs) < 2 {
		return "fewer than 2 points"
	}
	for _, id := range way.NodeIDs {
		if _, ok := points[id]; !ok {
			return "unknown point id"
		}
	}
	for i := 0; i+1 < len(way.NodeIDs); i++ {
		if way.NodeIDs[i] == way.NodeIDs[i+1] {
			return "consecutive duplicate point"
		}
		ax, az := proj.Project(points[way.NodeIDs[i]].Point)
		bx, bz := proj.Project(points[way.NodeIDs[i+1]].Point)
		a := Vec3{X: ax, Z: az}
		b := Vec3{X: bx, Z: bz}
		if a.PlanarDist(b) < MinSegmentLength {
			return "coincident points after projection"
		}
	}
	return ""
}

// interpolate builds the segment polyline: both node positions plus
// SegmentSubdivisions evenly spaced points, each re-sampled against
// the terrain so long segments follow the ground.
func interpolate(a, b Vec3, heightAt HeightFunc) []Vec3 {
	pts := make([]Vec3, 0, SegmentSubdivisions+2)
	pts = append(pts, a)
	for i := 1; i <= SegmentSubdivisions; i++ {
		t := float64(i) / float64(SegmentSubdivisions+1)
		p := lerpVec3(a, b, t)
		p.Y = heightAt(p.X, p.Z) + RoadClearance
		pts = append(pts, p)
	}
	pts = append(pts, b)
	return pts
}
