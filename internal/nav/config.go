package nav

// Road geometry (1 world unit = 1 meter).
const (
	// Intermediate points interpolated between each pair of way points.
	SegmentSubdivisions = 5
	// Floor for segment length; keeps progress-per-second finite.
	MinSegmentLength = 0.001
	// Roads sit slightly above the sampled terrain.
	RoadClearance = 0.3
	// Fallback/minimum road width.
	MinRoadWidth = 3.0
	// Lane count assumed when a way declares none.
	DefaultLanes = 2
)

// Spatial index.
const (
	GridCellSize = 1.0
)

// Navigation.
const (
	DefaultSpeedKMH = 50.0
	// Callers should clamp tick deltas to this; the demo loop does.
	MaxTickDelta = 0.1
)

// StartSearchRadii are tried in order when seeding the navigator.
var StartSearchRadii = [...]float64{100, 300, 1000}

// laneWidths maps drivable highway classes to per-lane width in world
// units. Membership doubles as the drivability whitelist.
var laneWidths = map[string]float64{
	"motorway":       4.5,
	"motorway_link":  4.0,
	"trunk":          4.2,
	"trunk_link":     3.8,
	"primary":        3.8,
	"primary_link":   3.5,
	"secondary":      3.5,
	"secondary_link": 3.2,
	"tertiary":       3.2,
	"tertiary_link":  3.0,
	"residential":    3.0,
	"unclassified":   2.8,
	"service":        2.5,
}
