package nav

import "github.com/paulmach/osm"

// NodeID and SegID are arena indices into a Network's node and segment
// slices. All graph cross-references are indices, never pointers.
type (
	NodeID int
	SegID  int
)

const (
	NoNode NodeID = -1
	NoSeg  SegID  = -1
)

// Node is a graph vertex where segments meet or terminate.
type Node struct {
	ID       NodeID
	Source   osm.NodeID
	Pos      Vec3
	Segments []SegID // incident segments, at least one
}

// Segment is one drivable stretch of road between exactly two nodes.
// Points runs from the start node's position to the end node's.
type Segment struct {
	ID        SegID
	StartNode NodeID
	EndNode   NodeID
	Points    []Vec3 // length >= 2
	Length    float64
	Width     float64
	Name      string
	Class     string
	WayID     osm.WayID
}

// Other returns the endpoint opposite n.
func (s *Segment) Other(n NodeID) NodeID {
	if s.StartNode == n {
		return s.EndNode
	}
	return s.StartNode
}

// Network owns the node/segment arenas and the spatial index. Built
// once, immutable afterwards; safe for concurrent read-only sharing.
type Network struct {
	nodes    []Node
	segments []Segment
	grid     map[gridKey][]NodeID
}

func newNetwork() *Network {
	return &Network{grid: make(map[gridKey][]NodeID)}
}

func (n *Network) Node(id NodeID) *Node { return &n.nodes[id] }

func (n *Network) Segment(id SegID) *Segment { return &n.segments[id] }

// Nodes exposes the node arena for static rendering. Read-only.
func (n *Network) Nodes() []Node { return n.nodes }

// Segments exposes the segment arena for static rendering. Read-only.
func (n *Network) Segments() []Segment { return n.segments }

func (n *Network) NumNodes() int { return len(n.nodes) }

func (n *Network) NumSegments() int { return len(n.segments) }

func (n *Network) Empty() bool { return len(n.segments) == 0 }
