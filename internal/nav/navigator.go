package nav

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type NavState int

const (
	NavInactive NavState = iota
	NavTraversing
)

// Navigator drives one observer along a Network, one Tick per frame.
// Progress runs 0..1 from the traversal's origin node toward its
// target node; Direction records which way that is relative to the
// segment's own start->end sense (+1 or -1) and is what the pose
// sampler uses to walk the polyline. A dead end is resolved within the
// same Tick that reaches it, so the observable state is only ever
// Inactive or Traversing.
//
// Not safe for concurrent use; the simulation loop must serialize
// calls. Multiple Navigators may share one Network read-only.
type Navigator struct {
	state    NavState
	net      *Network
	seg      SegID
	progress float64
	dir      float64
	target   NodeID
	origin   NodeID
	speedKMH float64
	rng      *Rand
	bus      *EventBus
	log      *logrus.Entry
}

// NewNavigator creates an inactive navigator. bus may be nil if no one
// listens for events.
func NewNavigator(seed uint64, bus *EventBus) *Navigator {
	if bus == nil {
		bus = NewEventBus()
	}
	return &Navigator{
		state:    NavInactive,
		seg:      NoSeg,
		target:   NoNode,
		origin:   NoNode,
		speedKMH: DefaultSpeedKMH,
		rng:      NewRand(seed),
		bus:      bus,
		log:      logrus.NewEntry(logrus.StandardLogger()),
	}
}

// Start activates the navigator on net at the road node nearest to
// seed. Search radii widen stepwise; the whole attempt fails with
// ErrNoReachableRoad only after the largest radius finds nothing.
func (nav *Navigator) Start(net *Network, seed Vec3) error {
	if net == nil || net.Empty() {
		return ErrEmptyNetwork
	}

	var node *Node
	for _, radius := range StartSearchRadii {
		id, ok := net.Nearest(seed, radius)
		if !ok {
			continue
		}
		if n := net.Node(id); len(n.Segments) > 0 {
			node = n
			break
		}
	}
	if node == nil {
		return fmt.Errorf("start at (%.1f, %.1f): %w", seed.X, seed.Z, ErrNoReachableRoad)
	}

	seg := node.Segments[0]
	s := net.Segment(seg)

	nav.net = net
	nav.seg = seg
	nav.progress = 0
	nav.origin = node.ID
	nav.target = s.Other(node.ID)
	if s.StartNode == node.ID {
		nav.dir = 1
	} else {
		nav.dir = -1
	}
	nav.state = NavTraversing

	nav.bus.Emit(Event{Type: EventStarted, Segment: seg, Node: node.ID})
	nav.bus.Emit(Event{Type: EventSegmentChanged, Segment: seg, Node: node.ID})
	nav.log.WithFields(logrus.Fields{"segment": seg, "node": node.ID}).Debug("navigation started")
	return nil
}

// Tick advances the observer by dt seconds of travel at the current
// speed. At most one node transition is resolved per call; overshoot
// past the node is carried into the next segment so no distance is
// lost, and a second crossing waits for the next Tick. Callers clamp
// dt (MaxTickDelta is the sane ceiling).
func (nav *Navigator) Tick(dt float64) {
	if nav.state != NavTraversing || dt <= 0 {
		return
	}
	s := nav.net.Segment(nav.seg)
	unitsPerSecond := nav.speedKMH * 1000 / 3600
	nav.progress += unitsPerSecond / s.Length * dt
	if nav.progress >= 1 {
		nav.transition()
	}
}

// transition resolves arrival at the target node: pick an onward
// segment, or reverse at a dead end. Overshoot beyond the node is
// re-expressed as progress on whatever segment comes next.
func (nav *Navigator) transition() {
	s := nav.net.Segment(nav.seg)
	overDist := (nav.progress - 1) * s.Length
	node := nav.net.Node(nav.target)

	candidates := make([]SegID, 0, len(node.Segments))
	for _, id := range node.Segments {
		if id != nav.seg {
			candidates = append(candidates, id)
		}
	}

	if len(candidates) == 0 {
		// Dead end: turn around on the same segment, keeping the
		// overshoot so motion stays continuous.
		nav.dir = -nav.dir
		nav.origin, nav.target = nav.target, nav.origin
		nav.progress = clampF(overDist/s.Length, 0, 1)
		nav.bus.Emit(Event{Type: EventDeadEndReached, Segment: nav.seg, Node: node.ID})
		nav.log.WithField("node", node.ID).Debug("dead end, reversing")
		return
	}

	// Uniform choice among non-reverse candidates. Deliberately
	// unweighted by road class or angle.
	next := candidates[nav.rng.Intn(len(candidates))]
	ns := nav.net.Segment(next)

	if ns.StartNode == node.ID {
		nav.dir = 1
	} else {
		nav.dir = -1
	}
	nav.seg = next
	nav.origin = node.ID
	nav.target = ns.Other(node.ID)
	nav.progress = clampF(overDist/ns.Length, 0, 1)

	nav.bus.Emit(Event{Type: EventSegmentChanged, Segment: next, Node: node.ID})
	nav.log.WithFields(logrus.Fields{"segment": next, "node": node.ID}).Debug("segment changed")
}

// Stop deactivates the navigator and releases its network reference.
// Idempotent; stopping an inactive navigator is a no-op.
func (nav *Navigator) Stop() {
	if nav.state == NavInactive {
		return
	}
	seg := nav.seg
	nav.state = NavInactive
	nav.net = nil
	nav.seg = NoSeg
	nav.progress = 0
	nav.dir = 0
	nav.origin = NoNode
	nav.target = NoNode
	nav.bus.Emit(Event{Type: EventStopped, Segment: seg, Node: NoNode})
}

// Reposition moves the observer to a random segment whose endpoints
// both have more than one connection, preferring real roads over
// dead-end stubs. Direction is random and progress lands in [0, 0.5).
func (nav *Navigator) Reposition() error {
	if nav.state != NavTraversing {
		return ErrEmptyNetwork
	}

	candidates := make([]SegID, 0, nav.net.NumSegments())
	for i := range nav.net.segments {
		s := &nav.net.segments[i]
		if len(nav.net.Node(s.StartNode).Segments) > 1 && len(nav.net.Node(s.EndNode).Segments) > 1 {
			candidates = append(candidates, SegID(i))
		}
	}
	if len(candidates) == 0 {
		return ErrNoValidSegment
	}

	seg := candidates[nav.rng.Intn(len(candidates))]
	s := nav.net.Segment(seg)
	nav.seg = seg
	nav.progress = nav.rng.RangeF(0, 0.5)
	if nav.rng.Intn(2) == 0 {
		nav.dir = 1
		nav.origin = s.StartNode
		nav.target = s.EndNode
	} else {
		nav.dir = -1
		nav.origin = s.EndNode
		nav.target = s.StartNode
	}

	nav.bus.Emit(Event{Type: EventRepositioned, Segment: seg, Node: nav.origin})
	return nil
}

func (nav *Navigator) Active() bool { return nav.state == NavTraversing }

func (nav *Navigator) State() NavState { return nav.state }

// CurrentSegment returns the segment under traversal, for UI
// collaborators (street name, classification). False when inactive.
func (nav *Navigator) CurrentSegment() (*Segment, bool) {
	if nav.state != NavTraversing {
		return nil, false
	}
	return nav.net.Segment(nav.seg), true
}

func (nav *Navigator) Progress() float64 { return nav.progress }

func (nav *Navigator) Direction() float64 { return nav.dir }

func (nav *Navigator) OriginNode() NodeID { return nav.origin }

func (nav *Navigator) TargetNode() NodeID { return nav.target }

func (nav *Navigator) SpeedKMH() float64 { return nav.speedKMH }

func (nav *Navigator) SetSpeedKMH(v float64) {
	if v < 0 {
		v = 0
	}
	nav.speedKMH = v
}

// Events returns the navigator's event bus for subscriptions.
func (nav *Navigator) Events() *EventBus { return nav.bus }

// SetLogger replaces the navigator's log entry; nil restores the
// standard logger.
func (nav *Navigator) SetLogger(e *logrus.Entry) {
	if e == nil {
		e = logrus.NewEntry(logrus.StandardLogger())
	}
	nav.log = e
}
