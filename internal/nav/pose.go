package nav

// Pose is the sampled observer transform handed to the renderer.
type Pose struct {
	Position Vec3
	Forward  Vec3
}

// Pose interpolates the observer's position and facing from the
// current segment, progress and direction. Pure read of navigator
// state; false when inactive.
func (nav *Navigator) Pose() (Pose, bool) {
	if nav.state != NavTraversing {
		return Pose{}, false
	}
	s := nav.net.Segment(nav.seg)

	// Progress counts from the origin node; flip it to the polyline's
	// start->end sense before bracketing.
	eff := nav.progress
	if nav.dir < 0 {
		eff = 1 - nav.progress
	}
	eff = clampF(eff, 0, 1)

	n := len(s.Points)
	idx := int(eff * float64(n-1))
	if idx > n-2 {
		idx = n - 2
	}
	a := s.Points[idx]
	b := s.Points[idx+1]

	span := 1.0 / float64(n-1)
	t := (eff - float64(idx)*span) / span

	fwd := b.Sub(a)
	if nav.dir < 0 {
		fwd = fwd.Scale(-1)
	}
	unit, ok := fwd.Normalized()
	if !ok {
		// Coincident bracketing points; face +Z instead of NaN.
		unit = Vec3{Z: 1}
	}

	return Pose{Position: lerpVec3(a, b, t), Forward: unit}, true
}
