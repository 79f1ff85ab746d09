package nav

import "errors"

// Navigation failures are sentinel values so callers can branch with
// errors.Is and show a recoverable notification instead of crashing.
var (
	ErrEmptyNetwork    = errors.New("network has no segments")
	ErrNoReachableRoad = errors.New("no road node within search radius")
	ErrNoValidSegment  = errors.New("no segment with connected endpoints")
)
