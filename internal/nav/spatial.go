package nav

import "math"

// The index is a coarse cell grid over node positions, the same
// structure the navigator-facing queries need: insert once at build
// time, expanding-ring nearest lookups afterwards.

type gridKey struct {
	X, Z int
}

func cellOf(p Vec3) gridKey {
	return gridKey{
		X: int(math.Round(p.X / GridCellSize)),
		Z: int(math.Round(p.Z / GridCellSize)),
	}
}

func (n *Network) indexNode(id NodeID) {
	k := cellOf(n.nodes[id].Pos)
	n.grid[k] = append(n.grid[k], id)
}

// Nearest returns the node closest to pos within maxRadius (planar
// distance). The ring search is exact: a node in a cell at Chebyshev
// ring r' is at least (r'-1) cells away, so once the best distance is
// within r cells after scanning ring r no later ring can beat it. If
// the grid walk finds nothing a full linear scan runs before giving
// up; it only happens at start/reposition, never per tick.
func (n *Network) Nearest(pos Vec3, maxRadius float64) (NodeID, bool) {
	if len(n.nodes) == 0 || maxRadius <= 0 {
		return NoNode, false
	}

	center := cellOf(pos)
	maxRings := int(math.Ceil(maxRadius / GridCellSize))
	best := NoNode
	bestD := math.MaxFloat64

	scan := func(k gridKey) {
		for _, id := range n.grid[k] {
			d := n.nodes[id].Pos.PlanarDist(pos)
			if d < bestD {
				bestD = d
				best = id
			}
		}
	}

	for r := 0; r <= maxRings; r++ {
		if r == 0 {
			scan(center)
		} else {
			for x := center.X - r; x <= center.X+r; x++ {
				scan(gridKey{X: x, Z: center.Z - r})
				scan(gridKey{X: x, Z: center.Z + r})
			}
			for z := center.Z - r + 1; z <= center.Z+r-1; z++ {
				scan(gridKey{X: center.X - r, Z: z})
				scan(gridKey{X: center.X + r, Z: z})
			}
		}
		if best != NoNode && bestD <= float64(r)*GridCellSize {
			break
		}
	}

	if best != NoNode && bestD <= maxRadius {
		return best, true
	}

	// Fallback: exhaustive scan keeps the query correct even for a
	// pathological node distribution.
	best = NoNode
	bestD = maxRadius
	for i := range n.nodes {
		d := n.nodes[i].Pos.PlanarDist(pos)
		if d <= bestD {
			bestD = d
			best = NodeID(i)
		}
	}
	if best == NoNode {
		return NoNode, false
	}
	return best, true
}
