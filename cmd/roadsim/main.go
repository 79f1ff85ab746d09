package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	log "github.com/sirupsen/logrus"

	"roadsim/internal/nav"
)

// Headless demo: builds a synthetic city grid, drives the observer
// around it and logs pose/segment changes. Rendering consumes the same
// outputs; none of it lives here.

const (
	gridRows = 8
	gridCols = 8
	// ~100 m between grid points at this latitude.
	latStep = 0.0009
	lonStep = 0.0018
	baseLat = 59.33
	baseLon = 18.06
)

func envUint(key string, def uint64) uint64 {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			return v
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return def
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

func pointID(row, col int) osm.NodeID {
	return osm.NodeID(row*gridCols + col + 1)
}

// syntheticCity generates a Manhattan grid of ways: one way per row
// and per column, avenues wider than streets.
func syntheticCity() ([]nav.Way, map[osm.NodeID]nav.SourcePoint, orb.Bound) {
	points := make(map[osm.NodeID]nav.SourcePoint)
	for r := 0; r < gridRows; r++ {
		for c := 0; c < gridCols; c++ {
			id := pointID(r, c)
			points[id] = nav.SourcePoint{
				ID:    id,
				Point: orb.Point{baseLon + float64(c)*lonStep, baseLat + float64(r)*latStep},
			}
		}
	}

	var ways []nav.Way
	wayID := osm.WayID(1)
	for r := 0; r < gridRows; r++ {
		ids := make([]osm.NodeID, gridCols)
		for c := 0; c < gridCols; c++ {
			ids[c] = pointID(r, c)
		}
		ways = append(ways, nav.Way{
			ID:      wayID,
			NodeIDs: ids,
			Tags: osm.Tags{
				{Key: "highway", Value: "residential"},
				{Key: "name", Value: fmt.Sprintf("Street %d", r+1)},
			},
		})
		wayID++
	}
	for c := 0; c < gridCols; c++ {
		ids := make([]osm.NodeID, gridRows)
		for r := 0; r < gridRows; r++ {
			ids[r] = pointID(r, c)
		}
		ways = append(ways, nav.Way{
			ID:      wayID,
			NodeIDs: ids,
			Tags: osm.Tags{
				{Key: "highway", Value: "secondary"},
				{Key: "name", Value: fmt.Sprintf("Avenue %d", c+1)},
				{Key: "lanes", Value: "4"},
			},
		})
		wayID++
	}

	bound := orb.Bound{
		Min: orb.Point{baseLon, baseLat},
		Max: orb.Point{baseLon + float64(gridCols-1)*lonStep, baseLat + float64(gridRows-1)*latStep},
	}
	return ways, points, bound
}

func main() {
	// Optional .env; absence is fine.
	_ = godotenv.Load()

	if lvl, err := log.ParseLevel(os.Getenv("ROADSIM_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	seed := envUint("ROADSIM_SEED", uint64(time.Now().UnixNano()))
	speed := envFloat("ROADSIM_SPEED_KMH", nav.DefaultSpeedKMH)
	ticks := envInt("ROADSIM_TICKS", 3600)

	ways, points, bound := syntheticCity()
	proj := nav.NewProjection(bound, 1000)

	// Gentle rolling terrain stands in for the real height field.
	heightAt := func(x, z float64) float64 {
		return 4*math.Sin(x*0.01) + 3*math.Cos(z*0.013)
	}

	net, report := nav.BuildNetwork(ways, points, proj, heightAt, nil)
	if net.Empty() {
		log.Fatal("built network is empty, nothing to drive on")
	}
	for _, s := range report.Skipped {
		log.WithField("way", s.ID).Warn(s.Reason)
	}

	bus := nav.NewEventBus()
	bus.Subscribe(nav.EventSegmentChanged, func(e nav.Event) {
		seg := net.Segment(e.Segment)
		log.WithFields(log.Fields{"name": seg.Name, "class": seg.Class}).Info("now on")
	})
	bus.Subscribe(nav.EventDeadEndReached, func(e nav.Event) {
		log.WithField("node", e.Node).Info("dead end, turning around")
	})
	bus.Subscribe(nav.EventRepositioned, func(e nav.Event) {
		log.WithField("segment", e.Segment).Info("repositioned")
	})

	navg := nav.NewNavigator(seed, bus)
	navg.SetSpeedKMH(speed)
	if err := navg.Start(net, nav.Vec3{X: 500, Z: 500}); err != nil {
		log.WithError(err).Fatal("could not start navigation")
	}

	const dt = 1.0 / 60.0
	for i := 0; i < ticks; i++ {
		navg.Tick(math.Min(dt, nav.MaxTickDelta))
		if i == ticks/2 {
			if err := navg.Reposition(); err != nil {
				log.WithError(err).Warn("reposition failed")
			}
		}
		if i%60 == 0 {
			if pose, ok := navg.Pose(); ok {
				log.WithFields(log.Fields{
					"x": fmt.Sprintf("%.1f", pose.Position.X),
					"y": fmt.Sprintf("%.1f", pose.Position.Y),
					"z": fmt.Sprintf("%.1f", pose.Position.Z),
				}).Debug("pose")
			}
		}
	}

	navg.Stop()
	log.Info("simulation finished")
}
