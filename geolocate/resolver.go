package geolocate

import (
	"math"

	"github.com/theoremus-urban-solutions/traffic-viz/diagnostics"
	"github.com/theoremus-urban-solutions/traffic-viz/topology"
)

// Resolver maps a real-world coordinate to the nearest topology node.
// Distances are planar in coordinate degrees, matching the backend's own
// snap helper; at city scale the distortion does not matter.
type Resolver struct {
	store      *topology.Store
	snapRadius float64
}

// NewResolver creates a resolver snapping within snapRadius degrees.
func NewResolver(store *topology.Store, snapRadius float64) *Resolver {
	return &Resolver{store: store, snapRadius: snapRadius}
}

// Resolve returns the node nearest to (lat, lon). ok is false when no node
// lies within the snap radius; callers drop the event without any state
// change.
func (r *Resolver) Resolve(lat, lon float64) (topology.Node, bool) {
	var best topology.Node
	bestDist := math.Inf(1)
	for _, n := range r.store.Nodes() {
		d := math.Hypot(lat-n.Lat, lon-n.Lon)
		if d < bestDist {
			bestDist = d
			best = n
		}
	}
	if bestDist > r.snapRadius {
		diagnostics.GeolocationMisses.Inc()
		return topology.Node{}, false
	}
	return best, true
}
