package api

import "github.com/theoremus-urban-solutions/traffic-viz/topology"

// HealthResponse is the startup liveness probe payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Nodes   int    `json:"nodes"`
}

type topologyResponse struct {
	Nodes []topology.Node `json:"nodes"`
	Edges []topology.Edge `json:"edges"`
}

// RouteRequest is the /api/route body. Either Start/End node ids or the
// four coordinate fields are set, never both.
type RouteRequest struct {
	Start    string   `json:"start,omitempty"`
	End      string   `json:"end,omitempty"`
	StartLat *float64 `json:"start_lat,omitempty"`
	StartLon *float64 `json:"start_lon,omitempty"`
	EndLat   *float64 `json:"end_lat,omitempty"`
	EndLon   *float64 `json:"end_lon,omitempty"`
}

// RoutePoint is one vertex of the returned polyline.
type RoutePoint struct {
	ID  string  `json:"id,omitempty"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteResponse is the /api/route reply.
type RouteResponse struct {
	Path               []string     `json:"path"`
	PathLatLon         []RoutePoint `json:"path_latlon"`
	EstimatedDurationS float64      `json:"estimated_duration_s"`
	EstimatedDistanceM float64      `json:"estimated_distance_m"`
}
