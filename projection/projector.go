package projection

import (
	"github.com/theoremus-urban-solutions/traffic-viz/topology"
)

// degenerateRange replaces a zero-width coordinate range so a single-node
// (or collinear) topology projects to the frame center instead of
// dividing by zero.
const degenerateRange = 1.0

// Frame maps geographic coordinates onto a display surface. It is a pure
// function of the node bounding box and the surface size; recompute it
// whenever either changes.
type Frame struct {
	MinLat          float64
	MaxLat          float64
	MinLon          float64
	MaxLon          float64
	PaddingPx       float64
	SurfaceWidthPx  float64
	SurfaceHeightPx float64
}

// NewFrame builds a projection frame for the given bounds and surface.
// Degenerate ranges are widened around their midpoint so affected nodes
// land at the geometric center of the frame.
func NewFrame(b topology.Bounds, widthPx, heightPx, paddingPx float64) Frame {
	f := Frame{
		MinLat:          b.MinLat,
		MaxLat:          b.MaxLat,
		MinLon:          b.MinLon,
		MaxLon:          b.MaxLon,
		PaddingPx:       paddingPx,
		SurfaceWidthPx:  widthPx,
		SurfaceHeightPx: heightPx,
	}
	if f.MaxLat == f.MinLat {
		mid := f.MinLat
		f.MinLat = mid - degenerateRange/2
		f.MaxLat = mid + degenerateRange/2
	}
	if f.MaxLon == f.MinLon {
		mid := f.MinLon
		f.MinLon = mid - degenerateRange/2
		f.MaxLon = mid + degenerateRange/2
	}
	return f
}

// Project maps a coordinate to surface pixels. The vertical axis is
// inverted: display y grows downward while latitude grows northward.
func (f Frame) Project(lat, lon float64) (x, y float64) {
	latRange := f.MaxLat - f.MinLat
	lonRange := f.MaxLon - f.MinLon
	x = f.PaddingPx + (lon-f.MinLon)/lonRange*(f.SurfaceWidthPx-2*f.PaddingPx)
	y = f.SurfaceHeightPx - (f.PaddingPx + (lat-f.MinLat)/latRange*(f.SurfaceHeightPx-2*f.PaddingPx))
	return x, y
}
