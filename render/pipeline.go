package render

import (
	"fmt"

	"github.com/theoremus-urban-solutions/traffic-viz/config"
	"github.com/theoremus-urban-solutions/traffic-viz/live"
	"github.com/theoremus-urban-solutions/traffic-viz/projection"
	"github.com/theoremus-urban-solutions/traffic-viz/selection"
	"github.com/theoremus-urban-solutions/traffic-viz/topology"
)

// Pipeline builds display-list frames from topology, projection, live
// state and the route selection.
type Pipeline struct {
	cfg config.RenderConfig
}

// NewPipeline creates a pipeline with the given halo/overlay geometry.
func NewPipeline(cfg config.RenderConfig) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Input is everything a single frame depends on. Snapshot and Path may be
// nil; HoverNodeID may be empty.
type Input struct {
	Nodes       []topology.Node
	Edges       []topology.Edge
	Frame       projection.Frame
	Snapshot    *live.Snapshot
	Selection   selection.Selection
	Path        *selection.RoutePath
	HoverNodeID string
}

// Build produces one frame in the fixed draw order: background, edges,
// congestion halos, nodes, route overlay (glow then core), hover tooltip.
// An empty topology yields a background-only frame.
func (p *Pipeline) Build(in Input) *Frame {
	f := &Frame{
		Width:  in.Frame.SurfaceWidthPx,
		Height: in.Frame.SurfaceHeightPx,
	}
	if in.Snapshot != nil {
		f.Seq = in.Snapshot.Seq
		f.Timestamp = in.Snapshot.Timestamp
		f.Mode = string(in.Snapshot.Mode)
	}

	// 1. background
	f.Ops = append(f.Ops, Op{Kind: OpBackground, Color: colorBackground, Opacity: 1})

	byID := make(map[string]topology.Node, len(in.Nodes))
	for _, n := range in.Nodes {
		byID[n.ID] = n
	}

	// 2. edges; dangling references are skipped, never fatal
	for _, e := range in.Edges {
		src, ok := byID[e.Source]
		if !ok {
			continue
		}
		dst, ok := byID[e.Target]
		if !ok {
			continue
		}
		x1, y1 := in.Frame.Project(src.Lat, src.Lon)
		x2, y2 := in.Frame.Project(dst.Lat, dst.Lon)
		f.Ops = append(f.Ops, Op{Kind: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, StrokeWidth: 1.5, Color: colorEdge, Opacity: 1})
	}

	// 3. halos before nodes so nodes stay visually on top
	for _, n := range in.Nodes {
		r, c, ok := p.haloFor(in.Snapshot.QueueFor(n.ID))
		if !ok {
			continue
		}
		x, y := in.Frame.Project(n.Lat, n.Lon)
		f.Ops = append(f.Ops, Op{Kind: OpCircle, X: x, Y: y, Radius: r, Color: c, Opacity: haloOpacity})
	}

	// 4. nodes, signal-colored; start/end override
	for _, n := range in.Nodes {
		x, y := in.Frame.Project(n.Lat, n.Lon)
		f.Ops = append(f.Ops, Op{Kind: OpCircle, X: x, Y: y, Radius: p.cfg.NodeRadiusPx, Color: p.nodeColor(n.ID, in), Opacity: 1})
	}

	// 5. route overlay: wide translucent glow first, then the core
	if in.Path != nil && len(in.Path.Points) >= 2 {
		pts := make([]XY, 0, len(in.Path.Points))
		for _, pt := range in.Path.Points {
			x, y := in.Frame.Project(pt.Lat, pt.Lon)
			pts = append(pts, XY{X: x, Y: y})
		}
		f.Ops = append(f.Ops,
			Op{Kind: OpPolyline, Points: pts, StrokeWidth: p.cfg.RouteGlowWidthPx, Color: colorRoute, Opacity: glowOpacity},
			Op{Kind: OpPolyline, Points: pts, StrokeWidth: p.cfg.RouteCoreWidthPx, Color: colorRoute, Opacity: coreOpacity},
		)
	}

	// 6. hover tooltip
	if in.HoverNodeID != "" {
		if n, ok := byID[in.HoverNodeID]; ok {
			x, y := in.Frame.Project(n.Lat, n.Lon)
			label := fmt.Sprintf("%s | %s | queue %d", n.Name, in.Snapshot.SignalFor(n.ID), in.Snapshot.QueueFor(n.ID))
			f.Ops = append(f.Ops, Op{Kind: OpText, X: x + 8, Y: y - 8, Text: label, Color: colorTooltip, Opacity: 1})
		}
	}

	return f
}

// HaloRadius returns the congestion halo radius for a queue count; 0
// means no halo. Monotonically non-decreasing above the alert threshold.
func (p *Pipeline) HaloRadius(q int) float64 {
	r, _, ok := p.haloFor(q)
	if !ok {
		return 0
	}
	return r
}

func (p *Pipeline) haloFor(q int) (radius float64, c Color, ok bool) {
	switch {
	case q > p.cfg.AlertQueue:
		scaled := float64(q) / 2
		if scaled > p.cfg.HaloCapPx {
			scaled = p.cfg.HaloCapPx
		}
		return p.cfg.HaloBasePx + scaled, colorAlertHalo, true
	case q > p.cfg.CautionQueue:
		return p.cfg.CautionHaloPx, colorCaution, true
	default:
		return 0, "", false
	}
}

func (p *Pipeline) nodeColor(id string, in Input) Color {
	if in.Selection.Phase != selection.Idle && in.Selection.Start == id {
		return colorStart
	}
	if in.Selection.Phase == selection.Resolved && in.Selection.End == id {
		return colorEnd
	}
	switch in.Snapshot.SignalFor(id) {
	case live.SignalRed:
		return colorRed
	case live.SignalYellow:
		return colorYellow
	default:
		return colorGreen
	}
}
