package integration

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	trafficviz "github.com/theoremus-urban-solutions/traffic-viz"
	"github.com/theoremus-urban-solutions/traffic-viz/render"
	"github.com/theoremus-urban-solutions/traffic-viz/selection"
	"github.com/theoremus-urban-solutions/traffic-viz/tests/helpers"
)

func decodeFrame(t *testing.T, buf []byte) render.Frame {
	t.Helper()
	var f render.Frame
	if err := json.Unmarshal(buf, &f); err != nil {
		t.Fatalf("frame did not decode: %v", err)
	}
	return f
}

func waitForPath(t *testing.T, e *trafficviz.Engine, timeout time.Duration) *selection.RoutePath {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if p := e.RoutePath(); p != nil {
			return p
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("route overlay never arrived")
	return nil
}

func polylines(f render.Frame) []render.Op {
	var out []render.Op
	for _, op := range f.Ops {
		if op.Kind == render.OpPolyline {
			out = append(out, op)
		}
	}
	return out
}

func TestRouteSelectionEndToEnd(t *testing.T) {
	backend := helpers.NewBackend(t, helpers.TwoNodeState())
	engine := trafficviz.NewEngine(backend.Config())

	ctx := context.Background()
	if err := engine.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if err := engine.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := engine.Topology().Len(); got != 2 {
		t.Fatalf("expected 2 nodes, got %d", got)
	}

	engine.Pick("A")
	if sel := engine.Selection(); sel.Phase != selection.AwaitingEnd || sel.Start != "A" {
		t.Fatalf("after first pick: %+v", sel)
	}
	engine.Pick("B")
	if sel := engine.Selection(); sel.Phase != selection.Resolved || sel.End != "B" {
		t.Fatalf("after second pick: %+v", sel)
	}

	path := waitForPath(t, engine, 2*time.Second)
	if len(path.Points) != 2 {
		t.Fatalf("expected 2 route points, got %d", len(path.Points))
	}
	if path.DurationSeconds != 120 || path.DistanceMeters != 1500 {
		t.Fatalf("unexpected route estimates: %+v", path)
	}

	reqs := backend.RouteRequests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 route request, got %d", len(reqs))
	}
	if reqs[0]["start"] != "A" || reqs[0]["end"] != "B" {
		t.Fatalf("unexpected route body: %v", reqs[0])
	}

	buf, err := engine.FrameJSON("")
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	frame := decodeFrame(t, buf)

	lines := polylines(frame)
	if len(lines) != 2 {
		t.Fatalf("expected glow + core polylines, got %d", len(lines))
	}
	glow, core := lines[0], lines[1]
	if glow.StrokeWidth <= core.StrokeWidth {
		t.Errorf("glow should be wider: glow=%v core=%v", glow.StrokeWidth, core.StrokeWidth)
	}
	if glow.Opacity >= core.Opacity {
		t.Errorf("glow should be more translucent: glow=%v core=%v", glow.Opacity, core.Opacity)
	}
	if len(core.Points) != 2 {
		t.Errorf("core polyline has %d points", len(core.Points))
	}
}

func TestResolvedSelectionReroutesOnSnapshot(t *testing.T) {
	backend := helpers.NewBackend(t, helpers.TwoNodeState())

	cfg := backend.Config()
	cfg.Poll.IntervalMS = 60000 // ticker must not fire on its own

	engine := trafficviz.NewEngine(cfg)
	if err := engine.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer engine.Stop()

	engine.Pick("A")
	engine.Pick("B")
	waitForPath(t, engine, 2*time.Second)

	// the next snapshot must re-issue the same pair
	if err := engine.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(backend.RouteRequests()) >= 2 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	reqs := backend.RouteRequests()
	if len(reqs) < 2 {
		t.Fatalf("expected a reroute request, got %d requests", len(reqs))
	}
	last := reqs[len(reqs)-1]
	if last["start"] != "A" || last["end"] != "B" {
		t.Fatalf("reroute used wrong pair: %v", last)
	}
	if sel := engine.Selection(); sel.Phase != selection.Resolved {
		t.Fatalf("reroute must not change the selection: %+v", sel)
	}
}

func TestFailedRouteKeepsSelectionWithoutOverlay(t *testing.T) {
	backend := helpers.NewBackend(t, helpers.TwoNodeState())
	backend.Update(func(s *helpers.BackendState) { s.FailRoute = true })

	engine := trafficviz.NewEngine(backend.Config())
	ctx := context.Background()
	if err := engine.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	engine.Pick("A")
	engine.Pick("B")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(backend.RouteRequests()) >= 1 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)

	if sel := engine.Selection(); sel.Phase != selection.Resolved {
		t.Fatalf("failed route must leave the selection resolved: %+v", sel)
	}
	if p := engine.RoutePath(); p != nil {
		t.Fatalf("failed route must not install an overlay: %+v", p)
	}
}

func TestAlertHaloScalesWithQueue(t *testing.T) {
	state := helpers.TwoNodeState()
	state.Queues = map[string]int{"A": 35}
	backend := helpers.NewBackend(t, state)

	engine := trafficviz.NewEngine(backend.Config())
	ctx := context.Background()
	if err := engine.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if err := engine.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	buf, err := engine.FrameJSON("")
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	frame := decodeFrame(t, buf)

	// base 6 + 35/2, under the growth cap
	const want = 23.5
	found := false
	for _, op := range frame.Ops {
		if op.Kind == render.OpCircle && op.Radius == want {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("no halo with radius %v in %d ops", want, len(frame.Ops))
	}
}

func TestFailedPollKeepsPriorSnapshot(t *testing.T) {
	backend := helpers.NewBackend(t, helpers.TwoNodeState())
	engine := trafficviz.NewEngine(backend.Config())

	ctx := context.Background()
	if err := engine.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if err := engine.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	first := engine.Snapshot()
	if first == nil {
		t.Fatal("no snapshot after refresh")
	}

	backend.Update(func(s *helpers.BackendState) { s.FailLive = true })
	if err := engine.Refresh(ctx); err == nil {
		t.Fatal("refresh should report the upstream failure")
	}
	if got := engine.Snapshot(); got != first {
		t.Fatalf("failed poll replaced the snapshot: %+v", got)
	}
}

func TestGeolocationPickStartsSelection(t *testing.T) {
	backend := helpers.NewBackend(t, helpers.TwoNodeState())
	engine := trafficviz.NewEngine(backend.Config())

	if err := engine.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	n, ok := engine.PickLocation(0.001, -0.002)
	if !ok || n.ID != "A" {
		t.Fatalf("expected snap to A, got %v ok=%v", n, ok)
	}
	if sel := engine.Selection(); sel.Phase != selection.AwaitingEnd || sel.Start != "A" {
		t.Fatalf("after geolocation pick: %+v", sel)
	}

	// midway between the nodes, far outside the snap radius
	if _, ok := engine.PickLocation(0.5, 0.5); ok {
		t.Fatal("pick far from any node must miss")
	}
	if sel := engine.Selection(); sel.Phase != selection.AwaitingEnd || sel.Start != "A" {
		t.Fatalf("missed pick must not change state: %+v", sel)
	}
}

func TestSVGFrameRendersTooltipAndMode(t *testing.T) {
	state := helpers.TwoNodeState()
	state.Mode = "SUMO"
	backend := helpers.NewBackend(t, state)

	engine := trafficviz.NewEngine(backend.Config())
	ctx := context.Background()
	if err := engine.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if err := engine.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := engine.Snapshot().Mode; string(got) != "LIVE_SIM" {
		t.Fatalf("SUMO mode should normalize to LIVE_SIM, got %q", got)
	}

	buf, err := engine.FrameSVG("A")
	if err != nil {
		t.Fatalf("svg frame: %v", err)
	}
	svg := string(buf)
	if !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("not an svg document: %.40s", svg)
	}
	if !strings.Contains(svg, "Intersection A") {
		t.Error("hover tooltip missing from svg")
	}
	if !strings.Contains(svg, "<circle") || !strings.Contains(svg, "<line") {
		t.Error("svg missing node or edge elements")
	}
}
