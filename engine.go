package trafficviz

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/traffic-viz/api"
	"github.com/theoremus-urban-solutions/traffic-viz/config"
	"github.com/theoremus-urban-solutions/traffic-viz/geolocate"
	"github.com/theoremus-urban-solutions/traffic-viz/live"
	"github.com/theoremus-urban-solutions/traffic-viz/projection"
	"github.com/theoremus-urban-solutions/traffic-viz/render"
	"github.com/theoremus-urban-solutions/traffic-viz/selection"
	"github.com/theoremus-urban-solutions/traffic-viz/topology"
)

// Engine assembles the core: topology store, projector, live synchronizer,
// selection machine, geolocation resolver and render pipeline. All state
// mutation funnels through the owned components; the engine itself only
// wires subscriptions and serves frames.
type Engine struct {
	cfg      config.AppConfig
	client   *api.Client
	store    *topology.Store
	sync     *live.Synchronizer
	machine  *selection.Machine
	resolver *geolocate.Resolver
	pipeline *render.Pipeline
	cache    *frameCache

	mu         sync.Mutex
	surfaceW   float64
	surfaceH   float64
	frame      projection.Frame
	frameValid bool

	ctx      context.Context
	cancel   context.CancelFunc
	releases []func()
}

// NewEngine wires an engine from configuration. Nothing is fetched until
// Bootstrap or Start.
func NewEngine(cfg config.AppConfig) *Engine {
	client := api.NewClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutMS)*time.Millisecond)
	store := topology.NewStore()
	e := &Engine{
		cfg:      cfg,
		client:   client,
		store:    store,
		sync:     live.NewSynchronizer(client, time.Duration(cfg.Poll.IntervalMS)*time.Millisecond),
		resolver: geolocate.NewResolver(store, cfg.Geo.SnapRadius),
		pipeline: render.NewPipeline(cfg.Render),
		cache:    newFrameCache(),
		surfaceW: cfg.Surface.WidthPx,
		surfaceH: cfg.Surface.HeightPx,
	}
	e.machine = selection.NewMachine(routeAdapter{client: client})
	return e
}

// Bootstrap probes upstream liveness and loads the topology. The health
// probe is informational only; a topology failure is returned so the host
// can retry LoadTopology, but the engine stays usable and renders an
// empty frame meanwhile.
func (e *Engine) Bootstrap(ctx context.Context) error {
	if h, err := e.client.Health(ctx); err != nil {
		log.Printf("upstream health probe failed: %v", err)
	} else {
		log.Printf("upstream healthy: service=%q nodes=%d", h.Service, h.Nodes)
	}
	return e.LoadTopology(ctx)
}

// LoadTopology fetches the session topology. Safe to call again after a
// failure; a no-op once loaded.
func (e *Engine) LoadTopology(ctx context.Context) error {
	if err := e.store.Load(ctx, e.client); err != nil {
		return err
	}
	e.mu.Lock()
	e.frameValid = false
	e.mu.Unlock()
	e.cache.clear()
	return nil
}

// Start bootstraps the engine and begins live polling. The returned error
// is the topology load result; the poll loop runs either way so the view
// recovers as soon as LoadTopology succeeds and data arrives.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	err := e.Bootstrap(e.ctx)

	relSnap := e.sync.Subscribe(func(snap *live.Snapshot) {
		e.cache.clear()
		e.machine.OnSnapshot(e.ctx)
	})
	relSel := e.machine.Subscribe(func(sel selection.Selection) {
		e.cache.clear()
	})
	e.releases = append(e.releases, relSnap, relSel)

	e.sync.Start(e.ctx)
	return err
}

// Stop releases the poll timer, the subscriptions and any in-flight
// requests. The engine must not be restarted.
func (e *Engine) Stop() {
	for _, rel := range e.releases {
		rel()
	}
	e.releases = nil
	e.sync.Stop()
	if e.cancel != nil {
		e.cancel()
	}
}

// Refresh performs one synchronous poll of the live feed.
func (e *Engine) Refresh(ctx context.Context) error {
	return e.sync.Refresh(ctx)
}

// Resize updates the display surface size and invalidates the projection.
func (e *Engine) Resize(widthPx, heightPx float64) {
	if widthPx <= 0 || heightPx <= 0 {
		return
	}
	e.mu.Lock()
	if e.surfaceW == widthPx && e.surfaceH == heightPx {
		e.mu.Unlock()
		return
	}
	e.surfaceW = widthPx
	e.surfaceH = heightPx
	e.frameValid = false
	e.mu.Unlock()
	e.cache.clear()
}

// Pick handles a pointer pick. Unknown node ids are dropped silently, in
// line with the no-user-visible-failure policy.
func (e *Engine) Pick(nodeID string) {
	if !e.store.Has(nodeID) {
		log.Printf("pick ignored: unknown node %q", nodeID)
		return
	}
	e.machine.Pick(e.baseCtx(), nodeID)
}

// PickLocation handles a geolocation pick: the coordinate snaps to the
// nearest node within the snap radius and always starts a new selection.
// ok is false when no node is in range; no state changes in that case.
func (e *Engine) PickLocation(lat, lon float64) (topology.Node, bool) {
	n, ok := e.resolver.Resolve(lat, lon)
	if !ok {
		return topology.Node{}, false
	}
	e.machine.StartSelection(e.baseCtx(), n.ID)
	return n, true
}

// Reset clears the selection and route overlay.
func (e *Engine) Reset() {
	e.machine.Reset()
}

// Snapshot returns the last applied live snapshot, or nil.
func (e *Engine) Snapshot() *live.Snapshot {
	return e.sync.Current()
}

// Selection returns the current pick state.
func (e *Engine) Selection() selection.Selection {
	return e.machine.Selection()
}

// RoutePath returns the current route overlay, or nil.
func (e *Engine) RoutePath() *selection.RoutePath {
	return e.machine.Path()
}

// Topology returns the underlying topology store.
func (e *Engine) Topology() *topology.Store {
	return e.store
}

// BuildFrame renders one display-list frame for the current state.
func (e *Engine) BuildFrame(hoverNodeID string) *render.Frame {
	in := render.Input{
		Nodes:       e.store.Nodes(),
		Edges:       e.store.Edges(),
		Frame:       e.projectionFrame(),
		Snapshot:    e.sync.Current(),
		Selection:   e.machine.Selection(),
		Path:        e.machine.Path(),
		HoverNodeID: hoverNodeID,
	}
	return e.pipeline.Build(in)
}

// FrameJSON returns the current frame encoded as JSON, memoized until the
// next state change.
func (e *Engine) FrameJSON(hoverNodeID string) ([]byte, error) {
	return e.encodedFrame("json", hoverNodeID)
}

// FrameSVG returns the current frame encoded as SVG, memoized until the
// next state change.
func (e *Engine) FrameSVG(hoverNodeID string) ([]byte, error) {
	return e.encodedFrame("svg", hoverNodeID)
}

func (e *Engine) encodedFrame(format, hoverNodeID string) ([]byte, error) {
	e.mu.Lock()
	w, h := e.surfaceW, e.surfaceH
	e.mu.Unlock()
	key := frameKey(format, hoverNodeID, e.snapshotSeq(), e.machine.Version(), w, h)
	if buf, ok := e.cache.get(key); ok {
		return buf, nil
	}
	f := e.BuildFrame(hoverNodeID)
	var buf []byte
	var err error
	if format == "svg" {
		buf = render.EncodeSVG(f)
	} else {
		buf, err = render.EncodeJSON(f)
	}
	if err != nil {
		return nil, err
	}
	e.cache.put(key, buf)
	return buf, nil
}

func (e *Engine) snapshotSeq() uint64 {
	if snap := e.sync.Current(); snap != nil {
		return snap.Seq
	}
	return 0
}

// projectionFrame returns the cached projection, recomputing it when the
// topology or surface size changed.
func (e *Engine) projectionFrame() projection.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.frameValid {
		return e.frame
	}
	bounds, _ := e.store.Bounds()
	e.frame = projection.NewFrame(bounds, e.surfaceW, e.surfaceH, e.cfg.Surface.PaddingPx)
	e.frameValid = true
	return e.frame
}

func (e *Engine) baseCtx() context.Context {
	if e.ctx != nil {
		return e.ctx
	}
	return context.Background()
}

// routeAdapter bridges the backend client to the selection machine's
// Router contract.
type routeAdapter struct {
	client *api.Client
}

func (r routeAdapter) RequestRoute(ctx context.Context, start, end string) (*selection.RoutePath, error) {
	resp, err := r.client.RequestRoute(ctx, api.RouteRequest{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	pts := make([]selection.Point, 0, len(resp.PathLatLon))
	for _, p := range resp.PathLatLon {
		pts = append(pts, selection.Point{Lat: p.Lat, Lon: p.Lon})
	}
	return &selection.RoutePath{
		Points:          pts,
		DistanceMeters:  resp.EstimatedDistanceM,
		DurationSeconds: resp.EstimatedDurationS,
	}, nil
}
