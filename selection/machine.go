package selection

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/theoremus-urban-solutions/traffic-viz/diagnostics"
)

// Phase is the tagged state of the route selection.
type Phase int

const (
	Idle Phase = iota
	AwaitingEnd
	Resolved
)

func (p Phase) String() string {
	switch p {
	case AwaitingEnd:
		return "AwaitingEnd"
	case Resolved:
		return "Resolved"
	default:
		return "Idle"
	}
}

// Selection is the current pick state. Start is set in AwaitingEnd and
// Resolved; End only in Resolved.
type Selection struct {
	Phase Phase
	Start string
	End   string
}

// Point is one vertex of a route polyline.
type Point struct {
	Lat float64
	Lon float64
}

// RoutePath is the resolved route overlay. It exists only while the
// selection is Resolved and the last request for that exact pair
// succeeded.
type RoutePath struct {
	Points          []Point
	DistanceMeters  float64
	DurationSeconds float64
}

// Router issues a route request for a node pair.
type Router interface {
	RequestRoute(ctx context.Context, start, end string) (*RoutePath, error)
}

// Machine owns the RouteSelection state exclusively. Pointer picks walk
// Idle -> AwaitingEnd -> Resolved; any pick while Resolved starts over.
// While Resolved, every live snapshot re-issues the same route request so
// the overlay follows current congestion weights.
//
// Route requests are fire-and-forget: each response is tagged with the
// (start,end) pair it was issued for and applied only if that pair still
// matches the current selection. A slow response for a stale pair is
// counted and dropped.
type Machine struct {
	router Router

	mu        sync.Mutex
	sel       Selection
	path      *RoutePath
	version   uint64
	subs      map[int]func(Selection)
	nextSubID int
}

// NewMachine creates a selection machine in Idle.
func NewMachine(router Router) *Machine {
	return &Machine{router: router, subs: map[int]func(Selection){}}
}

// Subscribe registers fn to run after every selection or route change.
// The returned release function must be called on teardown.
func (m *Machine) Subscribe(fn func(Selection)) (release func()) {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subs[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Selection returns the current pick state.
func (m *Machine) Selection() Selection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sel
}

// Path returns the current route overlay, or nil. Callers must not
// mutate it.
func (m *Machine) Path() *RoutePath {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}

// Version increments on every state or route change; frame caches key
// on it.
func (m *Machine) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

// Pick handles a pointer pick of a node. From Idle or Resolved it starts
// a new selection (clearing any route overlay); from AwaitingEnd it
// resolves the pair and issues the route request.
func (m *Machine) Pick(ctx context.Context, nodeID string) {
	m.mu.Lock()
	switch m.sel.Phase {
	case AwaitingEnd:
		m.sel = Selection{Phase: Resolved, Start: m.sel.Start, End: nodeID}
		m.version++
		start, end := m.sel.Start, m.sel.End
		m.notifyLocked()
		m.mu.Unlock()
		m.issueRoute(ctx, start, end)
	default: // Idle, Resolved
		m.path = nil
		m.sel = Selection{Phase: AwaitingEnd, Start: nodeID}
		m.version++
		m.notifyLocked()
		m.mu.Unlock()
	}
}

// StartSelection handles a geolocation pick: it always begins a brand-new
// selection with nodeID as start, whatever the current phase. A pending
// AwaitingEnd start is discarded.
func (m *Machine) StartSelection(ctx context.Context, nodeID string) {
	m.mu.Lock()
	m.path = nil
	m.sel = Selection{Phase: AwaitingEnd, Start: nodeID}
	m.version++
	m.notifyLocked()
	m.mu.Unlock()
}

// Reset returns to Idle and clears the route overlay.
func (m *Machine) Reset() {
	m.mu.Lock()
	m.path = nil
	m.sel = Selection{}
	m.version++
	m.notifyLocked()
	m.mu.Unlock()
}

// OnSnapshot re-issues the route request for the resolved pair. Called on
// every applied live snapshot; a no-op unless Resolved.
func (m *Machine) OnSnapshot(ctx context.Context) {
	m.mu.Lock()
	if m.sel.Phase != Resolved {
		m.mu.Unlock()
		return
	}
	start, end := m.sel.Start, m.sel.End
	m.mu.Unlock()
	m.issueRoute(ctx, start, end)
}

func (m *Machine) issueRoute(ctx context.Context, start, end string) {
	reqID := uuid.NewString()
	go func() {
		path, err := m.router.RequestRoute(ctx, start, end)
		if err != nil {
			diagnostics.RouteFailures.Inc()
			log.Printf("route %s (%s -> %s) failed, keeping prior overlay: %v", reqID, start, end, err)
			return
		}
		m.applyRoute(start, end, path, reqID)
	}()
}

// applyRoute installs a route response if its pair still matches the
// current selection.
func (m *Machine) applyRoute(start, end string, path *RoutePath, reqID string) {
	m.mu.Lock()
	if m.sel.Phase != Resolved || m.sel.Start != start || m.sel.End != end {
		m.mu.Unlock()
		diagnostics.RouteStaleDiscards.Inc()
		log.Printf("route %s (%s -> %s) discarded: selection moved on", reqID, start, end)
		return
	}
	m.path = path
	m.version++
	m.notifyLocked()
	m.mu.Unlock()
}

// notifyLocked schedules subscriber callbacks. Callbacks run on their own
// goroutine so a subscriber may call back into the machine.
func (m *Machine) notifyLocked() {
	sel := m.sel
	for _, fn := range m.subs {
		fn := fn
		go fn(sel)
	}
}
