package live

// SignalPhase is the SPaT display phase of an intersection.
type SignalPhase string

const (
	SignalGreen  SignalPhase = "GREEN"
	SignalYellow SignalPhase = "YELLOW"
	SignalRed    SignalPhase = "RED"
)

// Mode identifies the upstream data source. The original backend reports
// "SUMO" when a live simulation drives the feed; anything that is not
// MOCK normalizes to LIVE_SIM.
type Mode string

const (
	ModeLiveSim Mode = "LIVE_SIM"
	ModeMock    Mode = "MOCK"
)

// Metrics carries the aggregate KPI values computed upstream. They are
// passed through for peripheral panels; the engine never derives anything
// from them.
type Metrics struct {
	QueueLength  float64 `json:"queue_length"`
	AvgWaitTime  float64 `json:"avg_wait_time"`
	CarbonOffset float64 `json:"carbon_offset"`
	AIConfidence float64 `json:"ai_confidence"`
}

// Snapshot is one complete poll of the live-state feed. Snapshots are
// replaced wholesale, never merged; accessors default missing nodes to
// GREEN / 0 so the feed may cover any subset of the topology.
type Snapshot struct {
	Timestamp string                 `json:"timestamp"`
	Mode      Mode                   `json:"mode"`
	Signals   map[string]SignalPhase `json:"signals"`
	Queues    map[string]int         `json:"queues"`
	Metrics   Metrics                `json:"metrics"`

	// Seq is the issue-order sequence number assigned by the synchronizer.
	Seq uint64 `json:"-"`
}

// SignalFor returns the signal phase for a node, defaulting to GREEN.
func (s *Snapshot) SignalFor(nodeID string) SignalPhase {
	if s == nil {
		return SignalGreen
	}
	if p, ok := s.Signals[nodeID]; ok {
		switch p {
		case SignalGreen, SignalYellow, SignalRed:
			return p
		}
	}
	return SignalGreen
}

// QueueFor returns the queue count for a node, defaulting to 0.
func (s *Snapshot) QueueFor(nodeID string) int {
	if s == nil {
		return 0
	}
	q := s.Queues[nodeID]
	if q < 0 {
		return 0
	}
	return q
}

// Normalize coerces wire values into the documented domain: the mode tag
// collapses to LIVE_SIM/MOCK and negative queue counts clamp to zero.
func (s *Snapshot) Normalize() {
	if s.Mode != ModeMock {
		s.Mode = ModeLiveSim
	}
	for id, q := range s.Queues {
		if q < 0 {
			s.Queues[id] = 0
		}
	}
}
