package live

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/theoremus-urban-solutions/traffic-viz/diagnostics"
)

// Fetcher retrieves one poll of the live-state feed.
type Fetcher interface {
	FetchLiveData(ctx context.Context) (*Snapshot, error)
}

// Synchronizer polls the live-state feed on a fixed cadence and republishes
// the latest snapshot to subscribers. A new request is issued every tick
// whether or not the previous one completed; each request carries an
// issue-order sequence number and responses that arrive out of order are
// discarded, so the applied snapshot is always from the most recently
// issued poll that has completed.
type Synchronizer struct {
	fetcher  Fetcher
	interval time.Duration

	issueSeq atomic.Uint64

	mu         sync.Mutex
	current    *Snapshot
	appliedSeq uint64
	subs       map[int]func(*Snapshot)
	nextSubID  int

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSynchronizer creates a synchronizer polling f every interval.
func NewSynchronizer(f Fetcher, interval time.Duration) *Synchronizer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Synchronizer{
		fetcher:  f,
		interval: interval,
		subs:     map[int]func(*Snapshot){},
	}
}

// Subscribe registers fn to run after every applied snapshot. The returned
// release function must be called on teardown; holding it past the
// consumer's lifetime leaks the subscription.
func (s *Synchronizer) Subscribe(fn func(*Snapshot)) (release func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Current returns the last applied snapshot, or nil before the first
// successful poll.
func (s *Synchronizer) Current() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Start begins the poll loop. It returns immediately; polls run in the
// background until Stop or ctx cancellation. Calling Start twice is a
// programming error.
func (s *Synchronizer) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx)
}

// Stop cancels the poll timer and any in-flight requests and waits for the
// loop to exit. Safe to call if Start was never called.
func (s *Synchronizer) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
}

// Refresh issues a single synchronous poll, applying the result through
// the same sequence guard as the background loop. Used by oneshot mode
// and at startup for a first frame without waiting a full tick.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	return s.pollOnce(ctx, s.issueSeq.Add(1))
}

func (s *Synchronizer) loop(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// fire-and-forget so a slow response never delays the cadence
			seq := s.issueSeq.Add(1)
			go func() { _ = s.pollOnce(ctx, seq) }()
		}
	}
}

func (s *Synchronizer) pollOnce(ctx context.Context, seq uint64) error {
	snap, err := s.fetcher.FetchLiveData(ctx)
	if err != nil {
		diagnostics.PollFailures.Inc()
		log.Printf("live poll %d failed, keeping previous snapshot: %v", seq, err)
		return err
	}
	snap.Normalize()
	snap.Seq = seq
	s.apply(snap)
	return nil
}

// apply installs a snapshot if it is newer than the one already applied
// and notifies subscribers outside the lock.
func (s *Synchronizer) apply(snap *Snapshot) {
	s.mu.Lock()
	if snap.Seq <= s.appliedSeq {
		s.mu.Unlock()
		diagnostics.PollStaleDiscards.Inc()
		return
	}
	s.current = snap
	s.appliedSeq = snap.Seq
	subs := make([]func(*Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	diagnostics.PollApplied.Inc()
	for _, fn := range subs {
		fn(snap)
	}
}
