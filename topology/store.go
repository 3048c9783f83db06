package topology

import (
	"context"
	"fmt"
	"sync"
)

// Source supplies the node and edge sets, typically the /api/config endpoint.
type Source interface {
	FetchTopology(ctx context.Context) ([]Node, []Edge, error)
}

// Store holds the immutable topology for the session. Load is called once
// at startup; on failure the store stays empty and downstream consumers
// degrade to "nothing to draw". The host may call Load again to retry.
type Store struct {
	mu     sync.RWMutex
	loaded bool
	nodes  []Node
	edges  []Edge
	byID   map[string]Node
	bounds Bounds
}

// NewStore creates an empty topology store
func NewStore() *Store {
	return &Store{byID: map[string]Node{}}
}

// Load fetches the topology from src. A second call on an already-loaded
// store is a no-op so a successful session topology can never be swapped
// out from under subscribers.
func (s *Store) Load(ctx context.Context, src Source) error {
	s.mu.RLock()
	done := s.loaded
	s.mu.RUnlock()
	if done {
		return nil
	}

	nodes, edges, err := src.FetchTopology(ctx)
	if err != nil {
		return fmt.Errorf("topology load: %w", err)
	}
	if len(nodes) == 0 {
		return fmt.Errorf("topology load: upstream returned no nodes")
	}

	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	b := computeBounds(nodes)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	s.nodes = nodes
	s.edges = edges
	s.byID = byID
	s.bounds = b
	s.loaded = true
	return nil
}

// Loaded reports whether a topology is available.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Nodes returns the session node set. Callers must not mutate it.
func (s *Store) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes
}

// Edges returns the session edge set. Callers must not mutate it.
func (s *Store) Edges() []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.edges
}

// Node looks up a node by id.
func (s *Store) Node(id string) (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.byID[id]
	return n, ok
}

// Has reports whether a node id exists in the topology.
func (s *Store) Has(id string) bool {
	_, ok := s.Node(id)
	return ok
}

// Len returns the number of nodes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// Bounds returns the coordinate bounding box. ok is false while the store
// is empty.
func (s *Store) Bounds() (Bounds, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds, s.loaded
}

func computeBounds(nodes []Node) Bounds {
	b := Bounds{
		MinLat: nodes[0].Lat,
		MaxLat: nodes[0].Lat,
		MinLon: nodes[0].Lon,
		MaxLon: nodes[0].Lon,
	}
	for _, n := range nodes[1:] {
		if n.Lat < b.MinLat {
			b.MinLat = n.Lat
		}
		if n.Lat > b.MaxLat {
			b.MaxLat = n.Lat
		}
		if n.Lon < b.MinLon {
			b.MinLon = n.Lon
		}
		if n.Lon > b.MaxLon {
			b.MaxLon = n.Lon
		}
	}
	return b
}
