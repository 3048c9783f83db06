package trafficviz

import (
	"encoding/json"
	"net/http"

	"github.com/theoremus-urban-solutions/traffic-viz/selection"
)

type healthResponse struct {
	Status            string `json:"status"`
	Timestamp         string `json:"timestamp"`
	TopologyLoaded    bool   `json:"topology_loaded"`
	Nodes             int    `json:"nodes"`
	LatestSnapshotSeq uint64 `json:"latest_snapshot_seq"`
	Mode              string `json:"mode,omitempty"`
}

func handleHealth(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := healthResponse{
			Status:         "ok",
			Timestamp:      iso8601Now(),
			TopologyLoaded: e.store.Loaded(),
			Nodes:          e.store.Len(),
		}
		if snap := e.Snapshot(); snap != nil {
			resp.LatestSnapshotSeq = snap.Seq
			resp.Mode = string(snap.Mode)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func handleFrameJSON(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		q, err := parseFrameQuery(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		if q.width > 0 && q.height > 0 {
			e.Resize(q.width, q.height)
		}
		buf, err := e.FrameJSON(q.hover)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		_, _ = w.Write(buf)
	}
}

func handleFrameSVG(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseFrameQuery(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		if q.width > 0 && q.height > 0 {
			e.Resize(q.width, q.height)
		}
		buf, err := e.FrameSVG(q.hover)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(buf)
	}
}

// pickRequest mirrors the backend route body: either a node id or a raw
// coordinate pair.
type pickRequest struct {
	Node string   `json:"node,omitempty"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}

type selectionResponse struct {
	Phase   string `json:"phase"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	Snapped string `json:"snapped,omitempty"`
}

func handlePick(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req pickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid pick body"})
			return
		}
		resp := selectionResponse{}
		switch {
		case req.Node != "":
			e.Pick(req.Node)
		case req.Lat != nil && req.Lon != nil:
			if n, ok := e.PickLocation(*req.Lat, *req.Lon); ok {
				resp.Snapped = n.ID
			}
			// a miss is not an error: the event is dropped with no transition
		default:
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "pick requires node or lat/lon"})
			return
		}
		sel := e.Selection()
		resp.Phase = sel.Phase.String()
		resp.Start = sel.Start
		resp.End = sel.End
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func handleReset(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		e.Reset()
		_ = json.NewEncoder(w).Encode(selectionResponse{Phase: selection.Idle.String()})
	}
}
