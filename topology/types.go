package topology

// Node is a traffic intersection. The node set is loaded once per session
// and never mutated afterwards.
type Node struct {
	ID   string  `json:"id"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

// Edge is a directed road segment between two nodes. Source and Target
// reference node ids; dangling references are tolerated and skipped at
// render time.
type Edge struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Distance float64 `json:"distance"`
}

// Bounds is the bounding rectangle over the node coordinates.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}
