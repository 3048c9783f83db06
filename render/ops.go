package render

// Color is a CSS hex color.
type Color string

// OpKind discriminates draw operations in a display list.
type OpKind string

const (
	OpBackground OpKind = "background"
	OpLine       OpKind = "line"
	OpCircle     OpKind = "circle"
	OpPolyline   OpKind = "polyline"
	OpText       OpKind = "text"
)

// XY is a projected surface point.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Op is one draw operation. Fields are populated per kind: lines use
// X/Y/X2/Y2, circles X/Y/Radius, polylines Points/StrokeWidth, text
// X/Y/Text. Frontends execute ops strictly in order.
type Op struct {
	Kind        OpKind  `json:"kind"`
	X           float64 `json:"x,omitempty"`
	Y           float64 `json:"y,omitempty"`
	X2          float64 `json:"x2,omitempty"`
	Y2          float64 `json:"y2,omitempty"`
	Radius      float64 `json:"radius,omitempty"`
	Points      []XY    `json:"points,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Color       Color   `json:"color,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
	Text        string  `json:"text,omitempty"`
}

// Frame is one complete rendered picture: an ordered display list plus
// the metadata a client needs to present it.
type Frame struct {
	Seq       uint64  `json:"seq"`
	Timestamp string  `json:"timestamp,omitempty"`
	Mode      string  `json:"mode,omitempty"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Ops       []Op    `json:"ops"`
}
