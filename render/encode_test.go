package render

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEncodeJSONRoundTrip(t *testing.T) {
	f := &Frame{
		Seq: 7, Width: 960, Height: 720,
		Ops: []Op{
			{Kind: OpBackground, Color: colorBackground, Opacity: 1},
			{Kind: OpCircle, X: 100, Y: 200, Radius: 5, Color: colorGreen, Opacity: 1},
		},
	}
	buf, err := EncodeJSON(f)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var back Frame
	if err := json.Unmarshal(buf, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Seq != 7 || len(back.Ops) != 2 || back.Ops[1].Kind != OpCircle {
		t.Errorf("round trip lost data: %+v", back)
	}
}

func TestEncodeSVGLayersInOrder(t *testing.T) {
	f := &Frame{
		Width: 100, Height: 100,
		Ops: []Op{
			{Kind: OpBackground, Color: colorBackground},
			{Kind: OpLine, X: 0, Y: 0, X2: 10, Y2: 10, StrokeWidth: 1.5, Color: colorEdge, Opacity: 1},
			{Kind: OpPolyline, Points: []XY{{1, 1}, {2, 2}}, StrokeWidth: 9, Color: colorRoute, Opacity: glowOpacity},
			{Kind: OpPolyline, Points: []XY{{1, 1}, {2, 2}}, StrokeWidth: 3, Color: colorRoute, Opacity: coreOpacity},
			{Kind: OpText, X: 5, Y: 5, Text: "A & B <ok>", Color: colorTooltip},
		},
	}
	svg := string(EncodeSVG(f))

	rect := strings.Index(svg, "<rect")
	line := strings.Index(svg, "<line")
	poly := strings.Index(svg, "<polyline")
	text := strings.Index(svg, "<text")
	if rect == -1 || line == -1 || poly == -1 || text == -1 {
		t.Fatalf("missing elements in svg:\n%s", svg)
	}
	if !(rect < line && line < poly && poly < text) {
		t.Error("svg element order must follow the display list")
	}
	if strings.Count(svg, "<polyline") != 2 {
		t.Error("both overlay passes must be emitted")
	}
	if !strings.Contains(svg, "A &amp; B &lt;ok&gt;") {
		t.Error("text content must be escaped")
	}
}
