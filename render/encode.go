package render

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EncodeJSON serializes a frame for programmatic clients.
func EncodeJSON(f *Frame) ([]byte, error) {
	return json.Marshal(f)
}

// EncodeSVG renders a frame as a standalone SVG document. Ops translate
// one-to-one, in order, so layering matches the display list exactly.
func EncodeSVG(f *Frame) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		f.Width, f.Height, f.Width, f.Height)
	for _, op := range f.Ops {
		switch op.Kind {
		case OpBackground:
			fmt.Fprintf(&b, `<rect x="0" y="0" width="%g" height="%g" fill="%s"/>`+"\n", f.Width, f.Height, op.Color)
		case OpLine:
			fmt.Fprintf(&b, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="%g" stroke-opacity="%g"/>`+"\n",
				op.X, op.Y, op.X2, op.Y2, op.Color, op.StrokeWidth, op.Opacity)
		case OpCircle:
			fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="%g" fill="%s" fill-opacity="%g"/>`+"\n",
				op.X, op.Y, op.Radius, op.Color, op.Opacity)
		case OpPolyline:
			pts := make([]string, 0, len(op.Points))
			for _, p := range op.Points {
				pts = append(pts, fmt.Sprintf("%g,%g", p.X, p.Y))
			}
			fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%g" stroke-opacity="%g" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
				strings.Join(pts, " "), op.Color, op.StrokeWidth, op.Opacity)
		case OpText:
			fmt.Fprintf(&b, `<text x="%g" y="%g" fill="%s" font-size="12">%s</text>`+"\n",
				op.X, op.Y, op.Color, escapeText(op.Text))
		}
	}
	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
