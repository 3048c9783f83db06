package render

// Fixed palette. Signal colors follow the SPaT phase; start/end override
// the phase color on selected nodes so the active picks stay readable.
const (
	colorBackground Color = "#0B1220"
	colorEdge       Color = "#4A5568"
	colorGreen      Color = "#34C759"
	colorYellow     Color = "#FFCC00"
	colorRed        Color = "#FF3B30"
	colorStart      Color = "#0A84FF"
	colorEnd        Color = "#BF5AF2"
	colorAlertHalo  Color = "#FF3B30"
	colorCaution    Color = "#FF9F0A"
	colorRoute      Color = "#30D158"
	colorTooltip    Color = "#E5E7EB"
)

const (
	glowOpacity = 0.25
	coreOpacity = 0.95
	haloOpacity = 0.35
)
