package config

// ServerConfig contains server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0"`
}

// UpstreamConfig contains the traffic backend connection configuration
type UpstreamConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// PollConfig contains live-data polling configuration
type PollConfig struct {
	IntervalMS int `yaml:"intervalMS" validate:"gte=0"`
}

// SurfaceConfig describes the display surface frames are projected onto
type SurfaceConfig struct {
	WidthPx   float64 `yaml:"widthPx" validate:"gte=0"`
	HeightPx  float64 `yaml:"heightPx" validate:"gte=0"`
	PaddingPx float64 `yaml:"paddingPx" validate:"gte=0"`
}

// GeoConfig contains geolocation snapping configuration.
// SnapRadius is in coordinate degrees, the same planar distance the
// resolver measures in.
type GeoConfig struct {
	SnapRadius float64 `yaml:"snapRadius" validate:"gte=0"`
}

// RenderConfig contains congestion-halo and overlay geometry.
// CautionQueue and AlertQueue are the queue-count thresholds between
// no halo, the fixed caution halo and the scaled alert halo.
type RenderConfig struct {
	NodeRadiusPx     float64 `yaml:"nodeRadiusPx" validate:"gte=0"`
	HaloBasePx       float64 `yaml:"haloBasePx" validate:"gte=0"`
	HaloCapPx        float64 `yaml:"haloCapPx" validate:"gte=0"`
	CautionHaloPx    float64 `yaml:"cautionHaloPx" validate:"gte=0"`
	CautionQueue     int     `yaml:"cautionQueue" validate:"gte=0"`
	AlertQueue       int     `yaml:"alertQueue" validate:"gte=0"`
	RouteCoreWidthPx float64 `yaml:"routeCoreWidthPx" validate:"gte=0"`
	RouteGlowWidthPx float64 `yaml:"routeGlowWidthPx" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Poll     PollConfig     `yaml:"poll"`
	Surface  SurfaceConfig  `yaml:"surface"`
	Geo      GeoConfig      `yaml:"geo"`
	Render   RenderConfig   `yaml:"render"`
}
