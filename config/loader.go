package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig() error {
	paths := []string{"config.yml", "./traffic-viz/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse decodes, validates and applies defaults to a YAML configuration document.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	ApplyDefaults(&cfg)
	return cfg, nil
}

// ApplyDefaults fills zero-valued fields with the defaults the original
// frontend hardcoded: 1s poll cadence, 960x720 surface with 40px padding,
// and the halo geometry thresholds at 15 and 30 queued vehicles.
func ApplyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 17080
	}
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = "http://localhost:5000"
	}
	if cfg.Upstream.TimeoutMS == 0 {
		cfg.Upstream.TimeoutMS = 5000
	}
	if cfg.Poll.IntervalMS == 0 {
		cfg.Poll.IntervalMS = 1000
	}
	if cfg.Surface.WidthPx == 0 {
		cfg.Surface.WidthPx = 960
	}
	if cfg.Surface.HeightPx == 0 {
		cfg.Surface.HeightPx = 720
	}
	if cfg.Surface.PaddingPx == 0 {
		cfg.Surface.PaddingPx = 40
	}
	if cfg.Geo.SnapRadius == 0 {
		cfg.Geo.SnapRadius = 0.01
	}
	if cfg.Render.NodeRadiusPx == 0 {
		cfg.Render.NodeRadiusPx = 5
	}
	if cfg.Render.HaloBasePx == 0 {
		cfg.Render.HaloBasePx = 6
	}
	if cfg.Render.HaloCapPx == 0 {
		cfg.Render.HaloCapPx = 20
	}
	if cfg.Render.CautionHaloPx == 0 {
		cfg.Render.CautionHaloPx = 10
	}
	if cfg.Render.CautionQueue == 0 {
		cfg.Render.CautionQueue = 15
	}
	if cfg.Render.AlertQueue == 0 {
		cfg.Render.AlertQueue = 30
	}
	if cfg.Render.RouteCoreWidthPx == 0 {
		cfg.Render.RouteCoreWidthPx = 3
	}
	if cfg.Render.RouteGlowWidthPx == 0 {
		cfg.Render.RouteGlowWidthPx = 9
	}
}

// Default returns a configuration with every default applied.
func Default() AppConfig {
	var cfg AppConfig
	ApplyDefaults(&cfg)
	return cfg
}
