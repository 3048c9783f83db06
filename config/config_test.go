package config

import "testing"

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("server:\n  port: 18080\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Server.Port != 18080 {
		t.Errorf("explicit port lost: %d", cfg.Server.Port)
	}
	if cfg.Upstream.BaseURL != "http://localhost:5000" {
		t.Errorf("default baseURL: %q", cfg.Upstream.BaseURL)
	}
	if cfg.Poll.IntervalMS != 1000 {
		t.Errorf("default poll interval: %d", cfg.Poll.IntervalMS)
	}
	if cfg.Surface.WidthPx != 960 || cfg.Surface.HeightPx != 720 || cfg.Surface.PaddingPx != 40 {
		t.Errorf("default surface: %+v", cfg.Surface)
	}
	if cfg.Geo.SnapRadius != 0.01 {
		t.Errorf("default snap radius: %v", cfg.Geo.SnapRadius)
	}
	if cfg.Render.CautionQueue != 15 || cfg.Render.AlertQueue != 30 {
		t.Errorf("default halo thresholds: %+v", cfg.Render)
	}
}

func TestParseOverrides(t *testing.T) {
	doc := `
upstream:
  baseURL: http://backend:5000
  timeoutMS: 2500
poll:
  intervalMS: 500
render:
  alertQueue: 50
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Upstream.BaseURL != "http://backend:5000" {
		t.Errorf("baseURL: %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.TimeoutMS != 2500 {
		t.Errorf("timeoutMS: %d", cfg.Upstream.TimeoutMS)
	}
	if cfg.Poll.IntervalMS != 500 {
		t.Errorf("intervalMS: %d", cfg.Poll.IntervalMS)
	}
	if cfg.Render.AlertQueue != 50 {
		t.Errorf("alertQueue: %d", cfg.Render.AlertQueue)
	}
	// untouched sections still get their defaults
	if cfg.Render.HaloBasePx != 6 {
		t.Errorf("haloBasePx: %v", cfg.Render.HaloBasePx)
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"bad url", "upstream:\n  baseURL: not-a-url\n"},
		{"negative port", "server:\n  port: -1\n"},
		{"negative interval", "poll:\n  intervalMS: -5\n"},
		{"malformed yaml", "server: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.doc)); err == nil {
				t.Fatalf("expected error for %q", tc.doc)
			}
		})
	}
}

func TestDefaultIsComplete(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port == 0 || cfg.Upstream.BaseURL == "" || cfg.Upstream.TimeoutMS == 0 {
		t.Fatalf("incomplete defaults: %+v", cfg)
	}
	if cfg.Render.NodeRadiusPx == 0 || cfg.Render.RouteGlowWidthPx == 0 {
		t.Fatalf("incomplete render defaults: %+v", cfg.Render)
	}
}
