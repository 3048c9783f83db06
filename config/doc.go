// Package config loads the application configuration from config.yml.
//
// Configuration covers the upstream traffic backend (base URL, timeouts),
// the live-data poll cadence, the display surface geometry, the geolocation
// snap radius and the congestion-halo thresholds. All fields have defaults;
// an empty config file is a valid configuration.
package config
