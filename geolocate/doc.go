// Package geolocate snaps real-world coordinates to topology nodes within
// a configured radius. Out-of-range picks are discarded, not errors.
package geolocate
