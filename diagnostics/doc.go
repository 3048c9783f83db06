// Package diagnostics exposes Prometheus counters for the failures the
// engine deliberately suppresses: poll errors, stale responses, route
// request errors and out-of-range geolocation picks. The rendering path
// stays silent by design; operators watch these counters instead.
package diagnostics
