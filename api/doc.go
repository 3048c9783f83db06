// Package api is the JSON/HTTP client for the traffic backend: /health
// (startup only), /api/config (once), /api/live-data (polled) and
// /api/route. These four endpoints are the entire upstream boundary;
// comparison/KPI endpoints belong to peripheral panels and are not
// consumed here.
package api
