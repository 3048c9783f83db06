package trafficviz

import "time"

// iso8601Now returns the current time in ISO8601 format
func iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
