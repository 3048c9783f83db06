/*
Package trafficviz is a headless visualization engine for a live traffic
network. It projects the intersection/road topology onto a 2D surface,
keeps the displayed state synchronized with a polled live-data feed, runs
the start/end route selection state machine, and renders everything into
an ordered display list that any frontend can execute.

# Usage

	cfg := config.Default()
	engine := trafficviz.NewEngine(cfg)
	if err := engine.Start(ctx); err != nil {
	    log.Printf("topology unavailable, rendering empty frames: %v", err)
	}
	defer engine.Stop()

	engine.Pick("3-4")          // pointer pick: start
	engine.Pick("5-1")          // pointer pick: end, issues a route request
	buf, _ := engine.FrameJSON("") // current frame as a JSON display list

While a selection is resolved, every applied live snapshot re-issues the
route request so the overlay follows current congestion. All upstream
failures degrade to a stale-but-valid picture; see the diagnostics
package for the counters that keep them observable.
*/
package trafficviz
