package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	lib "github.com/theoremus-urban-solutions/traffic-viz"
	"github.com/theoremus-urban-solutions/traffic-viz/config"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|serve")
	format := flag.String("format", "json", "json|svg")
	start := flag.String("start", "", "start node id for a route (oneshot)")
	end := flag.String("end", "", "end node id for a route (oneshot)")
	lat := flag.Float64("lat", 0, "geolocation latitude (oneshot, with -lon)")
	lon := flag.Float64("lon", 0, "geolocation longitude (oneshot, with -lat)")
	hover := flag.String("hover", "", "node id for the tooltip layer")
	baseURL := flag.String("baseURL", "", "backend base URL (overrides config)")
	routeWait := flag.Duration("routeWait", 3*time.Second, "how long oneshot waits for the route response")
	flag.Parse()

	lib.InitLogging()
	if err := config.LoadAppConfig(); err != nil {
		log.Printf("no config.yml, using defaults: %v", err)
		config.Config = config.Default()
	}
	if *baseURL != "" {
		config.Config.Upstream.BaseURL = *baseURL
	}

	engine := lib.NewEngine(config.Config)

	switch *mode {
	case "serve":
		if err := engine.Start(context.Background()); err != nil {
			log.Printf("starting without topology: %v", err)
		}
		lib.StartServer(engine)
		lib.HandleGracefulShutdown()
		engine.Stop()
	case "oneshot":
		ctx := context.Background()
		if err := engine.Bootstrap(ctx); err != nil {
			panic(err)
		}
		if err := engine.Refresh(ctx); err != nil {
			log.Printf("live data unavailable, rendering topology only: %v", err)
		}
		if *lat != 0 || *lon != 0 {
			if n, ok := engine.PickLocation(*lat, *lon); ok {
				log.Printf("geolocation snapped to %s", n.ID)
			} else {
				log.Printf("geolocation outside snap radius, ignored")
			}
		}
		if *start != "" && *end != "" {
			engine.Pick(*start)
			engine.Pick(*end)
			waitForRoute(engine, *routeWait)
		}
		var buf []byte
		var err error
		if *format == "svg" {
			buf, err = engine.FrameSVG(*hover)
		} else {
			buf, err = engine.FrameJSON(*hover)
		}
		if err != nil {
			panic(err)
		}
		fmt.Println(string(buf))
	default:
		panic("unknown mode")
	}
}

// waitForRoute polls for the async route response so the printed frame
// includes the overlay. A timeout just means the frame goes out without
// it, matching the silent-failure policy.
func waitForRoute(engine *lib.Engine, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if engine.RoutePath() != nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	log.Printf("route response not received within %s", timeout)
}
