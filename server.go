package trafficviz

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theoremus-urban-solutions/traffic-viz/diagnostics"
)

var (
	server *http.Server
)

func StartServer(e *Engine) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handleHealth(e))
	mux.HandleFunc("/api/frame.json", handleFrameJSON(e))
	mux.HandleFunc("/api/frame.svg", handleFrameSVG(e))
	mux.HandleFunc("/api/pick", handlePick(e))
	mux.HandleFunc("/api/reset", handleReset(e))
	mux.Handle("/metrics", diagnostics.Handler())

	addr := fmt.Sprintf(":%d", e.cfg.Server.Port)
	server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

func HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
}
