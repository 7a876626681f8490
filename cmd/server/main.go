/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the reservation engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load and validate the catalog (rooms, rates, inventory)
  3. Initialize the SQLite booking store
  4. Wire the engine, metrics and HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port     HTTP server port (default: 8080)
  -db       SQLite database path (default: bookings.db)
            Use ":memory:" for an in-memory database
  -catalog  TOML catalog path (default: catalog.toml)

A missing or invalid catalog is a startup fault: every downstream
computation depends on it, so the process refuses to start rather than
serving answers from defaults.

EXAMPLES:
  # Run with file database
  ./server -db="./data/bookings.db" -catalog="./catalog.toml"

  # Run with in-memory database
  ./server -db=":memory:"

SEE ALSO:
  - api/server.go: Router configuration
  - factory/catalog.go: Catalog loading
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/warp/booking-engine/api"
	"github.com/warp/booking-engine/booking"
	"github.com/warp/booking-engine/factory"
	"github.com/warp/booking-engine/metrics"
	"github.com/warp/booking-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "bookings.db", "SQLite database path")
	catalogPath := flag.String("catalog", "catalog.toml", "TOML catalog path")
	flag.Parse()

	// Reference data first: no catalog, no server.
	catalog, err := factory.Load(*catalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d room types, %d rate rules", len(catalog.RoomTypes), len(catalog.Rules))

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Wire engine, metrics, router
	engine := booking.NewEngine(catalog, store)

	registry := prometheus.NewRegistry()
	handler := api.NewHandler(engine, metrics.New(registry))
	router := api.NewRouter(handler, registry)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
