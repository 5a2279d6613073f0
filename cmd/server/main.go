/*
main.go - Payroll finisher HTTP server entry point

PURPOSE:
  Starts the payroll finisher API: upload a raw biweekly export, get back
  stats, consolidated lines, and a downloadable import workbook.

STARTUP SEQUENCE:
  1. Load configuration (CONFIG_PATH yaml, env overrides, defaults)
  2. Build the allocator from the configured rule set
  3. Configure HTTP router
  4. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

EXAMPLES:
  # Defaults (port 8080, 88-hour threshold)
  ./server

  # Custom config file
  CONFIG_PATH=./config/local.yaml ./server

  # Override just the address
  HTTP_ADDRESS=:3000 ./server

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - config/config.go: Configuration loading
*/
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/star-security/payroll-finisher/api"
	"github.com/star-security/payroll-finisher/config"
	"github.com/star-security/payroll-finisher/payroll"
)

func main() {
	cfg := config.MustLoad()

	allocator := payroll.NewAllocator(cfg.AllocatorConfig())
	handler := api.NewHandler(allocator)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Printf("Payroll finisher listening on %s (env=%s)", cfg.HTTPServer.Address, cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

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
