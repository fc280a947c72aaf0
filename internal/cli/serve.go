package cli

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ignite/shop/internal/config"
	"github.com/ignite/shop/internal/handlers"
)

// ServerDependencies holds all dependencies needed for the server
type ServerDependencies struct {
	ServerConfig        config.ServerConfig
	HomeHandler         http.Handler
	ProductHandler      http.Handler
	ProductDataHandler  http.Handler
	CheckoutHandler     http.Handler
	CheckoutFormHandler http.Handler
	SuccessHandler      http.Handler
	CancelHandler       http.Handler
	// RevalidateHandler is optional; on-demand revalidation is off without it
	RevalidateHandler http.Handler
	Static            fs.FS
}

// RunServe starts the storefront web server
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// NewRouter mounts every storefront route
func NewRouter(deps ServerDependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if deps.ServerConfig.RequestTimeout > 0 {
		r.Use(middleware.Timeout(deps.ServerConfig.RequestTimeout))
	}

	r.Get("/healthz", handlers.HealthHandler)

	r.Method(http.MethodGet, "/", deps.HomeHandler)
	r.Method(http.MethodGet, "/product/{id}", deps.ProductHandler)
	r.Method(http.MethodGet, "/_data/products/{id}.json", deps.ProductDataHandler)
	r.Method(http.MethodPost, "/api/checkout", deps.CheckoutHandler)
	r.Method(http.MethodPost, "/checkout", deps.CheckoutFormHandler)
	r.Method(http.MethodGet, "/success", deps.SuccessHandler)
	r.Method(http.MethodGet, "/cancel", deps.CancelHandler)

	if deps.RevalidateHandler != nil {
		r.Method(http.MethodPost, "/api/revalidate", deps.RevalidateHandler)
	}

	if deps.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(deps.Static))))
	}

	return r
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	// Create listener
	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	// Create HTTP server
	server := &http.Server{
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server listening on %s", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server
// If shutdown channel is nil, a new channel will be created and registered with signal.Notify
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	// Channel to listen for interrupt or terminate signals
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("Received signal: %v, shutting down server...", sig)

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		// http.Server.Close does not propagate listener close errors, so
		// this only fails if closing active connections fails
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Println("Server stopped")
	return nil
}
