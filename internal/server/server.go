package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/janpfeifer/GoSet/internal/config"
	"github.com/janpfeifer/GoSet/internal/frontend"
	"github.com/janpfeifer/GoSet/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Run starts the server on addr with the default configuration and blocks until the context is canceled.
// If addr is empty, an automatic port on localhost is used.
//
// If started is not nil, the server state is sent to it once the server is listening.
func Run(ctx context.Context, addr string, started chan<- *ServerState) error {
	cfg := config.Default()
	cfg.Addr = addr
	return RunWithConfig(ctx, cfg, started)
}

// RunWithConfig starts the server configured by cfg and blocks until the context is canceled.
func RunWithConfig(ctx context.Context, cfg *config.ServerConfig, started chan<- *ServerState) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Initialize global client state for server-side prerendering without panic
	frontend.InitState()

	// Register go-app routes so the server knows how to prerender them
	app.Route("/", func() app.Composer { return &frontend.Home{} })
	app.Route("/play", func() app.Composer { return &frontend.Game{} })

	// The web assets and the compiled webassembly
	// are served natively by the go-app framework
	h := &app.Handler{
		Name:        "GoSet",
		Description: "Find sets and ultrasets before the deck runs out",
		Version:     game.Version,
		Styles: []string{
			"/web/css/pico.min.css", // Load pico.css
			"/web/css/main.css",     // Custom styles if any
		},
	}

	serverState := NewServerState(cfg)

	mux := http.NewServeMux()

	// Register WebSocket endpoint
	mux.HandleFunc("/ws", serverState.HandleWS)

	// Serve the go-app UI
	// We want to serve /web for static files
	mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir("web/"))))
	mux.Handle("/", h)

	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %q: %w", addr, err)
	}
	serverState.Address = listener.Addr().String()

	// Websocket connections are hijacked, so Shutdown doesn't wait for them:
	// they are closed when their request context, derived from ctx, is canceled.
	srv := &http.Server{
		Handler:     mux,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go serverState.expireSessions(ctx, cfg.SessionTTL/4)

	go func() {
		klog.Infof("Server started on %s", serverState.Address)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.Errorf("Server error: %v", err)
		}
	}()
	if started != nil {
		started <- serverState
	}

	<-ctx.Done()

	// Graceful shutdown with 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	klog.Infof("Shutting down server...")
	return srv.Shutdown(shutdownCtx)
}
