package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/longevity-genie/cell2sentence-mcp/internal/config"
	"github.com/longevity-genie/cell2sentence-mcp/internal/predict"
)

const serverName = "Cell2Sentence4Longevity MCP Server"

// Server exposes the age prediction operations over the Model Context
// Protocol, on the transport selected in the configuration.
type Server struct {
	cfg       config.Config
	predictor *predict.Predictor
	mcp       *mcpserver.MCPServer
}

func New(cfg config.Config, predictor *predict.Predictor) *Server {
	s := &Server{
		cfg:       cfg,
		predictor: predictor,
		mcp: mcpserver.NewMCPServer(
			serverName,
			"0.1.0",
			mcpserver.WithRecovery(),
		),
	}

	s.registerTools()
	s.registerResources()
	return s
}

// Run serves on the configured transport until the process is signalled.
func (s *Server) Run() error {
	switch s.cfg.Server.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "sse":
		addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
		slog.Info("starting SSE server", "address", addr)
		return mcpserver.NewSSEServer(s.mcp).Start(addr)
	case "streamable-http":
		return s.runStreamableHTTP()
	default:
		return fmt.Errorf("unknown transport: %s", s.cfg.Server.Transport)
	}
}

func (s *Server) runStreamableHTTP() error {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.loggingMiddleware)

	router.Mount("/mcp", mcpserver.NewStreamableHTTPServer(s.mcp))
	router.Get("/api/v1/health", handleHealth)

	srv := &http.Server{
		Addr:    s.cfg.Server.Host + ":" + s.cfg.Server.Port,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("starting streamable HTTP server", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		slog.Info("starting shutdown", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	return nil
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(rw, r)

		slog.Info("HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr,
		)
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// Custom response writer to capture status code
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	return rw.ResponseWriter.Write(b)
}
