package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"shoulders/internal/kube"
	"shoulders/internal/platform"
	"shoulders/pkg/logging"
)

// ContextSelector tracks the kubeconfig context the dashboard works on.
// *kube.Loader implements it.
type ContextSelector interface {
	Kubeconfig() *kube.Kubeconfig
	Context() string
	SetContext(name string)
}

// Options configures a Server.
type Options struct {
	Service  *platform.Service
	Contexts ContextSelector
	// Mock serves canned data and never talks to a cluster.
	Mock           bool
	AllowedOrigins []string
	// StaticDir, when set, is served at / for the dashboard UI.
	StaticDir string
}

// Server is the dashboard HTTP backend.
type Server struct {
	svc      *platform.Service
	contexts ContextSelector
	mock     bool
	metrics  *metrics
	handler  http.Handler
}

// New builds the router and middleware chain.
func New(opts Options) *Server {
	s := &Server{
		svc:      opts.Service,
		contexts: opts.Contexts,
		mock:     opts.Mock,
		metrics:  newMetrics(),
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/contexts", s.handleContexts).Methods(http.MethodGet)
	api.HandleFunc("/context", s.handleSetContext).Methods(http.MethodPost)
	api.HandleFunc("/namespaces", s.handleNamespaces).Methods(http.MethodGet)
	api.HandleFunc("/summary", s.handleSummary).Methods(http.MethodGet)
	api.HandleFunc("/resources/{kind}", s.handleResources).Methods(http.MethodGet)
	api.HandleFunc("/apply", s.handleApply).Methods(http.MethodPost)
	api.HandleFunc("/render", s.handleRender).Methods(http.MethodPost)

	if opts.StaticDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(opts.StaticDir))).Methods(http.MethodGet)
	}

	router.Use(requestID)
	router.Use(s.instrument)
	router.Use(recoverer)
	router.Use(limitBody)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})
	s.handler = c.Handler(router)
	return s
}

// Handler returns the root handler including CORS.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on port until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.handler,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("Dashboard", "Listening on http://localhost:%d (mock=%t)", port, s.mock)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("dashboard server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info("Dashboard", "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "mock": s.mock})
}
