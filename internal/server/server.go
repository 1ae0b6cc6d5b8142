package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tournevent/shipbridge/internal/graphql"
	"github.com/tournevent/shipbridge/internal/telemetry"
	"github.com/tournevent/shipbridge/pkg/shipper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

const maxRequestBody = 1 << 20

// Server is the HTTP server for the shipping service.
type Server struct {
	port     int
	registry *shipper.Registry
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
	resolver *graphql.Resolver
	gatherer prometheus.Gatherer
}

// Config holds server configuration.
type Config struct {
	Port int

	// Metrics registry; the Prometheus default registry when nil.
	Registry *prometheus.Registry
}

// New creates a new server instance.
func New(cfg Config, registry *shipper.Registry, logger *otelzap.Logger) *Server {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if cfg.Registry != nil {
		registerer, gatherer = cfg.Registry, cfg.Registry
	}

	metrics := telemetry.NewMetrics(registerer)
	resolver := graphql.NewResolver(registry, logger, metrics)

	return &Server{
		port:     cfg.Port,
		registry: registry,
		logger:   logger,
		metrics:  metrics,
		resolver: resolver,
		gatherer: gatherer,
	}
}

// Handler returns the HTTP routes of the service.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	// GraphQL endpoint
	mux.HandleFunc("/graphql", s.handleGraphQL)

	return mux
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.registry.Count() == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("no carriers registered"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// GraphQL request/response types
type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   any           `json:"data,omitempty"`
	Errors gqlerror.List `json:"errors,omitempty"`
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, graphQLResponse{
			Errors: gqlerror.List{gqlerror.Errorf("Method not allowed, use POST")},
		})
		return
	}

	var req graphQLRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, graphQLResponse{
			Errors: gqlerror.List{gqlerror.Errorf("Invalid JSON: %s", err)},
		})
		return
	}

	data, errs := s.resolver.Execute(r.Context(), req.Query, req.OperationName, req.Variables)
	if data == nil {
		s.logger.Ctx(r.Context()).Info("Rejected GraphQL request", zap.String("errors", errs.Error()))
		writeJSON(w, http.StatusBadRequest, graphQLResponse{Errors: errs})
		return
	}

	writeJSON(w, http.StatusOK, graphQLResponse{Data: data, Errors: errs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
