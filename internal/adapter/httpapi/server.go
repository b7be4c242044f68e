// Package httpapi exposes the district statistics HTTP surface.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/sejal-1604/MGNREGA/internal/domain"
	"github.com/sejal-1604/MGNREGA/internal/resolver"
)

// defaultListLimit caps an unbounded district list request; the reference
// table holds the 51 unique MP districts, so the default returns the full
// set.
const defaultListLimit = 51

// DistrictService is the resolver surface the API depends on.
type DistrictService interface {
	Districts(ctx context.Context, search string, limit int) []domain.Region
	DistrictData(ctx context.Context, id string) (domain.DistrictData, error)
	Nearest(lat, lon float64) (domain.Region, float64, error)
	LiveEnabled() bool
	RegionCount() int
}

// Refresher forces a full cache refresh.
type Refresher interface {
	RunOnce(ctx context.Context) error
}

// Server exposes the district API, health, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	service    DistrictService
	refresher  Refresher
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all routes registered and CORS
// applied for the configured origin.
func NewServer(addr, allowedOrigin string, service DistrictService, refresher Refresher, logger *slog.Logger) *Server {
	s := &Server{
		service:   service,
		refresher: refresher,
		logger:    logger,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/states", s.handleStates).Methods(http.MethodGet)
	r.HandleFunc("/api/districts", s.handleDistricts).Methods(http.MethodGet)
	r.HandleFunc("/api/districts/find-by-location", s.handleFindByLocation).Methods(http.MethodPost)
	r.HandleFunc("/api/districts/{id}", s.handleDistrictDetail).Methods(http.MethodGet)
	r.HandleFunc("/api/refresh", s.handleRefresh).Methods(http.MethodPost)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      c.Handler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"state":           "Madhya Pradesh",
		"stateCode":       "17",
		"totalDistricts":  s.service.RegionCount(),
		"realDataEnabled": s.service.LiveEnabled(),
		"dataSource":      s.dataSourceLabel(),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) dataSourceLabel() string {
	if s.service.LiveEnabled() {
		return "Government MGNREGA API (data.gov.in)"
	}
	return "Government District Database (Pattern-based)"
}

// handleStates lists the covered states. The deployment serves one state;
// the shape matches the district list so clients can treat both uniformly.
func (s *Server) handleStates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"data":       []string{"Madhya Pradesh"},
		"total":      1,
		"dataSource": s.dataSourceLabel(),
	})
}

func (s *Server) handleDistricts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := defaultListLimit
	if raw := q.Get("limit"); raw != "" {
		if n, err := parsePositiveInt(raw); err == nil {
			limit = n
		}
	}

	regions := s.service.Districts(r.Context(), q.Get("search"), limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"data":        regions,
		"total":       len(regions),
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleDistrictDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	data, err := s.service.DistrictData(r.Context(), id)
	if err != nil {
		if errors.Is(err, resolver.ErrRegionNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"success": false,
				"message": "District not found",
			})
			return
		}
		// The synthetic tier guarantees a result for known districts, so
		// any other error is a genuine server fault.
		s.logger.Error("district detail failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Server error",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	})
}

// locationRequest carries the geo query body. Pointers distinguish a missing
// coordinate from a zero one.
type locationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (s *Server) handleFindByLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Latitude == nil || req.Longitude == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Latitude and longitude are required",
		})
		return
	}

	region, distKm, err := s.service.Nearest(*req.Latitude, *req.Longitude)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"message": "No district found for this location",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"district":   region,
		"distanceKm": distKm,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.refresher.RunOnce(r.Context()); err != nil {
		s.logger.Error("manual refresh failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Refresh failed",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
	})
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("not positive")
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
