/*
 * Copyright 2025 The fmtxm Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package api provides the HTTP API server for the transmitter fleet
// monitor. Every path under /api/snmp is part of the UI contract and must
// stay stable.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/db"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/mib"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/swagger"
)

const (
	defaultReadTimeout = 10 * time.Second
	defaultIdleTimeout = 60 * time.Second

	defaultAssetsDir = "attached_assets"
)

// APIServer exposes the monitoring core over REST and SSE.
type APIServer struct {
	router    *mux.Router
	store     db.Service
	poller    Poller
	snmp      SNMPTester
	receiver  TrapStatus
	mib       *mib.Mapper
	assetsDir string
	logger    logger.Logger

	// Event stream cadence; tests shorten these.
	updateInterval    time.Duration
	heartbeatInterval time.Duration

	mu         sync.Mutex
	httpServer *http.Server
}

// NewAPIServer creates a new API server instance with the given options.
func NewAPIServer(options ...func(server *APIServer)) *APIServer {
	s := &APIServer{
		router:            mux.NewRouter(),
		assetsDir:         defaultAssetsDir,
		updateInterval:    defaultUpdateInterval,
		heartbeatInterval: defaultHeartbeatInterval,
	}

	for _, o := range options {
		o(s)
	}

	if s.logger == nil {
		s.logger = logger.NewNop()
	}

	s.setupRoutes()

	return s
}

// WithStore adds the persistence store to the API server.
func WithStore(store db.Service) func(*APIServer) {
	return func(server *APIServer) {
		server.store = store
	}
}

// WithScheduler adds the poll scheduler to the API server.
func WithScheduler(p Poller) func(*APIServer) {
	return func(server *APIServer) {
		server.poller = p
	}
}

// WithSessionManager adds the SNMP session manager used by the one-shot
// test and walk endpoints.
func WithSessionManager(t SNMPTester) func(*APIServer) {
	return func(server *APIServer) {
		server.snmp = t
	}
}

// WithReceiver adds the trap receiver for health reporting.
func WithReceiver(r TrapStatus) func(*APIServer) {
	return func(server *APIServer) {
		server.receiver = r
	}
}

// WithMIB adds the OID name mapper used when generating walk templates.
func WithMIB(m *mib.Mapper) func(*APIServer) {
	return func(server *APIServer) {
		server.mib = m
	}
}

// WithAssetsDir sets the directory walk templates are written under.
func WithAssetsDir(dir string) func(*APIServer) {
	return func(server *APIServer) {
		if dir != "" {
			server.assetsDir = dir
		}
	}
}

// WithLogger adds a logger to the API server.
func WithLogger(log logger.Logger) func(*APIServer) {
	return func(server *APIServer) {
		server.logger = log
	}
}

// setupRoutes configures the HTTP routes for the API server.
func (s *APIServer) setupRoutes() {
	s.router.HandleFunc("/healthz", s.getHealth).Methods(http.MethodGet)
	s.setupSwaggerRoutes()

	api := s.router.PathPrefix("/api/snmp").Subrouter()

	api.HandleFunc("/devices", s.getDevices).Methods(http.MethodGet)
	api.HandleFunc("/devices", s.createDevice).Methods(http.MethodPost)
	api.HandleFunc("/devices/{id}", s.getDevice).Methods(http.MethodGet)
	api.HandleFunc("/devices/{id}", s.updateDevice).Methods(http.MethodPut)
	api.HandleFunc("/devices/{id}", s.deleteDevice).Methods(http.MethodDelete)

	api.HandleFunc("/test", s.testDevice).Methods(http.MethodPost)
	api.HandleFunc("/walk", s.walkDevice).Methods(http.MethodPost)

	api.HandleFunc("/start", s.startPolling).Methods(http.MethodPost)
	api.HandleFunc("/stop", s.stopPolling).Methods(http.MethodPost)
	api.HandleFunc("/status", s.getPollingStatus).Methods(http.MethodGet)

	api.HandleFunc("/results", s.getResults).Methods(http.MethodGet)
	api.HandleFunc("/results", s.clearResults).Methods(http.MethodDelete)

	api.HandleFunc("/events", s.streamEvents).Methods(http.MethodGet)

	api.HandleFunc("/transmitters", s.getTransmitters).Methods(http.MethodGet)
	api.HandleFunc("/transmitters", s.createTransmitter).Methods(http.MethodPost)
	api.HandleFunc("/transmitters/{id}/metrics/latest", s.getLatestMetrics).Methods(http.MethodGet)
	api.HandleFunc("/transmitters/{id}/metrics", s.getMetricsRange).Methods(http.MethodGet)
	api.HandleFunc("/transmitters/{id}", s.getTransmitter).Methods(http.MethodGet)
	api.HandleFunc("/transmitters/{id}", s.updateTransmitter).Methods(http.MethodPut)
	api.HandleFunc("/transmitters/{id}", s.deleteTransmitter).Methods(http.MethodDelete)

	api.HandleFunc("/sites", s.getSites).Methods(http.MethodGet)
	api.HandleFunc("/sites", s.createSite).Methods(http.MethodPost)
	api.HandleFunc("/sites/{id}", s.getSite).Methods(http.MethodGet)
	api.HandleFunc("/sites/{id}", s.updateSite).Methods(http.MethodPut)
	api.HandleFunc("/sites/{id}", s.deleteSite).Methods(http.MethodDelete)

	api.HandleFunc("/traps/latest", s.getLatestTraps).Methods(http.MethodGet)
	api.HandleFunc("/traps/range", s.getTrapsRange).Methods(http.MethodGet)
}

// setupSwaggerRoutes configures routes for the embedded API documentation.
func (s *APIServer) setupSwaggerRoutes() {
	s.router.HandleFunc("/swagger/swagger.json", serveSwaggerJSON)

	s.router.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/swagger.json", http.StatusMovedPermanently)
	})

	s.router.HandleFunc("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})
}

// serveSwaggerJSON serves the embedded Swagger JSON file.
func serveSwaggerJSON(w http.ResponseWriter, _ *http.Request) {
	data, err := swagger.GetSwaggerJSON()
	if err != nil {
		http.Error(w, "Swagger JSON not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(data); err != nil {
		http.Error(w, "Failed to write Swagger JSON response", http.StatusInternalServerError)
	}
}

type healthResponse struct {
	Status       string `json:"status"`
	Polling      bool   `json:"polling"`
	TrapReceiver bool   `json:"trapReceiver"`
	TrapPort     int    `json:"trapPort,omitempty"`
}

// @Summary Liveness probe
// @Description Reports process liveness plus the poll scheduler and trap receiver state
// @Tags System
// @Produce json
// @Success 200 {object} healthResponse "Service health"
// @Router /healthz [get]
func (s *APIServer) getHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok"}

	if s.poller != nil {
		resp.Polling = s.poller.Running()
	}

	if s.receiver != nil && s.receiver.Running() {
		resp.TrapReceiver = true
		resp.TrapPort = s.receiver.BoundPort()
	}

	if err := s.encodeJSONResponse(w, resp); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding health response")
	}
}

// Start starts the API server on the specified address. It blocks until the
// listener fails or Stop shuts it down.
func (s *APIServer) Start(addr string) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: defaultReadTimeout,
		// WriteTimeout stays zero: the event stream holds its response
		// open for the life of the connection.
		IdleTimeout: defaultIdleTimeout,
	}

	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	s.logger.Info().Str("addr", addr).Msg("API server listening")

	return srv.ListenAndServe()
}

// Stop shuts the server down gracefully, letting in-flight requests finish
// until the context gives up.
func (s *APIServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.httpServer = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	return srv.Shutdown(ctx)
}

// decodeJSONBody decodes a JSON request body into dst.
func decodeJSONBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// encodeJSONResponse encodes a response as JSON.
func (*APIServer) encodeJSONResponse(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")

	return json.NewEncoder(w).Encode(data)
}

// writeJSON writes a JSON response with an explicit status code.
func (s *APIServer) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding response")
	}
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errResponse := models.ErrorResponse{
		Message: message,
		Status:  statusCode,
	}

	if err := json.NewEncoder(w).Encode(errResponse); err != nil {
		// Fallback in case encoding fails
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}

// writeStoreError maps store sentinels onto HTTP codes: unknown ids are
// 404, validation and constraint failures 400, anything else 500.
func (s *APIServer) writeStoreError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		writeError(w, resource+" not found", http.StatusNotFound)
	case errors.Is(err, db.ErrSiteRequired),
		errors.Is(err, db.ErrInvalidInterval),
		errors.Is(err, db.ErrConstraint):
		writeError(w, err.Error(), http.StatusBadRequest)
	default:
		s.logger.Error().Err(err).Str("resource", resource).Msg("Store operation failed")
		writeError(w, "Storage error", http.StatusInternalServerError)
	}
}

// parseTimeRange parses start and end times from query parameters,
// accepting RFC3339 or epoch milliseconds. Ranges default to the last 24
// hours when not specified.
func parseTimeRange(query url.Values) (start, end time.Time, err error) {
	end = time.Now()
	start = end.Add(-24 * time.Hour)

	if raw := query.Get("start"); raw != "" {
		start, err = parseTimestamp(raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start time format: %w", err)
		}
	}

	if raw := query.Get("end"); raw != "" {
		end, err = parseTimestamp(raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end time format: %w", err)
		}
	}

	return start, end, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("want RFC3339 or epoch milliseconds, got %q", raw)
	}

	return time.UnixMilli(ms).UTC(), nil
}

// parseLimit reads a limit query parameter, falling back to def when absent
// or unparseable. Non-positive values mean "no limit" to the ring queries
// and are passed through.
func parseLimit(query url.Values, def int) int {
	raw := query.Get("limit")
	if raw == "" {
		return def
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}

	return v
}
