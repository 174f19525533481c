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

package api

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/snmp"
)

var errDumpOutsideAssets = errors.New("dumpFile must name a file inside the assets directory")

const (
	testTimeout = 30 * time.Second
	walkTimeout = 2 * time.Minute

	// defaultWalkRoot is the Elenos enterprise subtree; walking the whole
	// MIB of a busy transmitter takes minutes and times out.
	defaultWalkRoot = "1.3.6.1.4.1.31946"

	defaultDeviceType = "elenos-etg"
)

type pollingStateResponse struct {
	Running bool `json:"running"`
}

type deviceStatusEntry struct {
	ID         string     `json:"id"`
	Online     bool       `json:"online"`
	LastSeen   *time.Time `json:"lastSeen,omitempty"`
	ErrorCount int        `json:"errorCount"`
}

type pollingStatusResponse struct {
	Running     bool                `json:"running"`
	DeviceCount int                 `json:"deviceCount"`
	Devices     []deviceStatusEntry `json:"devices"`
}

// testRequest is the POST /test body: a one-shot probe target. OIDs pass
// through the same expansion as the polling path, so an empty list still
// probes the core transmitter objects.
type testRequest struct {
	Host      string   `json:"host"`
	Port      int      `json:"port"`
	Community string   `json:"community"`
	Version   *int     `json:"version"`
	OIDs      []string `json:"oids"`
}

// walkRequest is the POST /walk body. With a host the walk runs live; with
// a dumpFile (or when the live walk fails and a dumpFile is present) the
// local snmpwalk dump under the assets directory is parsed instead.
type walkRequest struct {
	Host       string `json:"host"`
	Port       int    `json:"port"`
	Community  string `json:"community"`
	Version    *int   `json:"version"`
	Root       string `json:"root"`
	DumpFile   string `json:"dumpFile"`
	DeviceType string `json:"deviceType"`
}

// @Summary Start polling
// @Description Starts the poll loops for every active device
// @Tags Polling
// @Produce json
// @Success 200 {object} pollingStateResponse "Scheduler state"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/start [post]
func (s *APIServer) startPolling(w http.ResponseWriter, _ *http.Request) {
	if s.poller == nil {
		writeError(w, "Poller not configured", http.StatusInternalServerError)
		return
	}

	if err := s.poller.Start(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to start polling")
		writeError(w, "Failed to start polling", http.StatusInternalServerError)

		return
	}

	if err := s.encodeJSONResponse(w, pollingStateResponse{Running: s.poller.Running()}); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding polling state response")
	}
}

// @Summary Stop polling
// @Description Stops every poll loop and waits for in-flight polls to finish
// @Tags Polling
// @Produce json
// @Success 200 {object} pollingStateResponse "Scheduler state"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/stop [post]
func (s *APIServer) stopPolling(w http.ResponseWriter, _ *http.Request) {
	if s.poller == nil {
		writeError(w, "Poller not configured", http.StatusInternalServerError)
		return
	}

	s.poller.Stop()

	if err := s.encodeJSONResponse(w, pollingStateResponse{Running: s.poller.Running()}); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding polling state response")
	}
}

// @Summary Polling status
// @Description Reports the scheduler state and the liveness view of every device
// @Tags Polling
// @Produce json
// @Success 200 {object} pollingStatusResponse "Scheduler and device status"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/status [get]
func (s *APIServer) getPollingStatus(w http.ResponseWriter, _ *http.Request) {
	if s.poller == nil {
		writeError(w, "Poller not configured", http.StatusInternalServerError)
		return
	}

	devices := s.poller.Devices()

	resp := pollingStatusResponse{
		Running:     s.poller.Running(),
		DeviceCount: len(devices),
		Devices:     make([]deviceStatusEntry, 0, len(devices)),
	}

	for _, device := range devices {
		status := s.poller.DeviceStatus(device.ID)
		resp.Devices = append(resp.Devices, deviceStatusEntry{
			ID:         device.ID,
			Online:     status.Online,
			LastSeen:   status.LastSeen,
			ErrorCount: status.ErrorCount,
		})
	}

	if err := s.encodeJSONResponse(w, resp); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding status response")
	}
}

// @Summary Query poll results
// @Description Returns retained poll results newest first, optionally for one device
// @Tags Polling
// @Produce json
// @Param deviceId query string false "Only results for this device"
// @Param limit query int false "Maximum results returned (default all retained)"
// @Success 200 {array} models.DeviceResult "Poll results"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/results [get]
func (s *APIServer) getResults(w http.ResponseWriter, r *http.Request) {
	if s.poller == nil {
		writeError(w, "Poller not configured", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	limit := parseLimit(query, 0)

	var results []models.DeviceResult
	if deviceID := query.Get("deviceId"); deviceID != "" {
		results = s.poller.Rings().Results(deviceID, limit)
	} else {
		results = s.poller.Rings().All(limit)
	}

	if err := s.encodeJSONResponse(w, results); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding results response")
	}
}

// @Summary Clear poll results
// @Description Discards every retained poll result
// @Tags Polling
// @Success 204 "Cleared"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/results [delete]
func (s *APIServer) clearResults(w http.ResponseWriter, _ *http.Request) {
	if s.poller == nil {
		writeError(w, "Poller not configured", http.StatusInternalServerError)
		return
	}

	s.poller.Rings().Clear()
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Test device connectivity
// @Description Runs a one-shot GET against the target and returns whatever the agent answered
// @Tags Polling
// @Accept json
// @Produce json
// @Param body body testRequest true "Probe target"
// @Success 200 {object} snmp.TestResult "Probe outcome; ok is false when the agent did not answer"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/test [post]
func (s *APIServer) testDevice(w http.ResponseWriter, r *http.Request) {
	if s.snmp == nil {
		writeError(w, "SNMP manager not configured", http.StatusInternalServerError)
		return
	}

	var req testRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Host == "" {
		writeError(w, "host is required", http.StatusBadRequest)
		return
	}

	device, ok := deviceFromRequest(req.Host, req.Port, req.Community, req.Version)
	if !ok {
		writeError(w, "version must be 0 (v1) or 1 (v2c)", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), testTimeout)
	defer cancel()

	result := s.snmp.Test(ctx, device, snmp.ExpandOIDs(req.OIDs))

	if err := s.encodeJSONResponse(w, result); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding test response")
	}
}

// @Summary Walk a device subtree
// @Description Walks the subtree live when a host is given, falling back to a local snmpwalk dump when the walk fails or no host is set. The generated polling template is persisted under the assets directory and returned.
// @Tags Polling
// @Accept json
// @Produce json
// @Param body body walkRequest true "Walk target or dump file"
// @Success 200 {object} models.WalkTemplate "Generated polling template"
// @Failure 400 {object} models.ErrorResponse "Invalid request body or unparseable dump"
// @Failure 500 {object} models.ErrorResponse "Walk failed and no dump fallback was available"
// @Router /api/snmp/walk [post]
func (s *APIServer) walkDevice(w http.ResponseWriter, r *http.Request) {
	if s.snmp == nil {
		writeError(w, "SNMP manager not configured", http.StatusInternalServerError)
		return
	}

	var req walkRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Host == "" && req.DumpFile == "" {
		writeError(w, "host or dumpFile is required", http.StatusBadRequest)
		return
	}

	varbinds, source, ok := s.collectWalk(w, r, &req)
	if !ok {
		return
	}

	deviceType := req.DeviceType
	if deviceType == "" {
		deviceType = defaultDeviceType
	}

	tpl := snmp.BuildTemplate(deviceType, source, varbinds, s.mib)

	path, err := snmp.SaveTemplate(s.assetsDir, tpl)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist walk template")
		writeError(w, "Failed to persist walk template", http.StatusInternalServerError)

		return
	}

	s.logger.Info().
		Str("source", source).
		Str("path", path).
		Int("oids", len(tpl.OIDs)).
		Msg("Walk template generated")

	if err := s.encodeJSONResponse(w, tpl); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding walk response")
	}
}

// collectWalk gathers varbinds live or from the dump fallback. It writes
// the HTTP error itself and reports ok=false when the request cannot
// produce a template.
func (s *APIServer) collectWalk(w http.ResponseWriter, r *http.Request, req *walkRequest) ([]models.Varbind, string, bool) {
	var liveErr error

	if req.Host != "" {
		device, ok := deviceFromRequest(req.Host, req.Port, req.Community, req.Version)
		if !ok {
			writeError(w, "version must be 0 (v1) or 1 (v2c)", http.StatusBadRequest)
			return nil, "", false
		}

		root := req.Root
		if root == "" {
			root = defaultWalkRoot
		}

		ctx, cancel := context.WithTimeout(r.Context(), walkTimeout)
		defer cancel()

		varbinds, err := s.snmp.Walk(ctx, device, root)
		if err == nil {
			return varbinds, device.Host, true
		}

		liveErr = err

		s.logger.Warn().
			Err(err).
			Str("host", device.Host).
			Str("root", root).
			Msg("Live walk failed")
	}

	if req.DumpFile == "" {
		writeError(w, "Walk failed: "+liveErr.Error(), http.StatusInternalServerError)
		return nil, "", false
	}

	path, err := resolveDumpPath(s.assetsDir, req.DumpFile)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return nil, "", false
	}

	varbinds, err := snmp.ParseDumpFile(path)
	if err != nil {
		writeError(w, "Failed to parse walk dump: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}

	return varbinds, filepath.Base(path), true
}

// deviceFromRequest fills connection defaults for the one-shot endpoints.
// These targets never join the session table, so the id only needs to be
// stable for logging.
func deviceFromRequest(host string, port int, community string, version *int) (models.Device, bool) {
	v := models.SNMPv2c
	if version != nil {
		v = *version
	}

	if v != models.SNMPv1 && v != models.SNMPv2c {
		return models.Device{}, false
	}

	if port <= 0 {
		port = models.DefaultSNMPPort
	}

	if community == "" {
		community = models.DefaultCommunity
	}

	return models.Device{
		ID:        "probe-" + host,
		Host:      host,
		Port:      port,
		Community: community,
		Version:   v,
	}, true
}

// resolveDumpPath confines a caller-supplied dump file name to the assets
// directory.
func resolveDumpPath(assetsDir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.Join(assetsDir, name))

	base := filepath.Clean(assetsDir)
	if cleaned != base && !strings.HasPrefix(cleaned, base+string(filepath.Separator)) {
		return "", errDumpOutsideAssets
	}

	return cleaned, nil
}
