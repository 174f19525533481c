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
	"net/http"

	"github.com/gorilla/mux"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

const defaultMetricsLimit = 1000

// @Summary List transmitters
// @Tags Transmitters
// @Produce json
// @Success 200 {array} models.Transmitter "Transmitters ordered for display"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/transmitters [get]
func (s *APIServer) getTransmitters(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	transmitters, err := s.store.ListTransmitters(r.Context())
	if err != nil {
		s.writeStoreError(w, err, "Transmitter")
		return
	}

	if err := s.encodeJSONResponse(w, transmitters); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding transmitters response")
	}
}

// @Summary Create a transmitter
// @Description Creates a transmitter record. siteId is required; pollInterval below 1000 ms is rejected.
// @Tags Transmitters
// @Accept json
// @Produce json
// @Param body body models.TransmitterPatch true "Transmitter to create"
// @Success 201 {object} models.Transmitter "Created transmitter"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/transmitters [post]
func (s *APIServer) createTransmitter(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	var patch models.TransmitterPatch
	if err := decodeJSONBody(r, &patch); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tx, err := s.store.UpsertTransmitter(r.Context(), &patch)
	if err != nil {
		s.writeStoreError(w, err, "Transmitter")
		return
	}

	s.reloadScheduler(r)
	s.writeJSON(w, http.StatusCreated, tx)
}

// @Summary Get a transmitter
// @Tags Transmitters
// @Produce json
// @Param id path string true "Transmitter ID"
// @Success 200 {object} models.Transmitter "Transmitter"
// @Failure 404 {object} models.ErrorResponse "Transmitter not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/transmitters/{id} [get]
func (s *APIServer) getTransmitter(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	tx, err := s.store.GetTransmitter(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeStoreError(w, err, "Transmitter")
		return
	}

	if err := s.encodeJSONResponse(w, tx); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding transmitter response")
	}
}

// @Summary Update a transmitter
// @Description Patches a transmitter; omitted fields keep their stored values
// @Tags Transmitters
// @Accept json
// @Produce json
// @Param id path string true "Transmitter ID"
// @Param body body models.TransmitterPatch true "Fields to change"
// @Success 200 {object} models.Transmitter "Updated transmitter"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/transmitters/{id} [put]
func (s *APIServer) updateTransmitter(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	id := mux.Vars(r)["id"]

	var patch models.TransmitterPatch
	if err := decodeJSONBody(r, &patch); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	patch.ID = &id

	tx, err := s.store.UpsertTransmitter(r.Context(), &patch)
	if err != nil {
		s.writeStoreError(w, err, "Transmitter")
		return
	}

	s.reloadScheduler(r)

	if err := s.encodeJSONResponse(w, tx); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding transmitter response")
	}
}

// @Summary Delete a transmitter
// @Description Removes the transmitter; its metric history cascades away and its poll loop stops within one reload
// @Tags Transmitters
// @Param id path string true "Transmitter ID"
// @Success 204 "Deleted"
// @Failure 404 {object} models.ErrorResponse "Transmitter not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/transmitters/{id} [delete]
func (s *APIServer) deleteTransmitter(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	id := mux.Vars(r)["id"]

	deleted, err := s.store.DeleteTransmitter(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "Transmitter")
		return
	}

	if !deleted {
		writeError(w, "Transmitter not found", http.StatusNotFound)
		return
	}

	s.reloadScheduler(r)
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Latest metrics for a transmitter
// @Tags Metrics
// @Produce json
// @Param id path string true "Transmitter ID"
// @Success 200 {object} models.TransmitterMetric "Most recent observation"
// @Failure 404 {object} models.ErrorResponse "No metrics recorded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/transmitters/{id}/metrics/latest [get]
func (s *APIServer) getLatestMetrics(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	metric, err := s.store.GetLatestMetrics(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeStoreError(w, err, "Metrics")
		return
	}

	if err := s.encodeJSONResponse(w, metric); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding metrics response")
	}
}

// @Summary Metric history for a transmitter
// @Description Returns observations in the requested window, oldest first. start and end accept RFC3339 or epoch milliseconds and default to the last 24 hours.
// @Tags Metrics
// @Produce json
// @Param id path string true "Transmitter ID"
// @Param start query string false "Window start (RFC3339 or epoch ms)"
// @Param end query string false "Window end (RFC3339 or epoch ms)"
// @Param limit query int false "Maximum rows returned"
// @Success 200 {array} models.TransmitterMetric "Observations in the window"
// @Failure 400 {object} models.ErrorResponse "Malformed time range"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/transmitters/{id}/metrics [get]
func (s *APIServer) getMetricsRange(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	start, end, err := parseTimeRange(r.URL.Query())
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit := parseLimit(r.URL.Query(), defaultMetricsLimit)

	metrics, err := s.store.GetMetricsRange(r.Context(), mux.Vars(r)["id"], start, end, limit)
	if err != nil {
		s.writeStoreError(w, err, "Metrics")
		return
	}

	if err := s.encodeJSONResponse(w, metrics); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding metrics response")
	}
}
