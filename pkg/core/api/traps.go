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
	"net/url"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

const (
	defaultLatestTrapsLimit = 50
	defaultTrapsRangeLimit  = 500
)

func trapFilterFromQuery(query url.Values) models.TrapFilter {
	return models.TrapFilter{
		TransmitterID: query.Get("transmitterId"),
		SiteID:        query.Get("siteId"),
		SourceHost:    query.Get("sourceHost"),
	}
}

// @Summary Latest traps
// @Description Returns the most recent traps, newest first, optionally filtered by transmitter, site, or source host
// @Tags Traps
// @Produce json
// @Param transmitterId query string false "Only traps attributed to this transmitter"
// @Param siteId query string false "Only traps attributed to this site"
// @Param sourceHost query string false "Only traps from this sender"
// @Param limit query int false "Maximum rows returned (default 50)"
// @Success 200 {array} models.SnmpTrap "Received traps"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/traps/latest [get]
func (s *APIServer) getLatestTraps(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	limit := parseLimit(query, defaultLatestTrapsLimit)

	traps, err := s.store.GetLatestTraps(r.Context(), trapFilterFromQuery(query), limit)
	if err != nil {
		s.writeStoreError(w, err, "Traps")
		return
	}

	if err := s.encodeJSONResponse(w, traps); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding traps response")
	}
}

// @Summary Traps in a time window
// @Description Returns traps received in the window, newest first. start and end accept RFC3339 or epoch milliseconds and default to the last 24 hours.
// @Tags Traps
// @Produce json
// @Param start query string false "Window start (RFC3339 or epoch ms)"
// @Param end query string false "Window end (RFC3339 or epoch ms)"
// @Param transmitterId query string false "Only traps attributed to this transmitter"
// @Param siteId query string false "Only traps attributed to this site"
// @Param sourceHost query string false "Only traps from this sender"
// @Param limit query int false "Maximum rows returned (default 500)"
// @Success 200 {array} models.SnmpTrap "Received traps"
// @Failure 400 {object} models.ErrorResponse "Malformed time range"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/traps/range [get]
func (s *APIServer) getTrapsRange(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()

	start, end, err := parseTimeRange(query)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit := parseLimit(query, defaultTrapsRangeLimit)

	traps, err := s.store.GetTrapsRange(r.Context(), start, end, trapFilterFromQuery(query), limit)
	if err != nil {
		s.writeStoreError(w, err, "Traps")
		return
	}

	if err := s.encodeJSONResponse(w, traps); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding traps response")
	}
}
