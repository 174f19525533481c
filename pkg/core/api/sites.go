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

// @Summary List sites
// @Tags Sites
// @Produce json
// @Success 200 {array} models.Site "Sites ordered by name"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/sites [get]
func (s *APIServer) getSites(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	sites, err := s.store.ListSites(r.Context())
	if err != nil {
		s.writeStoreError(w, err, "Site")
		return
	}

	if err := s.encodeJSONResponse(w, sites); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding sites response")
	}
}

// @Summary Create a site
// @Tags Sites
// @Accept json
// @Produce json
// @Param body body models.Site true "Site to create"
// @Success 201 {object} models.Site "Created site"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/sites [post]
func (s *APIServer) createSite(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	var site models.Site
	if err := decodeJSONBody(r, &site); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if site.Name == "" {
		writeError(w, "name is required", http.StatusBadRequest)
		return
	}

	created, err := s.store.CreateSite(r.Context(), &site)
	if err != nil {
		s.writeStoreError(w, err, "Site")
		return
	}

	s.reloadScheduler(r)
	s.writeJSON(w, http.StatusCreated, created)
}

// @Summary Get a site
// @Tags Sites
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} models.Site "Site"
// @Failure 404 {object} models.ErrorResponse "Site not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/sites/{id} [get]
func (s *APIServer) getSite(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	site, err := s.store.GetSite(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeStoreError(w, err, "Site")
		return
	}

	if err := s.encodeJSONResponse(w, site); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding site response")
	}
}

// @Summary Update a site
// @Description Patches a site; omitted fields keep their stored values. Flipping isActive gates or ungates every transmitter at the site.
// @Tags Sites
// @Accept json
// @Produce json
// @Param id path string true "Site ID"
// @Param body body models.SitePatch true "Fields to change"
// @Success 200 {object} models.Site "Updated site"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 404 {object} models.ErrorResponse "Site not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/sites/{id} [put]
func (s *APIServer) updateSite(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	var patch models.SitePatch
	if err := decodeJSONBody(r, &patch); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	site, err := s.store.UpdateSite(r.Context(), mux.Vars(r)["id"], &patch)
	if err != nil {
		s.writeStoreError(w, err, "Site")
		return
	}

	s.reloadScheduler(r)

	if err := s.encodeJSONResponse(w, site); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding site response")
	}
}

// @Summary Delete a site
// @Description Removes the site and cascades to its transmitters and their history
// @Tags Sites
// @Param id path string true "Site ID"
// @Success 204 "Deleted"
// @Failure 404 {object} models.ErrorResponse "Site not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/sites/{id} [delete]
func (s *APIServer) deleteSite(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	if err := s.store.DeleteSite(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeStoreError(w, err, "Site")
		return
	}

	s.reloadScheduler(r)
	w.WriteHeader(http.StatusNoContent)
}

// reloadScheduler re-syncs the poll loops with storage after a site or
// transmitter mutation. Reload failures are logged, never surfaced: the
// mutation itself already committed.
func (s *APIServer) reloadScheduler(r *http.Request) {
	if s.poller == nil {
		return
	}

	if err := s.poller.ReloadFromStore(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("Scheduler reload failed after config change")
	}
}
