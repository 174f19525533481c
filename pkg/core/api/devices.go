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
	"net/http"

	"github.com/gorilla/mux"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

// defaultSiteName is the site auto-created for devices registered without
// an explicit siteId.
const defaultSiteName = "Default Site"

// deviceRequest is the POST /devices body. Pointer fields distinguish
// "omitted" from the zero value so defaults apply only when the caller
// said nothing.
type deviceRequest struct {
	Host         string   `json:"host"`
	Port         int      `json:"port"`
	Community    string   `json:"community"`
	Version      *int     `json:"version"`
	OIDs         []string `json:"oids"`
	PollInterval int      `json:"pollInterval"`
	IsActive     *bool    `json:"isActive"`
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	DisplayOrder int      `json:"displayOrder"`
	SiteID       string   `json:"siteId"`
}

// devicePatchRequest is the PUT /devices/{id} body; nil fields are left
// unchanged.
type devicePatchRequest struct {
	Host         *string   `json:"host"`
	Port         *int      `json:"port"`
	Community    *string   `json:"community"`
	Version      *int      `json:"version"`
	OIDs         *[]string `json:"oids"`
	PollInterval *int      `json:"pollInterval"`
	IsActive     *bool     `json:"isActive"`
	Name         *string   `json:"name"`
	Label        *string   `json:"label"`
	DisplayOrder *int      `json:"displayOrder"`
	SiteID       *string   `json:"siteId"`
}

// @Summary List devices
// @Description Returns every transmitter projected onto the device wire shape
// @Tags Devices
// @Produce json
// @Success 200 {array} models.Device "Configured devices"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/devices [get]
func (s *APIServer) getDevices(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	transmitters, err := s.store.ListTransmitters(r.Context())
	if err != nil {
		s.writeStoreError(w, err, "Device")
		return
	}

	devices := make([]models.Device, 0, len(transmitters))
	for _, tx := range transmitters {
		devices = append(devices, tx.ToDevice())
	}

	if err := s.encodeJSONResponse(w, devices); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding devices response")
	}
}

// @Summary Register a device
// @Description Creates a transmitter from the device wire shape. Without a siteId the record lands in the auto-created "Default Site".
// @Tags Devices
// @Accept json
// @Produce json
// @Param body body deviceRequest true "Device to register"
// @Success 201 {object} models.Device "Registered device"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/devices [post]
func (s *APIServer) createDevice(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	var req deviceRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Host == "" {
		writeError(w, "host is required", http.StatusBadRequest)
		return
	}

	version := models.SNMPv2c
	if req.Version != nil {
		version = *req.Version
	}

	if version != models.SNMPv1 && version != models.SNMPv2c {
		writeError(w, "version must be 0 (v1) or 1 (v2c)", http.StatusBadRequest)
		return
	}

	siteID := req.SiteID
	if siteID == "" {
		id, err := s.ensureDefaultSite(r.Context())
		if err != nil {
			s.writeStoreError(w, err, "Site")
			return
		}

		siteID = id
	}

	port := req.Port
	if port <= 0 {
		port = models.DefaultSNMPPort
	}

	community := req.Community
	if community == "" {
		community = models.DefaultCommunity
	}

	interval := req.PollInterval
	if interval == 0 {
		interval = models.DefaultPollInterval
	}

	name := req.Name
	if name == "" {
		name = req.Host
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	oids := req.OIDs
	if oids == nil {
		oids = []string{}
	}

	patch := &models.TransmitterPatch{
		SiteID:        &siteID,
		Name:          &name,
		DisplayOrder:  &req.DisplayOrder,
		SNMPHost:      &req.Host,
		SNMPPort:      &port,
		SNMPCommunity: &community,
		SNMPVersion:   &version,
		OIDs:          &oids,
		PollInterval:  &interval,
		IsActive:      &active,
	}

	if req.Label != "" {
		patch.DisplayLabel = &req.Label
	}

	tx, err := s.store.UpsertTransmitter(r.Context(), patch)
	if err != nil {
		s.writeStoreError(w, err, "Device")
		return
	}

	device := tx.ToDevice()

	if s.poller != nil {
		s.poller.UpdateDevice(device)
	}

	s.writeJSON(w, http.StatusCreated, device)
}

// @Summary Get a device
// @Tags Devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} models.Device "Device"
// @Failure 404 {object} models.ErrorResponse "Device not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/devices/{id} [get]
func (s *APIServer) getDevice(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	id := mux.Vars(r)["id"]

	tx, err := s.store.GetTransmitter(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "Device")
		return
	}

	if err := s.encodeJSONResponse(w, tx.ToDevice()); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding device response")
	}
}

// @Summary Update a device
// @Description Patches the backing transmitter; omitted fields keep their stored values. The poll loop picks the change up immediately.
// @Tags Devices
// @Accept json
// @Produce json
// @Param id path string true "Device ID"
// @Param body body devicePatchRequest true "Fields to change"
// @Success 200 {object} models.Device "Updated device"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/devices/{id} [put]
func (s *APIServer) updateDevice(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	id := mux.Vars(r)["id"]

	var req devicePatchRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Version != nil && *req.Version != models.SNMPv1 && *req.Version != models.SNMPv2c {
		writeError(w, "version must be 0 (v1) or 1 (v2c)", http.StatusBadRequest)
		return
	}

	patch := &models.TransmitterPatch{
		ID:            &id,
		SiteID:        req.SiteID,
		Name:          req.Name,
		DisplayLabel:  req.Label,
		DisplayOrder:  req.DisplayOrder,
		SNMPHost:      req.Host,
		SNMPPort:      req.Port,
		SNMPCommunity: req.Community,
		SNMPVersion:   req.Version,
		OIDs:          req.OIDs,
		PollInterval:  req.PollInterval,
		IsActive:      req.IsActive,
	}

	tx, err := s.store.UpsertTransmitter(r.Context(), patch)
	if err != nil {
		s.writeStoreError(w, err, "Device")
		return
	}

	device := tx.ToDevice()

	if s.poller != nil {
		s.poller.UpdateDevice(device)
	}

	if err := s.encodeJSONResponse(w, device); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding device response")
	}
}

// @Summary Delete a device
// @Description Removes the backing transmitter, its poll loop, session and ring history
// @Tags Devices
// @Param id path string true "Device ID"
// @Success 204 "Deleted"
// @Failure 404 {object} models.ErrorResponse "Device not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/devices/{id} [delete]
func (s *APIServer) deleteDevice(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, "Storage not configured", http.StatusInternalServerError)
		return
	}

	id := mux.Vars(r)["id"]

	deleted, err := s.store.DeleteTransmitter(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "Device")
		return
	}

	if !deleted {
		writeError(w, "Device not found", http.StatusNotFound)
		return
	}

	if s.poller != nil {
		s.poller.RemoveDevice(id)
	}

	w.WriteHeader(http.StatusNoContent)
}

// ensureDefaultSite returns the id of the shared fallback site, creating it
// on first use.
func (s *APIServer) ensureDefaultSite(ctx context.Context) (string, error) {
	sites, err := s.store.ListSites(ctx)
	if err != nil {
		return "", err
	}

	for _, site := range sites {
		if site.Name == defaultSiteName {
			return site.ID, nil
		}
	}

	created, err := s.store.CreateSite(ctx, &models.Site{
		Name:     defaultSiteName,
		Location: "UNASSIGNED",
		IsActive: true,
	})
	if err != nil {
		return "", err
	}

	return created.ID, nil
}
