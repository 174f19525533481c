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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/db"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

const (
	defaultUpdateInterval    = 5 * time.Second
	defaultHeartbeatInterval = 2 * time.Second

	// eventResultWindow bounds the per-tick payload: only the newest
	// results across all devices ride along.
	eventResultWindow = 10
)

// eventUpdate is the payload of every "update" event: the freshest poll
// results plus the latest stored observation per transmitter.
type eventUpdate struct {
	Results       []models.DeviceResult                `json:"results"`
	LatestMetrics map[string]*models.TransmitterMetric `json:"latestMetrics"`
}

// @Summary Live event stream
// @Description Server-Sent Events: a "connected" event on subscribe, then an "update" event every 5 seconds carrying the newest poll results and per-transmitter latest metrics. Comment lines between updates keep intermediaries from timing the stream out.
// @Tags Polling
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/snmp/events [get]
func (s *APIServer) streamEvents(w http.ResponseWriter, r *http.Request) {
	if s.poller == nil || s.store == nil {
		writeError(w, "Event stream not configured", http.StatusInternalServerError)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	if err := writeSSEEvent(w, "connected", map[string]string{"status": "connected"}); err != nil {
		return
	}

	flusher.Flush()

	// The handler goroutine is the per-connection emitter; the request
	// context cancels it the moment the client goes away.
	ctx := r.Context()

	update := time.NewTicker(s.updateInterval)
	defer update.Stop()

	heartbeat := time.NewTicker(s.heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-update.C:
			if err := writeSSEEvent(w, "update", s.buildEventUpdate(ctx)); err != nil {
				return
			}

			flusher.Flush()
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}

			flusher.Flush()
		}
	}
}

// buildEventUpdate assembles one tick's payload. Work per tick is bounded:
// the newest ring entries plus one latest-metrics lookup per device.
func (s *APIServer) buildEventUpdate(ctx context.Context) eventUpdate {
	upd := eventUpdate{
		Results:       s.poller.Rings().All(eventResultWindow),
		LatestMetrics: make(map[string]*models.TransmitterMetric),
	}

	for _, device := range s.poller.Devices() {
		metric, err := s.store.GetLatestMetrics(ctx, device.ID)
		if err != nil {
			if !errors.Is(err, db.ErrNotFound) {
				s.logger.Debug().
					Err(err).
					Str("device_id", device.ID).
					Msg("Latest metrics lookup failed")
			}

			continue
		}

		upd.LatestMetrics[device.ID] = metric
	}

	return upd
}

func writeSSEEvent(w io.Writer, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "data: %s\n\n", data)

	return err
}
