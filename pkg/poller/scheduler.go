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

// Package poller schedules the per-device SNMP polls: one goroutine and one
// ticker per active device, activity gating against the store before every
// GET, and result fan-out to the ring, the store and the event stream.
package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/db"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/metrics"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/snmp"
)

const (
	stopTimeout = 5 * time.Second

	// The liveness heuristic looks at the last 10 results and calls the
	// device online when fewer than 5 failed and at least one succeeded.
	statusWindow      = 10
	maxStatusFailures = 5
)

type slot struct {
	device models.Device
	loop   *loopHandle
}

type loopHandle struct {
	stop chan struct{}
	once sync.Once
}

func (h *loopHandle) halt() {
	h.once.Do(func() { close(h.stop) })
}

// Scheduler owns the device table and the per-device poll loops. The table
// mutates only through ReloadFromStore, UpdateDevice and RemoveDevice.
type Scheduler struct {
	mu       sync.Mutex
	store    db.Service
	sessions SessionManager
	rings    *metrics.RingSet
	events   EventSink
	clock    Clock
	logger   logger.Logger

	devices map[string]*slot
	running bool
	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewScheduler builds a scheduler over the given collaborators. events may
// be nil when no stream is configured; clock nil selects wall time.
func NewScheduler(
	store db.Service,
	sessions SessionManager,
	rings *metrics.RingSet,
	events EventSink,
	clock Clock,
	log logger.Logger,
) (*Scheduler, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	if sessions == nil {
		return nil, ErrSessionsRequired
	}

	if rings == nil {
		rings = metrics.NewRingSet(0, 0)
	}

	if clock == nil {
		clock = realClock{}
	}

	return &Scheduler{
		store:    store,
		sessions: sessions,
		rings:    rings,
		events:   events,
		clock:    clock,
		logger:   log,
		devices:  make(map[string]*slot),
	}, nil
}

// Rings exposes the result rings for the REST layer.
func (s *Scheduler) Rings() *metrics.RingSet {
	return s.rings
}

// Start spawns a poll loop per active device. Starting a running scheduler
// is a no-op.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.startLocked()
}

func (s *Scheduler) startLocked() error {
	if s.running {
		return nil
	}

	s.baseCtx, s.cancel = context.WithCancel(context.Background())
	s.running = true

	started := 0

	for _, sl := range s.devices {
		if !sl.device.IsActive {
			continue
		}

		s.spawnLocked(sl)
		started++
	}

	s.logger.Info().Int("devices", started).Msg("Poll scheduler started")

	return nil
}

func (s *Scheduler) spawnLocked(sl *slot) {
	if sl.loop != nil {
		return
	}

	if err := s.sessions.Open(sl.device); err != nil {
		// The session entry survives a dial failure; the next poll redials.
		s.logger.Warn().
			Err(err).
			Str("device_id", sl.device.ID).
			Msg("SNMP session open failed")
	}

	h := &loopHandle{stop: make(chan struct{})}
	sl.loop = h

	s.wg.Add(1)

	go s.run(s.baseCtx, sl.device.ID, h, pollInterval(sl.device))
}

func (s *Scheduler) run(ctx context.Context, deviceID string, h *loopHandle, interval time.Duration) {
	defer s.wg.Done()

	ticker := s.clock.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			// Runs inline so a slow agent can never stack two polls for
			// the same device.
			s.pollOnce(ctx, deviceID)
		}
	}
}

func (s *Scheduler) pollOnce(ctx context.Context, deviceID string) {
	s.mu.Lock()
	sl, ok := s.devices[deviceID]

	var device models.Device
	if ok {
		device = sl.device
	}
	s.mu.Unlock()

	if !ok {
		return
	}

	// Re-checked right before the GET to close the race between a config
	// flip and an already scheduled tick.
	if !s.gateAllows(ctx, device.ID) {
		s.logger.Debug().Str("device_id", device.ID).Msg("Poll gated off")
		return
	}

	oids := snmp.ExpandOIDs(device.OIDs)

	data, err := s.sessions.Get(ctx, device.ID, oids)

	result := models.DeviceResult{
		DeviceID:  device.ID,
		Timestamp: s.clock.Now().UTC(),
		Success:   err == nil,
		Data:      data,
	}

	if err != nil {
		result.Error = err.Error()

		s.logger.Debug().
			Err(err).
			Str("device_id", device.ID).
			Str("host", device.Host).
			Msg("Poll failed")
	}

	s.rings.Add(result)

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		s.persist(ctx, result)
	}()

	if s.events != nil {
		s.events.PublishPollResult(result)
	}
}

// gateAllows consults the store for the transmitter and site activity
// flags. A storage fault never blocks polling; a missing transmitter does,
// since the next reload will drop it anyway.
func (s *Scheduler) gateAllows(ctx context.Context, deviceID string) bool {
	tx, err := s.store.GetTransmitter(ctx, deviceID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return false
		}

		s.logger.Warn().
			Err(err).
			Str("device_id", deviceID).
			Msg("Gate check failed, allowing poll")

		return true
	}

	if !tx.IsActive {
		return false
	}

	site, err := s.store.GetSite(ctx, tx.SiteID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return true
		}

		s.logger.Warn().
			Err(err).
			Str("site_id", tx.SiteID).
			Msg("Site gate check failed, allowing poll")

		return true
	}

	return site.IsActive
}

func (s *Scheduler) persist(ctx context.Context, result models.DeviceResult) {
	metric, radioName := buildMetric(result)

	if err := s.store.StoreMetrics(ctx, result.DeviceID, metric, radioName); err != nil {
		s.logger.Warn().
			Err(err).
			Str("device_id", result.DeviceID).
			Msg("Failed to store poll metrics")
	}
}

func buildMetric(result models.DeviceResult) (*models.TransmitterMetric, string) {
	data := metrics.ParseMetrics(result.Data)

	metric := &models.TransmitterMetric{
		TransmitterID:  result.DeviceID,
		Timestamp:      result.Timestamp,
		PowerOutput:    data.PowerOutput,
		ForwardPower:   data.ForwardPower,
		ReflectedPower: data.ReflectedPower,
		Frequency:      data.Frequency,
		VSWR:           data.VSWR,
		Temperature:    data.Temperature,
		Status:         data.Status,
	}

	if !result.Success {
		metric.Status = models.StatusOffline
	}

	if result.Error != "" {
		msg := result.Error
		metric.ErrorMessage = &msg
	}

	if len(result.Data) > 0 {
		if raw, err := json.Marshal(result.Data); err == nil {
			metric.RawData = raw
		}
	}

	return metric, data.RadioName
}

// Stop halts every loop, waits out in-flight polls and closes the
// sessions. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()

	if !s.running {
		s.mu.Unlock()
		return
	}

	s.running = false

	if s.cancel != nil {
		s.cancel()
	}

	for _, sl := range s.devices {
		if sl.loop != nil {
			sl.loop.halt()
			sl.loop = nil
		}
	}
	s.mu.Unlock()

	done := make(chan struct{})

	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(stopTimeout):
		s.logger.Warn().Msg("Timed out waiting for in-flight polls")
	}

	s.sessions.CloseAll()
	s.logger.Info().Msg("Poll scheduler stopped")
}

// Running reports whether poll loops are live.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// ReloadFromStore rebuilds the device table from the transmitter list,
// restarting the loops when the scheduler was running. Rings of surviving
// devices are preserved; rings of dropped devices go with them.
func (s *Scheduler) ReloadFromStore(ctx context.Context) error {
	transmitters, err := s.store.ListTransmitters(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReloadFailed, err)
	}

	s.mu.Lock()
	wasRunning := s.running
	s.mu.Unlock()

	if wasRunning {
		s.Stop()
	}

	next := make(map[string]*slot, len(transmitters))
	for i := range transmitters {
		device := transmitters[i].ToDevice()
		next[device.ID] = &slot{device: device}
	}

	var removed []string

	s.mu.Lock()
	for id := range s.devices {
		if _, ok := next[id]; !ok {
			removed = append(removed, id)
		}
	}

	s.devices = next
	s.mu.Unlock()

	for _, id := range removed {
		s.rings.Drop(id)
	}

	s.logger.Info().
		Int("devices", len(next)).
		Int("removed", len(removed)).
		Msg("Device table reloaded")

	if wasRunning {
		return s.Start()
	}

	return nil
}

// UpdateDevice patches one slot in place, recycling the session when the
// connection tuple changed and restarting the loop when the interval or
// activity flag changed.
func (s *Scheduler) UpdateDevice(device models.Device) {
	s.mu.Lock()

	sl, ok := s.devices[device.ID]
	if !ok {
		sl = &slot{device: device}
		s.devices[device.ID] = sl

		if s.running && device.IsActive {
			s.spawnLocked(sl)
		}
		s.mu.Unlock()

		return
	}

	old := sl.device
	sl.device = device

	endpointChanged := !old.SameEndpoint(device)
	scheduleChanged := old.PollInterval != device.PollInterval || old.IsActive != device.IsActive

	if scheduleChanged {
		if sl.loop != nil {
			sl.loop.halt()
			sl.loop = nil
		}

		if s.running && device.IsActive {
			s.spawnLocked(sl)
		}
	}
	s.mu.Unlock()

	if endpointChanged {
		if err := s.sessions.Recycle(device); err != nil {
			s.logger.Warn().
				Err(err).
				Str("device_id", device.ID).
				Msg("Session recycle failed")
		}
	}
}

// RemoveDevice drops one device: loop, session and ring history.
func (s *Scheduler) RemoveDevice(deviceID string) {
	s.mu.Lock()

	if sl, ok := s.devices[deviceID]; ok {
		if sl.loop != nil {
			sl.loop.halt()
		}

		delete(s.devices, deviceID)
	}
	s.mu.Unlock()

	s.sessions.Close(deviceID)
	s.rings.Drop(deviceID)
}

// Devices returns a snapshot of the device table ordered for display.
func (s *Scheduler) Devices() []models.Device {
	s.mu.Lock()
	out := make([]models.Device, 0, len(s.devices))

	for _, sl := range s.devices {
		out = append(out, sl.device)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}

		return out[i].ID < out[j].ID
	})

	return out
}

// DeviceCount reports the device table size.
func (s *Scheduler) DeviceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.devices)
}

// DeviceStatus derives the liveness view from the device's most recent
// results. Unknown or never-polled devices report offline.
func (s *Scheduler) DeviceStatus(deviceID string) models.DeviceStatus {
	results := s.rings.Results(deviceID, statusWindow)

	status := models.DeviceStatus{DeviceID: deviceID}

	successes := 0

	for i := range results {
		if !results[i].Success {
			status.ErrorCount++
			continue
		}

		successes++

		if status.LastSeen == nil {
			ts := results[i].Timestamp
			status.LastSeen = &ts
		}
	}

	status.Online = status.ErrorCount < maxStatusFailures && successes > 0

	return status
}

func pollInterval(device models.Device) time.Duration {
	ms := device.PollInterval
	if ms <= 0 {
		ms = models.DefaultPollInterval
	}

	if ms < models.MinimumPollInterval {
		ms = models.MinimumPollInterval
	}

	return time.Duration(ms) * time.Millisecond
}
