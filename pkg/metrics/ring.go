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

package metrics

import (
	"sort"
	"sync"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

const (
	// DefaultPerDeviceSlots bounds each device's history separately so a
	// fast-polling device cannot evict a quiet device's results and break
	// the online heuristic.
	DefaultPerDeviceSlots = 100

	// DefaultGlobalCap bounds the total footprint across all devices.
	DefaultGlobalCap = 1000
)

// RingSet holds bounded per-device rings of poll results. Multi-reader,
// single-writer: the scheduler appends, everyone else queries.
type RingSet struct {
	mu        sync.RWMutex
	perDevice int
	globalCap int
	total     int
	rings     map[string]*ring
}

// NewRingSet builds a ring set; non-positive arguments fall back to the
// defaults.
func NewRingSet(perDevice, globalCap int) *RingSet {
	if perDevice <= 0 {
		perDevice = DefaultPerDeviceSlots
	}

	if globalCap <= 0 {
		globalCap = DefaultGlobalCap
	}

	return &RingSet{
		perDevice: perDevice,
		globalCap: globalCap,
		rings:     make(map[string]*ring),
	}
}

// Add records one poll result, evicting the oldest entry of the same
// device when its ring is full, then the oldest entry of the largest ring
// while the global cap is exceeded.
func (rs *RingSet) Add(result models.DeviceResult) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	r, ok := rs.rings[result.DeviceID]
	if !ok {
		r = newRing(rs.perDevice)
		rs.rings[result.DeviceID] = r
	}

	if r.full() {
		r.dropOldest()
		rs.total--
	}

	r.add(result)
	rs.total++

	for rs.total > rs.globalCap {
		largest := rs.largestRing()
		if largest == nil {
			break
		}

		largest.dropOldest()
		rs.total--
	}
}

// Results returns a device's results newest-first, at most limit entries
// (non-positive limit means all retained).
func (rs *RingSet) Results(deviceID string, limit int) []models.DeviceResult {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	r, ok := rs.rings[deviceID]
	if !ok {
		return []models.DeviceResult{}
	}

	return r.newestFirst(limit)
}

// All returns results across every device, newest-first by timestamp.
func (rs *RingSet) All(limit int) []models.DeviceResult {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	out := make([]models.DeviceResult, 0, rs.total)
	for _, r := range rs.rings {
		out = append(out, r.newestFirst(0)...)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

// Clear discards all retained results.
func (rs *RingSet) Clear() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.rings = make(map[string]*ring)
	rs.total = 0
}

// Drop discards one device's history, for use when the device is deleted.
func (rs *RingSet) Drop(deviceID string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if r, ok := rs.rings[deviceID]; ok {
		rs.total -= r.count
		delete(rs.rings, deviceID)
	}
}

// Size reports the total retained result count.
func (rs *RingSet) Size() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	return rs.total
}

func (rs *RingSet) largestRing() *ring {
	var (
		largest *ring
		max     int
	)

	for _, r := range rs.rings {
		if r.count > max {
			largest = r
			max = r.count
		}
	}

	return largest
}

// ring is a fixed-capacity circular buffer, oldest at start.
type ring struct {
	buf   []models.DeviceResult
	start int
	count int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]models.DeviceResult, capacity)}
}

func (r *ring) full() bool {
	return r.count == len(r.buf)
}

func (r *ring) add(v models.DeviceResult) {
	r.buf[(r.start+r.count)%len(r.buf)] = v
	r.count++
}

func (r *ring) dropOldest() {
	if r.count == 0 {
		return
	}

	r.buf[r.start] = models.DeviceResult{}
	r.start = (r.start + 1) % len(r.buf)
	r.count--
}

func (r *ring) newestFirst(limit int) []models.DeviceResult {
	n := r.count
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]models.DeviceResult, 0, n)
	for i := 0; i < n; i++ {
		idx := (r.start + r.count - 1 - i) % len(r.buf)
		out = append(out, r.buf[idx])
	}

	return out
}
