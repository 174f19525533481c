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

// Package metrics turns raw varbind maps into the transmitter metric model
// and keeps the in-memory poll result rings.
package metrics

import (
	"math"
	"sort"
	"strings"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/mib"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

// frequency arrives in tens of kHz; dividing by 100 yields MHz.
const frequencyScale = 100.0

type fieldSetter func(data *models.TransmitterMetricData, v float64)

// Base OID to metric field. The sysUpTime row the old poller repurposed as
// power_output was a placeholder and is intentionally absent.
var fieldByBase = map[string]fieldSetter{
	mib.OIDForwardPower: func(d *models.TransmitterMetricData, v float64) {
		d.ForwardPower = &v
	},
	mib.OIDReflectedPower: func(d *models.TransmitterMetricData, v float64) {
		d.ReflectedPower = &v
	},
	mib.OIDFrequency: func(d *models.TransmitterMetricData, v float64) {
		mhz := v / frequencyScale
		d.Frequency = &mhz
	},
}

// ParseMetrics maps a raw OID->value map from one poll into the typed
// metric record, deriving status and VSWR. Unknown OIDs are ignored; an
// empty or nil map yields an offline record.
func ParseMetrics(raw map[string]models.Value) models.TransmitterMetricData {
	var data models.TransmitterMetricData

	for _, oid := range sortedKeys(raw) {
		setter, ok := resolveField(oid)
		if !ok {
			continue
		}

		if v, numeric := raw[oid].Float64(); numeric {
			setter(&data, v)
		}
	}

	data.Status = deriveStatus(raw)

	deriveVSWR(&data)

	if name, ok := radioName(raw); ok {
		data.RadioName = name
	}

	return data
}

// resolveField resolves an OID against the metric map by trying, in order:
// the OID as-is, the OID with a trailing ".0" stripped, the OID with one
// instance index stripped, and the OID with both stripped.
func resolveField(oid string) (fieldSetter, bool) {
	oid = strings.TrimPrefix(strings.TrimSpace(oid), ".")

	for _, candidate := range resolutionCandidates(oid) {
		if setter, ok := fieldByBase[candidate]; ok {
			return setter, true
		}
	}

	return nil, false
}

func resolutionCandidates(oid string) []string {
	candidates := []string{oid}

	trimmed := strings.TrimSuffix(oid, ".0")
	if trimmed != oid {
		candidates = append(candidates, trimmed)
	}

	if stripped := mib.StripInstance(oid); stripped != oid {
		candidates = append(candidates, stripped)

		if trimmed != oid {
			if both := mib.StripInstance(trimmed); both != trimmed {
				candidates = append(candidates, both)
			}
		}
	}

	return candidates
}

// deriveStatus is the single source of truth for liveness. The standby
// OID wins over the on-air OID; a raw map with neither reporting a numeric
// value means the transmitter is off the air entirely.
func deriveStatus(raw map[string]models.Value) string {
	if v, ok := findNumericUnder(raw, mib.OIDStandbyStatus); ok {
		if v == 1 {
			return models.StatusActive
		}

		return models.StatusStandby
	}

	if v, ok := findNumericUnder(raw, mib.OIDOnAirStatus); ok {
		if v == 2 {
			return models.StatusActive
		}

		return models.StatusStandby
	}

	return models.StatusOffline
}

// findNumericUnder locates a numeric value reported at the base OID
// directly, at its scalar ".0" form, or at any single instance index.
// Keys are visited in sorted order so derivation is deterministic.
func findNumericUnder(raw map[string]models.Value, base string) (float64, bool) {
	for _, key := range sortedKeys(raw) {
		oid := strings.TrimPrefix(strings.TrimSpace(key), ".")
		if !matchesBase(oid, base) {
			continue
		}

		if v, ok := raw[key].Float64(); ok {
			return v, true
		}
	}

	return 0, false
}

func matchesBase(oid, base string) bool {
	if oid == base || oid == base+".0" {
		return true
	}

	for _, candidate := range resolutionCandidates(oid) {
		if candidate == base {
			return true
		}
	}

	return false
}

// deriveVSWR computes the standing wave ratio from forward and reflected
// power when the device did not report it directly. The result is emitted
// only when finite: a fully reflected carrier (gamma = 1) yields nothing.
func deriveVSWR(data *models.TransmitterMetricData) {
	if data.VSWR != nil || data.ForwardPower == nil || data.ReflectedPower == nil {
		return
	}

	forward := *data.ForwardPower
	reflected := *data.ReflectedPower

	if forward <= 0 || reflected < 0 {
		return
	}

	gamma := math.Sqrt(reflected / forward)

	denominator := 1 - gamma
	if denominator == 0 {
		return
	}

	vswr := (1 + gamma) / denominator
	if math.IsNaN(vswr) || math.IsInf(vswr, 0) || vswr < 1 {
		return
	}

	data.VSWR = &vswr
}

// radioName extracts the transmitter's self-reported name, decoding byte
// blobs and trimming padding NULs.
func radioName(raw map[string]models.Value) (string, bool) {
	for _, key := range []string{mib.OIDRadioName, mib.OIDRadioName + ".0"} {
		v, ok := raw[key]
		if !ok {
			continue
		}

		name := strings.TrimSpace(strings.Trim(v.Text(), "\x00"))
		if name != "" {
			return name, true
		}
	}

	return "", false
}

func sortedKeys(raw map[string]models.Value) []string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
