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

package snmp

import (
	"strconv"
	"strings"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/mib"
)

// Elenos ETG agents expose the RF table both as scalars (base.0) and as
// per-exciter instances (base.1 through base.4), and firmware revisions
// disagree on which. Expansion polls every form.
const elenosInstanceCount = 4

var elenosMetricBases = map[string]struct{}{
	mib.OIDForwardPower:   {},
	mib.OIDReflectedPower: {},
	mib.OIDOnAirStatus:    {},
	mib.OIDStandbyStatus:  {},
	mib.OIDFrequency:      {},
}

// The bases force-added whenever any Elenos metric OID is configured, so
// status and frequency are polled even when the device was set up with a
// single power OID.
var elenosCoreBases = []string{
	mib.OIDForwardPower,
	mib.OIDReflectedPower,
	mib.OIDOnAirStatus,
	mib.OIDFrequency,
}

// ExpandOIDs derives the wire OID list from the configured one. The
// expansion is pure and idempotent: expanding an already expanded list adds
// nothing, and every configured OID survives into the output. Duplicates
// are dropped keeping first-seen order.
func ExpandOIDs(configured []string) []string {
	out := make([]string, 0, len(configured))
	seen := make(map[string]struct{}, len(configured))

	add := func(oid string) {
		if _, ok := seen[oid]; ok {
			return
		}

		seen[oid] = struct{}{}
		out = append(out, oid)
	}

	sawElenos := false

	for _, raw := range configured {
		oid := NormalizeOID(raw)
		if oid == "" {
			continue
		}

		add(oid)

		if base, ok := elenosFamilyBase(oid); ok {
			sawElenos = true
			addElenosFamily(add, base)

			continue
		}

		if !strings.HasSuffix(oid, ".0") {
			add(oid + ".0")
		}
	}

	if sawElenos {
		for _, base := range elenosCoreBases {
			addElenosFamily(add, base)
		}
	}

	return out
}

func addElenosFamily(add func(string), base string) {
	add(base)
	add(base + ".0")

	for i := 1; i <= elenosInstanceCount; i++ {
		add(base + "." + strconv.Itoa(i))
	}
}

// elenosFamilyBase reports whether the OID is an Elenos metric base or one
// of its scalar/instance forms, and returns the base.
func elenosFamilyBase(oid string) (string, bool) {
	if _, ok := elenosMetricBases[oid]; ok {
		return oid, true
	}

	trimmed := strings.TrimSuffix(oid, ".0")
	if _, ok := elenosMetricBases[trimmed]; ok {
		return trimmed, true
	}

	stripped := mib.StripInstance(trimmed)
	if _, ok := elenosMetricBases[stripped]; ok {
		return stripped, true
	}

	return "", false
}
