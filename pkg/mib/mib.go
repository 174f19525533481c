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

// Package mib resolves numeric OIDs to symbolic names from local mapping
// files. Mapping files hold one "<numeric-oid> <name>" pair per line with
// '#' comments. After load the mapper is pure: no I/O, no mutation.
package mib

import (
	"bufio"
	"os"
	"strings"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
)

// The Elenos ETG OID family polled across the fleet. ".10" carries the RF
// readings; radio name lives under a separate subtree.
const (
	OIDForwardPower   = "1.3.6.1.4.1.31946.4.2.6.10.1"
	OIDReflectedPower = "1.3.6.1.4.1.31946.4.2.6.10.2"
	OIDOnAirStatus    = "1.3.6.1.4.1.31946.4.2.6.10.12"
	OIDStandbyStatus  = "1.3.6.1.4.1.31946.4.2.6.10.13"
	OIDFrequency      = "1.3.6.1.4.1.31946.4.2.6.10.14"
	OIDRadioName      = "1.3.6.1.4.1.31946.3.1.7"

	OIDSysUpTime   = "1.3.6.1.2.1.1.3"
	OIDSnmpTrapOID = "1.3.6.1.6.3.1.1.4.1"
)

// Compiled-in names cover the Elenos ETG family and the SNMPv2-MIB scalars
// the fleet reports, so deployments work without any mapping file.
var builtinNames = map[string]string{
	"1.3.6.1.2.1.1.1": "sysDescr",
	OIDSysUpTime:      "sysUpTime",
	"1.3.6.1.2.1.1.5": "sysName",
	"1.3.6.1.2.1.1.6": "sysLocation",
	OIDSnmpTrapOID:    "snmpTrapOID",
	OIDRadioName:      "etgRadioName",
	OIDForwardPower:   "etgForwardPower",
	OIDReflectedPower: "etgReflectedPower",
	OIDOnAirStatus:    "etgOnAirStatus",
	OIDStandbyStatus:  "etgStandbyStatus",
	OIDFrequency:      "etgFrequency",
}

// Mapper maps numeric OIDs to symbolic names.
type Mapper struct {
	names map[string]string
}

// Load builds a mapper from the built-in table plus the given mapping
// files. Missing or malformed files are logged and skipped; they never
// fail startup.
func Load(paths []string, log logger.Logger) *Mapper {
	names := make(map[string]string, len(builtinNames))
	for oid, name := range builtinNames {
		names[oid] = name
	}

	for _, path := range paths {
		if err := loadFile(path, names); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Skipping MIB mapping file")
			continue
		}

		log.Debug().Str("path", path).Msg("Loaded MIB mapping file")
	}

	return &Mapper{names: names}
}

func loadFile(path string, names map[string]string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		oid := strings.TrimPrefix(fields[0], ".")
		names[oid] = fields[1]
	}

	return scanner.Err()
}

// StripInstance removes a single trailing numeric component, covering both
// the scalar ".0" and one instance index. A non-numeric trailing segment is
// left intact.
func StripInstance(oid string) string {
	oid = strings.TrimPrefix(strings.TrimSpace(oid), ".")

	idx := strings.LastIndex(oid, ".")
	if idx < 0 {
		return oid
	}

	last := oid[idx+1:]
	if last == "" || !allDigits(last) {
		return oid
	}

	return oid[:idx]
}

// Map resolves an OID to its symbolic name, trying the instance-stripped
// form first and the raw form second.
func (m *Mapper) Map(oid string) (string, bool) {
	oid = strings.TrimPrefix(strings.TrimSpace(oid), ".")

	if name, ok := m.names[StripInstance(oid)]; ok {
		return name, true
	}

	name, ok := m.names[oid]

	return name, ok
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
