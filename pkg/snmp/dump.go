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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/mib"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

var nowUTC = func() time.Time { return time.Now().UTC() }

// A dump line is "OID = TYPE: value". Lines not opening a new varbind are
// continuations of a multiline string value.
var dumpLineRE = regexp.MustCompile(`^\.?\d[\d.]*\s*=`)

var timeticksRE = regexp.MustCompile(`\((\d+)\)`)

var enumValueRE = regexp.MustCompile(`\((-?\d+)\)\s*$`)

// ParseDumpFile reads an snmpwalk dump from disk and parses it.
func ParseDumpFile(path string) ([]models.Varbind, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read walk dump: %w", err)
	}

	return ParseDump(string(data))
}

// ParseDump parses snmpwalk output into varbinds. No-such-object rows are
// dropped; unrecognized types pass through as strings so the template still
// lists the OID.
func ParseDump(dump string) ([]models.Varbind, error) {
	var varbinds []models.Varbind

	for _, entry := range joinContinuations(dump) {
		vb, ok := parseDumpEntry(entry)
		if !ok {
			continue
		}

		varbinds = append(varbinds, vb)
	}

	if len(varbinds) == 0 {
		return nil, ErrEmptyDump
	}

	return varbinds, nil
}

// joinContinuations regroups raw lines into one string per varbind,
// re-attaching the later lines of multiline string values.
func joinContinuations(dump string) []string {
	var entries []string

	for _, line := range strings.Split(dump, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if dumpLineRE.MatchString(line) || len(entries) == 0 {
			entries = append(entries, line)
			continue
		}

		entries[len(entries)-1] += "\n" + line
	}

	return entries
}

func parseDumpEntry(entry string) (models.Varbind, bool) {
	eq := strings.Index(entry, " = ")
	if eq < 0 {
		return models.Varbind{}, false
	}

	oid := NormalizeOID(entry[:eq])
	if oid == "" || !dumpLineRE.MatchString(entry) {
		return models.Varbind{}, false
	}

	rhs := strings.TrimSpace(entry[eq+3:])

	if strings.HasPrefix(rhs, "No Such Object") ||
		strings.HasPrefix(rhs, "No Such Instance") ||
		strings.HasPrefix(rhs, "No more variables") {
		return models.Varbind{}, false
	}

	// Bare "" is how snmpwalk prints an empty untyped string.
	if rhs == `""` || rhs == "" {
		return models.Varbind{OID: oid, Type: "OctetString", Value: models.StringValue("")}, true
	}

	colon := strings.Index(rhs, ":")
	if colon < 0 {
		return models.Varbind{OID: oid, Type: "OctetString", Value: models.StringValue(rhs)}, true
	}

	typeToken := strings.TrimSpace(rhs[:colon])
	raw := strings.TrimSpace(rhs[colon+1:])

	typeName, value := parseDumpValue(typeToken, raw)

	return models.Varbind{OID: oid, Type: typeName, Value: value}, true
}

func parseDumpValue(typeToken, raw string) (string, models.Value) {
	switch typeToken {
	case "INTEGER":
		return "Integer", parseDumpInteger(raw)
	case "STRING":
		return "OctetString", models.StringValue(unquote(raw))
	case "Hex-STRING":
		return "OctetString", parseDumpHex(raw)
	case "OID":
		return "ObjectIdentifier", models.OIDValue(strings.TrimSpace(raw))
	case "IpAddress", "Network Address":
		return "IPAddress", models.StringValue(strings.TrimSpace(raw))
	case "Timeticks":
		return "TimeTicks", parseDumpTimeticks(raw)
	case "Gauge32", "Gauge":
		return "Gauge32", parseDumpUnsigned(raw)
	case "Counter32", "Counter":
		return "Counter32", parseDumpUnsigned(raw)
	case "Counter64":
		return "Counter64", parseDumpUnsigned(raw)
	case "Unsigned32", "UInteger32":
		return "Uinteger32", parseDumpUnsigned(raw)
	case "Opaque":
		return "Opaque", models.StringValue(raw)
	default:
		return typeToken, models.StringValue(raw)
	}
}

// parseDumpInteger handles both "42" and the enum-label form "up(1)".
func parseDumpInteger(raw string) models.Value {
	if v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
		return models.Int64Value(v)
	}

	if m := enumValueRE.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			return models.Int64Value(v)
		}
	}

	return models.StringValue(raw)
}

func parseDumpUnsigned(raw string) models.Value {
	raw = strings.TrimSpace(raw)

	if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return models.Uint64Value(v)
	}

	if m := enumValueRE.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.ParseUint(m[1], 10, 64); err == nil {
			return models.Uint64Value(v)
		}
	}

	return models.StringValue(raw)
}

// parseDumpTimeticks extracts the tick count from "(123456) 0:20:34.56".
func parseDumpTimeticks(raw string) models.Value {
	if m := timeticksRE.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.ParseUint(m[1], 10, 32); err == nil {
			return models.TimeTicksValue(uint32(v))
		}
	}

	return models.StringValue(raw)
}

func parseDumpHex(raw string) models.Value {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\t':
			return -1
		default:
			return r
		}
	}, raw)

	if b, err := hex.DecodeString(cleaned); err == nil {
		return models.BytesValue(b)
	}

	return models.StringValue(raw)
}

func unquote(raw string) string {
	raw = strings.TrimPrefix(raw, `"`)

	return strings.TrimSuffix(raw, `"`)
}

// BuildTemplate turns walk output into the polling template document,
// resolving symbolic names through the MIB mapper when one is supplied.
func BuildTemplate(deviceType, source string, varbinds []models.Varbind, mapper *mib.Mapper) models.WalkTemplate {
	tpl := models.WalkTemplate{
		DeviceType:  deviceType,
		GeneratedAt: nowUTC().Format(time.RFC3339),
		Source:      source,
		OIDs:        make([]models.WalkTemplateOID, 0, len(varbinds)),
	}

	for _, vb := range varbinds {
		entry := models.WalkTemplateOID{
			OID:    vb.OID,
			Type:   vb.Type,
			Sample: vb.Value.Text(),
		}

		if mapper != nil {
			if name, ok := mapper.Map(vb.OID); ok {
				entry.Name = name
			}
		}

		tpl.OIDs = append(tpl.OIDs, entry)
	}

	return tpl
}

// SaveTemplate persists the template under <assetsDir>/templates with a
// timestamped file name, creating the directory when needed. It returns
// the path written.
func SaveTemplate(assetsDir string, tpl models.WalkTemplate) (string, error) {
	dir := filepath.Join(assetsDir, "templates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create template directory: %w", err)
	}

	name := fmt.Sprintf("%s-walk-%s.json", sanitizeName(tpl.DeviceType), nowUTC().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(tpl, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode template: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write template: %w", err)
	}

	return path, nil
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return "device"
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, name)
}
