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

package traps

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/mib"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/snmp"
)

const (
	// snmpTrapOIDInstance identifies the second standard varbind of a v2c
	// notification; its value is the trap identity.
	snmpTrapOIDInstance = mib.OIDSnmpTrapOID + ".0"

	// genericTrapBase is the prefix for the six standard v1 generic traps
	// in their RFC 3584 v2c representation.
	genericTrapBase = "1.3.6.1.6.3.1.1.5"

	enterpriseSpecific = 6
)

// Normalize converts a received notification into the uniform trap record.
// The sender identity comes from the datagram metadata, never from the PDU.
func Normalize(pkt *gosnmp.SnmpPacket, addr *net.UDPAddr, receivedAt time.Time) *models.SnmpTrap {
	trap := &models.SnmpTrap{
		Community: pkt.Community,
		Version:   versionCode(pkt.Version),
		Varbinds:  normalizeVarbinds(pkt.Variables),
		CreatedAt: receivedAt,
	}

	if addr != nil {
		trap.SourceHost = addr.IP.String()
		trap.SourcePort = addr.Port
	}

	if pkt.Version == gosnmp.Version1 {
		applyV1Identity(trap, pkt)
	} else if oid, ok := findTrapOID(pkt.Variables); ok {
		trap.TrapOID = &oid
	}

	return trap
}

// versionCode maps the wire enum to the stored 0|1 form. Anything that is
// not plainly v1 is recorded as v2c.
func versionCode(v gosnmp.SnmpVersion) int {
	if v == gosnmp.Version1 {
		return models.SNMPv1
	}

	return models.SNMPv2c
}

func normalizeVarbinds(pdus []gosnmp.SnmpPDU) []models.TrapVarbind {
	out := make([]models.TrapVarbind, 0, len(pdus))

	for _, pdu := range pdus {
		out = append(out, models.TrapVarbind{
			OID:   snmp.NormalizeOID(pdu.Name),
			Type:  typeLabel(pdu.Type),
			Value: snmp.ConvertPDU(pdu),
		})
	}

	return out
}

func typeLabel(t gosnmp.Asn1BER) *string {
	name := snmp.TypeName(t)
	if strings.HasPrefix(name, "Unknown(") {
		return nil
	}

	return &name
}

// findTrapOID pulls the notification identity from the snmpTrapOID.0
// varbind of a v2c trap. Agents that omit it yield no trap OID, which is
// tolerated.
func findTrapOID(pdus []gosnmp.SnmpPDU) (string, bool) {
	for _, pdu := range pdus {
		name := snmp.NormalizeOID(pdu.Name)
		if name != snmpTrapOIDInstance && name != mib.OIDSnmpTrapOID {
			continue
		}

		if s, ok := pdu.Value.(string); ok {
			return snmp.NormalizeOID(s), true
		}

		return snmp.NormalizeOID(fmt.Sprintf("%v", pdu.Value)), true
	}

	return "", false
}

// applyV1Identity fills the enterprise OID from the v1 PDU header and
// synthesizes the v2c-style trap OID per the RFC 3584 mapping: generic
// traps 0-5 become 1.3.6.1.6.3.1.1.5.<generic+1>, enterprise-specific
// traps become <enterprise>.0.<specific>.
func applyV1Identity(trap *models.SnmpTrap, pkt *gosnmp.SnmpPacket) {
	enterprise := snmp.NormalizeOID(pkt.Enterprise)
	if enterprise != "" {
		trap.EnterpriseOID = &enterprise
	}

	var oid string

	switch {
	case pkt.GenericTrap >= 0 && pkt.GenericTrap < enterpriseSpecific:
		oid = fmt.Sprintf("%s.%d", genericTrapBase, pkt.GenericTrap+1)
	case enterprise != "":
		oid = fmt.Sprintf("%s.0.%d", enterprise, pkt.SpecificTrap)
	default:
		return
	}

	trap.TrapOID = &oid
}
