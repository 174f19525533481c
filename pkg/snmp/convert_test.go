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
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

func TestConvertPDU(t *testing.T) {
	tests := []struct {
		name string
		pdu  gosnmp.SnmpPDU
		text string
		num  *float64
	}{
		{
			name: "integer",
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.Integer, Value: 500},
			text: "500",
			num:  floatPtr(500),
		},
		{
			name: "octet_string",
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte("ETG2000")},
			text: "ETG2000",
		},
		{
			name: "gauge32",
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.Gauge32, Value: uint(9580)},
			text: "9580",
			num:  floatPtr(9580),
		},
		{
			name: "counter64",
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.Counter64, Value: uint64(1 << 40)},
			text: "1099511627776",
			num:  floatPtr(1 << 40),
		},
		{
			name: "timeticks",
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.TimeTicks, Value: uint32(360000)},
			text: "360000",
			num:  floatPtr(360000),
		},
		{
			name: "object_identifier",
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.ObjectIdentifier, Value: ".1.3.6.1.4.1.31946"},
			text: "1.3.6.1.4.1.31946",
		},
		{
			name: "ip_address",
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.IPAddress, Value: "10.0.0.5"},
			text: "10.0.0.5",
		},
		{
			name: "opaque_float",
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.OpaqueFloat, Value: float32(1.5)},
			text: "1.5",
			num:  floatPtr(1.5),
		},
		{
			name: "null",
			pdu:  gosnmp.SnmpPDU{Type: gosnmp.Null, Value: nil},
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ConvertPDU(tt.pdu)

			assert.Equal(t, tt.text, v.Text())

			if tt.num != nil {
				got, ok := v.Float64()
				require.True(t, ok)
				assert.InDelta(t, *tt.num, got, 1e-9)
			}
		})
	}
}

func TestConvertPDUMissingObjectIsNull(t *testing.T) {
	for _, typ := range []gosnmp.Asn1BER{gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView} {
		v := ConvertPDU(gosnmp.SnmpPDU{Type: typ})
		assert.Equal(t, models.KindNull, v.Kind)
	}
}

func TestNormalizeOID(t *testing.T) {
	assert.Equal(t, "1.3.6.1.2.1.1.5.0", NormalizeOID(".1.3.6.1.2.1.1.5.0"))
	assert.Equal(t, "1.3.6.1.2.1.1.5.0", NormalizeOID("  1.3.6.1.2.1.1.5.0 "))
	assert.Equal(t, "", NormalizeOID("."))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "OctetString", TypeName(gosnmp.OctetString))
	assert.Equal(t, "Integer", TypeName(gosnmp.Integer))
	assert.Equal(t, "TimeTicks", TypeName(gosnmp.TimeTicks))
	assert.Equal(t, "NoSuchInstance", TypeName(gosnmp.NoSuchInstance))
	assert.Contains(t, TypeName(gosnmp.Asn1BER(0x7f)), "Unknown")
}

func floatPtr(v float64) *float64 {
	return &v
}
