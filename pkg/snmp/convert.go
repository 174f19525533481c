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
	"fmt"
	"strings"

	"github.com/gosnmp/gosnmp"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

// NormalizeOID trims whitespace and the leading dot gosnmp prepends to
// response OIDs, so map keys compare equal regardless of origin.
func NormalizeOID(oid string) string {
	return strings.TrimPrefix(strings.TrimSpace(oid), ".")
}

// ConvertPDU maps a gosnmp varbind onto the tagged value variant the parser
// and the trap pipeline dispatch on.
func ConvertPDU(pdu gosnmp.SnmpPDU) models.Value {
	switch pdu.Type {
	case gosnmp.OctetString:
		if b, ok := pdu.Value.([]byte); ok {
			return models.BytesValue(b)
		}

		return models.StringValue(fmt.Sprintf("%v", pdu.Value))
	case gosnmp.Integer:
		if v, ok := pdu.Value.(int); ok {
			return models.Int64Value(int64(v))
		}

		return bigIntValue(pdu.Value)
	case gosnmp.Counter32, gosnmp.Gauge32, gosnmp.Uinteger32:
		if v, ok := pdu.Value.(uint); ok {
			return models.Uint64Value(uint64(v))
		}

		return bigIntValue(pdu.Value)
	case gosnmp.Counter64:
		if v, ok := pdu.Value.(uint64); ok {
			return models.Uint64Value(v)
		}

		return bigIntValue(pdu.Value)
	case gosnmp.TimeTicks:
		if v, ok := pdu.Value.(uint32); ok {
			return models.TimeTicksValue(v)
		}

		return bigIntValue(pdu.Value)
	case gosnmp.ObjectIdentifier:
		if v, ok := pdu.Value.(string); ok {
			return models.OIDValue(v)
		}

		return models.StringValue(fmt.Sprintf("%v", pdu.Value))
	case gosnmp.IPAddress:
		if v, ok := pdu.Value.(string); ok {
			return models.StringValue(v)
		}

		return models.StringValue(fmt.Sprintf("%v", pdu.Value))
	case gosnmp.OpaqueFloat:
		if v, ok := pdu.Value.(float32); ok {
			return models.Float64Value(float64(v))
		}

		return models.NullValue()
	case gosnmp.OpaqueDouble:
		if v, ok := pdu.Value.(float64); ok {
			return models.Float64Value(v)
		}

		return models.NullValue()
	case gosnmp.Null, gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView:
		return models.NullValue()
	default:
		if pdu.Value == nil {
			return models.NullValue()
		}

		return models.StringValue(fmt.Sprintf("%v", pdu.Value))
	}
}

func bigIntValue(v interface{}) models.Value {
	b := gosnmp.ToBigInt(v)
	if b == nil {
		return models.NullValue()
	}

	if b.IsInt64() {
		return models.Int64Value(b.Int64())
	}

	return models.Uint64Value(b.Uint64())
}

// TypeName renders the varbind type the way operators read it in walk
// dumps and trap logs.
func TypeName(t gosnmp.Asn1BER) string {
	switch t {
	case gosnmp.Boolean:
		return "Boolean"
	case gosnmp.Integer:
		return "Integer"
	case gosnmp.OctetString:
		return "OctetString"
	case gosnmp.Null:
		return "Null"
	case gosnmp.ObjectIdentifier:
		return "ObjectIdentifier"
	case gosnmp.IPAddress:
		return "IPAddress"
	case gosnmp.Counter32:
		return "Counter32"
	case gosnmp.Gauge32:
		return "Gauge32"
	case gosnmp.TimeTicks:
		return "TimeTicks"
	case gosnmp.Opaque:
		return "Opaque"
	case gosnmp.OpaqueFloat:
		return "OpaqueFloat"
	case gosnmp.OpaqueDouble:
		return "OpaqueDouble"
	case gosnmp.Counter64:
		return "Counter64"
	case gosnmp.Uinteger32:
		return "Uinteger32"
	case gosnmp.NoSuchObject:
		return "NoSuchObject"
	case gosnmp.NoSuchInstance:
		return "NoSuchInstance"
	case gosnmp.EndOfMibView:
		return "EndOfMibView"
	default:
		return fmt.Sprintf("Unknown(0x%02x)", byte(t))
	}
}
