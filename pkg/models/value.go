package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ValueKind tags the primitive carried by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInt
	KindUint
	KindFloat
	KindString
	KindBytes
	KindOID
	KindTimeTicks
)

// Value is a tagged SNMP varbind value. Raw values arrive from the wire as
// integers, unsigned counters, strings, byte blobs, OIDs, or timeticks; the
// metric parser dispatches on Kind instead of inspecting runtime types.
type Value struct {
	Kind ValueKind

	i int64
	u uint64
	f float64
	s string
	b []byte
}

func NullValue() Value                 { return Value{Kind: KindNull} }
func Int64Value(v int64) Value         { return Value{Kind: KindInt, i: v} }
func Uint64Value(v uint64) Value       { return Value{Kind: KindUint, u: v} }
func Float64Value(v float64) Value     { return Value{Kind: KindFloat, f: v} }
func StringValue(v string) Value       { return Value{Kind: KindString, s: v} }
func BytesValue(v []byte) Value        { return Value{Kind: KindBytes, b: v} }
func OIDValue(v string) Value          { return Value{Kind: KindOID, s: strings.TrimPrefix(v, ".")} }
func TimeTicksValue(v uint32) Value    { return Value{Kind: KindTimeTicks, u: uint64(v)} }

// Float64 reports the value as a float64. Numeric kinds convert directly;
// string and byte kinds are parsed so agents that report numerals inside
// octet strings still yield usable readings.
func (v Value) Float64() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.i), true
	case KindUint, KindTimeTicks:
		return float64(v.u), true
	case KindFloat:
		return v.f, true
	case KindString:
		return parseNumeric(v.s)
	case KindBytes:
		return parseNumeric(string(v.b))
	default:
		return 0, false
	}
}

// Int64 reports the value as an int64 when it is integral.
func (v Value) Int64() (int64, bool) {
	switch v.Kind {
	case KindInt:
		return v.i, true
	case KindUint, KindTimeTicks:
		if v.u > math.MaxInt64 {
			return 0, false
		}
		return int64(v.u), true
	case KindFloat:
		if v.f == math.Trunc(v.f) {
			return int64(v.f), true
		}
		return 0, false
	case KindString, KindBytes:
		f, ok := v.Float64()
		if !ok || f != math.Trunc(f) {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

// Text decodes the value to a UTF-8 string. Byte blobs pass through as-is;
// numeric kinds are formatted.
func (v Value) Text() string {
	switch v.Kind {
	case KindString, KindOID:
		return v.s
	case KindBytes:
		return string(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindUint, KindTimeTicks:
		return strconv.FormatUint(v.u, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return ""
	}
}

// IsNumeric reports whether Float64 would succeed.
func (v Value) IsNumeric() bool {
	_, ok := v.Float64()
	return ok
}

// MarshalJSON renders the natural scalar form so raw varbind maps survive
// the trip through the metrics table and the REST layer. Non-printable byte
// blobs are base64-encoded.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindInt:
		return json.Marshal(v.i)
	case KindUint, KindTimeTicks:
		return json.Marshal(v.u)
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.f)
	case KindString, KindOID:
		return json.Marshal(v.s)
	case KindBytes:
		if isPrintable(v.b) {
			return json.Marshal(string(v.b))
		}
		return json.Marshal(base64.StdEncoding.EncodeToString(v.b))
	default:
		return nil, fmt.Errorf("value: unknown kind %d", v.Kind)
	}
}

// UnmarshalJSON restores the tagged form from the natural scalar encoding
// used by MarshalJSON. Stored varbind lists read back through here.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch value := raw.(type) {
	case nil:
		*v = NullValue()
	case json.Number:
		if i, err := value.Int64(); err == nil {
			*v = Int64Value(i)
			return nil
		}

		f, err := value.Float64()
		if err != nil {
			return err
		}

		*v = Float64Value(f)
	case string:
		*v = StringValue(value)
	case bool:
		*v = StringValue(strconv.FormatBool(value))
	default:
		// Arrays and objects have no varbind analog; keep the raw text.
		*v = StringValue(string(data))
	}

	return nil
}

func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isPrintable(b []byte) bool {
	for _, r := range string(b) {
		if r == unicode.ReplacementChar {
			return false
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
