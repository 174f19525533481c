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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/mib"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

func TestParseMetricsPowerFields(t *testing.T) {
	tests := []struct {
		name      string
		raw       map[string]models.Value
		forward   *float64
		reflected *float64
	}{
		{
			name: "scalar_zero_suffix",
			raw: map[string]models.Value{
				mib.OIDForwardPower + ".0":   models.Int64Value(1850),
				mib.OIDReflectedPower + ".0": models.Int64Value(12),
			},
			forward:   floatPtr(1850),
			reflected: floatPtr(12),
		},
		{
			name: "bare_base_oid",
			raw: map[string]models.Value{
				mib.OIDForwardPower: models.Float64Value(920.5),
			},
			forward: floatPtr(920.5),
		},
		{
			name: "instance_indexed",
			raw: map[string]models.Value{
				mib.OIDForwardPower + ".3":   models.Int64Value(400),
				mib.OIDReflectedPower + ".3": models.Int64Value(8),
			},
			forward:   floatPtr(400),
			reflected: floatPtr(8),
		},
		{
			name: "leading_dot_tolerated",
			raw: map[string]models.Value{
				"." + mib.OIDForwardPower + ".0": models.Int64Value(700),
			},
			forward: floatPtr(700),
		},
		{
			name: "string_encoded_number",
			raw: map[string]models.Value{
				mib.OIDForwardPower + ".0": models.StringValue("310.25"),
			},
			forward: floatPtr(310.25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := ParseMetrics(tt.raw)

			assertFloatField(t, tt.forward, data.ForwardPower, "forward power")
			assertFloatField(t, tt.reflected, data.ReflectedPower, "reflected power")
		})
	}
}

func TestParseMetricsFrequencyScaling(t *testing.T) {
	raw := map[string]models.Value{
		mib.OIDFrequency + ".0": models.Int64Value(9580),
	}

	data := ParseMetrics(raw)

	require.NotNil(t, data.Frequency)
	assert.InDelta(t, 95.8, *data.Frequency, 1e-9)
}

func TestParseMetricsStatusDerivation(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]models.Value
		want string
	}{
		{
			name: "standby_oid_one_is_active",
			raw: map[string]models.Value{
				mib.OIDStandbyStatus + ".0": models.Int64Value(1),
			},
			want: models.StatusActive,
		},
		{
			name: "standby_oid_other_is_standby",
			raw: map[string]models.Value{
				mib.OIDStandbyStatus + ".0": models.Int64Value(2),
			},
			want: models.StatusStandby,
		},
		{
			name: "standby_oid_indexed",
			raw: map[string]models.Value{
				mib.OIDStandbyStatus + ".2": models.Int64Value(1),
			},
			want: models.StatusActive,
		},
		{
			name: "onair_oid_two_is_active",
			raw: map[string]models.Value{
				mib.OIDOnAirStatus + ".0": models.Int64Value(2),
			},
			want: models.StatusActive,
		},
		{
			name: "onair_oid_other_is_standby",
			raw: map[string]models.Value{
				mib.OIDOnAirStatus + ".0": models.Int64Value(1),
			},
			want: models.StatusStandby,
		},
		{
			name: "standby_wins_over_onair",
			raw: map[string]models.Value{
				mib.OIDStandbyStatus + ".0": models.Int64Value(2),
				mib.OIDOnAirStatus + ".0":   models.Int64Value(2),
			},
			want: models.StatusStandby,
		},
		{
			name: "non_numeric_status_is_offline",
			raw: map[string]models.Value{
				mib.OIDStandbyStatus + ".0": models.StringValue("noSuchInstance"),
			},
			want: models.StatusOffline,
		},
		{
			name: "no_status_oids_is_offline",
			raw: map[string]models.Value{
				mib.OIDForwardPower + ".0": models.Int64Value(1000),
			},
			want: models.StatusOffline,
		},
		{
			name: "empty_map_is_offline",
			raw:  map[string]models.Value{},
			want: models.StatusOffline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := ParseMetrics(tt.raw)

			assert.Equal(t, tt.want, data.Status)
		})
	}
}

func TestParseMetricsVSWRDerivation(t *testing.T) {
	tests := []struct {
		name      string
		forward   float64
		reflected float64
		want      *float64
	}{
		{
			name:      "nominal_match",
			forward:   100,
			reflected: 4,
			want:      floatPtr(1.5),
		},
		{
			name:      "perfect_match_is_unity",
			forward:   1000,
			reflected: 0,
			want:      floatPtr(1),
		},
		{
			name:      "zero_forward_skipped",
			forward:   0,
			reflected: 5,
			want:      nil,
		},
		{
			name:      "full_reflection_skipped",
			forward:   50,
			reflected: 50,
			want:      nil,
		},
		{
			name:      "reflected_above_forward_skipped",
			forward:   4,
			reflected: 100,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]models.Value{
				mib.OIDForwardPower + ".0":   models.Float64Value(tt.forward),
				mib.OIDReflectedPower + ".0": models.Float64Value(tt.reflected),
			}

			data := ParseMetrics(raw)

			if tt.want == nil {
				assert.Nil(t, data.VSWR)
				return
			}

			require.NotNil(t, data.VSWR)
			assert.InDelta(t, *tt.want, *data.VSWR, 1e-9)
			assert.GreaterOrEqual(t, *data.VSWR, 1.0)
		})
	}
}

func TestParseMetricsVSWRNeedsBothPowers(t *testing.T) {
	raw := map[string]models.Value{
		mib.OIDForwardPower + ".0": models.Int64Value(1000),
	}

	data := ParseMetrics(raw)

	assert.Nil(t, data.VSWR)
}

func TestParseMetricsRadioName(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]models.Value
		want string
	}{
		{
			name: "scalar_form_with_nul_padding",
			raw: map[string]models.Value{
				mib.OIDRadioName + ".0": models.BytesValue([]byte("ETG2000 Hilltop\x00\x00\x00")),
			},
			want: "ETG2000 Hilltop",
		},
		{
			name: "bare_base_form",
			raw: map[string]models.Value{
				mib.OIDRadioName: models.StringValue("Summit West"),
			},
			want: "Summit West",
		},
		{
			name: "absent_leaves_name_empty",
			raw: map[string]models.Value{
				mib.OIDForwardPower + ".0": models.Int64Value(100),
			},
			want: "",
		},
		{
			name: "all_nul_treated_as_absent",
			raw: map[string]models.Value{
				mib.OIDRadioName + ".0": models.BytesValue([]byte("\x00\x00\x00")),
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := ParseMetrics(tt.raw)

			assert.Equal(t, tt.want, data.RadioName)
		})
	}
}

func TestParseMetricsIgnoresUnmappedOIDs(t *testing.T) {
	raw := map[string]models.Value{
		mib.OIDSysUpTime + ".0":       models.TimeTicksValue(360000),
		"1.3.6.1.2.1.1.5.0":           models.StringValue("sysName"),
		"1.3.6.1.4.1.31946.4.2.6.9.1": models.Int64Value(42),
	}

	data := ParseMetrics(raw)

	assert.Nil(t, data.PowerOutput)
	assert.Nil(t, data.ForwardPower)
	assert.Nil(t, data.ReflectedPower)
	assert.Nil(t, data.Frequency)
	assert.Nil(t, data.VSWR)
	assert.Equal(t, models.StatusOffline, data.Status)
}

func TestParseMetricsFullPoll(t *testing.T) {
	raw := map[string]models.Value{
		mib.OIDForwardPower + ".0":   models.Int64Value(2000),
		mib.OIDReflectedPower + ".0": models.Int64Value(20),
		mib.OIDFrequency + ".0":      models.Int64Value(10170),
		mib.OIDStandbyStatus + ".0":  models.Int64Value(1),
		mib.OIDRadioName + ".0":      models.StringValue("North Ridge TX1"),
	}

	data := ParseMetrics(raw)

	require.NotNil(t, data.ForwardPower)
	require.NotNil(t, data.ReflectedPower)
	require.NotNil(t, data.Frequency)
	require.NotNil(t, data.VSWR)

	assert.InDelta(t, 2000, *data.ForwardPower, 1e-9)
	assert.InDelta(t, 20, *data.ReflectedPower, 1e-9)
	assert.InDelta(t, 101.7, *data.Frequency, 1e-9)
	assert.InDelta(t, 1.2222222, *data.VSWR, 1e-6)
	assert.Equal(t, models.StatusActive, data.Status)
	assert.Equal(t, "North Ridge TX1", data.RadioName)
}

func assertFloatField(t *testing.T, want, got *float64, field string) {
	t.Helper()

	if want == nil {
		assert.Nil(t, got, field)
		return
	}

	require.NotNil(t, got, field)
	assert.InDelta(t, *want, *got, 1e-9, field)
}

func floatPtr(v float64) *float64 {
	return &v
}
