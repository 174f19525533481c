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

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/metrics"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/mib"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/snmp"
)

func TestStartPolling(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	poller := NewMockPoller(ctrl)
	poller.EXPECT().Start().Return(nil)
	poller.EXPECT().Running().Return(true)

	server := NewAPIServer(WithScheduler(poller), WithLogger(logger.NewTestLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/snmp/start", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp pollingStateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Running)
}

func TestStartPollingFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	poller := NewMockPoller(ctrl)
	poller.EXPECT().Start().Return(errors.New("already running"))

	server := NewAPIServer(WithScheduler(poller), WithLogger(logger.NewTestLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/snmp/start", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestStopPolling(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	poller := NewMockPoller(ctrl)
	poller.EXPECT().Stop()
	poller.EXPECT().Running().Return(false)

	server := NewAPIServer(WithScheduler(poller), WithLogger(logger.NewTestLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/snmp/stop", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp pollingStateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Running)
}

func TestGetPollingStatusReportsPerDevice(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	lastSeen := time.Now().UTC().Truncate(time.Second)

	poller := NewMockPoller(ctrl)
	poller.EXPECT().Devices().Return([]models.Device{{ID: "tx-1"}, {ID: "tx-2"}})
	poller.EXPECT().Running().Return(true)
	poller.EXPECT().DeviceStatus("tx-1").Return(models.DeviceStatus{
		DeviceID: "tx-1",
		Online:   true,
		LastSeen: &lastSeen,
	})
	poller.EXPECT().DeviceStatus("tx-2").Return(models.DeviceStatus{
		DeviceID:   "tx-2",
		ErrorCount: 3,
	})

	server := NewAPIServer(WithScheduler(poller), WithLogger(logger.NewTestLogger()))

	req := httptest.NewRequest(http.MethodGet, "/api/snmp/status", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp pollingStatusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Running)
	assert.Equal(t, 2, resp.DeviceCount)
	require.Len(t, resp.Devices, 2)
	assert.Equal(t, "tx-1", resp.Devices[0].ID)
	assert.True(t, resp.Devices[0].Online)
	require.NotNil(t, resp.Devices[0].LastSeen)
	assert.True(t, resp.Devices[0].LastSeen.Equal(lastSeen))
	assert.Equal(t, "tx-2", resp.Devices[1].ID)
	assert.False(t, resp.Devices[1].Online)
	assert.Nil(t, resp.Devices[1].LastSeen)
	assert.Equal(t, 3, resp.Devices[1].ErrorCount)
}

func TestGetResultsFiltersByDevice(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	rings := metrics.NewRingSet(0, 0)
	rings.Add(models.DeviceResult{DeviceID: "tx-1", Timestamp: time.Now(), Success: true})
	rings.Add(models.DeviceResult{DeviceID: "tx-2", Timestamp: time.Now(), Error: "timeout"})

	poller := NewMockPoller(ctrl)
	poller.EXPECT().Rings().Return(rings)

	server := NewAPIServer(WithScheduler(poller), WithLogger(logger.NewTestLogger()))

	req := httptest.NewRequest(http.MethodGet, "/api/snmp/results?deviceId=tx-2", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var results []models.DeviceResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "tx-2", results[0].DeviceID)
	assert.Equal(t, "timeout", results[0].Error)
}

func TestClearResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	rings := metrics.NewRingSet(0, 0)
	rings.Add(models.DeviceResult{DeviceID: "tx-1", Timestamp: time.Now(), Success: true})

	poller := NewMockPoller(ctrl)
	poller.EXPECT().Rings().Return(rings)

	server := NewAPIServer(WithScheduler(poller), WithLogger(logger.NewTestLogger()))

	req := httptest.NewRequest(http.MethodDelete, "/api/snmp/results", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Zero(t, rings.Size())
}

func TestTestDeviceExpandsOIDsAndFillsDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tester := NewMockSNMPTester(ctrl)
	tester.EXPECT().Test(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, device models.Device, oids []string) snmp.TestResult {
			assert.Equal(t, "10.0.0.7", device.Host)
			assert.Equal(t, models.DefaultSNMPPort, device.Port)
			assert.Equal(t, models.DefaultCommunity, device.Community)
			assert.Equal(t, models.SNMPv2c, device.Version)
			assert.Contains(t, oids, mib.OIDFrequency, "expansion pulls in the rest of the metric family")

			return snmp.TestResult{OK: true, Data: map[string]models.Value{
				mib.OIDForwardPower + ".0": models.Int64Value(2500),
			}}
		})

	server := NewAPIServer(WithSessionManager(tester), WithLogger(logger.NewTestLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/snmp/test",
		strings.NewReader(`{"host":"10.0.0.7","oids":["1.3.6.1.4.1.31946.4.2.6.10.1"]}`))
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result snmp.TestResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, result.OK)
}

func TestTestDeviceReportsFailedProbe(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tester := NewMockSNMPTester(ctrl)
	tester.EXPECT().Test(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(snmp.TestResult{Error: "snmp connect failed: timeout"})

	server := NewAPIServer(WithSessionManager(tester), WithLogger(logger.NewTestLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/snmp/test", strings.NewReader(`{"host":"10.0.0.7"}`))
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, "an unreachable agent is a result, not an API error")

	var result snmp.TestResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "timeout")
}

func TestTestDeviceValidatesRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	server := NewAPIServer(WithSessionManager(NewMockSNMPTester(ctrl)), WithLogger(logger.NewTestLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/snmp/test", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/snmp/test",
		strings.NewReader(`{"host":"10.0.0.7","version":3}`))
	rr = httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

const etgDump = `1.3.6.1.4.1.31946.3.1.7.0 = STRING: "Bakun FM"
1.3.6.1.4.1.31946.4.2.6.10.1.0 = INTEGER: 2500
1.3.6.1.4.1.31946.4.2.6.10.14.0 = INTEGER: 9580
`

func TestWalkDeviceFromDumpFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	assets := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assets, "etg-walk.txt"), []byte(etgDump), 0o644))

	server := NewAPIServer(
		WithSessionManager(NewMockSNMPTester(ctrl)),
		WithMIB(mib.Load(nil, logger.NewTestLogger())),
		WithAssetsDir(assets),
		WithLogger(logger.NewTestLogger()),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/snmp/walk", strings.NewReader(`{"dumpFile":"etg-walk.txt"}`))
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var tpl models.WalkTemplate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tpl))
	assert.Equal(t, defaultDeviceType, tpl.DeviceType)
	assert.Equal(t, "etg-walk.txt", tpl.Source)
	require.Len(t, tpl.OIDs, 3)
	assert.Equal(t, mib.OIDRadioName+".0", tpl.OIDs[0].OID)
	assert.Equal(t, "etgRadioName", tpl.OIDs[0].Name)
	assert.Equal(t, "Bakun FM", tpl.OIDs[0].Sample)

	entries, err := os.ReadDir(filepath.Join(assets, "templates"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "template must be persisted under the assets directory")
}

func TestWalkDeviceFallsBackToDump(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	assets := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assets, "etg-walk.txt"), []byte(etgDump), 0o644))

	tester := NewMockSNMPTester(ctrl)
	tester.EXPECT().Walk(gomock.Any(), gomock.Any(), defaultWalkRoot).Return(nil, errors.New("timeout"))

	server := NewAPIServer(
		WithSessionManager(tester),
		WithAssetsDir(assets),
		WithLogger(logger.NewTestLogger()),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/snmp/walk",
		strings.NewReader(`{"host":"10.0.0.9","dumpFile":"etg-walk.txt"}`))
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var tpl models.WalkTemplate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tpl))
	assert.Equal(t, "etg-walk.txt", tpl.Source, "dump file takes over when the live walk fails")
}

func TestWalkDeviceLiveFailureWithoutDump(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tester := NewMockSNMPTester(ctrl)
	tester.EXPECT().Walk(gomock.Any(), gomock.Any(), "1.3.6.1.2.1").Return(nil, errors.New("timeout"))

	server := NewAPIServer(
		WithSessionManager(tester),
		WithAssetsDir(t.TempDir()),
		WithLogger(logger.NewTestLogger()),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/snmp/walk",
		strings.NewReader(`{"host":"10.0.0.9","root":"1.3.6.1.2.1"}`))
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "Walk failed")
}

func TestWalkDeviceRequiresTargetOrDump(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	server := NewAPIServer(WithSessionManager(NewMockSNMPTester(ctrl)), WithLogger(logger.NewTestLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/snmp/walk", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWalkDeviceRejectsEscapingDumpPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	server := NewAPIServer(
		WithSessionManager(NewMockSNMPTester(ctrl)),
		WithAssetsDir(t.TempDir()),
		WithLogger(logger.NewTestLogger()),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/snmp/walk",
		strings.NewReader(`{"dumpFile":"../../etc/passwd"}`))
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestResolveDumpPathConfinesToAssets(t *testing.T) {
	path, err := resolveDumpPath("attached_assets", "walk.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("attached_assets", "walk.txt"), path)

	_, err = resolveDumpPath("attached_assets", "../secrets.txt")
	require.ErrorIs(t, err, errDumpOutsideAssets)

	_, err = resolveDumpPath("attached_assets", "nested/../../secrets.txt")
	require.ErrorIs(t, err, errDumpOutsideAssets)
}

func TestDeviceFromRequestDefaults(t *testing.T) {
	device, ok := deviceFromRequest("10.0.0.1", 0, "", nil)
	require.True(t, ok)
	assert.Equal(t, models.SNMPv2c, device.Version)
	assert.Equal(t, models.DefaultSNMPPort, device.Port)
	assert.Equal(t, models.DefaultCommunity, device.Community)
	assert.Equal(t, "probe-10.0.0.1", device.ID)

	v3 := 3
	_, ok = deviceFromRequest("10.0.0.1", 0, "", &v3)
	assert.False(t, ok)
}
