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
	"context"
	"errors"
	"net"
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/db"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

type sinkStub struct {
	traps []models.SnmpTrap
}

func (s *sinkStub) PublishTrap(trap models.SnmpTrap) {
	s.traps = append(s.traps, trap)
}

// occupyPort binds a loopback UDP socket so the receiver's bind attempt
// collides with it.
func occupyPort(t *testing.T) (net.PacketConn, int) {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	t.Cleanup(func() { _ = pc.Close() })

	return pc, pc.LocalAddr().(*net.UDPAddr).Port
}

// freePort grabs and releases an ephemeral UDP port.
func freePort(t *testing.T) int {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	port := pc.LocalAddr().(*net.UDPAddr).Port
	require.NoError(t, pc.Close())

	return port
}

func testReceiver(t *testing.T, cfg Config, events EventSink) (*Receiver, *db.MockService) {
	t.Helper()

	store := db.NewMockService(gomock.NewController(t))

	r, err := NewReceiver(cfg, store, events, logger.NewTestLogger())
	require.NoError(t, err)

	return r, store
}

func TestNewReceiverRequiresStore(t *testing.T) {
	_, err := NewReceiver(Config{}, nil, nil, logger.NewTestLogger())
	assert.ErrorIs(t, err, ErrStoreRequired)
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultFallbackPort, cfg.FallbackPort)
}

func TestReceiverBindsPrimary(t *testing.T) {
	port := freePort(t)

	r, _ := testReceiver(t, Config{Host: "127.0.0.1", Port: port}, nil)

	require.NoError(t, r.Start(context.Background()))

	assert.True(t, r.Running())
	assert.Equal(t, port, r.BoundPort())

	require.NoError(t, r.Stop(context.Background()))
	assert.False(t, r.Running())
}

func TestReceiverAutoFallback(t *testing.T) {
	_, occupied := occupyPort(t)
	fallback := freePort(t)

	r, _ := testReceiver(t, Config{
		Host:         "127.0.0.1",
		Port:         occupied,
		FallbackPort: fallback,
		AutoFallback: true,
	}, nil)

	require.NoError(t, r.Start(context.Background()))

	assert.Equal(t, fallback, r.BoundPort())

	require.NoError(t, r.Stop(context.Background()))
}

func TestReceiverDeclinedPromptAborts(t *testing.T) {
	_, occupied := occupyPort(t)

	r, _ := testReceiver(t, Config{
		Host:              "127.0.0.1",
		Port:              occupied,
		FallbackPort:      freePort(t),
		RequirePrivileged: true,
	}, nil)

	r.confirm = func(int, int) bool { return false }

	err := r.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBindFailed)
	assert.False(t, r.Running())
}

func TestReceiverConfirmedPromptFallsBack(t *testing.T) {
	_, occupied := occupyPort(t)
	fallback := freePort(t)

	r, _ := testReceiver(t, Config{
		Host:              "127.0.0.1",
		Port:              occupied,
		FallbackPort:      fallback,
		RequirePrivileged: true,
	}, nil)

	asked := false
	r.confirm = func(primary, fb int) bool {
		asked = true

		assert.Equal(t, occupied, primary)
		assert.Equal(t, fallback, fb)

		return true
	}

	require.NoError(t, r.Start(context.Background()))

	assert.True(t, asked)
	assert.Equal(t, fallback, r.BoundPort())

	require.NoError(t, r.Stop(context.Background()))
}

func TestReceiverBothPortsTakenFails(t *testing.T) {
	_, primary := occupyPort(t)
	_, fallback := occupyPort(t)

	r, _ := testReceiver(t, Config{
		Host:         "127.0.0.1",
		Port:         primary,
		FallbackPort: fallback,
		AutoFallback: true,
	}, nil)

	err := r.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBindFailed)
}

func TestReceiverStopTwice(t *testing.T) {
	r, _ := testReceiver(t, Config{Host: "127.0.0.1", Port: freePort(t)}, nil)

	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop(context.Background()))
	require.NoError(t, r.Stop(context.Background()))
}

func TestHandleTrapStoresAttributesAndPublishes(t *testing.T) {
	sink := &sinkStub{}

	r, store := testReceiver(t, Config{Host: "127.0.0.1"}, sink)

	store.EXPECT().ListTransmitters(gomock.Any()).Return([]*models.Transmitter{
		{ID: "tx-1", SiteID: "site-1", SNMPHost: "10.20.30.40"},
		{ID: "tx-2", SiteID: "site-2", SNMPHost: "10.20.30.40"},
	}, nil)

	store.EXPECT().
		StoreTrap(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, trap *models.SnmpTrap) (*models.SnmpTrap, error) {
			require.NotNil(t, trap.TransmitterID)
			assert.Equal(t, "tx-1", *trap.TransmitterID)
			require.NotNil(t, trap.SiteID)
			assert.Equal(t, "site-1", *trap.SiteID)

			stored := *trap
			stored.ID = 7

			return &stored, nil
		})

	pkt := &gosnmp.SnmpPacket{
		Version:   gosnmp.Version2c,
		Community: "public",
		Variables: []gosnmp.SnmpPDU{
			{Name: ".1.3.6.1.6.3.1.1.4.1.0", Type: gosnmp.ObjectIdentifier, Value: ".1.3.6.1.4.1.31946.0.1"},
		},
	}

	r.handleTrap(pkt, senderAddr())

	require.Len(t, sink.traps, 1)
	assert.Equal(t, int64(7), sink.traps[0].ID)
	assert.Equal(t, "10.20.30.40", sink.traps[0].SourceHost)
}

func TestHandleTrapStoreFailureStillPublishes(t *testing.T) {
	sink := &sinkStub{}

	r, store := testReceiver(t, Config{Host: "127.0.0.1"}, sink)

	store.EXPECT().ListTransmitters(gomock.Any()).Return(nil, errors.New("store offline"))
	store.EXPECT().StoreTrap(gomock.Any(), gomock.Any()).Return(nil, errors.New("store offline"))

	r.handleTrap(&gosnmp.SnmpPacket{Version: gosnmp.Version2c}, senderAddr())

	require.Len(t, sink.traps, 1)
	assert.Nil(t, sink.traps[0].TransmitterID)
}

func TestAttributeNoMatchLeavesNil(t *testing.T) {
	r, store := testReceiver(t, Config{}, nil)

	store.EXPECT().ListTransmitters(gomock.Any()).Return([]*models.Transmitter{
		{ID: "tx-1", SiteID: "site-1", SNMPHost: "192.168.1.1"},
	}, nil)

	trap := &models.SnmpTrap{SourceHost: "10.20.30.40"}

	r.attribute(context.Background(), trap)

	assert.Nil(t, trap.TransmitterID)
	assert.Nil(t, trap.SiteID)
}
