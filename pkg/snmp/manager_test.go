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
	"context"
	"testing"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

func testDevice(id string) models.Device {
	return models.Device{
		ID:        id,
		Host:      "127.0.0.1",
		Port:      1161,
		Community: "public",
		Version:   models.SNMPv2c,
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultRetries, cfg.Retries)

	custom := Config{Timeout: time.Second, Retries: 1}.withDefaults()
	assert.Equal(t, time.Second, custom.Timeout)
	assert.Equal(t, 1, custom.Retries)
}

func TestNewClientVersions(t *testing.T) {
	dev := testDevice("dev-1")

	dev.Version = models.SNMPv1
	client, err := newClient(dev, Config{}.withDefaults())
	require.NoError(t, err)
	assert.Equal(t, gosnmp.Version1, client.Version)

	dev.Version = models.SNMPv2c
	client, err = newClient(dev, Config{}.withDefaults())
	require.NoError(t, err)
	assert.Equal(t, gosnmp.Version2c, client.Version)

	dev.Version = 7
	_, err = newClient(dev, Config{}.withDefaults())
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestNewClientDefaults(t *testing.T) {
	dev := models.Device{ID: "dev-1", Host: "10.0.0.5", Version: models.SNMPv2c}

	client, err := newClient(dev, Config{}.withDefaults())
	require.NoError(t, err)

	assert.EqualValues(t, models.DefaultSNMPPort, client.Port)
	assert.Equal(t, models.DefaultCommunity, client.Community)
	assert.Equal(t, DefaultTimeout, client.Timeout)
	assert.Equal(t, DefaultRetries, client.Retries)
	assert.Equal(t, gosnmp.MaxOids, client.MaxOids)
}

func TestManagerSessionLifecycle(t *testing.T) {
	m := NewManager(Config{Timeout: 100 * time.Millisecond, Retries: 1}, logger.NewTestLogger())

	// UDP dial to loopback succeeds without an agent listening.
	require.NoError(t, m.Open(testDevice("dev-1")))
	require.NoError(t, m.Open(testDevice("dev-2")))

	m.mu.Lock()
	assert.Len(t, m.sessions, 2)
	m.mu.Unlock()

	// Reopening the same id replaces the session rather than leaking it.
	require.NoError(t, m.Open(testDevice("dev-1")))

	m.mu.Lock()
	assert.Len(t, m.sessions, 2)
	m.mu.Unlock()

	m.Close("dev-1")

	m.mu.Lock()
	assert.Len(t, m.sessions, 1)
	m.mu.Unlock()

	// Closing an unknown id is a no-op.
	m.Close("dev-1")

	m.CloseAll()

	m.mu.Lock()
	assert.Empty(t, m.sessions)
	m.mu.Unlock()
}

func TestManagerRecycle(t *testing.T) {
	m := NewManager(Config{Timeout: 100 * time.Millisecond, Retries: 1}, logger.NewTestLogger())

	dev := testDevice("dev-1")
	require.NoError(t, m.Open(dev))

	dev.Community = "private"
	require.NoError(t, m.Recycle(dev))

	m.mu.Lock()
	sess := m.sessions["dev-1"]
	m.mu.Unlock()

	require.NotNil(t, sess)
	assert.Equal(t, "private", sess.client.Community)
}

func TestManagerGetUnknownDevice(t *testing.T) {
	m := NewManager(Config{}, logger.NewTestLogger())

	_, err := m.Get(context.Background(), "ghost", []string{"1.3.6.1.2.1.1.3.0"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerGetCancelledContext(t *testing.T) {
	m := NewManager(Config{Timeout: 100 * time.Millisecond, Retries: 1}, logger.NewTestLogger())
	require.NoError(t, m.Open(testDevice("dev-1")))

	defer m.CloseAll()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Get(ctx, "dev-1", []string{"1.3.6.1.2.1.1.3.0"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManagerTestUnsupportedVersion(t *testing.T) {
	m := NewManager(Config{}, logger.NewTestLogger())

	dev := testDevice("dev-1")
	dev.Version = 9

	result := m.Test(context.Background(), dev, []string{"1.3.6.1.2.1.1.3.0"})

	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "unsupported snmp version")
}
