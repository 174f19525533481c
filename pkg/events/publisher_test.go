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

package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

type fakeConn struct {
	published map[string][]byte
	pubErr    error
	drained   bool
	closed    bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{published: make(map[string][]byte)}
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.pubErr != nil {
		return f.pubErr
	}

	f.published[subject] = data

	return nil
}

func (f *fakeConn) Drain() error {
	f.drained = true
	return nil
}

func (f *fakeConn) Close() {
	f.closed = true
}

func testPublisher(fc *fakeConn) *NATSPublisher {
	return &NATSPublisher{
		conn:   fc,
		prefix: DefaultSubjectPrefix,
		logger: logger.NewTestLogger(),
	}
}

func TestPublishPollResultSubjectAndPayload(t *testing.T) {
	fc := newFakeConn()
	p := testPublisher(fc)

	result := models.DeviceResult{
		DeviceID:  "tx-1",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Success:   true,
	}

	p.PublishPollResult(result)

	data, ok := fc.published["fmtx.polls.tx-1"]
	require.True(t, ok)

	var decoded models.DeviceResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "tx-1", decoded.DeviceID)
	assert.True(t, decoded.Success)
}

func TestPublishTrapSubject(t *testing.T) {
	fc := newFakeConn()
	p := testPublisher(fc)

	oid := "1.3.6.1.4.1.31946.0.1"

	p.PublishTrap(models.SnmpTrap{SourceHost: "10.0.0.5", TrapOID: &oid})

	data, ok := fc.published["fmtx.traps"]
	require.True(t, ok)

	var decoded models.SnmpTrap
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "10.0.0.5", decoded.SourceHost)
	require.NotNil(t, decoded.TrapOID)
	assert.Equal(t, oid, *decoded.TrapOID)
}

func TestPublishErrorIsDropped(t *testing.T) {
	fc := newFakeConn()
	fc.pubErr = errors.New("broker gone")

	p := testPublisher(fc)

	// Must not panic or propagate.
	p.PublishPollResult(models.DeviceResult{DeviceID: "tx-1"})

	assert.Empty(t, fc.published)
}

func TestCloseDrains(t *testing.T) {
	fc := newFakeConn()
	p := testPublisher(fc)

	p.Close()

	assert.True(t, fc.drained)
	assert.False(t, fc.closed)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{URL: "nats://localhost:4222"}.withDefaults()

	assert.Equal(t, DefaultSubjectPrefix, cfg.SubjectPrefix)
}

func TestSubjects(t *testing.T) {
	assert.Equal(t, "fleet.polls.tx-9", pollSubject("fleet", "tx-9"))
	assert.Equal(t, "fleet.traps", trapSubject("fleet"))
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}

	p.PublishPollResult(models.DeviceResult{})
	p.PublishTrap(models.SnmpTrap{})
	p.Close()
}
