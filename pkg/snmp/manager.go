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

// Package snmp owns the UDP sessions to the transmitter agents: long-lived
// per-device sessions for polling, one-shot sessions for connectivity tests
// and template walks, and the vendor OID expansion applied before each GET.
package snmp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

const (
	// DefaultTimeout is the per-request UDP timeout.
	DefaultTimeout = 5 * time.Second

	// DefaultRetries is the per-request retransmit count.
	DefaultRetries = 3

	defaultMaxRepetitions = 10
)

// Config carries the session parameters shared by every device session.
type Config struct {
	Timeout time.Duration
	Retries int
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}

	if c.Retries <= 0 {
		c.Retries = DefaultRetries
	}

	return c
}

// TestResult is the outcome of a one-shot connectivity test.
type TestResult struct {
	OK    bool                    `json:"ok"`
	Data  map[string]models.Value `json:"data,omitempty"`
	Error string                  `json:"error,omitempty"`
}

// Manager owns one session per polled device. Per-device call ordering is
// the scheduler's job; the manager only guards its own session table.
type Manager struct {
	mu       sync.Mutex
	cfg      Config
	sessions map[string]*session
	logger   logger.Logger
}

// NewManager builds a session manager with the given session parameters.
func NewManager(cfg Config, log logger.Logger) *Manager {
	return &Manager{
		cfg:      cfg.withDefaults(),
		sessions: make(map[string]*session),
		logger:   log,
	}
}

type session struct {
	device    models.Device
	client    *gosnmp.GoSNMP
	connected bool
}

func newClient(device models.Device, cfg Config) (*gosnmp.GoSNMP, error) {
	port := device.Port
	if port <= 0 {
		port = models.DefaultSNMPPort
	}

	community := device.Community
	if community == "" {
		community = models.DefaultCommunity
	}

	client := &gosnmp.GoSNMP{
		Target:         device.Host,
		Port:           uint16(port),
		Community:      community,
		Timeout:        cfg.Timeout,
		Retries:        cfg.Retries,
		MaxOids:        gosnmp.MaxOids,
		MaxRepetitions: defaultMaxRepetitions,
	}

	switch device.Version {
	case models.SNMPv1:
		client.Version = gosnmp.Version1
	case models.SNMPv2c:
		client.Version = gosnmp.Version2c
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, device.Version)
	}

	return client, nil
}

// Open builds and dials a session for the device, replacing any session
// already registered under the same id. A dial failure leaves the entry in
// place so the next poll can redial.
func (m *Manager) Open(device models.Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[device.ID]; ok {
		existing.close()
		delete(m.sessions, device.ID)
	}

	client, err := newClient(device, m.cfg)
	if err != nil {
		return err
	}

	sess := &session{device: device, client: client}
	m.sessions[device.ID] = sess

	if err := client.Connect(); err != nil {
		m.logger.Warn().
			Err(err).
			Str("device_id", device.ID).
			Str("host", device.Host).
			Msg("SNMP session dial failed, retrying on next poll")

		return fmt.Errorf("%w: %w", ErrConnectFailed, err)
	}

	sess.connected = true

	return nil
}

// Close releases the device's session, if any.
func (m *Manager) Close(deviceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[deviceID]; ok {
		sess.close()
		delete(m.sessions, deviceID)
	}
}

// CloseAll releases every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, sess := range m.sessions {
		sess.close()
		delete(m.sessions, id)
	}
}

// Recycle closes and reopens the device's session. Called when a
// connection-affecting parameter (host, port, community, version) changed.
func (m *Manager) Recycle(device models.Device) error {
	m.Close(device.ID)

	return m.Open(device)
}

// Get performs a GET for the device's session, chunking the OID list to the
// protocol maximum. Varbinds reporting no-such-object, no-such-instance or
// end-of-mib are filtered out so they cannot overwrite resolved siblings.
func (m *Manager) Get(ctx context.Context, deviceID string, oids []string) (map[string]models.Value, error) {
	m.mu.Lock()
	sess, ok := m.sessions[deviceID]
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, deviceID)
	}

	if !sess.connected {
		if err := sess.client.Connect(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConnectFailed, err)
		}

		sess.connected = true
	}

	return getAll(ctx, sess.client, oids)
}

// Walk enumerates the subtree under root with a one-shot session: BulkWalk
// for v2c, plain Walk for v1 agents.
func (m *Manager) Walk(ctx context.Context, device models.Device, root string) ([]models.Varbind, error) {
	client, err := newClient(device, m.cfg)
	if err != nil {
		return nil, err
	}

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWalkFailed, err)
	}
	defer closeConn(client, m.logger)

	var varbinds []models.Varbind

	handler := func(pdu gosnmp.SnmpPDU) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if isMissingObject(pdu.Type) {
			return nil
		}

		varbinds = append(varbinds, models.Varbind{
			OID:   NormalizeOID(pdu.Name),
			Type:  TypeName(pdu.Type),
			Value: ConvertPDU(pdu),
		})

		return nil
	}

	if client.Version == gosnmp.Version1 {
		err = client.Walk(root, handler)
	} else {
		err = client.BulkWalk(root, handler)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWalkFailed, err)
	}

	return varbinds, nil
}

// Test runs a one-shot open, GET, close cycle against the device.
func (m *Manager) Test(ctx context.Context, device models.Device, oids []string) TestResult {
	client, err := newClient(device, m.cfg)
	if err != nil {
		return TestResult{Error: err.Error()}
	}

	if err := client.Connect(); err != nil {
		return TestResult{Error: fmt.Errorf("%w: %w", ErrConnectFailed, err).Error()}
	}
	defer closeConn(client, m.logger)

	data, err := getAll(ctx, client, oids)
	if err != nil {
		return TestResult{Error: err.Error()}
	}

	return TestResult{OK: true, Data: data}
}

func getAll(ctx context.Context, client *gosnmp.GoSNMP, oids []string) (map[string]models.Value, error) {
	out := make(map[string]models.Value, len(oids))

	for start := 0; start < len(oids); start += gosnmp.MaxOids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+gosnmp.MaxOids, len(oids))

		packet, err := client.Get(oids[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGetFailed, err)
		}

		if packet.Error != gosnmp.NoError {
			return nil, fmt.Errorf("%w: %s", ErrAgentError, packet.Error)
		}

		for _, pdu := range packet.Variables {
			if isMissingObject(pdu.Type) {
				continue
			}

			out[NormalizeOID(pdu.Name)] = ConvertPDU(pdu)
		}
	}

	return out, nil
}

func (s *session) close() {
	if s.client != nil && s.client.Conn != nil {
		_ = s.client.Conn.Close()
	}

	s.connected = false
}

func closeConn(client *gosnmp.GoSNMP, log logger.Logger) {
	if client.Conn == nil {
		return
	}

	if err := client.Conn.Close(); err != nil {
		log.Debug().Err(err).Msg("Failed to close SNMP connection")
	}
}

func isMissingObject(t gosnmp.Asn1BER) bool {
	return t == gosnmp.NoSuchObject || t == gosnmp.NoSuchInstance || t == gosnmp.EndOfMibView
}
