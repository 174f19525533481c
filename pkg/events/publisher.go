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

// Package events streams poll results and traps to NATS for downstream
// consumers. Publishing is fire-and-forget: a failed or unconfigured stream
// never affects the polling or trap paths.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

const (
	// DefaultSubjectPrefix roots every published subject.
	DefaultSubjectPrefix = "fmtx"

	reconnectWait = 2 * time.Second
)

// Config selects the NATS endpoint. An empty URL means no stream; callers
// use the noop publisher instead.
type Config struct {
	URL           string `json:"url"`
	CredsFile     string `json:"creds_file"`
	SubjectPrefix string `json:"subject_prefix"`
}

func (c Config) withDefaults() Config {
	if c.SubjectPrefix == "" {
		c.SubjectPrefix = DefaultSubjectPrefix
	}

	return c
}

// Publisher fans monitoring events out to the stream.
type Publisher interface {
	PublishPollResult(result models.DeviceResult)
	PublishTrap(trap models.SnmpTrap)
	Close()
}

// conn is the slice of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
	Close()
}

// NATSPublisher publishes JSON payloads to per-device poll subjects and a
// shared trap subject.
type NATSPublisher struct {
	conn   conn
	prefix string
	logger logger.Logger
}

var _ Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher connects to NATS and keeps reconnecting forever; the
// monitoring core outlives broker restarts.
func NewNATSPublisher(cfg Config, log logger.Logger) (*NATSPublisher, error) {
	cfg = cfg.withDefaults()

	opts := []nats.Option{
		nats.Name("fmtxm"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	if cfg.CredsFile != "" {
		opts = append(opts, nats.UserCredentials(cfg.CredsFile))
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{
		conn:   nc,
		prefix: cfg.SubjectPrefix,
		logger: log,
	}, nil
}

// PublishPollResult emits one poll result on the device's subject.
func (p *NATSPublisher) PublishPollResult(result models.DeviceResult) {
	p.publish(pollSubject(p.prefix, result.DeviceID), result)
}

// PublishTrap emits one normalized trap on the shared trap subject.
func (p *NATSPublisher) PublishTrap(trap models.SnmpTrap) {
	p.publish(trapSubject(p.prefix), trap)
}

func (p *NATSPublisher) publish(subject string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("Failed to encode event")
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("Failed to publish event")
	}
}

// Close drains the connection so buffered events flush before shutdown.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn().Err(err).Msg("NATS drain failed")
		p.conn.Close()
	}
}

func pollSubject(prefix, deviceID string) string {
	return fmt.Sprintf("%s.polls.%s", prefix, deviceID)
}

func trapSubject(prefix string) string {
	return fmt.Sprintf("%s.traps", prefix)
}

// NoopPublisher drops everything. It stands in when no NATS URL is
// configured.
type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

func (NoopPublisher) PublishPollResult(models.DeviceResult) {}

func (NoopPublisher) PublishTrap(models.SnmpTrap) {}

func (NoopPublisher) Close() {}
