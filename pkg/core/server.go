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

// Package core assembles the monitoring core: storage, MIB mapper, SNMP
// sessions, poll scheduler, trap receiver and the optional event stream.
// Construction order is storage first, then the scheduler reload, then the
// trap receiver; teardown runs in reverse.
package core

import (
	"context"
	"fmt"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/config"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/db"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/events"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/lifecycle"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/metrics"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/mib"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/poller"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/snmp"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/traps"
)

// Server owns the long-lived collaborators of the monitoring core and
// hands them to the REST layer. It implements lifecycle.Service.
type Server struct {
	Config    *config.Config
	Store     db.Service
	MIB       *mib.Mapper
	Sessions  *snmp.Manager
	Rings     *metrics.RingSet
	Scheduler *poller.Scheduler
	Receiver  *traps.Receiver
	Events    events.Publisher

	logger logger.Logger
}

var _ lifecycle.Service = (*Server)(nil)

// NewServer dials storage, bootstraps the schema, loads the MIB mapper,
// wires the scheduler and trap receiver, and primes the device table from
// the store. Any error here is fatal to startup.
func NewServer(ctx context.Context, cfg *config.Config, log logger.Logger) (*Server, error) {
	storeLog, err := lifecycle.CreateComponentLogger("db", cfg.Logging)
	if err != nil {
		return nil, err
	}

	store, err := db.New(ctx, db.Config{DSN: cfg.DatabaseURL}, storeLog)
	if err != nil {
		return nil, fmt.Errorf("storage unreachable: %w", err)
	}

	mapper := mib.Load(cfg.MIBFiles, log)

	publisher, err := newPublisher(cfg, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	sessionLog, err := lifecycle.CreateComponentLogger("snmp", cfg.Logging)
	if err != nil {
		store.Close()
		return nil, err
	}

	sessions := snmp.NewManager(snmp.Config{
		Timeout: cfg.SNMP.Timeout.Duration(),
		Retries: cfg.SNMP.Retries,
	}, sessionLog)

	rings := metrics.NewRingSet(0, 0)

	pollerLog, err := lifecycle.CreateComponentLogger("poller", cfg.Logging)
	if err != nil {
		store.Close()
		return nil, err
	}

	scheduler, err := poller.NewScheduler(store, sessions, rings, publisher, nil, pollerLog)
	if err != nil {
		store.Close()
		return nil, err
	}

	if err := scheduler.ReloadFromStore(ctx); err != nil {
		store.Close()
		return nil, err
	}

	trapLog, err := lifecycle.CreateComponentLogger("traps", cfg.Logging)
	if err != nil {
		store.Close()
		return nil, err
	}

	receiver, err := traps.NewReceiver(traps.Config{
		Port:              cfg.Traps.Port,
		FallbackPort:      cfg.Traps.FallbackPort,
		RequirePrivileged: cfg.Traps.RequirePrivileged,
		AutoFallback:      cfg.Traps.AutoFallback,
	}, store, publisher, trapLog)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Server{
		Config:    cfg,
		Store:     store,
		MIB:       mapper,
		Sessions:  sessions,
		Rings:     rings,
		Scheduler: scheduler,
		Receiver:  receiver,
		Events:    publisher,
		logger:    log,
	}, nil
}

func newPublisher(cfg *config.Config, log logger.Logger) (events.Publisher, error) {
	if cfg.NATS.URL == "" {
		return events.NoopPublisher{}, nil
	}

	eventsLog, err := lifecycle.CreateComponentLogger("events", cfg.Logging)
	if err != nil {
		return nil, err
	}

	return events.NewNATSPublisher(events.Config{
		URL:           cfg.NATS.URL,
		CredsFile:     cfg.NATS.CredsFile,
		SubjectPrefix: cfg.NATS.SubjectPrefix,
	}, eventsLog)
}

// Start begins polling and binds the trap listener. A trap bind failure
// (including a refused fallback) aborts startup.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Scheduler.Start(); err != nil {
		return err
	}

	if err := s.Receiver.Start(ctx); err != nil {
		s.Scheduler.Stop()
		return err
	}

	s.logger.Info().
		Int("devices", s.Scheduler.DeviceCount()).
		Msg("Monitoring core started")

	return nil
}

// Stop unwinds in reverse construction order: trap receiver, scheduler,
// event stream, storage.
func (s *Server) Stop(ctx context.Context) error {
	err := s.Receiver.Stop(ctx)

	s.Scheduler.Stop()
	s.Events.Close()
	s.Store.Close()

	s.logger.Info().Msg("Monitoring core stopped")

	return err
}
