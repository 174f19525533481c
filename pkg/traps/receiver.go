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

// Package traps receives SNMP notifications over UDP, normalizes them into
// uniform trap records, attributes them to configured transmitters by
// source host and appends them to storage. The receiver is a side channel:
// after a successful bind its errors are logged, never propagated.
package traps

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/mattn/go-isatty"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/db"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

const (
	// DefaultPort is the IANA trap port; binding it needs
	// cap_net_bind_service or elevated execution.
	DefaultPort = 162

	// DefaultFallbackPort is the unprivileged port used when the primary
	// bind is refused.
	DefaultFallbackPort = 10162

	defaultHost  = "0.0.0.0"
	storeTimeout = 5 * time.Second
)

// Config controls where the receiver binds and what happens when the
// privileged port is unavailable.
type Config struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	FallbackPort int    `json:"fallback_port"`

	// RequirePrivileged makes a refused primary bind a question for the
	// operator instead of a silent fallback. Without a terminal the
	// refusal is fatal.
	RequirePrivileged bool `json:"require_privileged"`

	// AutoFallback skips the prompt and always retries on the fallback
	// port.
	AutoFallback bool `json:"auto_fallback"`
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = defaultHost
	}

	if c.Port <= 0 {
		c.Port = DefaultPort
	}

	if c.FallbackPort <= 0 {
		c.FallbackPort = DefaultFallbackPort
	}

	return c
}

// EventSink receives normalized traps for the live event stream.
type EventSink interface {
	PublishTrap(trap models.SnmpTrap)
}

// Receiver wraps a gosnmp trap listener with the bind policy and the
// normalize/attribute/store pipeline.
type Receiver struct {
	cfg    Config
	store  db.Service
	events EventSink
	logger logger.Logger

	// confirm asks the operator about falling back; swapped in tests.
	confirm func(primary, fallback int) bool

	mu        sync.Mutex
	running   bool
	listener  *gosnmp.TrapListener
	boundPort int
	baseCtx   context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewReceiver builds a receiver over the given storage. events may be nil
// when no stream is configured.
func NewReceiver(cfg Config, store db.Service, events EventSink, log logger.Logger) (*Receiver, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	return &Receiver{
		cfg:     cfg.withDefaults(),
		store:   store,
		events:  events,
		logger:  log,
		confirm: terminalConfirm,
	}, nil
}

// Start binds the listener and returns once the socket is ready. A refused
// primary bind falls back per policy; a failed fallback surfaces the error
// so startup can abort.
func (r *Receiver) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	err := r.listen(ctx, r.cfg.Port)
	if err == nil {
		return nil
	}

	if !isBindRefusal(err) {
		return err
	}

	if r.cfg.RequirePrivileged && !r.cfg.AutoFallback {
		if !r.confirm(r.cfg.Port, r.cfg.FallbackPort) {
			return err
		}
	}

	r.logger.Warn().
		Int("port", r.cfg.Port).
		Int("fallback_port", r.cfg.FallbackPort).
		Msg("Trap port unavailable; binding the fallback port instead. Grant cap_net_bind_service or run elevated to use the privileged port")

	if ferr := r.listen(ctx, r.cfg.FallbackPort); ferr != nil {
		return ferr
	}

	return nil
}

func (r *Receiver) listen(ctx context.Context, port int) error {
	tl := gosnmp.NewTrapListener()
	tl.Params = &gosnmp.GoSNMP{
		Transport: "udp",
		Version:   gosnmp.Version2c,
		Logger:    gosnmp.NewLogger(wireLogger{r.logger}),
	}
	tl.OnNewTrap = r.handleTrap

	addr := net.JoinHostPort(r.cfg.Host, strconv.Itoa(port))

	done := make(chan struct{})
	errCh := make(chan error, 1)

	go func() {
		defer close(done)

		errCh <- tl.Listen(addr)
	}()

	select {
	case <-tl.Listening():
	case err := <-errCh:
		return fmt.Errorf("%w: %s: %w", ErrBindFailed, addr, err)
	case <-ctx.Done():
		tl.Close()
		return ctx.Err()
	}

	r.mu.Lock()
	r.running = true
	r.listener = tl
	r.boundPort = port
	r.baseCtx, r.cancel = context.WithCancel(context.Background())
	r.done = done
	r.mu.Unlock()

	r.logger.Info().Str("addr", addr).Msg("Trap receiver listening")

	return nil
}

// Stop closes the socket and waits for the listen goroutine to exit or the
// context to give up.
func (r *Receiver) Stop(ctx context.Context) error {
	r.mu.Lock()

	if !r.running {
		r.mu.Unlock()
		return nil
	}

	r.running = false
	tl := r.listener
	done := r.done
	r.listener = nil

	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	if tl != nil {
		tl.Close()
	}

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	r.logger.Info().Msg("Trap receiver stopped")

	return nil
}

// Running reports whether the listener is bound.
func (r *Receiver) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.running
}

// BoundPort reports the port actually bound, which differs from the
// configured one after a fallback.
func (r *Receiver) BoundPort() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.boundPort
}

// handleTrap runs on the listener goroutine for every received
// notification. Failures are logged and the datagram is dropped; nothing
// here may take the process down.
func (r *Receiver) handleTrap(pkt *gosnmp.SnmpPacket, addr *net.UDPAddr) {
	if pkt == nil {
		return
	}

	r.mu.Lock()
	base := r.baseCtx
	r.mu.Unlock()

	if base == nil {
		base = context.Background()
	}

	ctx, cancel := context.WithTimeout(base, storeTimeout)
	defer cancel()

	trap := Normalize(pkt, addr, time.Now().UTC())

	r.attribute(ctx, trap)

	if stored, err := r.store.StoreTrap(ctx, trap); err != nil {
		r.logger.Error().
			Err(err).
			Str("source_host", trap.SourceHost).
			Msg("Failed to store trap")
	} else {
		trap = stored
	}

	if r.events != nil {
		r.events.PublishTrap(*trap)
	}

	r.logger.Debug().
		Str("source_host", trap.SourceHost).
		Int("varbinds", len(trap.Varbinds)).
		Msg("Trap received")
}

// attribute matches the sender against the configured transmitter hosts.
// The transmitter list is display-ordered, so an ambiguous host goes to the
// first configured match. Lookup failures leave the trap unattributed.
func (r *Receiver) attribute(ctx context.Context, trap *models.SnmpTrap) {
	transmitters, err := r.store.ListTransmitters(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Trap attribution lookup failed")
		return
	}

	for _, tx := range transmitters {
		if tx.SNMPHost != trap.SourceHost {
			continue
		}

		id := tx.ID
		trap.TransmitterID = &id

		if tx.SiteID != "" {
			siteID := tx.SiteID
			trap.SiteID = &siteID
		}

		return
	}
}

// isBindRefusal reports whether the bind failed for a reason the fallback
// port can fix: missing privilege for a low port or another process owning
// the address.
func isBindRefusal(err error) bool {
	return errors.Is(err, syscall.EACCES) ||
		errors.Is(err, syscall.EADDRINUSE) ||
		os.IsPermission(err)
}

// terminalConfirm asks the operator whether to fall back. Non-interactive
// runs answer no, so a service manager never lands on the wrong port
// silently.
func terminalConfirm(primary, fallback int) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false
	}

	fmt.Fprintf(os.Stderr, "Cannot bind trap port %d. Fall back to port %d? [y/N]: ", primary, fallback)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// wireLogger bridges zerolog into gosnmp's print-style logger.
type wireLogger struct {
	log logger.Logger
}

func (w wireLogger) Print(v ...interface{}) {
	w.log.Debug().Msg(fmt.Sprint(v...))
}

func (w wireLogger) Printf(format string, v ...interface{}) {
	w.log.Debug().Msgf(format, v...)
}
