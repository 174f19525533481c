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

// Package lifecycle owns process startup and shutdown ordering.
package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Service is a long-lived component started at boot and stopped on
// shutdown. Start must not block; Stop must release resources and return
// once in-flight work has drained.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// CreateComponentLogger builds a logger stamped with a component field.
func CreateComponentLogger(component string, config *logger.Config) (logger.Logger, error) {
	return logger.NewComponent(component, config)
}

// Run starts the services in order and blocks until the context is
// cancelled or SIGINT/SIGTERM arrives, then stops them in reverse order.
// The first Start error aborts the boot and unwinds the already-started
// services.
func Run(ctx context.Context, log logger.Logger, services ...Service) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := make([]Service, 0, len(services))

	for _, svc := range services {
		if err := svc.Start(ctx); err != nil {
			stopAll(log, started)
			return err
		}

		started = append(started, svc)
	}

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	stopAll(log, started)

	return nil
}

func stopAll(log logger.Logger, started []Service) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for i := len(started) - 1; i >= 0; i-- {
		if err := started[i].Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error stopping service")
		}
	}
}
