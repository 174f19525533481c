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

// Package app wires the monitoring core and the HTTP API into one process.
package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/config"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/core"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/core/api"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/lifecycle"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
)

// Options contains runtime configuration derived from CLI flags.
type Options struct {
	ConfigPath string
}

// Run boots the monitoring core and the HTTP API using the provided
// options. It blocks until the process receives a shutdown signal.
func Run(ctx context.Context, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	mainLogger, err := lifecycle.CreateComponentLogger("fmtxm", cfg.Logging)
	if err != nil {
		return err
	}

	server, err := core.NewServer(ctx, cfg, mainLogger)
	if err != nil {
		return err
	}

	apiLogger, err := lifecycle.CreateComponentLogger("api", cfg.Logging)
	if err != nil {
		_ = server.Stop(ctx)
		return err
	}

	apiServer := api.NewAPIServer(
		api.WithStore(server.Store),
		api.WithScheduler(server.Scheduler),
		api.WithSessionManager(server.Sessions),
		api.WithReceiver(server.Receiver),
		api.WithMIB(server.MIB),
		api.WithAssetsDir(cfg.AssetsDir),
		api.WithLogger(apiLogger),
	)

	mainLogger.Info().
		Str("swagger_url", "http://"+cfg.ListenAddr+"/swagger/swagger.json").
		Msg("API server will include Swagger documentation")

	return lifecycle.Run(ctx, mainLogger,
		server,
		&apiService{server: apiServer, addr: cfg.ListenAddr, log: apiLogger},
	)
}

// apiService adapts the blocking HTTP listener to the lifecycle contract:
// Start must not block, so the listener runs on its own goroutine and a
// clean close surfaces only through Stop.
type apiService struct {
	server *api.APIServer
	addr   string
	log    logger.Logger
}

func (s *apiService) Start(context.Context) error {
	go func() {
		if err := s.server.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("HTTP API server error")
		}
	}()

	return nil
}

func (s *apiService) Stop(ctx context.Context) error {
	return s.server.Stop(ctx)
}
