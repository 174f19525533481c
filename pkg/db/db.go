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

// Package db implements the persistence store over Postgres/TimescaleDB
// using pgx. It owns schema bootstrap and all reads and writes for sites,
// transmitters, metric time-series, and traps.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
)

// Config tunes the connection pool. DSN is the Postgres connection string
// from DATABASE_URL.
type Config struct {
	DSN               string        `json:"dsn"`
	MaxConns          int32         `json:"max_conns"`
	MinConns          int32         `json:"min_conns"`
	HealthCheckPeriod time.Duration `json:"health_check_period"`
}

// Store is the pgx-backed Service implementation.
type Store struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

// package-level clock hook so tests can pin row timestamps.
var nowUTC = func() time.Time {
	return time.Now().UTC()
}

// New dials the database, verifies connectivity, and bootstraps the schema.
// Schema failures are fatal: the caller must treat an error here as a
// non-zero exit.
func New(ctx context.Context, cfg Config, log logger.Logger) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}

	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}

	if cfg.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	store := &Store{pool: pool, logger: log}

	if err := store.InitSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info().
		Int32("max_conns", poolConfig.MaxConns).
		Msg("Connected to Postgres/Timescale store")

	return store, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}
