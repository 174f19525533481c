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

package db

import (
	"context"
	"fmt"
)

// Every statement here is idempotent and additive; InitSchema runs on every
// start, including against databases created by earlier releases that lack
// display columns, the 10s poll default, or the snmp_traps table.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sites (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		address TEXT,
		contact_info JSONB,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS transmitters (
		id TEXT PRIMARY KEY,
		site_id TEXT NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		display_label TEXT,
		display_order INTEGER NOT NULL DEFAULT 0,
		frequency DOUBLE PRECISION NOT NULL DEFAULT 0,
		power DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'unknown',
		snmp_host TEXT NOT NULL DEFAULT '',
		snmp_port INTEGER NOT NULL DEFAULT 161,
		snmp_community TEXT NOT NULL DEFAULT 'public',
		snmp_version INTEGER NOT NULL DEFAULT 1,
		oids JSONB NOT NULL DEFAULT '[]'::jsonb,
		poll_interval INTEGER NOT NULL DEFAULT 10000,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS transmitter_metrics (
		transmitter_id TEXT NOT NULL REFERENCES transmitters(id) ON DELETE CASCADE,
		timestamp TIMESTAMPTZ NOT NULL,
		power_output DOUBLE PRECISION,
		forward_power DOUBLE PRECISION,
		reflected_power DOUBLE PRECISION,
		frequency DOUBLE PRECISION,
		vswr DOUBLE PRECISION,
		temperature DOUBLE PRECISION,
		status TEXT NOT NULL DEFAULT 'unknown',
		raw_data JSONB,
		error_message TEXT,
		PRIMARY KEY (transmitter_id, timestamp)
	)`,

	`CREATE TABLE IF NOT EXISTS alarms (
		id BIGSERIAL PRIMARY KEY,
		transmitter_id TEXT NOT NULL REFERENCES transmitters(id) ON DELETE CASCADE,
		severity TEXT NOT NULL,
		type TEXT NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		acknowledged BOOLEAN NOT NULL DEFAULT FALSE,
		acknowledged_by TEXT,
		acknowledged_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS snmp_traps (
		id BIGSERIAL PRIMARY KEY,
		transmitter_id TEXT REFERENCES transmitters(id) ON DELETE SET NULL,
		site_id TEXT REFERENCES sites(id) ON DELETE SET NULL,
		source_host TEXT NOT NULL,
		source_port INTEGER NOT NULL DEFAULT 0,
		community TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL DEFAULT 1,
		trap_oid TEXT,
		enterprise_oid TEXT,
		varbinds JSONB NOT NULL DEFAULT '[]'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// Additive migrations for databases predating the display columns and
	// the 10s poll default.
	`ALTER TABLE transmitters ADD COLUMN IF NOT EXISTS display_label TEXT`,
	`ALTER TABLE transmitters ADD COLUMN IF NOT EXISTS display_order INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE transmitters ALTER COLUMN poll_interval SET DEFAULT 10000`,
	`UPDATE transmitters SET poll_interval = 10000
		WHERE poll_interval IS NULL OR poll_interval = 30000`,

	`CREATE INDEX IF NOT EXISTS idx_snmp_traps_created_at ON snmp_traps (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_snmp_traps_source_host ON snmp_traps (source_host)`,
	`CREATE INDEX IF NOT EXISTS idx_snmp_traps_transmitter_id ON snmp_traps (transmitter_id)`,
}

const (
	timescaleExtensionQuery = `SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'timescaledb')`

	createHypertableSQL = `SELECT create_hypertable('transmitter_metrics', 'timestamp',
		if_not_exists => TRUE, migrate_data => TRUE)`
)

// InitSchema bootstraps the schema. Safe to call on every start. The
// hypertable conversion is best-effort: plain Postgres deployments run fine
// without the timescaledb extension.
func (s *Store) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToInit, err)
		}
	}

	s.convertHypertable(ctx)

	s.logger.Info().Msg("Schema bootstrap complete")

	return nil
}

func (s *Store) convertHypertable(ctx context.Context) {
	var hasTimescale bool
	if err := s.pool.QueryRow(ctx, timescaleExtensionQuery).Scan(&hasTimescale); err != nil {
		s.logger.Warn().Err(err).Msg("Could not detect timescaledb extension")
		return
	}

	if !hasTimescale {
		s.logger.Debug().Msg("timescaledb extension not installed, keeping plain table")
		return
	}

	if _, err := s.pool.Exec(ctx, createHypertableSQL); err != nil {
		s.logger.Warn().Err(err).Msg("Hypertable conversion failed, keeping plain table")
		return
	}

	s.logger.Info().Msg("transmitter_metrics is a hypertable")
}
