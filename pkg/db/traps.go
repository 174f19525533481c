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
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

const (
	defaultTrapsLatestLimit = 100
	defaultTrapsRangeLimit  = 1000

	trapColumns = `id, transmitter_id, site_id, source_host, source_port, community, version,
		trap_oid, enterprise_oid, varbinds, created_at`

	insertTrapSQL = `INSERT INTO snmp_traps (transmitter_id, site_id, source_host, source_port,
		community, version, trap_oid, enterprise_oid, varbinds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + trapColumns
)

// StoreTrap appends one normalized trap and returns the stored row.
func (s *Store) StoreTrap(ctx context.Context, trap *models.SnmpTrap) (*models.SnmpTrap, error) {
	varbinds, err := json.Marshal(trap.Varbinds)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToInsert, err)
	}

	createdAt := trap.CreatedAt
	if createdAt.IsZero() {
		createdAt = nowUTC()
	}

	row := s.pool.QueryRow(ctx, insertTrapSQL,
		trap.TransmitterID, trap.SiteID, trap.SourceHost, trap.SourcePort,
		trap.Community, trap.Version, trap.TrapOID, trap.EnterpriseOID,
		varbinds, createdAt.UTC())

	stored, err := scanTrap(row)
	if err != nil {
		return nil, classify(fmt.Errorf("%w: %w", ErrFailedToInsert, err))
	}

	return stored, nil
}

// GetLatestTraps returns the newest traps matching the filter.
func (s *Store) GetLatestTraps(ctx context.Context, filter models.TrapFilter, limit int) ([]*models.SnmpTrap, error) {
	if limit <= 0 || limit > defaultTrapsRangeLimit {
		limit = defaultTrapsLatestLimit
	}

	where, args := buildTrapFilter(filter, nil)

	query := `SELECT ` + trapColumns + ` FROM snmp_traps` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	return s.queryTraps(ctx, query, args)
}

// GetTrapsRange returns traps in [start, end] matching the filter, newest
// first.
func (s *Store) GetTrapsRange(ctx context.Context, start, end time.Time, filter models.TrapFilter, limit int) ([]*models.SnmpTrap, error) {
	if limit <= 0 || limit > defaultTrapsRangeLimit {
		limit = defaultTrapsRangeLimit
	}

	args := []interface{}{start.UTC(), end.UTC()}
	where, args := buildTrapFilter(filter, args)

	query := `SELECT ` + trapColumns + ` FROM snmp_traps WHERE created_at >= $1 AND created_at <= $2` +
		strings.Replace(where, " WHERE ", " AND ", 1) +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	return s.queryTraps(ctx, query, args)
}

// buildTrapFilter composes the optional WHERE clause; zero-value filter
// fields are skipped.
func buildTrapFilter(filter models.TrapFilter, args []interface{}) (string, []interface{}) {
	conditions := make([]string, 0, 3)

	if filter.TransmitterID != "" {
		args = append(args, filter.TransmitterID)
		conditions = append(conditions, fmt.Sprintf("transmitter_id = $%d", len(args)))
	}

	if filter.SiteID != "" {
		args = append(args, filter.SiteID)
		conditions = append(conditions, fmt.Sprintf("site_id = $%d", len(args)))
	}

	if filter.SourceHost != "" {
		args = append(args, filter.SourceHost)
		conditions = append(conditions, fmt.Sprintf("source_host = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (s *Store) queryTraps(ctx context.Context, query string, args []interface{}) ([]*models.SnmpTrap, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	traps := make([]*models.SnmpTrap, 0)

	for rows.Next() {
		trap, err := scanTrap(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToScan, err)
		}

		traps = append(traps, trap)
	}

	return traps, rows.Err()
}

func scanTrap(row pgx.Row) (*models.SnmpTrap, error) {
	var (
		trap        models.SnmpTrap
		rawVarbinds []byte
	)

	err := row.Scan(&trap.ID, &trap.TransmitterID, &trap.SiteID,
		&trap.SourceHost, &trap.SourcePort, &trap.Community, &trap.Version,
		&trap.TrapOID, &trap.EnterpriseOID, &rawVarbinds, &trap.CreatedAt)
	if err != nil {
		return nil, err
	}

	if len(rawVarbinds) > 0 {
		if err := json.Unmarshal(rawVarbinds, &trap.Varbinds); err != nil {
			// Varbinds written by older builds may not match the current
			// shape; surface the trap anyway.
			trap.Varbinds = nil
		}
	}

	if trap.Varbinds == nil {
		trap.Varbinds = []models.TrapVarbind{}
	}

	return &trap, nil
}
