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
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

const (
	transmitterColumns = `id, site_id, name, display_label, display_order, frequency, power, status,
		snmp_host, snmp_port, snmp_community, snmp_version, oids, poll_interval, is_active,
		created_at, updated_at`

	selectTransmitterSQL = `SELECT ` + transmitterColumns + ` FROM transmitters WHERE id = $1`

	selectTransmittersSQL = `SELECT ` + transmitterColumns + ` FROM transmitters
		ORDER BY display_order ASC, created_at ASC`

	insertTransmitterSQL = `INSERT INTO transmitters (id, site_id, name, display_label, display_order,
		frequency, power, status, snmp_host, snmp_port, snmp_community, snmp_version, oids,
		poll_interval, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
		RETURNING ` + transmitterColumns

	updateTransmitterSQL = `UPDATE transmitters SET
		site_id = COALESCE($2, site_id),
		name = COALESCE($3, name),
		display_label = COALESCE($4, display_label),
		display_order = COALESCE($5, display_order),
		frequency = COALESCE($6, frequency),
		power = COALESCE($7, power),
		status = COALESCE($8, status),
		snmp_host = COALESCE($9, snmp_host),
		snmp_port = COALESCE($10, snmp_port),
		snmp_community = COALESCE($11, snmp_community),
		snmp_version = COALESCE($12, snmp_version),
		oids = COALESCE($13, oids),
		poll_interval = COALESCE($14, poll_interval),
		is_active = COALESCE($15, is_active),
		updated_at = $16
		WHERE id = $1
		RETURNING ` + transmitterColumns

	deleteTransmitterSQL = `DELETE FROM transmitters WHERE id = $1`
)

// GetTransmitter returns one transmitter by id.
func (s *Store) GetTransmitter(ctx context.Context, id string) (*models.Transmitter, error) {
	row := s.pool.QueryRow(ctx, selectTransmitterSQL, id)

	tx, err := scanTransmitter(row)
	if err != nil {
		return nil, classify(err)
	}

	return tx, nil
}

// ListTransmitters returns the fleet ordered by display_order.
func (s *Store) ListTransmitters(ctx context.Context) ([]*models.Transmitter, error) {
	rows, err := s.pool.Query(ctx, selectTransmittersSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	transmitters := make([]*models.Transmitter, 0)

	for rows.Next() {
		tx, err := scanTransmitter(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToScan, err)
		}

		transmitters = append(transmitters, tx)
	}

	return transmitters, rows.Err()
}

// UpsertTransmitter inserts when the id is absent or unknown and patches
// otherwise. It returns the full stored record either way.
func (s *Store) UpsertTransmitter(ctx context.Context, patch *models.TransmitterPatch) (*models.Transmitter, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	if patch.ID != nil && *patch.ID != "" {
		tx, err := s.patchTransmitter(ctx, *patch.ID, patch)
		if err == nil {
			return tx, nil
		}

		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		// Unknown id falls through to insert, keeping the caller's id.
	}

	return s.insertTransmitter(ctx, patch)
}

// DeleteTransmitter removes a transmitter and reports whether a row
// actually went away. Metrics and alarms cascade; trap references null out.
func (s *Store) DeleteTransmitter(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, deleteTransmitterSQL, id)
	if err != nil {
		return false, classify(fmt.Errorf("%w: %w", ErrFailedToDelete, err))
	}

	return tag.RowsAffected() > 0, nil
}

func (s *Store) insertTransmitter(ctx context.Context, patch *models.TransmitterPatch) (*models.Transmitter, error) {
	tx := applyDefaults(patch)

	if tx.SiteID == "" {
		return nil, ErrSiteRequired
	}

	oids, err := json.Marshal(tx.OIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToInsert, err)
	}

	row := s.pool.QueryRow(ctx, insertTransmitterSQL,
		tx.ID, tx.SiteID, tx.Name, tx.DisplayLabel, tx.DisplayOrder,
		tx.Frequency, tx.Power, tx.Status, tx.SNMPHost, tx.SNMPPort,
		tx.SNMPCommunity, tx.SNMPVersion, oids, tx.PollInterval,
		tx.IsActive, nowUTC())

	created, err := scanTransmitter(row)
	if err != nil {
		return nil, classify(fmt.Errorf("%w: %w", ErrFailedToInsert, err))
	}

	return created, nil
}

func (s *Store) patchTransmitter(ctx context.Context, id string, patch *models.TransmitterPatch) (*models.Transmitter, error) {
	var oids []byte

	if patch.OIDs != nil {
		var err error
		if oids, err = json.Marshal(*patch.OIDs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToUpdate, err)
		}
	}

	row := s.pool.QueryRow(ctx, updateTransmitterSQL,
		id, patch.SiteID, patch.Name, patch.DisplayLabel, patch.DisplayOrder,
		patch.Frequency, patch.Power, patch.Status, patch.SNMPHost,
		patch.SNMPPort, patch.SNMPCommunity, patch.SNMPVersion, oids,
		patch.PollInterval, patch.IsActive, nowUTC())

	tx, err := scanTransmitter(row)
	if err != nil {
		return nil, classify(err)
	}

	return tx, nil
}

func validatePatch(patch *models.TransmitterPatch) error {
	if patch.PollInterval != nil && *patch.PollInterval < models.MinimumPollInterval {
		return ErrInvalidInterval
	}

	if patch.OIDs != nil {
		for _, oid := range *patch.OIDs {
			if !validOID(oid) {
				return fmt.Errorf("%w: invalid oid %q", ErrConstraint, oid)
			}
		}
	}

	return nil
}

// validOID accepts dotted-decimal strings such as "1.3.6.1.2.1.1.3.0",
// with or without a leading dot.
func validOID(oid string) bool {
	oid = strings.TrimPrefix(strings.TrimSpace(oid), ".")
	if oid == "" {
		return false
	}

	for _, part := range strings.Split(oid, ".") {
		if part == "" {
			return false
		}

		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}

	return true
}

func applyDefaults(patch *models.TransmitterPatch) *models.Transmitter {
	tx := &models.Transmitter{
		ID:            uuid.New().String(),
		Name:          "Transmitter",
		Status:        models.StatusUnknown,
		SNMPPort:      models.DefaultSNMPPort,
		SNMPCommunity: models.DefaultCommunity,
		SNMPVersion:   models.SNMPv2c,
		OIDs:          []string{},
		PollInterval:  models.DefaultPollInterval,
		IsActive:      true,
	}

	if patch.ID != nil && *patch.ID != "" {
		tx.ID = *patch.ID
	}

	if patch.SiteID != nil {
		tx.SiteID = *patch.SiteID
	}

	if patch.Name != nil {
		tx.Name = *patch.Name
	}

	tx.DisplayLabel = patch.DisplayLabel

	if patch.DisplayOrder != nil {
		tx.DisplayOrder = *patch.DisplayOrder
	}

	if patch.Frequency != nil {
		tx.Frequency = *patch.Frequency
	}

	if patch.Power != nil {
		tx.Power = *patch.Power
	}

	if patch.Status != nil {
		tx.Status = *patch.Status
	}

	if patch.SNMPHost != nil {
		tx.SNMPHost = *patch.SNMPHost
	}

	if patch.SNMPPort != nil {
		tx.SNMPPort = *patch.SNMPPort
	}

	if patch.SNMPCommunity != nil {
		tx.SNMPCommunity = *patch.SNMPCommunity
	}

	if patch.SNMPVersion != nil {
		tx.SNMPVersion = *patch.SNMPVersion
	}

	if patch.OIDs != nil {
		tx.OIDs = *patch.OIDs
	}

	if patch.PollInterval != nil {
		tx.PollInterval = *patch.PollInterval
	}

	if patch.IsActive != nil {
		tx.IsActive = *patch.IsActive
	}

	return tx
}

func scanTransmitter(row pgx.Row) (*models.Transmitter, error) {
	var (
		tx      models.Transmitter
		rawOIDs []byte
	)

	err := row.Scan(&tx.ID, &tx.SiteID, &tx.Name, &tx.DisplayLabel,
		&tx.DisplayOrder, &tx.Frequency, &tx.Power, &tx.Status,
		&tx.SNMPHost, &tx.SNMPPort, &tx.SNMPCommunity, &tx.SNMPVersion,
		&rawOIDs, &tx.PollInterval, &tx.IsActive, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(rawOIDs) > 0 {
		if err := json.Unmarshal(rawOIDs, &tx.OIDs); err != nil {
			return nil, fmt.Errorf("%w: oids column: %w", ErrFailedToScan, err)
		}
	}

	if tx.OIDs == nil {
		tx.OIDs = []string{}
	}

	return &tx, nil
}
