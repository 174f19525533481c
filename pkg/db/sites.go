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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

const (
	siteColumns = `id, name, location, latitude, longitude, address, contact_info, is_active, created_at, updated_at`

	selectSiteSQL  = `SELECT ` + siteColumns + ` FROM sites WHERE id = $1`
	selectSitesSQL = `SELECT ` + siteColumns + ` FROM sites ORDER BY name ASC`

	insertSiteSQL = `INSERT INTO sites (id, name, location, latitude, longitude, address, contact_info, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING ` + siteColumns

	updateSiteSQL = `UPDATE sites SET
		name = COALESCE($2, name),
		location = COALESCE($3, location),
		latitude = COALESCE($4, latitude),
		longitude = COALESCE($5, longitude),
		address = COALESCE($6, address),
		contact_info = COALESCE($7, contact_info),
		is_active = COALESCE($8, is_active),
		updated_at = $9
		WHERE id = $1
		RETURNING ` + siteColumns

	deleteSiteSQL = `DELETE FROM sites WHERE id = $1`
)

// GetSite returns one site with contact info normalized from any legacy
// stored form.
func (s *Store) GetSite(ctx context.Context, id string) (*models.Site, error) {
	row := s.pool.QueryRow(ctx, selectSiteSQL, id)

	site, err := scanSite(row)
	if err != nil {
		return nil, classify(err)
	}

	return site, nil
}

// ListSites returns all sites ordered by name.
func (s *Store) ListSites(ctx context.Context) ([]*models.Site, error) {
	rows, err := s.pool.Query(ctx, selectSitesSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	sites := make([]*models.Site, 0)

	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToScan, err)
		}

		sites = append(sites, site)
	}

	return sites, rows.Err()
}

// CreateSite inserts a new site, generating the identifier when absent.
func (s *Store) CreateSite(ctx context.Context, site *models.Site) (*models.Site, error) {
	if site.ID == "" {
		site.ID = uuid.New().String()
	}

	contact, err := json.Marshal(site.ContactInfo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToInsert, err)
	}

	row := s.pool.QueryRow(ctx, insertSiteSQL,
		site.ID, site.Name, site.Location, site.Latitude, site.Longitude,
		site.Address, contact, site.IsActive, nowUTC())

	created, err := scanSite(row)
	if err != nil {
		return nil, classify(fmt.Errorf("%w: %w", ErrFailedToInsert, err))
	}

	return created, nil
}

// UpdateSite patches a site in place; nil patch fields keep current values.
func (s *Store) UpdateSite(ctx context.Context, id string, patch *models.SitePatch) (*models.Site, error) {
	var contact []byte

	if patch.ContactInfo != nil {
		var err error
		if contact, err = json.Marshal(patch.ContactInfo); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToUpdate, err)
		}
	}

	row := s.pool.QueryRow(ctx, updateSiteSQL,
		id, patch.Name, patch.Location, patch.Latitude, patch.Longitude,
		patch.Address, contact, patch.IsActive, nowUTC())

	site, err := scanSite(row)
	if err != nil {
		return nil, classify(err)
	}

	return site, nil
}

// DeleteSite removes a site; transmitters, their metrics, and alarms go
// with it, and trap references are nulled by the schema.
func (s *Store) DeleteSite(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, deleteSiteSQL, id)
	if err != nil {
		return classify(fmt.Errorf("%w: %w", ErrFailedToDelete, err))
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanSite(row pgx.Row) (*models.Site, error) {
	var (
		site       models.Site
		rawContact []byte
	)

	err := row.Scan(&site.ID, &site.Name, &site.Location, &site.Latitude,
		&site.Longitude, &site.Address, &rawContact, &site.IsActive,
		&site.CreatedAt, &site.UpdatedAt)
	if err != nil {
		return nil, err
	}

	site.ContactInfo = normalizeContact(rawContact)

	return &site, nil
}

// normalizeContact tolerates every historical shape of the contact column:
// a JSONB object, a JSON string wrapping an object, and a bare legacy email
// string stored before the column became structured.
func normalizeContact(raw []byte) models.ContactInfo {
	if len(raw) == 0 {
		return models.ContactInfo{}
	}

	var c models.ContactInfo
	if err := json.Unmarshal(raw, &c); err == nil {
		return c
	}

	return models.ParseContactInfo(string(raw))
}
