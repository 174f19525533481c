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

//go:generate mockgen -destination=mock_db.go -package=db github.com/batuapi13/fmtxm-13.1.1.7/pkg/db Service

package db

import (
	"context"
	"time"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

// Service is the persistence contract at the edge of the monitoring core.
// The scheduler, trap receiver, and REST layer all speak to storage through
// it; tests substitute the generated mock.
type Service interface {
	InitSchema(ctx context.Context) error

	GetSite(ctx context.Context, id string) (*models.Site, error)
	ListSites(ctx context.Context) ([]*models.Site, error)
	CreateSite(ctx context.Context, site *models.Site) (*models.Site, error)
	UpdateSite(ctx context.Context, id string, patch *models.SitePatch) (*models.Site, error)
	DeleteSite(ctx context.Context, id string) error

	GetTransmitter(ctx context.Context, id string) (*models.Transmitter, error)
	ListTransmitters(ctx context.Context) ([]*models.Transmitter, error)
	UpsertTransmitter(ctx context.Context, patch *models.TransmitterPatch) (*models.Transmitter, error)
	DeleteTransmitter(ctx context.Context, id string) (bool, error)

	StoreMetrics(ctx context.Context, transmitterID string, metric *models.TransmitterMetric, radioName string) error
	GetLatestMetrics(ctx context.Context, transmitterID string) (*models.TransmitterMetric, error)
	GetMetricsRange(ctx context.Context, transmitterID string, start, end time.Time, limit int) ([]*models.TransmitterMetric, error)

	StoreTrap(ctx context.Context, trap *models.SnmpTrap) (*models.SnmpTrap, error)
	GetLatestTraps(ctx context.Context, filter models.TrapFilter, limit int) ([]*models.SnmpTrap, error)
	GetTrapsRange(ctx context.Context, start, end time.Time, filter models.TrapFilter, limit int) ([]*models.SnmpTrap, error)

	Close()
}
