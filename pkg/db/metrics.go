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
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

const (
	defaultMetricsRangeLimit = 1000

	metricColumns = `transmitter_id, timestamp, power_output, forward_power, reflected_power,
		frequency, vswr, temperature, status, raw_data, error_message`

	selectTransmitterNameSQL = `SELECT name FROM transmitters WHERE id = $1`

	updateTransmitterNameSQL = `UPDATE transmitters SET name = $2, updated_at = $3 WHERE id = $1`

	insertMetricSQL = `INSERT INTO transmitter_metrics (transmitter_id, timestamp, power_output,
		forward_power, reflected_power, frequency, vswr, temperature, status, raw_data, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (transmitter_id, timestamp) DO NOTHING`

	selectLatestMetricSQL = `SELECT ` + metricColumns + ` FROM transmitter_metrics
		WHERE transmitter_id = $1 ORDER BY timestamp DESC LIMIT 1`

	selectMetricsRangeSQL = `SELECT ` + metricColumns + ` FROM transmitter_metrics
		WHERE transmitter_id = $1 AND timestamp >= $2 AND timestamp <= $3
		ORDER BY timestamp DESC LIMIT $4`
)

// StoreMetrics appends one observation row. A transmitter deleted between
// the poll and the write is a silent no-op, never an error: configuration
// races must not surface on the polling path. When the poll carried a
// radio-name differing from the stored name, both writes go in one batch.
func (s *Store) StoreMetrics(ctx context.Context, transmitterID string, metric *models.TransmitterMetric, radioName string) (err error) {
	var currentName string

	if scanErr := s.pool.QueryRow(ctx, selectTransmitterNameSQL, transmitterID).Scan(&currentName); scanErr != nil {
		if errors.Is(scanErr, pgx.ErrNoRows) {
			s.logger.Debug().
				Str("transmitter_id", transmitterID).
				Msg("Skipping metric write for unknown transmitter")

			return nil
		}

		return fmt.Errorf("%w: %w", ErrFailedToQuery, scanErr)
	}

	batch := &pgx.Batch{}

	if radioName != "" && radioName != currentName {
		batch.Queue(updateTransmitterNameSQL, transmitterID, radioName, nowUTC())

		s.logger.Info().
			Str("transmitter_id", transmitterID).
			Str("radio_name", radioName).
			Msg("Updating transmitter name from radio")
	}

	batch.Queue(insertMetricSQL,
		transmitterID, metric.Timestamp.UTC(), metric.PowerOutput,
		metric.ForwardPower, metric.ReflectedPower, metric.Frequency,
		metric.VSWR, metric.Temperature, metric.Status,
		[]byte(metric.RawData), metric.ErrorMessage)

	br := s.pool.SendBatch(ctx, batch)

	defer func() {
		if closeErr := br.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrFailedToInsert, closeErr)
		}
	}()

	for i := 0; i < batch.Len(); i++ {
		if _, execErr := br.Exec(); execErr != nil {
			return fmt.Errorf("%w: %w", ErrFailedToInsert, execErr)
		}
	}

	return nil
}

// GetLatestMetrics returns the newest row for a transmitter.
func (s *Store) GetLatestMetrics(ctx context.Context, transmitterID string) (*models.TransmitterMetric, error) {
	row := s.pool.QueryRow(ctx, selectLatestMetricSQL, transmitterID)

	metric, err := scanMetric(row)
	if err != nil {
		return nil, classify(err)
	}

	return metric, nil
}

// GetMetricsRange returns rows in [start, end], newest first.
func (s *Store) GetMetricsRange(ctx context.Context, transmitterID string, start, end time.Time, limit int) ([]*models.TransmitterMetric, error) {
	if limit <= 0 || limit > defaultMetricsRangeLimit {
		limit = defaultMetricsRangeLimit
	}

	rows, err := s.pool.Query(ctx, selectMetricsRangeSQL, transmitterID, start.UTC(), end.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	metrics := make([]*models.TransmitterMetric, 0)

	for rows.Next() {
		metric, err := scanMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToScan, err)
		}

		metrics = append(metrics, metric)
	}

	return metrics, rows.Err()
}

func scanMetric(row pgx.Row) (*models.TransmitterMetric, error) {
	var (
		m       models.TransmitterMetric
		rawData []byte
	)

	err := row.Scan(&m.TransmitterID, &m.Timestamp, &m.PowerOutput,
		&m.ForwardPower, &m.ReflectedPower, &m.Frequency, &m.VSWR,
		&m.Temperature, &m.Status, &rawData, &m.ErrorMessage)
	if err != nil {
		return nil, err
	}

	if len(rawData) > 0 {
		m.RawData = rawData
	}

	return &m, nil
}
