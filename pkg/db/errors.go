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
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound maps to pgx.ErrNoRows at the store boundary; the REST
	// layer renders it as 404.
	ErrNotFound = errors.New("record not found")

	// ErrConstraint wraps integrity-constraint violations (Postgres class
	// 23xxx); the REST layer renders it as 400.
	ErrConstraint = errors.New("constraint violation")

	ErrFailedOpenDB    = errors.New("failed to open database")
	ErrFailedToInit    = errors.New("failed to initialize schema")
	ErrFailedToQuery   = errors.New("failed to query database")
	ErrFailedToScan    = errors.New("failed to scan row")
	ErrFailedToInsert  = errors.New("failed to insert row")
	ErrFailedToUpdate  = errors.New("failed to update row")
	ErrFailedToDelete  = errors.New("failed to delete row")
	ErrSiteRequired    = errors.New("transmitter requires a site id")
	ErrInvalidInterval = errors.New("poll interval below minimum")
)

// classify converts driver errors to the store's sentinel taxonomy so
// callers never import pgx to inspect failures.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == "23" {
		return ErrConstraint
	}

	return err
}
