package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMapsNoRowsToNotFound(t *testing.T) {
	err := classify(fmt.Errorf("query transmitter: %w", pgx.ErrNoRows))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClassifyMapsIntegrityViolationsToConstraint(t *testing.T) {
	cases := map[string]string{
		"unique_violation":      "23505",
		"foreign_key_violation": "23503",
		"not_null_violation":    "23502",
		"check_violation":       "23514",
	}

	for name, code := range cases {
		t.Run(name, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: code}
			err := classify(fmt.Errorf("insert site: %w", pgErr))
			assert.ErrorIs(t, err, ErrConstraint)
		})
	}
}

func TestClassifyPassesOtherErrorsThrough(t *testing.T) {
	// Undefined table is an operator problem, not a caller problem.
	pgErr := &pgconn.PgError{Code: "42P01"}
	wrapped := fmt.Errorf("query: %w", pgErr)

	err := classify(wrapped)
	assert.Equal(t, wrapped, err)
	assert.NotErrorIs(t, err, ErrConstraint)

	plain := errors.New("connection reset")
	assert.Equal(t, plain, classify(plain))
}

func TestClassifyNil(t *testing.T) {
	require.NoError(t, classify(nil))
}
