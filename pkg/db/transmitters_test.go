package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestApplyDefaultsFillsEmptyPatch(t *testing.T) {
	tx := applyDefaults(&models.TransmitterPatch{SiteID: strPtr("site-1")})

	assert.NotEmpty(t, tx.ID, "insert must generate an id")
	assert.Equal(t, "site-1", tx.SiteID)
	assert.Equal(t, "Transmitter", tx.Name)
	assert.Nil(t, tx.DisplayLabel)
	assert.Equal(t, models.StatusUnknown, tx.Status)
	assert.Equal(t, models.DefaultSNMPPort, tx.SNMPPort)
	assert.Equal(t, models.DefaultCommunity, tx.SNMPCommunity)
	assert.Equal(t, models.SNMPv2c, tx.SNMPVersion)
	assert.Equal(t, []string{}, tx.OIDs)
	assert.Equal(t, models.DefaultPollInterval, tx.PollInterval)
	assert.True(t, tx.IsActive)
}

func TestApplyDefaultsKeepsPatchValues(t *testing.T) {
	oids := []string{"1.3.6.1.4.1.31946.4.2.6.10.1"}
	active := false

	tx := applyDefaults(&models.TransmitterPatch{
		ID:            strPtr("tx-9"),
		SiteID:        strPtr("site-2"),
		Name:          strPtr("BAKUN FM"),
		DisplayLabel:  strPtr("BAKUN 95.8"),
		SNMPHost:      strPtr("10.20.0.9"),
		SNMPPort:      intPtr(1161),
		SNMPCommunity: strPtr("fleet"),
		SNMPVersion:   intPtr(models.SNMPv1),
		OIDs:          &oids,
		PollInterval:  intPtr(5000),
		IsActive:      &active,
	})

	assert.Equal(t, "tx-9", tx.ID)
	assert.Equal(t, "BAKUN FM", tx.Name)
	require.NotNil(t, tx.DisplayLabel)
	assert.Equal(t, "BAKUN 95.8", *tx.DisplayLabel)
	assert.Equal(t, "10.20.0.9", tx.SNMPHost)
	assert.Equal(t, 1161, tx.SNMPPort)
	assert.Equal(t, "fleet", tx.SNMPCommunity)
	assert.Equal(t, models.SNMPv1, tx.SNMPVersion)
	assert.Equal(t, oids, tx.OIDs)
	assert.Equal(t, 5000, tx.PollInterval)
	assert.False(t, tx.IsActive)
}

func TestApplyDefaultsIgnoresEmptyID(t *testing.T) {
	tx := applyDefaults(&models.TransmitterPatch{ID: strPtr("")})
	assert.NotEmpty(t, tx.ID)
}

func TestValidatePatchRejectsShortInterval(t *testing.T) {
	err := validatePatch(&models.TransmitterPatch{PollInterval: intPtr(500)})
	require.ErrorIs(t, err, ErrInvalidInterval)

	err = validatePatch(&models.TransmitterPatch{PollInterval: intPtr(models.MinimumPollInterval)})
	require.NoError(t, err)
}

func TestValidatePatchRejectsBadOIDs(t *testing.T) {
	oids := []string{"1.3.6.1.2.1.1.3.0", "not-an-oid"}

	err := validatePatch(&models.TransmitterPatch{OIDs: &oids})
	require.ErrorIs(t, err, ErrConstraint)
	assert.Contains(t, err.Error(), "not-an-oid")
}

func TestValidOID(t *testing.T) {
	valid := []string{
		"1.3.6.1.2.1.1.3.0",
		".1.3.6.1.4.1.31946.4.2.6.10.1",
		"  1.3.6.1  ",
		"1",
	}
	for _, oid := range valid {
		assert.True(t, validOID(oid), "expected %q to be valid", oid)
	}

	invalid := []string{
		"",
		"   ",
		"1..3.6",
		"1.3.6.",
		"1.3.a.6",
		"sysUpTime.0",
	}
	for _, oid := range invalid {
		assert.False(t, validOID(oid), "expected %q to be invalid", oid)
	}
}
