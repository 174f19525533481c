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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearLoaderEnv blanks every variable Load reads so the host environment
// cannot leak into a test. An empty value is treated as unset by applyEnv.
func clearLoaderEnv(t *testing.T) {
	t.Helper()

	keys := []string{
		"DATABASE_URL", "PORT",
		"SNMP_TRAP_PORT", "TRAP_PORT", "SNMP_TRAP_FALLBACK_PORT",
		"SNMP_TRAP_REQUIRE_PRIVILEGED", "SNMP_TRAP_AUTO_FALLBACK",
		"NATS_URL", "LOG_LEVEL",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fmtxm.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	clearLoaderEnv(t)
	t.Setenv("DATABASE_URL", "postgres://fmtxm@localhost/fmtxm")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://fmtxm@localhost/fmtxm", cfg.DatabaseURL)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, "attached_assets", cfg.AssetsDir)
	assert.Equal(t, 5*time.Second, cfg.SNMP.Timeout.Duration())
	assert.Equal(t, 3, cfg.SNMP.Retries)
	assert.Equal(t, 162, cfg.Traps.Port)
	assert.Equal(t, 10162, cfg.Traps.FallbackPort)
	assert.True(t, cfg.Traps.RequirePrivileged)
	assert.False(t, cfg.Traps.AutoFallback)
	assert.Equal(t, "fmtx", cfg.NATS.SubjectPrefix)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	clearLoaderEnv(t)

	_, err := Load("")
	require.ErrorIs(t, err, errDatabaseURLRequired)
}

func TestLoadParsesFile(t *testing.T) {
	clearLoaderEnv(t)

	path := writeConfigFile(t, `{
		"database_url": "postgres://file@db/fleet",
		"listen_addr": ":8080",
		"assets_dir": "/var/lib/fmtxm/assets",
		"mib_files": ["mibs/ETG-MIB.txt"],
		"snmp": {"timeout": "2s", "retries": 1},
		"traps": {"port": 10162, "require_privileged": false},
		"nats": {"url": "nats://localhost:4222", "subject_prefix": "bakun"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://file@db/fleet", cfg.DatabaseURL)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "/var/lib/fmtxm/assets", cfg.AssetsDir)
	assert.Equal(t, []string{"mibs/ETG-MIB.txt"}, cfg.MIBFiles)
	assert.Equal(t, 2*time.Second, cfg.SNMP.Timeout.Duration())
	assert.Equal(t, 1, cfg.SNMP.Retries)
	assert.Equal(t, 10162, cfg.Traps.Port)
	assert.False(t, cfg.Traps.RequirePrivileged)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, "bakun", cfg.NATS.SubjectPrefix)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearLoaderEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env@db/fleet")

	path := writeConfigFile(t, `{"listen_addr": `)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadEnvironmentWinsOverFile(t *testing.T) {
	clearLoaderEnv(t)

	path := writeConfigFile(t, `{
		"database_url": "postgres://file@db/fleet",
		"listen_addr": ":8080",
		"traps": {"port": 1162}
	}`)

	t.Setenv("DATABASE_URL", "postgres://env@db/fleet")
	t.Setenv("PORT", "9000")
	t.Setenv("SNMP_TRAP_PORT", "10262")
	t.Setenv("NATS_URL", "nats://broker:4222")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env@db/fleet", cfg.DatabaseURL)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, 10262, cfg.Traps.Port)
	assert.Equal(t, "nats://broker:4222", cfg.NATS.URL)
}

func TestLoadTrapPortEnvPrecedence(t *testing.T) {
	clearLoaderEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env@db/fleet")
	t.Setenv("SNMP_TRAP_PORT", "10262")
	t.Setenv("TRAP_PORT", "999")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10262, cfg.Traps.Port, "SNMP_TRAP_PORT outranks legacy TRAP_PORT")
}

func TestLoadLegacyTrapPortVariable(t *testing.T) {
	clearLoaderEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env@db/fleet")
	t.Setenv("TRAP_PORT", "999")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 999, cfg.Traps.Port)
}

func TestLoadBoolEnvOverrides(t *testing.T) {
	clearLoaderEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env@db/fleet")
	t.Setenv("SNMP_TRAP_REQUIRE_PRIVILEGED", "false")
	t.Setenv("SNMP_TRAP_AUTO_FALLBACK", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Traps.RequirePrivileged)
	assert.True(t, cfg.Traps.AutoFallback)
}

func TestLoadBoolEnvGarbageKeepsDefault(t *testing.T) {
	clearLoaderEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env@db/fleet")
	t.Setenv("SNMP_TRAP_REQUIRE_PRIVILEGED", "not-a-bool")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Traps.RequirePrivileged)
}

func TestLoadLogLevelCreatesLoggingSection(t *testing.T) {
	clearLoaderEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env@db/fleet")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadNumericDurationForm(t *testing.T) {
	clearLoaderEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env@db/fleet")

	path := writeConfigFile(t, `{"snmp": {"timeout": 1500000000}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.SNMP.Timeout.Duration())
}
