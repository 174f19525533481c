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

// Package config loads the service configuration from an optional JSON
// file and applies environment overrides on top. The environment always
// wins so containerized deployments can run without a config file at all.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/logger"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

var errDatabaseURLRequired = errors.New("DATABASE_URL is required")

const (
	defaultHTTPPort         = 5000
	defaultTrapPort         = 162
	defaultTrapFallbackPort = 10162
	defaultAssetsDir        = "attached_assets"
	defaultSubjectPrefix    = "fmtx"
	defaultSNMPTimeout      = 5 * time.Second
	defaultSNMPRetries      = 3
)

// SNMPConfig tunes the shared session parameters applied to every device.
type SNMPConfig struct {
	Timeout models.Duration `json:"timeout"`
	Retries int             `json:"retries"`
}

// TrapConfig controls the trap receiver bind policy.
type TrapConfig struct {
	Port              int  `json:"port"`
	FallbackPort      int  `json:"fallback_port"`
	RequirePrivileged bool `json:"require_privileged"`
	AutoFallback      bool `json:"auto_fallback"`
}

// NATSConfig enables the optional event publisher when URL is set.
type NATSConfig struct {
	URL           string `json:"url"`
	CredsFile     string `json:"creds_file"`
	SubjectPrefix string `json:"subject_prefix"`
}

// Config is the full service configuration.
type Config struct {
	DatabaseURL string         `json:"database_url"`
	ListenAddr  string         `json:"listen_addr"`
	AssetsDir   string         `json:"assets_dir"`
	MIBFiles    []string       `json:"mib_files"`
	SNMP        SNMPConfig     `json:"snmp"`
	Traps       TrapConfig     `json:"traps"`
	NATS        NATSConfig     `json:"nats"`
	Logging     *logger.Config `json:"logging"`
}

// Load reads the JSON file at path (missing file is fine), layers the
// environment on top, fills defaults, and validates.
func Load(path string) (*Config, error) {
	cfg := &Config{
		AssetsDir: defaultAssetsDir,
		SNMP: SNMPConfig{
			Timeout: models.Duration(defaultSNMPTimeout),
			Retries: defaultSNMPRetries,
		},
		Traps: TrapConfig{
			Port:              defaultTrapPort,
			FallbackPort:      defaultTrapFallbackPort,
			RequirePrivileged: true,
		},
		NATS: NATSConfig{SubjectPrefix: defaultSubjectPrefix},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Environment-only deployment.
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.fillDefaults()

	if cfg.DatabaseURL == "" {
		return nil, errDatabaseURLRequired
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.ListenAddr = fmt.Sprintf(":%d", port)
		}
	}

	if port, ok := envInt("SNMP_TRAP_PORT"); ok {
		c.Traps.Port = port
	} else if port, ok := envInt("TRAP_PORT"); ok {
		c.Traps.Port = port
	}

	if port, ok := envInt("SNMP_TRAP_FALLBACK_PORT"); ok {
		c.Traps.FallbackPort = port
	}

	c.Traps.RequirePrivileged = parseEnvBool("SNMP_TRAP_REQUIRE_PRIVILEGED", c.Traps.RequirePrivileged)
	c.Traps.AutoFallback = parseEnvBool("SNMP_TRAP_AUTO_FALLBACK", c.Traps.AutoFallback)

	if v := os.Getenv("NATS_URL"); v != "" {
		c.NATS.URL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if c.Logging == nil {
			c.Logging = logger.DefaultConfig()
		}

		c.Logging.Level = v
	}
}

func (c *Config) fillDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = fmt.Sprintf(":%d", defaultHTTPPort)
	}

	if c.AssetsDir == "" {
		c.AssetsDir = defaultAssetsDir
	}

	if c.SNMP.Timeout <= 0 {
		c.SNMP.Timeout = models.Duration(defaultSNMPTimeout)
	}

	if c.SNMP.Retries <= 0 {
		c.SNMP.Retries = defaultSNMPRetries
	}

	if c.Traps.Port <= 0 {
		c.Traps.Port = defaultTrapPort
	}

	if c.Traps.FallbackPort <= 0 {
		c.Traps.FallbackPort = defaultTrapFallbackPort
	}

	if c.NATS.SubjectPrefix == "" {
		c.NATS.SubjectPrefix = defaultSubjectPrefix
	}

	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
	}
}

func envInt(key string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return v, true
}

func parseEnvBool(key string, defaultVal bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultVal
	}

	if val, err := strconv.ParseBool(raw); err == nil {
		return val
	}

	return defaultVal
}
