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

//go:generate mockgen -destination=mock_api.go -package=api github.com/batuapi13/fmtxm-13.1.1.7/pkg/core/api Poller,SNMPTester,TrapStatus

package api

import (
	"context"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/metrics"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/snmp"
)

// Poller is the scheduler surface the REST layer drives. *poller.Scheduler
// implements it; handler tests substitute the generated mock.
type Poller interface {
	Start() error
	Stop()
	Running() bool
	ReloadFromStore(ctx context.Context) error
	UpdateDevice(device models.Device)
	RemoveDevice(deviceID string)
	Devices() []models.Device
	DeviceCount() int
	DeviceStatus(deviceID string) models.DeviceStatus
	Rings() *metrics.RingSet
}

// SNMPTester runs one-shot probes and walks outside the polling loops.
// *snmp.Manager implements it.
type SNMPTester interface {
	Test(ctx context.Context, device models.Device, oids []string) snmp.TestResult
	Walk(ctx context.Context, device models.Device, root string) ([]models.Varbind, error)
}

// TrapStatus reports the trap receiver's bind state for health reporting.
// *traps.Receiver implements it.
type TrapStatus interface {
	Running() bool
	BoundPort() int
}
