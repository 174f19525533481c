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

package poller

//go:generate mockgen -destination=mock_poller.go -package=poller github.com/batuapi13/fmtxm-13.1.1.7/pkg/poller Clock,Ticker,SessionManager,EventSink

import (
	"context"
	"time"

	"github.com/batuapi13/fmtxm-13.1.1.7/pkg/models"
)

// Clock abstracts time-related operations.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker abstracts the ticker behavior.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// SessionManager is the slice of the SNMP session layer the scheduler
// drives. *snmp.Manager satisfies it.
type SessionManager interface {
	Open(device models.Device) error
	Close(deviceID string)
	CloseAll()
	Recycle(device models.Device) error
	Get(ctx context.Context, deviceID string, oids []string) (map[string]models.Value, error)
}

// EventSink receives every poll result, fire-and-forget.
type EventSink interface {
	PublishPollResult(result models.DeviceResult)
}
