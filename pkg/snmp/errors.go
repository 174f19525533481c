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

package snmp

import "errors"

var (
	// ErrSessionNotFound means no session is registered for the device id.
	ErrSessionNotFound = errors.New("no snmp session for device")

	// ErrConnectFailed wraps a dial failure; the session entry survives and
	// the next poll redials.
	ErrConnectFailed = errors.New("snmp connect failed")

	// ErrGetFailed wraps a transport-level GET failure.
	ErrGetFailed = errors.New("snmp get failed")

	// ErrAgentError means the agent answered with a non-zero error status.
	ErrAgentError = errors.New("snmp agent returned error status")

	// ErrWalkFailed wraps a transport-level WALK failure.
	ErrWalkFailed = errors.New("snmp walk failed")

	// ErrUnsupportedVersion means the device carries a version outside v1/v2c.
	ErrUnsupportedVersion = errors.New("unsupported snmp version")

	// ErrEmptyDump means a walk dump file yielded no parseable varbinds.
	ErrEmptyDump = errors.New("walk dump contained no varbinds")
)
