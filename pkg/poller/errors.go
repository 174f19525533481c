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

import "errors"

var (
	// ErrStoreRequired means the scheduler was built without a store.
	ErrStoreRequired = errors.New("poll scheduler requires a store")

	// ErrSessionsRequired means the scheduler was built without a session
	// manager.
	ErrSessionsRequired = errors.New("poll scheduler requires a session manager")

	// ErrReloadFailed wraps a transmitter list failure during reload.
	ErrReloadFailed = errors.New("failed to reload device table")
)
