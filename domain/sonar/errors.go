/*
 * © 2026 Snyk Limited
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

package sonar

import "github.com/pkg/errors"

var (
	// ErrNotReady is returned when a document, an associated project or an analysis plugin is
	// missing. Operations returning it have no side effects.
	ErrNotReady = errors.New("extension not ready")
	// ErrRemoteUnavailable wraps failures of the fetch service. The cache keeps its prior state.
	ErrRemoteUnavailable = errors.New("server unavailable")
	// ErrProfileUnavailable is returned when the quality profile cannot be fetched.
	ErrProfileUnavailable = errors.New("cannot retrieve profile from server")
)

// RemoteUnavailable marks err as a fetch failure while keeping it in the chain.
func RemoteUnavailable(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &remoteError{cause: err, msg: msg}
}

type remoteError struct {
	cause error
	msg   string
}

func (e *remoteError) Error() string {
	return e.msg + ": " + ErrRemoteUnavailable.Error() + ": " + e.cause.Error()
}

func (e *remoteError) Unwrap() error { return e.cause }

func (e *remoteError) Is(target error) bool { return target == ErrRemoteUnavailable }
