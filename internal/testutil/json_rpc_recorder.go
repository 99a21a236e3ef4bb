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

package testutil

import (
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/pkg/errors"
)

// JsonRPCRecorder keeps the requests a test client received from the server, split into
// notifications and callbacks.
type JsonRPCRecorder struct {
	callbacks     []jrpc2.Request
	notifications []jrpc2.Request
	mutex         sync.Mutex
}

func (r *JsonRPCRecorder) Record(request jrpc2.Request) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if request.IsNotification() {
		r.notifications = append(r.notifications, request)
	} else {
		r.callbacks = append(r.callbacks, request)
	}
}

func (r *JsonRPCRecorder) FindNotificationsByMethod(method string) []jrpc2.Request {
	return r.find(&r.notifications, method)
}

func (r *JsonRPCRecorder) FindCallbacksByMethod(method string) []jrpc2.Request {
	return r.find(&r.callbacks, method)
}

func (r *JsonRPCRecorder) find(requests *[]jrpc2.Request, method string) []jrpc2.Request {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	var found []jrpc2.Request
	for _, request := range *requests {
		if request.Method() == method {
			found = append(found, request)
		}
	}
	return found
}

// LastNotificationParams decodes the parameters of the latest notification of method into v.
func (r *JsonRPCRecorder) LastNotificationParams(method string, v any) error {
	found := r.FindNotificationsByMethod(method)
	if len(found) == 0 {
		return errors.Errorf("no %s notification recorded", method)
	}
	return found[len(found)-1].UnmarshalParams(v)
}

func (r *JsonRPCRecorder) ClearCallbacks() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.callbacks = nil
}

func (r *JsonRPCRecorder) ClearNotifications() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.notifications = nil
}
